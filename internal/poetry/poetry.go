// Package poetry contains interface of poems source.
package poetry

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=./mock/poetry.go -package=mock -source=poetry.go

// ErrUnexpectedResponse is returned when poems source answers with something that is not a poems list.
var ErrUnexpectedResponse = errors.New("unexpected response")

// Fetcher fetches public-domain poems.
type Fetcher interface {
	// FetchPoems returns up to count poems having exactly lines lines.
	// Every poem is returned as its lines joined with "\n".
	FetchPoems(ctx context.Context, count, lines int) ([]string, error)
}
