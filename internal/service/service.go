// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/poeit/seedgen/internal/entities"
)

// ErrNoPoems is returned when poems source gave nothing to assign.
var ErrNoPoems = errors.New("no poems fetched")

// Generator builds dataset from poem texts.
type Generator interface {
	Generate(poems []string, now time.Time) (*entities.Dataset, error)
}

// Service ...
type Service interface {
	// CollectPoems fetches poems of every configured line count.
	CollectPoems(ctx context.Context) ([]string, error)
	// Run collects poems, generates dataset and saves it.
	Run(ctx context.Context, now time.Time) (*entities.Dataset, error)
}
