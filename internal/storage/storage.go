// Package storage contains a storage interface.
package storage

import (
	"context"

	"github.com/poeit/seedgen/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// Storage persists generated fixture.
type Storage interface {
	Save(ctx context.Context, d *entities.Dataset) error
}
