// Package impl is implementation of service interface.
package impl

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/poeit/seedgen/internal/entities"
	"github.com/poeit/seedgen/internal/poetry"
	"github.com/poeit/seedgen/internal/service"
	"github.com/poeit/seedgen/internal/storage"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// Options ...
type Options struct {
	PoemsPerLines int
	MinLines      int
	MaxLines      int
}

type srv struct {
	f    poetry.Fetcher
	g    service.Generator
	s    storage.Storage
	opts Options
}

// New creates new instance of service.
func New(f poetry.Fetcher, g service.Generator, s storage.Storage, opts Options) service.Service {
	return srv{
		f:    f,
		g:    g,
		s:    s,
		opts: opts,
	}
}

func (s srv) CollectPoems(ctx context.Context) ([]string, error) {
	var out []string

	for lines := s.opts.MinLines; lines <= s.opts.MaxLines; lines++ {
		poems, err := s.f.FetchPoems(ctx, s.opts.PoemsPerLines, lines)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch poems: %w", err)
		}

		log.WithField("lines", lines).WithField("count", len(poems)).Info("poems fetched")

		out = append(out, poems...)
	}

	return out, nil
}

func (s srv) Run(ctx context.Context, now time.Time) (*entities.Dataset, error) {
	poems, err := s.CollectPoems(ctx)
	if err != nil {
		return nil, err
	}

	if len(poems) == 0 {
		return nil, service.ErrNoPoems
	}

	d, err := s.g.Generate(poems, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dataset: %w", err)
	}

	if len(d.Poems) == 0 {
		return nil, fmt.Errorf("%w: all poems were filtered out", service.ErrNoPoems)
	}

	if err := s.s.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save dataset: %w", err)
	}

	return d, nil
}
