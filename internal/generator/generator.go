// Package generator builds PoeIt fixture data: users, their poems and relations between them.
package generator

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"

	"github.com/poeit/seedgen/internal/entities"
)

var log = logrus.WithField("package", "generator")

// Generator produces a dataset. All randomness comes from its faker, so the same seed gives the same dataset.
type Generator struct {
	cfg Config
	f   *gofakeit.Faker

	localeOptions []interface{}
	localeWeights []float32
}

// New creates new instance of Generator.
func New(cfg Config, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg: cfg,
		f:   gofakeit.New(seed),
	}

	for _, v := range cfg.Locales {
		src, ok := locales[v.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, v.Code)
		}

		g.localeOptions = append(g.localeOptions, src)
		g.localeWeights = append(g.localeWeights, v.Weight)
	}

	return g, nil
}

// Generate builds the whole dataset. poems are raw poem texts, duplicates and too long ones are dropped.
// now is the upper bound of poems timestamps.
func (g *Generator) Generate(poems []string, now time.Time) (*entities.Dataset, error) {
	if g.cfg.RegisteredTo.After(now) {
		return nil, fmt.Errorf("%w: registration window ends after %s", ErrInvalidConfig, now.Format(time.RFC3339))
	}

	users, err := g.users()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users: %w", err)
	}

	texts := FilterPoems(poems, g.cfg.MaxPoemLen)
	log.WithField("total", len(poems)).WithField("kept", len(texts)).Debug("poems filtered")

	d := &entities.Dataset{
		Users: users,
		Poems: g.poems(texts, users, now),
	}

	d.Favorites, err = g.favorites(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate favorites: %w", err)
	}

	d.Ratings, err = g.ratings(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ratings: %w", err)
	}

	d.Reports, err = g.reports(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports: %w", err)
	}

	d.Follows = g.follows(d)

	log.WithFields(logrus.Fields{
		"users":     len(d.Users),
		"poems":     len(d.Poems),
		"favorites": len(d.Favorites),
		"ratings":   len(d.Ratings),
		"reports":   len(d.Reports),
		"follows":   len(d.Follows),
	}).Info("dataset generated")

	return d, nil
}

// userIDs returns ids of all users to be generated.
func (g *Generator) userIDs() []int {
	out := make([]int, g.cfg.Users)
	for i := range out {
		out[i] = g.cfg.BeginID + i
	}

	return out
}

// randomUserID returns uniformly distributed user id.
func (g *Generator) randomUserID() int {
	return g.f.Number(g.cfg.BeginID, g.cfg.BeginID+g.cfg.Users-1)
}

// dateBetween returns uniformly distributed time in [from, to] truncated to seconds.
func (g *Generator) dateBetween(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}

	t := g.f.DateRange(from, to).Truncate(time.Second)
	if t.Before(from) {
		return from
	}

	return t
}
