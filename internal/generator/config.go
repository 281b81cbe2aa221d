package generator

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned when generation can not be done with given config.
var ErrInvalidConfig = errors.New("invalid config")

// Range is an inclusive [Min, Max] range of items count.
// CountBias is added to every count drawn from the range.
type Range struct {
	Min       int
	Max       int
	CountBias int
}

// Relation describes how a user-to-target relation is sampled.
type Relation struct {
	// UsersFraction is the part of all users who act in the relation.
	UsersFraction float64
	Count         Range
}

// Config ...
type Config struct {
	Users          int
	BeginID        int
	MaxNameLen     int
	Locales        []Locale
	RegisteredFrom time.Time
	RegisteredTo   time.Time

	MaxPoemLen   int
	MaxReportLen int

	Favorites Relation
	Ratings   Relation
	Reports   Relation
	Follows   Relation

	// NegativeRatingWeight and PositiveRatingWeight are relative weights of -1 and 1 ratings.
	NegativeRatingWeight float32
	PositiveRatingWeight float32
}

// DefaultConfig returns config PoeIt testing data is generated with.
func DefaultConfig() Config {
	return Config{
		Users:          50,
		BeginID:        2,
		MaxNameLen:     20,
		Locales:        DefaultLocales(),
		RegisteredFrom: time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC),
		RegisteredTo:   time.Date(2022, time.October, 1, 23, 59, 59, 0, time.UTC),

		MaxPoemLen:   256,
		MaxReportLen: 256,

		Favorites: Relation{UsersFraction: 2.0 / 3, Count: Range{Min: 1, Max: 20, CountBias: 1}},
		Ratings:   Relation{UsersFraction: 1.0 / 2, Count: Range{Min: 1, Max: 30, CountBias: 1}},
		Reports:   Relation{UsersFraction: 1.0 / 10, Count: Range{Min: 1, Max: 3, CountBias: 1}},
		Follows:   Relation{UsersFraction: 2.0 / 3, Count: Range{Min: 1, Max: 7, CountBias: 1}},

		NegativeRatingWeight: 30,
		PositiveRatingWeight: 70,
	}
}

// Validate checks config consistency.
func (c Config) Validate() error {
	if c.Users <= 0 {
		return fmt.Errorf("%w: users count should be positive", ErrInvalidConfig)
	}

	if c.BeginID < 0 {
		return fmt.Errorf("%w: begin id should not be negative", ErrInvalidConfig)
	}

	if c.MaxNameLen <= 0 || c.MaxPoemLen <= 0 || c.MaxReportLen <= 0 {
		return fmt.Errorf("%w: max lengths should be positive", ErrInvalidConfig)
	}

	if len(c.Locales) == 0 {
		return fmt.Errorf("%w: no locales", ErrInvalidConfig)
	}

	for _, v := range c.Locales {
		if !finite(v.Weight) || v.Weight <= 0 {
			return fmt.Errorf("%w: locale %s weight should be positive and finite", ErrInvalidConfig, v.Code)
		}
	}

	if c.RegisteredTo.Before(c.RegisteredFrom) {
		return fmt.Errorf("%w: registration window ends before it starts", ErrInvalidConfig)
	}

	if !finite(c.NegativeRatingWeight) || !finite(c.PositiveRatingWeight) ||
		c.NegativeRatingWeight < 0 || c.PositiveRatingWeight < 0 || c.NegativeRatingWeight+c.PositiveRatingWeight == 0 {
		return fmt.Errorf("%w: bad rating weights", ErrInvalidConfig)
	}

	for name, r := range map[string]Relation{
		"favorites": c.Favorites,
		"ratings":   c.Ratings,
		"reports":   c.Reports,
		"follows":   c.Follows,
	} {
		if err := r.validate(); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, name, err)
		}
	}

	return nil
}

func (r Relation) validate() error {
	if r.UsersFraction < 0 || r.UsersFraction > 1 {
		return fmt.Errorf("users fraction %v is out of [0, 1]", r.UsersFraction)
	}

	if r.Count.Min < 0 || r.Count.Min > r.Count.Max {
		return fmt.Errorf("bad count range [%d, %d]", r.Count.Min, r.Count.Max)
	}

	if r.Count.CountBias < 0 {
		return fmt.Errorf("negative count bias %d", r.Count.CountBias)
	}

	return nil
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
