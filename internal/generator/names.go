package generator

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/poeit/seedgen/internal/entities"
)

// maxNameAttempts limits draws spent on a single username.
const maxNameAttempts = 1000

// ErrNamesExhausted is returned when no more unique usernames fitting the limits can be drawn.
var ErrNamesExhausted = errors.New("unique names exhausted")

// users generates users with unique names and ascending registration dates.
func (g *Generator) users() ([]entities.User, error) {
	seen := make(map[string]struct{}, g.cfg.Users)

	users := make([]entities.User, g.cfg.Users)
	for i, id := range g.userIDs() {
		name, err := g.uniqueName(seen)
		if err != nil {
			return nil, err
		}

		users[i] = entities.User{
			ID:       id,
			Username: name,
		}
	}

	for i, v := range g.registrationDates() {
		users[i].RegistrationDate = v
	}

	return users, nil
}

// uniqueName draws names until it finds one which was never drawn before and fits username rules.
// Every drawn name is marked as used, even rejected one.
func (g *Generator) uniqueName(seen map[string]struct{}) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := norm.NFC.String(strings.ToLower(g.drawName()))

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if name == "" || len(name) > g.cfg.MaxNameLen || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			continue
		}

		return name, nil
	}

	return "", ErrNamesExhausted
}

func (g *Generator) drawName() string {
	v, err := g.f.Weighted(g.localeOptions, g.localeWeights)
	if err != nil {
		// weights are validated on creation
		panic(err)
	}

	return v.(nameSource)(g.f)
}

func (g *Generator) registrationDates() []time.Time {
	from := g.cfg.RegisteredFrom.UTC().Truncate(time.Second)
	to := g.cfg.RegisteredTo.UTC()

	out := make([]time.Time, g.cfg.Users)
	for i := range out {
		out[i] = g.dateBetween(from, to)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})

	return out
}
