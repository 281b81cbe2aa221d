package generator

import (
	"errors"
	"sort"

	"github.com/poeit/seedgen/internal/entities"
)

// maxTextAttempts limits redraws of a report text exceeding the length limit.
const maxTextAttempts = 100

// ErrTextTooLong is returned when no text fitting the length limit can be drawn.
var ErrTextTooLong = errors.New("text too long")

// actors returns ids of randomly chosen users acting in the relation.
func (g *Generator) actors(r Relation) []int {
	ids := g.userIDs()
	n := int(r.UsersFraction * float64(len(ids)))

	out := make([]int, n)
	for i, v := range g.f.Rand.Perm(len(ids))[:n] {
		out[i] = ids[v]
	}

	return out
}

// count returns number of targets an actor picks.
func (g *Generator) count(r Range) int {
	return g.f.Number(r.Min, r.Max) + r.CountBias
}

// pick returns k distinct random items of candidates, or all of them when there are less than k.
// candidates are reordered.
func (g *Generator) pick(candidates []int, k int) []int {
	if k > len(candidates) {
		k = len(candidates)
	}

	for i := 0; i < k; i++ {
		j := i + g.f.Rand.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return candidates[:k]
}

// foreignPoems returns ids of poems not authored by user.
func foreignPoems(d *entities.Dataset, userID int) []int {
	out := make([]int, 0, len(d.Poems))
	for _, v := range d.Poems {
		if v.UserID != userID {
			out = append(out, v.ID)
		}
	}

	return out
}

// samplePoems calls f for every (user, poem) pair picked for the relation.
func (g *Generator) samplePoems(d *entities.Dataset, r Relation, f func(userID, poemID int) error) error {
	for _, userID := range g.actors(r) {
		want := g.count(r.Count)
		candidates := foreignPoems(d, userID)

		picked := g.pick(candidates, want)
		if len(picked) < want {
			log.WithField("user", userID).WithField("want", want).WithField("got", len(picked)).
				Debug("not enough poems to pick from")
		}

		for _, poemID := range picked {
			if err := f(userID, poemID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Generator) favorites(d *entities.Dataset) ([]entities.Favorite, error) {
	var out []entities.Favorite

	if err := g.samplePoems(d, g.cfg.Favorites, func(userID, poemID int) error {
		out = append(out, entities.Favorite{PoemID: poemID, UserID: userID})
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].PoemID < out[j].PoemID
	})

	return out, nil
}

func (g *Generator) ratings(d *entities.Dataset) ([]entities.Rating, error) {
	var out []entities.Rating

	options := []interface{}{-1, 1}
	weights := []float32{g.cfg.NegativeRatingWeight, g.cfg.PositiveRatingWeight}

	if err := g.samplePoems(d, g.cfg.Ratings, func(userID, poemID int) error {
		v, err := g.f.Weighted(options, weights)
		if err != nil {
			return err
		}

		out = append(out, entities.Rating{PoemID: poemID, UserID: userID, Value: v.(int)})
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].PoemID < out[j].PoemID
	})

	return out, nil
}

func (g *Generator) reports(d *entities.Dataset) ([]entities.Report, error) {
	var out []entities.Report

	if err := g.samplePoems(d, g.cfg.Reports, func(userID, poemID int) error {
		text, err := g.text(g.cfg.MaxReportLen)
		if err != nil {
			return err
		}

		out = append(out, entities.Report{PoemID: poemID, UserID: userID, Text: text})
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		if out[i].PoemID != out[j].PoemID {
			return out[i].PoemID < out[j].PoemID
		}
		return out[i].Text < out[j].Text
	})

	return out, nil
}

func (g *Generator) follows(d *entities.Dataset) []entities.Follow {
	var out []entities.Follow

	for _, userID := range g.actors(g.cfg.Follows) {
		candidates := make([]int, 0, len(d.Users))
		for _, v := range d.Users {
			if v.ID != userID {
				candidates = append(candidates, v.ID)
			}
		}

		for _, v := range g.pick(candidates, g.count(g.cfg.Follows.Count)) {
			out = append(out, entities.Follow{UserID: userID, FollowedUserID: v})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].FollowedUserID < out[j].FollowedUserID
	})

	return out
}

// text draws a lorem text of at most maxLen bytes.
func (g *Generator) text(maxLen int) (string, error) {
	for i := 0; i < maxTextAttempts; i++ {
		s := g.f.Paragraph(g.f.Number(1, 2), g.f.Number(1, 3), g.f.Number(4, 12), "\n")
		if len(s) <= maxLen {
			return s, nil
		}
	}

	return "", ErrTextTooLong
}
