package generator

import (
	"sort"
	"time"

	"github.com/poeit/seedgen/internal/entities"
)

// FilterPoems removes duplicates and poems longer than maxLen bytes. Result is sorted.
func FilterPoems(poems []string, maxLen int) []string {
	m := make(map[string]struct{}, len(poems))
	out := make([]string, 0, len(poems))

	for _, v := range poems {
		if len(v) > maxLen {
			continue
		}

		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	sort.Strings(out)

	return out
}

// poems assigns every text to a random author and dates it between author's registration and now.
// Poems are numbered from 1 in order of their timestamps.
func (g *Generator) poems(texts []string, users []entities.User, now time.Time) []entities.Poem {
	registered := make(map[int]time.Time, len(users))
	for _, v := range users {
		registered[v.ID] = v.RegistrationDate
	}

	out := make([]entities.Poem, len(texts))
	for i, v := range texts {
		author := g.randomUserID()

		out[i] = entities.Poem{
			Text:      v,
			UserID:    author,
			Timestamp: g.dateBetween(registered[author], now.UTC()),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Text < out[j].Text
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	for i := range out {
		out[i].ID = i + 1
	}

	return out
}
