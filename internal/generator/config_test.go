package generator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tt := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{
			name:   "default",
			modify: func(c *Config) {},
			valid:  true,
		},
		{
			name:   "no_users",
			modify: func(c *Config) { c.Users = 0 },
		},
		{
			name:   "negative_begin_id",
			modify: func(c *Config) { c.BeginID = -1 },
		},
		{
			name:   "zero_name_len",
			modify: func(c *Config) { c.MaxNameLen = 0 },
		},
		{
			name:   "no_locales",
			modify: func(c *Config) { c.Locales = nil },
		},
		{
			name:   "zero_locale_weight",
			modify: func(c *Config) { c.Locales = []Locale{{Code: "en"}} },
		},
		{
			name:   "nan_locale_weight",
			modify: func(c *Config) { c.Locales = []Locale{{Code: "en", Weight: float32(math.NaN())}, {Code: "de", Weight: 1}} },
		},
		{
			name:   "inf_locale_weight",
			modify: func(c *Config) { c.Locales = []Locale{{Code: "en", Weight: float32(math.Inf(1))}} },
		},
		{
			name:   "nan_rating_weight",
			modify: func(c *Config) { c.NegativeRatingWeight = float32(math.NaN()) },
		},
		{
			name:   "inverted_registration_window",
			modify: func(c *Config) { c.RegisteredFrom, c.RegisteredTo = c.RegisteredTo, c.RegisteredFrom },
		},
		{
			name:   "fraction_above_one",
			modify: func(c *Config) { c.Favorites.UsersFraction = 1.5 },
		},
		{
			name:   "inverted_range",
			modify: func(c *Config) { c.Ratings.Count = Range{Min: 5, Max: 1} },
		},
		{
			name:   "negative_bias",
			modify: func(c *Config) { c.Follows.Count.CountBias = -1 },
		},
		{
			name:   "zero_rating_weights",
			modify: func(c *Config) { c.NegativeRatingWeight, c.PositiveRatingWeight = 0, 0 },
		},
		{
			name:   "no_bias",
			modify: func(c *Config) { c.Reports.Count.CountBias = 0 },
			valid:  true,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.modify(&c)

			err := c.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, ErrInvalidConfig), err)
			}
		})
	}
}

func TestParseLocales(t *testing.T) {
	l, err := ParseLocales([]string{"en", "ja_JP:2.5", "de:0"})
	require.NoError(t, err)
	require.Equal(t, []Locale{
		{Code: "en", Weight: 1},
		{Code: "ja_JP", Weight: 2.5},
		{Code: "de", Weight: 0},
	}, l)

	_, err = ParseLocales([]string{"en", "tlh"})
	require.True(t, errors.Is(err, ErrUnknownLocale))

	_, err = ParseLocales([]string{"en:x"})
	require.Error(t, err)

	for _, v := range []string{"en:NaN", "en:+Inf", "en:-1"} {
		_, err = ParseLocales([]string{v, "de"})
		require.True(t, errors.Is(err, ErrInvalidConfig), v)
	}
}

func TestDefaultLocales(t *testing.T) {
	l := DefaultLocales()
	require.Len(t, l, 12)

	for _, v := range l {
		_, ok := locales[v.Code]
		require.True(t, ok, v.Code)
		require.EqualValues(t, 1, v.Weight)
	}

	require.Len(t, LocaleCodes(), 12)
}
