package sqlfile

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poeit/seedgen/internal/entities"
	"github.com/poeit/seedgen/internal/generator"
)

var testOpts = Options{
	Database:     "PoeItDB",
	PasswordHash: "$APP_ADMIN_HASH",
	RoleID:       2,
}

func testDataset() *entities.Dataset {
	reg := time.Date(2022, time.August, 3, 10, 4, 5, 0, time.UTC)

	return &entities.Dataset{
		Users: []entities.User{
			{ID: 2, Username: "anna", RegistrationDate: reg},
			{ID: 3, Username: "jürgen", RegistrationDate: reg.Add(time.Hour)},
		},
		Poems: []entities.Poem{
			{ID: 1, Text: "It's a poem\nwith two lines", UserID: 2, Timestamp: reg.Add(48 * time.Hour)},
		},
		Favorites: []entities.Favorite{
			{PoemID: 1, UserID: 3},
		},
		Ratings: []entities.Rating{
			{PoemID: 1, UserID: 3, Value: -1},
		},
		Reports: []entities.Report{
			{PoemID: 1, UserID: 3, Text: "Don't\nlike it"},
		},
		Follows: []entities.Follow{
			{UserID: 2, FollowedUserID: 3},
			{UserID: 3, FollowedUserID: 2},
		},
	}
}

const expected = `USE PoeItDB;
-- Setup some development/testing data

-- Users
INSERT INTO User(userID, username, password, roleID, registrationDate) VALUES
(2, 'anna', '$APP_ADMIN_HASH', 2, '2022-08-03 10:04:05'),
(3, 'jürgen', '$APP_ADMIN_HASH', 2, '2022-08-03 11:04:05');

-- Poems
INSERT INTO PrivatePoem(poemID, poemText, userID, timestamp) VALUES
(1, 'It''s a poem\nwith two lines', 2, '2022-08-05 10:04:05');

-- Favorites
INSERT INTO PrivatePoemFavorites(poemID, userID) VALUES
(1, 3);

-- Ratings
INSERT INTO PrivatePoemRating(poemID, userID, rating) VALUES
(1, 3, -1);

-- Reports
INSERT INTO PrivatePoemReports(poemID, userID, reportText) VALUES
(1, 3, 'Don''t\nlike it');

-- Follower
INSERT INTO UserFollowing(userID, followedUserID) VALUES
(2, 3),
(3, 2);
`

func TestFile_render(t *testing.T) {
	f := file{opts: testOpts}

	require.Equal(t, expected, f.render(testDataset()))
}

func TestFile_render_Empty(t *testing.T) {
	f := file{opts: testOpts}

	require.Equal(t, `USE PoeItDB;
-- Setup some development/testing data

-- Users
-- no rows

-- Poems
-- no rows

-- Favorites
-- no rows

-- Ratings
-- no rows

-- Reports
-- no rows

-- Follower
-- no rows
`, f.render(&entities.Dataset{}))
}

func TestFile_render_SameSeed(t *testing.T) {
	now := time.Date(2023, time.March, 1, 12, 0, 0, 0, time.UTC)
	poems := []string{
		"Tyger Tyger, burning bright,\nIn the forests of the night",
		"Shall I compare thee to a summer's day?\nThou art more lovely and more temperate",
		"Because I could not stop for Death,\nHe kindly stopped for me",
	}

	render := func(seed int64) string {
		g, err := generator.New(generator.DefaultConfig(), seed)
		require.NoError(t, err)

		d, err := g.Generate(poems, now)
		require.NoError(t, err)

		return file{opts: testOpts}.render(d)
	}

	a := render(42)
	require.Equal(t, a, render(42))
	require.NotEqual(t, a, render(43))
}

func TestQuote(t *testing.T) {
	tt := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "plain",
			in:   "anna",
			out:  "'anna'",
		},
		{
			name: "quotes",
			in:   "o'er 'tis",
			out:  "'o''er ''tis'",
		},
		{
			name: "newlines",
			in:   "a\nb\n",
			out:  `'a\nb\n'`,
		},
		{
			name: "nfc",
			in:   "Joe\u0301",
			out:  "'Jo\u00e9'",
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, quote(tc.in))
		})
	}
}

func TestFile_Save(t *testing.T) {
	dir, err := ioutil.TempDir("", "sqlfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sql", "04-testing-data.sql")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte("old content"), 0644))

	opts := testOpts
	opts.Path = path

	require.NoError(t, New(opts).Save(context.Background(), testDataset()))

	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, expected, string(b))
}

func TestFile_Save_CreatesDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "sqlfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := testOpts
	opts.Path = filepath.Join(dir, "nested", "out.sql")

	require.NoError(t, New(opts).Save(context.Background(), &entities.Dataset{}))

	_, err = os.Stat(opts.Path)
	require.NoError(t, err)
}

func TestFile_Save_Canceled(t *testing.T) {
	dir, err := ioutil.TempDir("", "sqlfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := testOpts
	opts.Path = filepath.Join(dir, "out.sql")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Equal(t, context.Canceled, New(opts).Save(ctx, testDataset()))

	_, err = os.Stat(opts.Path)
	require.True(t, os.IsNotExist(err))
}
