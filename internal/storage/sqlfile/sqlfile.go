// Package sqlfile is implementation of storage interface which writes dataset as SQL INSERT statements.
package sqlfile

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/poeit/seedgen/internal/entities"
	"github.com/poeit/seedgen/internal/storage"
)

const timeLayout = "2006-01-02 15:04:05"

var log = logrus.WithField("layer", "storage").WithField("package", "sqlfile")

// Options ...
type Options struct {
	Path         string
	Database     string
	PasswordHash string
	RoleID       int
}

type file struct {
	opts Options
}

// New creates new instance of sqlfile storage.
func New(opts Options) storage.Storage {
	return file{
		opts: opts,
	}
}

// Save renders dataset and writes it to the file, replacing it if exists.
func (f file) Save(ctx context.Context, d *entities.Dataset) error {
	content := f.render(d)

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(f.opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := ioutil.WriteFile(f.opts.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.WithField("path", f.opts.Path).WithField("bytes", len(content)).Info("sql file written")

	return nil
}

// render returns SQL script inserting the whole dataset.
func (f file) render(d *entities.Dataset) string {
	var b strings.Builder

	fmt.Fprintf(&b, "USE %s;\n", f.opts.Database)
	b.WriteString("-- Setup some development/testing data\n")

	users := make([]string, len(d.Users))
	for i, v := range d.Users {
		users[i] = fmt.Sprintf("(%d, %s, %s, %d, %s)",
			v.ID, quote(v.Username), quote(f.opts.PasswordHash), f.opts.RoleID, timestamp(v.RegistrationDate))
	}
	insert(&b, "Users", "User", []string{"userID", "username", "password", "roleID", "registrationDate"}, users)

	poems := make([]string, len(d.Poems))
	for i, v := range d.Poems {
		poems[i] = fmt.Sprintf("(%d, %s, %d, %s)", v.ID, quote(v.Text), v.UserID, timestamp(v.Timestamp))
	}
	insert(&b, "Poems", "PrivatePoem", []string{"poemID", "poemText", "userID", "timestamp"}, poems)

	favorites := make([]string, len(d.Favorites))
	for i, v := range d.Favorites {
		favorites[i] = fmt.Sprintf("(%d, %d)", v.PoemID, v.UserID)
	}
	insert(&b, "Favorites", "PrivatePoemFavorites", []string{"poemID", "userID"}, favorites)

	ratings := make([]string, len(d.Ratings))
	for i, v := range d.Ratings {
		ratings[i] = fmt.Sprintf("(%d, %d, %d)", v.PoemID, v.UserID, v.Value)
	}
	insert(&b, "Ratings", "PrivatePoemRating", []string{"poemID", "userID", "rating"}, ratings)

	reports := make([]string, len(d.Reports))
	for i, v := range d.Reports {
		reports[i] = fmt.Sprintf("(%d, %d, %s)", v.PoemID, v.UserID, quote(v.Text))
	}
	insert(&b, "Reports", "PrivatePoemReports", []string{"poemID", "userID", "reportText"}, reports)

	follows := make([]string, len(d.Follows))
	for i, v := range d.Follows {
		follows[i] = fmt.Sprintf("(%d, %d)", v.UserID, v.FollowedUserID)
	}
	insert(&b, "Follower", "UserFollowing", []string{"userID", "followedUserID"}, follows)

	return b.String()
}

// insert writes commented multi-row INSERT statement. Empty rows give a comment only.
func insert(b *strings.Builder, comment, table string, columns []string, rows []string) {
	fmt.Fprintf(b, "\n-- %s\n", comment)

	if len(rows) == 0 {
		b.WriteString("-- no rows\n")
		return
	}

	fmt.Fprintf(b, "INSERT INTO %s(%s) VALUES\n", table, strings.Join(columns, ", "))
	b.WriteString(strings.Join(rows, ",\n"))
	b.WriteString(";\n")
}

// quote returns NFC normalized SQL string literal.
// Only single quotes and newlines are escaped, text is expected to come from a trusted source.
func quote(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "'", "''")
	s = strings.ReplaceAll(s, "\n", `\n`)

	return "'" + s + "'"
}

func timestamp(t time.Time) string {
	return "'" + t.Format(timeLayout) + "'"
}
