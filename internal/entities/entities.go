// Package entities contains main entities of service.
package entities

import (
	"time"
)

// User ...
type User struct {
	ID               int
	Username         string
	RegistrationDate time.Time
}

// Poem ...
type Poem struct {
	ID        int
	Text      string
	UserID    int
	Timestamp time.Time
}

// Favorite ...
type Favorite struct {
	PoemID int
	UserID int
}

// Rating is a vote of user for a poem, value is either -1 or 1.
type Rating struct {
	PoemID int
	UserID int
	Value  int
}

// Report ...
type Report struct {
	PoemID int
	UserID int
	Text   string
}

// Follow ...
type Follow struct {
	UserID         int
	FollowedUserID int
}

// Dataset is the whole generated fixture.
type Dataset struct {
	Users     []User
	Poems     []Poem
	Favorites []Favorite
	Ratings   []Rating
	Reports   []Report
	Follows   []Follow
}

// PoemAuthor returns author's user id of the poem.
func (d *Dataset) PoemAuthor(poemID int) (int, bool) {
	// poems are numbered from 1 in slice order
	if poemID >= 1 && poemID <= len(d.Poems) && d.Poems[poemID-1].ID == poemID {
		return d.Poems[poemID-1].UserID, true
	}

	for _, p := range d.Poems {
		if p.ID == poemID {
			return p.UserID, true
		}
	}

	return 0, false
}

// User returns user by id.
func (d *Dataset) User(id int) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}

	return User{}, false
}
