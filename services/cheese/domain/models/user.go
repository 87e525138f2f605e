package models

import (
	"strings"
	"time"

	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
)

// User owns cheese listings. Listings reference users by id only.
type User struct {
	ID        int64
	Email     string
	Username  Username
	CreatedAt time.Time
}

// NewUser returns a user created now. The email is lower-cased and trimmed;
// its format is checked at the request boundary.
func NewUser(email string, username Username) *User {
	return &User{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

// AssignID records the identifier generated by the persistence layer.
func (u *User) AssignID(id int64) error {
	if u.ID != 0 {
		return cheesedomain.ErrIDAlreadyAssigned
	}
	u.ID = id
	return nil
}
