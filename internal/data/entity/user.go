package entity

import (
	"strings"
	"time"
)

type User struct {
	Identity
	Email    string    `db:"email"`
	Login    string    `db:"login"`
	Name     string    `db:"name"`
	Birthday time.Time `db:"birthday"`
}

// NormalizeName falls back to the login when no display name was given.
func (u *User) NormalizeName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// UserDetail is a user together with its outgoing friendship records, ordered by friend id.
type UserDetail struct {
	User
	Friends []Friendship
}
