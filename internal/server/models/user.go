package models

import "time"

// User is the single persisted entity. PasswordHash is a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	PasswordHash []byte    `json:"-"`
	Favourites   []string  `json:"favourites"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasFavourite reports whether itemID is already in the user's favourites.
func (u *User) HasFavourite(itemID string) bool {
	for _, f := range u.Favourites {
		if f == itemID {
			return true
		}
	}
	return false
}
