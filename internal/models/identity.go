package models

import "strings"

// Identity holds the user-identifying claims embedded in a credential token.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName returns the user's full name, falling back to the username
// when no name parts are set.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}

// Equal reports whether two identities refer to the same user.
func (i Identity) Equal(other Identity) bool {
	return i.ID == other.ID
}
