// Package model defines the records persisted by the store.
//
// These types carry no JSON tags: the HTTP layer maps each one to a fixed
// wire shape in handler/records.go, so nothing stored here (the password
// hash in particular) can leak into a response by accident.
package model

// User is a registered account. Users are created by registration and never
// updated or deleted.
type User struct {
	ID           int64
	Email        string // unique
	PasswordHash string // bcrypt output, never the plaintext
	IsActive     bool
}
