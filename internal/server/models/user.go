package models

import "time"

// User is an identity record. PasswordHash holds a one-way bcrypt digest;
// the plaintext credential is never stored.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
