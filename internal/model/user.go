package model

import "time"

// User represents an application user record as stored in the
// `users` table. The password hash never leaves the repository and
// handler layers; responses expose PublicProfile instead.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Identity is the authenticated caller, reconstructed per request from
// a verified access token. It is never persisted and is immutable once
// issued.
type Identity struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// PublicProfile is the subset of a user that unauthenticated callers
// may see. The password hash is deliberately excluded.
type PublicProfile struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}
