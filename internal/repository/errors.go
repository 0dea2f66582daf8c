// Package repository implements the persistence layer over MySQL.
// Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors: ErrNotFound maps to 404,
// ErrUsernameExists to the duplicate-registration response.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registering a username that is
// already taken.
var ErrUsernameExists = errors.New("username already exists")
