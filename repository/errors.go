package repository

import "errors"

var (
	// ErrPostNotFound is returned when a post does not exist or belongs to another user
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when no user has the requested email
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")
)
