package services

import "errors"

var (
	// ErrConflict signals a duplicate username or email.
	ErrConflict = errors.New("username or email already in use")
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound signals a missing quiz, question or user.
	ErrNotFound = errors.New("record not found")
)
