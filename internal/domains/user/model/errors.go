package model

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; the response never tells the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
