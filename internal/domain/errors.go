package domain

import "errors"

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisplayNameTaken   = errors.New("display name already taken")
)
