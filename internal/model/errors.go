package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrForbidden     = errors.New("access to this user is forbidden")

	// Federation errors
	ErrFederation = errors.New("federated login failed")
)
