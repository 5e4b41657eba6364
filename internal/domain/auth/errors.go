package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
)
