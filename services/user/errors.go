package user

import "errors"

var (
	ErrEmailInUse         = errors.New("this email is already in use, please sign in instead")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
