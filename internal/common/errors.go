package common

import "errors"

var (
	// ErrMissingToken is returned when the login endpoint answers successfully
	// but the response carries no authentication token.
	ErrMissingToken = errors.New("no authentication token received")

	// ErrNotAuthenticated is returned by operations that need a session
	// when nobody is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired marks a stored token whose exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
)
