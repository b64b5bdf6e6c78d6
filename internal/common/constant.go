// Package common contains constants, sentinel errors and small helpers
// shared by the portal client packages.
package common

// Storage keys of the persisted session. Both are written together on login
// and removed together on logout.
const (
	TokenStorageKey = "auth_token"
	UserStorageKey  = "auth_user"
)

// HTTP header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)
