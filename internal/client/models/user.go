package models

import (
	"strings"
	"unicode/utf8"
)

// UserSummary is the minimal identity kept in the session. Login responses
// may carry more fields; only these are persisted.
type UserSummary struct {
	ID       int64  `json:"id,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// Country and Role are nested references in a Profile.
type Country struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Role struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Profile is the detailed user record served by the profile endpoint.
type Profile struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	UserName string   `json:"user_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Country  *Country `json:"country,omitempty"`
	Role     *Role    `json:"role,omitempty"`
}

// Fallback texts used when a profile field is empty.
const (
	FallbackInitial  = "U"
	FallbackName     = "User"
	FallbackUserName = "username"
	FallbackRole     = "User"
	FallbackPhone    = "Not registered"
	FallbackCountry  = "Not specified"
)

// Initial is the upper-cased first letter of the name, used as avatar.
func (p *Profile) Initial() string {
	if p == nil || p.Name == "" {
		return FallbackInitial
	}
	r, _ := utf8.DecodeRuneInString(p.Name)
	return strings.ToUpper(string(r))
}

func (p *Profile) DisplayName() string {
	if p == nil || p.Name == "" {
		return FallbackName
	}
	return p.Name
}

func (p *Profile) Handle() string {
	if p == nil || p.UserName == "" {
		return "@" + FallbackUserName
	}
	return "@" + p.UserName
}

func (p *Profile) RoleName() string {
	if p == nil || p.Role == nil || p.Role.Name == "" {
		return FallbackRole
	}
	return p.Role.Name
}

func (p *Profile) PhoneOrFallback() string {
	if p == nil || p.Phone == "" {
		return FallbackPhone
	}
	return p.Phone
}

func (p *Profile) CountryName() string {
	if p == nil || p.Country == nil || p.Country.Name == "" {
		return FallbackCountry
	}
	return p.Country.Name
}
