package client

import (
	"context"

	"github.com/dmitrijs2005/gophportal/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	Close() error
}

// API paths relative to the configured base URL.
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
	LogoutPath   = "/auth/logout"
	ProfilePath  = "/auth/profile"
)
