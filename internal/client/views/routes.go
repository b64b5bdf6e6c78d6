package views

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/models"
)

// Route names a page.
type Route string

const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteProfile  Route = "/profile"
)

// Navigator switches the active page. Navigate may be called from a timer
// goroutine.
type Navigator interface {
	Navigate(to Route)
}

// Session is the part of *session.Manager the pages use.
type Session interface {
	Login(ctx context.Context, token string, user *models.UserSummary) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	IsAuthenticated() bool
	LogoutLoading() bool
}

// Timer is a pending scheduled call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules on the runtime's timers.
func SystemScheduler() Scheduler { return systemScheduler{} }
