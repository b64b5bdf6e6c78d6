package views

import (
	"context"

	"github.com/dmitrijs2005/gophportal/internal/client/services"
)

// ProfilePage shows the logged in user's profile.
type ProfilePage struct {
	loader  *services.ProfileLoader
	session Session
	nav     Navigator
}

func NewProfilePage(loader *services.ProfileLoader, session Session, nav Navigator) *ProfilePage {
	return &ProfilePage{loader: loader, session: session, nav: nav}
}

// Open loads the profile. The outcome is in State.
func (p *ProfilePage) Open(ctx context.Context) error {
	return p.loader.Load(ctx)
}

// Retry loads the profile again.
func (p *ProfilePage) Retry(ctx context.Context) error {
	return p.Open(ctx)
}

func (p *ProfilePage) State() services.ProfileState {
	return p.loader.State()
}

func (p *ProfilePage) LogoutLoading() bool {
	return p.session.LogoutLoading()
}

// Recover leaves a failed profile page. After an auth error the session is
// expired locally, without a logout request, and the login page opened.
// After any other error the home page is opened.
func (p *ProfilePage) Recover(ctx context.Context) error {
	switch p.loader.State().Kind {
	case services.ErrorKindAuth:
		err := p.session.Expire(ctx)
		p.nav.Navigate(RouteLogin)
		return err
	case services.ErrorKindGeneric:
		p.nav.Navigate(RouteHome)
	}
	return nil
}

// SignOut ends the session and opens the login page, even when clearing the
// stored session fails.
func (p *ProfilePage) SignOut(ctx context.Context) error {
	err := p.session.Logout(ctx)
	p.nav.Navigate(RouteLogin)
	return err
}
