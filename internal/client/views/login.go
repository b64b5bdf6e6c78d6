package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophportal/internal/client/asyncop"
	"github.com/dmitrijs2005/gophportal/internal/client/services"
)

// Login form fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// LoginPage is the login form.
type LoginPage struct {
	auth    services.AuthService
	session Session
	nav     Navigator
	op      *asyncop.Operation

	mu       sync.Mutex
	email    string
	password string
}

func NewLoginPage(auth services.AuthService, session Session, nav Navigator) *LoginPage {
	return &LoginPage{
		auth:    auth,
		session: session,
		nav:     nav,
		op:      asyncop.New("login failed"),
	}
}

// Operation exposes the loading and error state of the submit.
func (p *LoginPage) Operation() *asyncop.Operation { return p.op }

func (p *LoginPage) Email() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.email
}

// SetField updates a field and clears the previous error.
func (p *LoginPage) SetField(name, value string) error {
	p.mu.Lock()
	switch name {
	case FieldEmail:
		p.email = value
	case FieldPassword:
		p.password = value
	default:
		p.mu.Unlock()
		return fmt.Errorf("unknown login field %q", name)
	}
	p.mu.Unlock()

	if !p.op.Busy() {
		p.op.Reset()
	}
	return nil
}

// Submit logs in with the current fields. On success the session is started
// and the profile page opened. A response without a token fails with
// common.ErrMissingToken and leaves the session untouched. While a submit is
// in flight another one fails with asyncop.ErrBusy.
func (p *LoginPage) Submit(ctx context.Context) error {
	p.mu.Lock()
	email, password := p.email, p.password
	p.mu.Unlock()

	err := asyncop.Run(ctx, p.op, func(ctx context.Context) error {
		if err := validEmail(FieldEmail, email); err != nil {
			return err
		}
		if err := required(FieldPassword, password); err != nil {
			return err
		}
		res, err := p.auth.Login(ctx, email, password)
		if err != nil {
			return err
		}
		return p.session.Login(ctx, res.Token, res.User)
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.password = ""
	p.mu.Unlock()

	p.nav.Navigate(RouteProfile)
	return nil
}
