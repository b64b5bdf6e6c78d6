// Package services contains application services for the portal client.
// This file defines the authentication service: login with a typed failure
// result, and registration with the fields the API expects on top of the
// form.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/dmitrijs2005/gophportal/internal/logging"
)

// LastSessionLayout is the date format of Registration.LastSession.
const LastSessionLayout = "2006-01-02"

// LoginFailure tells why a login attempt produced no session.
type LoginFailure int

const (
	// LoginFailureMissingToken: the API accepted the credentials but sent no token.
	LoginFailureMissingToken LoginFailure = iota + 1
	// LoginFailureTransport: the API could not be reached or timed out.
	LoginFailureTransport
	// LoginFailureRejected: the API answered with an error.
	LoginFailureRejected
)

func (f LoginFailure) String() string {
	switch f {
	case LoginFailureMissingToken:
		return "missing token"
	case LoginFailureTransport:
		return "transport"
	case LoginFailureRejected:
		return "rejected"
	}
	return "unknown"
}

// LoginError is returned by AuthService.Login. Its message is the one shown
// to the user.
type LoginError struct {
	Kind LoginFailure
	Err  error
}

func (e *LoginError) Error() string { return e.Err.Error() }
func (e *LoginError) Unwrap() error { return e.Err }

// LoginResult carries what a session needs. User is never nil.
type LoginResult struct {
	Token string
	User  *models.UserSummary
}

// AuthService defines authentication operations for the front-end.
//
// Contract:
//   - Login: authenticate; a response without a token is a failure.
//   - Register: create an account; the date of the request and the account
//     flag are added to the form.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, form models.Registration) error
	Close() error
}

type authService struct {
	client client.Client
	log    logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, log: log.With("component", "auth"), now: time.Now}
}

// Login posts the credentials. When the response has no user, the summary
// falls back to the submitted email.
func (a *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	resp, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		kind := LoginFailureRejected
		if client.IsTransportError(err) {
			kind = LoginFailureTransport
		}
		a.log.Info(ctx, "login failed", "email", email, "kind", kind, "error", err)
		return nil, &LoginError{Kind: kind, Err: err}
	}

	if resp == nil || resp.Token == "" {
		a.log.Warn(ctx, "login response without token", "email", email)
		return nil, &LoginError{Kind: LoginFailureMissingToken, Err: common.ErrMissingToken}
	}

	user := resp.User
	if user == nil {
		user = &models.UserSummary{Email: email}
	}
	return &LoginResult{Token: resp.Token, User: user}, nil
}

func (a *authService) Register(ctx context.Context, form models.Registration) error {
	form.Email = strings.TrimSpace(form.Email)
	form.LastSession = a.now().Format(LastSessionLayout)
	form.AccountStatement = true

	if err := a.client.Register(ctx, form); err != nil {
		a.log.Info(ctx, "registration failed", "email", form.Email, "error", err)
		return err
	}
	a.log.Info(ctx, "registered", "email", form.Email, "user_name", form.UserName)
	return nil
}

func (a *authService) Close() error {
	return a.client.Close()
}

// IsLoginFailure reports whether err is a LoginError of the given kind.
func IsLoginFailure(err error, kind LoginFailure) bool {
	var le *LoginError
	return errors.As(err, &le) && le.Kind == kind
}
