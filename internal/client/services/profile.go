package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/state"
	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/dmitrijs2005/gophportal/internal/logging"
)

// ErrorKind classifies a profile load failure.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	// ErrorKindAuth: the token is missing, expired or rejected; the way out
	// is a new login.
	ErrorKindAuth
	// ErrorKindGeneric: anything else; retrying may help.
	ErrorKindGeneric
)

// ProfileState is what the profile view renders.
type ProfileState struct {
	Profile *models.Profile
	Loading bool
	Error   string
	Kind    ErrorKind
}

// ProfileFetcher is the part of client.Client the loader uses.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
}

// TokenSource yields the current session token. *session.Manager satisfies it.
type TokenSource interface {
	Token() string
}

// ProfileLoader fetches the profile of the logged in user. It has no
// mutation operations: the state only changes through Load.
type ProfileLoader struct {
	fetcher ProfileFetcher
	tokens  TokenSource
	log     logging.Logger
	state   *state.Store[ProfileState]
}

func NewProfileLoader(fetcher ProfileFetcher, tokens TokenSource, log logging.Logger) *ProfileLoader {
	if log == nil {
		log = logging.Nop()
	}
	return &ProfileLoader{
		fetcher: fetcher,
		tokens:  tokens,
		log:     log.With("component", "profile"),
		state:   state.New(ProfileState{}),
	}
}

// Load fetches the profile with the current token. Without a token it fails
// with an auth-class error and sends no request.
func (l *ProfileLoader) Load(ctx context.Context) error {
	l.state.Set(ProfileState{Loading: true})

	token := l.tokens.Token()
	if token == "" {
		l.fail(ctx, common.ErrNotAuthenticated, ErrorKindAuth)
		return common.ErrNotAuthenticated
	}

	p, err := l.fetcher.GetProfile(ctx, token)
	if err != nil {
		l.fail(ctx, err, Classify(err))
		return err
	}

	l.state.Set(ProfileState{Profile: p})
	return nil
}

func (l *ProfileLoader) fail(ctx context.Context, err error, kind ErrorKind) {
	l.log.Info(ctx, "profile load failed", "auth", kind == ErrorKindAuth, "error", err)
	l.state.Set(ProfileState{Error: err.Error(), Kind: kind})
}

func (l *ProfileLoader) State() ProfileState { return l.state.Get() }

func (l *ProfileLoader) Subscribe(fn func(ProfileState)) (unsubscribe func()) {
	return l.state.Subscribe(fn)
}

// Classify maps a profile fetch error to its kind. A 401 is an auth error;
// a 403 counts as one only when its message looks like a token problem.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, client.ErrUnauthorized),
		errors.Is(err, common.ErrNotAuthenticated),
		errors.Is(err, common.ErrTokenExpired):
		return ErrorKindAuth
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden && IsAuthError(apiErr.Message) {
		return ErrorKindAuth
	}
	return ErrorKindGeneric
}

// IsAuthError reports whether an error message reads like an authentication
// failure. It is meant for callers that only hold the message.
func IsAuthError(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "401") ||
		strings.Contains(m, "expired") ||
		strings.Contains(m, "invalid")
}
