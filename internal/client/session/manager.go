package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/state"
	"github.com/dmitrijs2005/gophportal/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyToken = errors.New("session token must not be empty")
	ErrNoUser     = errors.New("session user must not be nil")
)

// Invalidator revokes a token on the server. client.Client satisfies it.
type Invalidator interface {
	Logout(ctx context.Context, token string) error
}

// Snapshot is the observable session state.
type Snapshot struct {
	Token         string
	User          *models.UserSummary
	LogoutLoading bool
}

func (s Snapshot) IsAuthenticated() bool { return s.Token != "" }

type Manager struct {
	store  Store
	remote Invalidator
	log    logging.Logger
	state  *state.Store[Snapshot]

	now func() time.Time
}

// NewManager returns a logged-out Manager. Call Hydrate to restore a stored
// session. remote may be nil, in which case Logout is local only.
func NewManager(store Store, remote Invalidator, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:  store,
		remote: remote,
		log:    log.With("component", "session"),
		state:  state.New(Snapshot{}),
		now:    time.Now,
	}
}

// Hydrate loads the stored session. Nothing stored leaves the manager logged
// out. A half-written session, an undecodable one or one whose JWT has
// expired is removed from the store.
func (m *Manager) Hydrate(ctx context.Context) error {
	token, user, err := m.store.Load(ctx)
	if errors.Is(err, ErrCorruptSession) {
		m.log.Warn(ctx, "dropping unreadable stored session", "error", err)
		return m.clear(ctx)
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	switch {
	case token == "" && user == nil:
		m.state.Set(Snapshot{})
		return nil
	case token == "" || user == nil:
		m.log.Warn(ctx, "dropping incomplete stored session")
		return m.clear(ctx)
	}

	if exp, ok := ExpiresAt(token); ok && !exp.After(m.now()) {
		m.log.Info(ctx, "stored token expired", "expired_at", exp)
		return m.clear(ctx)
	}

	m.state.Set(Snapshot{Token: token, User: user})
	m.log.Debug(ctx, "session restored", "email", user.Email)
	return nil
}

// Login stores token and user and marks the session authenticated.
func (m *Manager) Login(ctx context.Context, token string, user *models.UserSummary) error {
	if token == "" {
		return ErrEmptyToken
	}
	if user == nil {
		return ErrNoUser
	}

	u := *user
	if err := m.store.Save(ctx, token, &u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	m.state.Set(Snapshot{Token: token, User: &u})
	m.log.Info(ctx, "logged in", "email", u.Email)
	return nil
}

// Logout asks the server to invalidate the token and then clears the session.
// The remote call is best effort: its failure is logged and the local session
// is cleared anyway. Only a failure to clear the store is returned, and the
// in-memory session is dropped even then.
func (m *Manager) Logout(ctx context.Context) error {
	var token string
	m.state.Update(func(s Snapshot) Snapshot {
		token = s.Token
		s.LogoutLoading = true
		return s
	})

	if token != "" && m.remote != nil {
		if err := m.remote.Logout(ctx, token); err != nil {
			m.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	err := m.clear(ctx)
	if err == nil {
		m.log.Info(ctx, "logged out")
	}
	return err
}

// Expire drops the session without contacting the server. It is used when
// the server has already rejected the token.
func (m *Manager) Expire(ctx context.Context) error {
	m.log.Info(ctx, "session expired")
	return m.clear(ctx)
}

func (m *Manager) clear(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.state.Set(Snapshot{})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) Snapshot() Snapshot    { return m.state.Get() }
func (m *Manager) Token() string         { return m.state.Get().Token }
func (m *Manager) IsAuthenticated() bool { return m.state.Get().IsAuthenticated() }
func (m *Manager) LogoutLoading() bool   { return m.state.Get().LogoutLoading }

// User returns a copy of the session user, or nil when logged out.
func (m *Manager) User() *models.UserSummary {
	u := m.state.Get().User
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Subscribe calls fn after every session change.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return m.state.Subscribe(fn)
}

// TokenExpiry reports the expiry of the current token.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	return ExpiresAt(m.Token())
}

// ExpiresAt returns the exp claim of a JWT without verifying its signature.
// Tokens that are not JWTs, or carry no exp, report false.
func ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
