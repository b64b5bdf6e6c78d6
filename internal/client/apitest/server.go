// Package apitest runs an in-process fake of the account API for tests.
//
// The fake keeps accounts in memory, issues HS256 JWTs on login, revokes them
// on logout and serves profiles for valid bearer tokens. Knobs on Server make
// it misbehave in the ways the client has to cope with.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/client"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type account struct {
	profile  models.Profile
	password string
}

// Failure forces the next request to a path to answer with Status and a
// {"message": Message} body.
type Failure struct {
	Status  int
	Message string
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[string]*account
	revoked    map[string]bool
	failures   map[string]Failure
	nextID     int64
	signingKey []byte

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
	// OmitToken makes login answer 200 without a token.
	OmitToken bool
	// OmitUser makes login answer without the user object.
	OmitUser bool

	Registrations []models.Registration
	LogoutCalls   int
	RequestIDs    []string
}

// New starts a fake API and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts:   make(map[string]*account),
		revoked:    make(map[string]bool),
		failures:   make(map[string]Failure),
		signingKey: []byte(uuid.NewString()),
		TokenTTL:   time.Hour,
	}

	r := mux.NewRouter()
	r.Use(s.recordRequestID)
	r.HandleFunc(client.LoginPath, s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc(client.RegisterPath, s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc(client.LogoutPath, s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc(client.ProfilePath, s.requireToken(s.handleProfile)).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddUser creates an account and returns its profile with the assigned id.
func (s *Server) AddUser(p models.Profile, password string) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	s.accounts[strings.ToLower(p.Email)] = &account{profile: p, password: password}
	return p
}

// FailNext makes the next request to path fail with f.
func (s *Server) FailNext(path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = f
}

// IssueToken mints a token for email that expires after ttl (negative ttl
// gives an already expired token).
func (s *Server) IssueToken(email string, ttl time.Duration) string {
	token, err := signToken(email, s.signingKey, ttl)
	if err != nil {
		panic(err)
	}
	return token
}

// Revoked reports whether token was invalidated through the logout endpoint.
func (s *Server) Revoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token]
}

func (s *Server) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.RequestIDs = append(s.RequestIDs, r.Header.Get(common.RequestIDHeaderName))
		f, fail := s.failures[r.URL.Path]
		delete(s.failures, r.URL.Path)
		s.mu.Unlock()

		if fail {
			writeMessage(w, f.Status, f.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(creds.Email)]
	omitToken, omitUser, ttl := s.OmitToken, s.OmitUser, s.TokenTTL
	s.mu.Unlock()

	if !ok || acc.password != creds.Password {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	resp := models.LoginResponse{}
	if !omitToken {
		resp.Token = s.IssueToken(acc.profile.Email, ttl)
	}
	if !omitUser {
		resp.User = &models.UserSummary{
			ID:       acc.profile.ID,
			Email:    acc.profile.Email,
			Name:     acc.profile.Name,
			UserName: acc.profile.UserName,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Registrations = append(s.Registrations, reg)
	if _, exists := s.accounts[strings.ToLower(reg.Email)]; exists {
		writeMessage(w, http.StatusConflict, "email already registered")
		return
	}

	s.nextID++
	s.accounts[strings.ToLower(reg.Email)] = &account{
		password: reg.Password,
		profile: models.Profile{
			ID:       s.nextID,
			Name:     reg.Name,
			UserName: reg.UserName,
			Email:    reg.Email,
			Phone:    reg.Phone,
		},
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": s.nextID})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearer(r)

	s.mu.Lock()
	s.LogoutCalls++
	if token != "" {
		s.revoked[token] = true
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value(emailKey).(string)

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(email)]
	s.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusUnauthorized, errInvalidToken.Error())
		return
	}
	writeJSON(w, http.StatusOK, acc.profile)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
