package apitest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

// claims are the registered claims plus the account email.
type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func signToken(email string, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})
	return token.SignedString(key)
}

func emailFromToken(tokenString string, key []byte) (string, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", errTokenExpired
	case err != nil, !token.Valid:
		return "", errInvalidToken
	}
	return c.Email, nil
}

type ctxKey string

const emailKey ctxKey = "email"

// requireToken rejects requests without a valid, unrevoked bearer token and
// passes the token's email on in the request context.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearer(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "missing token")
			return
		}

		email, err := emailFromToken(token, s.signingKey)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		if s.Revoked(token) {
			writeMessage(w, http.StatusUnauthorized, errInvalidToken.Error())
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), emailKey, email)))
	}
}

func bearer(r *http.Request) string {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if len(h) <= len(common.BearerPrefix) || h[:len(common.BearerPrefix)] != common.BearerPrefix {
		return ""
	}
	return h[len(common.BearerPrefix):]
}
