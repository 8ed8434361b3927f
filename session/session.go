// Package session tracks who is logged in on this machine: the bearer token
// and the user record it belongs to. It is the client-side mirror of the web
// app's auth context; the server remains the authority on both.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gradlink/gradlink-cli/model"
)

type Session struct {
	token string
	user  *model.User
}

func New() *Session {
	return &Session{}
}

// Adopt installs a verified token/user pair, typically straight from a login
// or me call.
func (s *Session) Adopt(token string, user *model.User) {
	s.token = token
	s.user = user
}

func (s *Session) Clear() {
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) User() *model.User {
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.token != "" && s.user != nil
}

func (s *Session) Role() model.Role {
	return s.user.Role()
}

func (s *Session) IsAdmin() bool {
	return s.Role() == model.RoleAdmin
}

func (s *Session) IsStudentOrAlumni() bool {
	role := s.Role()
	return role == model.RoleStudent || role == model.RoleAlumni
}

// Expired reports whether the token's exp claim has passed. The signature is
// NOT checked here: only the server can verify it, this is just a cheap local
// test to skip a doomed request. Tokens that cannot be parsed or carry no
// expiry count as expired.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}
