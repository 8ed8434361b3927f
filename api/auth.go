package api

import (
	"context"

	"github.com/gradlink/gradlink-cli/model"
)

type AuthService struct {
	c *Client
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login exchanges credentials for a token and the user record. The token is
// not stored anywhere; the caller decides whether to adopt it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := s.c.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the user the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := s.c.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RegisterRequest struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	UserType  model.Role `json:"userType"`
	Course    string     `json:"course,omitempty"`
	YearLevel string     `json:"yearLevel,omitempty"`
	StudentID string     `json:"studentId,omitempty"`
}

type RegisterResult struct {
	UserID               string `json:"userId"`
	RequiresVerification bool   `json:"requiresVerification"`
	MailError            bool   `json:"mailError,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	var out RegisterResult
	if err := s.c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms the emailed one-time code and, like Login, yields a
// ready-to-use token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out LoginResult
	if err := s.c.post(ctx, "/auth/verify-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	return s.c.post(ctx, "/auth/resend-otp", map[string]string{"email": email}, nil)
}
