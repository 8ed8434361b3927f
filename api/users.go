package api

import (
	"context"

	"github.com/gradlink/gradlink-cli/model"
)

type UsersService struct {
	c *Client
}

func (s *UsersService) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := s.c.get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserRequest is the admin-side user creation shape: no OTP flow, the
// account arrives pre-verified.
type CreateUserRequest struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	UserType  model.Role `json:"userType"`
	Course    string     `json:"course,omitempty"`
	YearLevel string     `json:"yearLevel,omitempty"`
	StudentID string     `json:"studentId,omitempty"`
}

func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	var out model.User
	if err := s.c.post(ctx, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRequest patches a user; nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string     `json:"firstName,omitempty"`
	LastName  *string     `json:"lastName,omitempty"`
	UserType  *model.Role `json:"userType,omitempty"`
	Course    *string     `json:"course,omitempty"`
	YearLevel *string     `json:"yearLevel,omitempty"`
	IsActive  *bool       `json:"isActive,omitempty"`
}

func (s *UsersService) Update(ctx context.Context, userID string, req UpdateUserRequest) (*model.User, error) {
	var out model.User
	if err := s.c.put(ctx, "/users/"+userID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Delete(ctx context.Context, userID string) error {
	return s.c.delete(ctx, "/users/"+userID)
}
