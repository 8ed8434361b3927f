package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
)

type User struct {
	ID         string    `json:"_id,omitempty"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	UserType   Role      `json:"userType"`
	Course     string    `json:"course,omitempty"`
	YearLevel  string    `json:"yearLevel,omitempty"`
	StudentID  string    `json:"studentId,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsVerified bool      `json:"isVerified,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) Role() Role {
	if u == nil {
		return ""
	}
	return u.UserType
}
