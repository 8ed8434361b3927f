package model

import "time"

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

type Job struct {
	ID               string    `json:"_id,omitempty"`
	Title            string    `json:"title"`
	Company          *Company  `json:"company,omitempty"`
	JobType          string    `json:"jobType,omitempty"` // full-time, part-time, internship...
	Location         string    `json:"location,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	Status           JobStatus `json:"status,omitempty"`
	IsApproved       bool      `json:"isApproved"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// JobRequest is the write shape: company travels as its id, and zero-value
// fields are left out the way the web client strips undefined keys.
type JobRequest struct {
	Title            string    `json:"title,omitempty"`
	Company          string    `json:"company,omitempty"`
	JobType          string    `json:"jobType,omitempty"`
	Location         string    `json:"location,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	Status           JobStatus `json:"status,omitempty"`
	IsApproved       *bool     `json:"isApproved,omitempty"`
}

type Company struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	Website     string    `json:"website,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
