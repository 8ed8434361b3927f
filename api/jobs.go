package api

import (
	"context"
	"net/url"

	"github.com/gradlink/gradlink-cli/model"
)

type JobsService struct {
	c *Client
}

type ListJobsOptions struct {
	ApprovedOnly bool
	Status       model.JobStatus
}

func (s *JobsService) List(ctx context.Context, opts ListJobsOptions) ([]model.Job, error) {
	q := url.Values{}
	if opts.ApprovedOnly {
		q.Set("approvedOnly", "true")
	}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	path := "/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []model.Job
	if err := s.c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JobsService) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.c.get(ctx, "/jobs/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JobsService) Create(ctx context.Context, req model.JobRequest) (*model.Job, error) {
	var out model.Job
	if err := s.c.post(ctx, "/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a job; zero-value fields in req are left untouched
// server-side. Approval and status flips go through here too.
func (s *JobsService) Update(ctx context.Context, jobID string, req model.JobRequest) (*model.Job, error) {
	var out model.Job
	if err := s.c.put(ctx, "/jobs/"+jobID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobsService) Delete(ctx context.Context, jobID string) error {
	return s.c.delete(ctx, "/jobs/"+jobID)
}
