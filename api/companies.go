package api

import (
	"context"

	"github.com/gradlink/gradlink-cli/model"
)

type CompaniesService struct {
	c *Client
}

func (s *CompaniesService) List(ctx context.Context) ([]model.Company, error) {
	var out []model.Company
	if err := s.c.get(ctx, "/companies", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CompaniesService) Create(ctx context.Context, company *model.Company) (*model.Company, error) {
	var out model.Company
	if err := s.c.post(ctx, "/companies", company, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CompaniesService) Update(ctx context.Context, companyID string, company *model.Company) (*model.Company, error) {
	var out model.Company
	if err := s.c.put(ctx, "/companies/"+companyID, company, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CompaniesService) Delete(ctx context.Context, companyID string) error {
	return s.c.delete(ctx, "/companies/"+companyID)
}
