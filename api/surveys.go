package api

import (
	"context"

	"github.com/gradlink/gradlink-cli/model"
)

type SurveysService struct {
	c *Client
}

// List returns every survey, drafts included. Admin only.
func (s *SurveysService) List(ctx context.Context) ([]model.Survey, error) {
	var out []model.Survey
	if err := s.c.get(ctx, "/surveys", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads the full survey record, questions included.
func (s *SurveysService) Get(ctx context.Context, surveyID string) (*model.Survey, error) {
	var out model.Survey
	if err := s.c.get(ctx, "/surveys/"+surveyID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SurveysService) Create(ctx context.Context, sv *model.Survey) (*model.Survey, error) {
	var out model.Survey
	if err := s.c.post(ctx, "/surveys", sv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SurveysService) Update(ctx context.Context, surveyID string, sv *model.Survey) (*model.Survey, error) {
	var out model.Survey
	if err := s.c.put(ctx, "/surveys/"+surveyID, sv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SurveysService) Delete(ctx context.Context, surveyID string) error {
	return s.c.delete(ctx, "/surveys/"+surveyID)
}

// Eligible returns the active surveys the current user is expected to
// answer: audience-matched, not yet answered. Stubs only, no questions.
func (s *SurveysService) Eligible(ctx context.Context) ([]model.SurveySummary, error) {
	var out []model.SurveySummary
	if err := s.c.get(ctx, "/surveys/active/eligible", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitResponse sends a finished response for a survey.
func (s *SurveysService) SubmitResponse(ctx context.Context, surveyID string, req model.SubmitRequest) error {
	return s.c.post(ctx, "/surveys/"+surveyID+"/responses", req, nil)
}

// Responses lists the collected responses of a survey. Admin only.
func (s *SurveysService) Responses(ctx context.Context, surveyID string) ([]model.SurveyResponse, error) {
	var out []model.SurveyResponse
	if err := s.c.get(ctx, "/surveys/"+surveyID+"/responses", &out); err != nil {
		return nil, err
	}
	return out, nil
}
