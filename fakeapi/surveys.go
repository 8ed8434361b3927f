package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/gradlink/gradlink-cli/httpx"
	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
)

func (s *Server) listSurveys(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]model.Survey, 0, len(s.surveys))
	for _, sv := range s.surveys {
		list = append(list, *sv)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	render.JSON(w, r, list)
}

func (s *Server) getSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	sv := s.surveys[id]
	s.mu.Unlock()
	if sv == nil {
		httpx.LogNotFound(w, "get_survey", id)
		return
	}
	render.JSON(w, r, sv)
}

func (s *Server) createSurvey(w http.ResponseWriter, r *http.Request) {
	var sv model.Survey
	if err := render.DecodeJSON(r.Body, &sv); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "create_survey.parse_body")
		return
	}
	if sv.Title == "" {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_survey.title",
			"Survey title is required")
		return
	}

	sv.ID = newID()
	if sv.Audience == "" {
		sv.Audience = model.AudienceAll
	}
	if sv.Status == "" {
		sv.Status = model.SurveyDraft
	}
	for i := range sv.Questions {
		if sv.Questions[i].ID == "" {
			sv.Questions[i].ID = newID()
		}
	}

	s.mu.Lock()
	s.surveys[sv.ID] = &sv
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, sv)
}

func (s *Server) updateSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var sv model.Survey
	if err := render.DecodeJSON(r.Body, &sv); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "update_survey.parse_body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surveys[id] == nil {
		httpx.LogNotFound(w, "update_survey", id)
		return
	}
	sv.ID = id
	for i := range sv.Questions {
		if sv.Questions[i].ID == "" {
			sv.Questions[i].ID = newID()
		}
	}
	s.surveys[id] = &sv
	render.JSON(w, r, sv)
}

func (s *Server) deleteSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surveys[id] == nil {
		httpx.LogNotFound(w, "delete_survey", id)
		return
	}
	delete(s.surveys, id)
	delete(s.responses, id)
	w.WriteHeader(http.StatusNoContent)
}

func audienceMatches(a model.Audience, role model.Role) bool {
	switch a {
	case model.AudienceStudents:
		return role == model.RoleStudent
	case model.AudienceAlumni:
		return role == model.RoleAlumni
	default:
		return true
	}
}

// eligibleSurveys mirrors the real backend's eligibility window: active
// surveys whose audience covers the caller, minus the ones already answered.
// Admins get an empty list. Stubs only, no questions.
func (s *Server) eligibleSurveys(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	list := []model.SurveySummary{}
	if user.UserType == model.RoleStudent || user.UserType == model.RoleAlumni {
		s.mu.Lock()
		for _, sv := range s.surveys {
			if sv.Status != model.SurveyActive || !audienceMatches(sv.Audience, user.UserType) {
				continue
			}
			if s.hasResponded(sv.ID, user.ID) {
				continue
			}
			list = append(list, model.SurveySummary{
				ID:          sv.ID,
				Title:       sv.Title,
				Description: sv.Description,
			})
		}
		s.mu.Unlock()
		sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	}

	render.JSON(w, r, list)
}

func (s *Server) hasResponded(surveyID, userID string) bool {
	for _, resp := range s.responses[surveyID] {
		if resp.User != nil && resp.User.ID == userID {
			return true
		}
	}
	return false
}

func (s *Server) submitResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := currentUser(r)

	var req model.SubmitRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "submit_response.parse_body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sv := s.surveys[id]
	if sv == nil {
		httpx.LogNotFound(w, "submit_response", id)
		return
	}
	if sv.Status != model.SurveyActive {
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "submit_response.inactive",
			"This survey is no longer accepting responses")
		return
	}
	if s.hasResponded(id, user.ID) {
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "submit_response.duplicate",
			"You have already answered this survey")
		return
	}

	userCopy := *user
	s.responses[id] = append(s.responses[id], model.SurveyResponse{
		ID:       newID(),
		SurveyID: id,
		User:     &userCopy,
		Answers:  req.Answers,
	})

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{"submitted": true})
}

func (s *Server) listResponses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surveys[id] == nil {
		httpx.LogNotFound(w, "list_responses", id)
		return
	}
	list := s.responses[id]
	if list == nil {
		list = []model.SurveyResponse{}
	}
	render.JSON(w, r, list)
}
