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

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]model.User, 0, len(s.users))
	for _, rec := range s.users {
		list = append(list, rec.user)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	render.JSON(w, r, list)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string     `json:"firstName"`
		LastName  string     `json:"lastName"`
		Email     string     `json:"email"`
		Password  string     `json:"password"`
		UserType  model.Role `json:"userType"`
		Course    string     `json:"course"`
		YearLevel string     `json:"yearLevel"`
		StudentID string     `json:"studentId"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "create_user.parse_body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_user.missing_fields",
			"Email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUserByEmail(req.Email) != nil {
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "create_user.duplicate",
			"An account with this email already exists")
		return
	}

	// admin-created accounts skip the OTP dance
	rec := &userRecord{
		user: model.User{
			ID:         newID(),
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			UserType:   req.UserType,
			Course:     req.Course,
			YearLevel:  req.YearLevel,
			StudentID:  req.StudentID,
			IsActive:   true,
			IsVerified: true,
		},
		passwordHash: mustHash(req.Password),
	}
	s.users[rec.user.ID] = rec

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, rec.user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		FirstName *string     `json:"firstName"`
		LastName  *string     `json:"lastName"`
		UserType  *model.Role `json:"userType"`
		Course    *string     `json:"course"`
		YearLevel *string     `json:"yearLevel"`
		IsActive  *bool       `json:"isActive"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "update_user.parse_body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.users[id]
	if rec == nil {
		httpx.LogNotFound(w, "update_user", id)
		return
	}

	if req.FirstName != nil {
		rec.user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		rec.user.LastName = *req.LastName
	}
	if req.UserType != nil {
		rec.user.UserType = *req.UserType
	}
	if req.Course != nil {
		rec.user.Course = *req.Course
	}
	if req.YearLevel != nil {
		rec.user.YearLevel = *req.YearLevel
	}
	if req.IsActive != nil {
		rec.user.IsActive = *req.IsActive
	}
	render.JSON(w, r, rec.user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[id] == nil {
		httpx.LogNotFound(w, "delete_user", id)
		return
	}
	delete(s.users, id)
	w.WriteHeader(http.StatusNoContent)
}
