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

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	approvedOnly := r.URL.Query().Get("approvedOnly") == "true"
	status := model.JobStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	list := make([]model.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if approvedOnly && !j.IsApproved {
			continue
		}
		if status != "" && j.Status != status {
			continue
		}
		list = append(list, *j)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	render.JSON(w, r, list)
}

func (s *Server) jobCategories(w http.ResponseWriter, r *http.Request) {
	seen := map[string]bool{}
	categories := []string{}

	s.mu.Lock()
	for _, j := range s.jobs {
		for _, c := range j.Categories {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	s.mu.Unlock()

	sort.Strings(categories)
	render.JSON(w, r, categories)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req model.JobRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "create_job.parse_body")
		return
	}
	if req.Title == "" {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_job.title",
			"Job title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := &model.Job{
		ID:               newID(),
		Title:            req.Title,
		Company:          s.companies[req.Company],
		JobType:          req.JobType,
		Location:         req.Location,
		Categories:       req.Categories,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Status:           req.Status,
	}
	if job.Status == "" {
		job.Status = model.JobActive
	}
	if req.IsApproved != nil {
		job.IsApproved = *req.IsApproved
	}
	s.jobs[job.ID] = job

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, job)
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.JobRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "update_job.parse_body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job := s.jobs[id]
	if job == nil {
		httpx.LogNotFound(w, "update_job", id)
		return
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Company != "" {
		job.Company = s.companies[req.Company]
	}
	if req.JobType != "" {
		job.JobType = req.JobType
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.Categories != nil {
		job.Categories = req.Categories
	}
	if req.ShortDescription != "" {
		job.ShortDescription = req.ShortDescription
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if req.IsApproved != nil {
		job.IsApproved = *req.IsApproved
	}
	render.JSON(w, r, job)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobs[id] == nil {
		httpx.LogNotFound(w, "delete_job", id)
		return
	}
	delete(s.jobs, id)
	w.WriteHeader(http.StatusNoContent)
}
