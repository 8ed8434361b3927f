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

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]model.Company, 0, len(s.companies))
	for _, c := range s.companies {
		list = append(list, *c)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	render.JSON(w, r, list)
}

func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var c model.Company
	if err := render.DecodeJSON(r.Body, &c); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "create_company.parse_body")
		return
	}
	if c.Name == "" {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_company.name",
			"Company name is required")
		return
	}

	c.ID = newID()
	s.mu.Lock()
	s.companies[c.ID] = &c
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, c)
}

func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var c model.Company
	if err := render.DecodeJSON(r.Body, &c); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "update_company.parse_body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.companies[id] == nil {
		httpx.LogNotFound(w, "update_company", id)
		return
	}
	c.ID = id
	s.companies[id] = &c
	render.JSON(w, r, c)
}

func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.companies[id] == nil {
		httpx.LogNotFound(w, "delete_company", id)
		return
	}
	delete(s.companies, id)
	w.WriteHeader(http.StatusNoContent)
}
