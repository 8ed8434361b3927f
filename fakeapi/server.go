// Package fakeapi is an in-memory stand-in for the GradLink backend. The CLI
// serves it in dev mode and the integration tests mount it in httptest. It
// mimics the real API's routes, auth and error shapes, not its persistence.
package fakeapi

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradlink/gradlink-cli/model"
)

type userRecord struct {
	user         model.User
	passwordHash []byte
	otp          string
}

type Server struct {
	mu     sync.Mutex
	secret []byte

	users     map[string]*userRecord // by id
	surveys   map[string]*model.Survey
	responses map[string][]model.SurveyResponse // by survey id
	jobs      map[string]*model.Job
	companies map[string]*model.Company
}

func New(secret string) *Server {
	s := &Server{
		secret:    []byte(secret),
		users:     make(map[string]*userRecord),
		surveys:   make(map[string]*model.Survey),
		responses: make(map[string][]model.SurveyResponse),
		jobs:      make(map[string]*model.Job),
		companies: make(map[string]*model.Company),
	}
	s.seed()
	return s
}

// Handler wires the API routes the way the real backend exposes them,
// mounted under /api.
func (s *Server) Handler() http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	api := chi.NewRouter()
	api.Post("/auth/register", s.register)
	api.Post("/auth/verify-otp", s.verifyOTP)
	api.Post("/auth/resend-otp", s.resendOTP)
	api.Post("/auth/login", s.login)

	api.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/auth/me", s.me)

		r.Get("/surveys/active/eligible", s.eligibleSurveys)
		r.Get("/surveys/{id}", s.getSurvey)
		r.Post("/surveys/{id}/responses", s.submitResponse)

		r.Group(func(r chi.Router) {
			r.Use(s.adminOnly)

			r.Get("/surveys", s.listSurveys)
			r.Post("/surveys", s.createSurvey)
			r.Put("/surveys/{id}", s.updateSurvey)
			r.Delete("/surveys/{id}", s.deleteSurvey)
			r.Get("/surveys/{id}/responses", s.listResponses)

			r.Get("/users", s.listUsers)
			r.Post("/users", s.createUser)
			r.Put("/users/{id}", s.updateUser)
			r.Delete("/users/{id}", s.deleteUser)
		})

		r.Get("/jobs", s.listJobs)
		r.Get("/jobs/categories", s.jobCategories)
		r.Post("/jobs", s.createJob)
		r.Put("/jobs/{id}", s.updateJob)
		r.Delete("/jobs/{id}", s.deleteJob)

		r.Get("/companies", s.listCompanies)
		r.Post("/companies", s.createCompany)
		r.Put("/companies/{id}", s.updateCompany)
		r.Delete("/companies/{id}", s.deleteCompany)
	})

	root.Mount("/api", api)
	return root
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}

// seed plants the fixtures dev mode expects: two accounts and one of each
// record so every screen has something to show.
func (s *Server) seed() {
	admin := &userRecord{
		user: model.User{
			ID:         newID(),
			FirstName:  "Ada",
			LastName:   "Admin",
			Email:      "admin@gradlink.edu",
			UserType:   model.RoleAdmin,
			IsActive:   true,
			IsVerified: true,
		},
		passwordHash: mustHash("admin123"),
	}
	student := &userRecord{
		user: model.User{
			ID:         newID(),
			FirstName:  "Sam",
			LastName:   "Student",
			Email:      "student@gradlink.edu",
			UserType:   model.RoleStudent,
			Course:     "BS Computer Science",
			YearLevel:  "4",
			StudentID:  "2022-00123",
			IsActive:   true,
			IsVerified: true,
		},
		passwordHash: mustHash("student123"),
	}
	s.users[admin.user.ID] = admin
	s.users[student.user.ID] = student

	company := &model.Company{
		ID:       newID(),
		Name:     "Initech",
		Location: "Quezon City",
		Website:  "https://initech.example",
	}
	s.companies[company.ID] = company

	job := &model.Job{
		ID:         newID(),
		Title:      "Junior Backend Engineer",
		Company:    company,
		JobType:    "full-time",
		Location:   "Remote",
		Categories: []string{"Engineering"},
		Status:     model.JobActive,
		IsApproved: true,
	}
	s.jobs[job.ID] = job

	sv := &model.Survey{
		ID:          newID(),
		Title:       "Graduate Outcomes 2026",
		Description: "Help us understand where our graduates land.",
		Audience:    model.AudienceAll,
		Status:      model.SurveyActive,
		Questions: []model.Question{
			{ID: newID(), Text: "Current employer", Type: "short_text", Order: 1, Required: true},
			{ID: newID(), Text: "Describe your role", Type: "long_text", Order: 2},
			{ID: newID(), Text: "Employment status", Type: "multiple_choice", Order: 3, Required: true,
				Options: []string{"Employed", "Self-employed", "Studying", "Looking"}},
			{ID: newID(), Text: "Which benefits do you value?", Type: "checkbox", Order: 4,
				Options: []string{"Remote work", "Health care", "Training budget", "Stock options"}},
			{ID: newID(), Text: "How well did your course prepare you?", Type: "rating", Order: 5, Required: true},
		},
	}
	s.surveys[sv.ID] = sv
}

func (s *Server) findUserByEmail(email string) *userRecord {
	for _, rec := range s.users {
		if rec.user.Email == email {
			return rec
		}
	}
	return nil
}
