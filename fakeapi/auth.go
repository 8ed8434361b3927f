package fakeapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradlink/gradlink-cli/httpx"
	"github.com/gradlink/gradlink-cli/log"
	"github.com/gradlink/gradlink-cli/model"
)

type ctxKey int

const userKey ctxKey = 0

const tokenTTL = 8 * time.Hour

// devOTP is the fixed one-time code dev mode accepts.
const devOTP = "123456"

func (s *Server) mintToken(u *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.UserType),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.missing_token")
			return
		}

		tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.bad_token")
			return
		}
		sub, err := tok.Claims.GetSubject()
		if err != nil {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.bad_subject")
			return
		}

		s.mu.Lock()
		rec := s.users[sub]
		s.mu.Unlock()
		if rec == nil || !rec.user.IsActive {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.unknown_user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, &rec.user)))
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).UserType != model.RoleAdmin {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "auth.not_admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *model.User {
	return r.Context().Value(userKey).(*model.User)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &creds); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "login.parse_body")
		return
	}

	s.mu.Lock()
	rec := s.findUserByEmail(creds.Email)
	s.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(creds.Password)) != nil {
		httpx.LogStatusMsg(w, http.StatusUnauthorized, log.DebugLevel, "login.bad_credentials",
			"Invalid email or password")
		return
	}
	if !rec.user.IsVerified {
		httpx.LogStatusMsg(w, http.StatusForbidden, log.DebugLevel, "login.unverified",
			"Please verify your email first")
		return
	}
	if !rec.user.IsActive {
		httpx.LogStatusMsg(w, http.StatusForbidden, log.DebugLevel, "login.deactivated",
			"This account has been deactivated")
		return
	}

	token, err := s.mintToken(&rec.user)
	if err != nil {
		httpx.LogInternalError(w, "login.mint_token", err)
		return
	}
	render.JSON(w, r, map[string]any{"token": token, "user": rec.user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, currentUser(r))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
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
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "register.parse_body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "register.missing_fields",
			"Email and password are required")
		return
	}
	if req.UserType != model.RoleStudent && req.UserType != model.RoleAlumni {
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "register.bad_role",
			"Registration is open to students and alumni only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUserByEmail(req.Email) != nil {
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "register.duplicate",
			"An account with this email already exists")
		return
	}

	rec := &userRecord{
		user: model.User{
			ID:        newID(),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			UserType:  req.UserType,
			Course:    req.Course,
			YearLevel: req.YearLevel,
			StudentID: req.StudentID,
			IsActive:  true,
		},
		passwordHash: mustHash(req.Password),
		otp:          devOTP,
	}
	s.users[rec.user.ID] = rec

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"userId":               rec.user.ID,
		"requiresVerification": true,
	})
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "verify_otp.parse_body")
		return
	}

	s.mu.Lock()
	rec := s.findUserByEmail(req.Email)
	if rec == nil || rec.otp == "" || rec.otp != req.OTP {
		s.mu.Unlock()
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "verify_otp.mismatch",
			"Invalid or expired verification code")
		return
	}
	rec.otp = ""
	rec.user.IsVerified = true
	user := rec.user
	s.mu.Unlock()

	token, err := s.mintToken(&user)
	if err != nil {
		httpx.LogInternalError(w, "verify_otp.mint_token", err)
		return
	}
	render.JSON(w, r, map[string]any{"token": token, "user": user})
}

func (s *Server) resendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "resend_otp.parse_body")
		return
	}

	s.mu.Lock()
	if rec := s.findUserByEmail(req.Email); rec != nil && !rec.user.IsVerified {
		rec.otp = devOTP
	}
	s.mu.Unlock()

	// always 200, the real API does not leak which emails exist
	render.JSON(w, r, map[string]any{"sent": true})
}
