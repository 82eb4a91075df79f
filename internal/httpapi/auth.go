package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/questlog/backend/internal/auth"
	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/repository"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 6 {
		writeBadRequest(w, "username required and password must be at least 6 characters")
		return
	}

	if _, err := s.users.FindByUsername(r.Context(), req.Username); err == nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "username taken"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		writeError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user := &model.User{Username: req.Username, PasswordHash: hash, Level: 1}
	if err := s.users.Create(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	user, err := s.users.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, auth.ErrBadCredentials)
			return
		}
		writeError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, auth.ErrBadCredentials)
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
