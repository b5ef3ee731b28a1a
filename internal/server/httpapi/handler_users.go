package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/akozinov/filedepot/internal/common"
)

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, r, common.NewValidationError("Invalid json"))
		return
	}

	user, err := s.users.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context(), r.Header.Get(common.TokenHeaderName))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	token, err := s.users.Login(r.Context(), email, password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), r.Header.Get(common.TokenHeaderName)); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
