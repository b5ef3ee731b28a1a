package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akozinov/filedepot/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "encode response failed", "error", err.Error())
	}
}

// respondError maps service errors onto HTTP statuses. Unexpected failures
// are logged and surfaced uniformly without internal detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: ve.Reason})
	case errors.Is(err, common.ErrorUnauthorized):
		s.respondJSON(w, http.StatusUnauthorized, errorBody{Error: common.ErrorUnauthorized.Error()})
	case errors.Is(err, common.ErrorNotFound):
		s.respondJSON(w, http.StatusNotFound, errorBody{Error: common.ErrorNotFound.Error()})
	case errors.Is(err, common.ErrorAlreadyExists):
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: common.ErrorAlreadyExists.Error()})
	case errors.Is(err, common.ErrorFolderHasNoContent):
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: common.ErrorFolderHasNoContent.Error()})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.respondJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
	}
}
