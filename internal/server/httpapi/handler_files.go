package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akozinov/filedepot/internal/common"
	"github.com/akozinov/filedepot/internal/server/models"
	"github.com/akozinov/filedepot/internal/server/services"
)

// uploadPayload mirrors the upload request body. ParentID is accepted both
// as a string and as the bare number 0 that older clients send for the root.
type uploadPayload struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

func parentIDFromJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return models.RootParentID
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if str == "" {
			return models.RootParentID
		}
		return str
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil && num == 0 {
		return models.RootParentID
	}
	// Anything else cannot name an existing folder; let the hierarchy
	// validation report it.
	return string(raw)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var payload uploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, r, common.NewValidationError("Invalid json"))
		return
	}

	file, err := s.files.Upload(r.Context(), &services.UploadRequest{
		Token:    r.Header.Get(common.TokenHeaderName),
		Name:     payload.Name,
		Type:     payload.Type,
		ParentID: parentIDFromJSON(payload.ParentID),
		IsPublic: payload.IsPublic,
		Data:     payload.Data,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, file)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	file, err := s.files.Get(r.Context(), r.Header.Get(common.TokenHeaderName), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, file)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 0
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, common.NewValidationError("Invalid page"))
			return
		}
		page = parsed
	}

	list, err := s.files.List(r.Context(), r.Header.Get(common.TokenHeaderName), q.Get("parentId"), page)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.setVisibility(w, r, true)
}

func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	s.setVisibility(w, r, false)
}

func (s *Server) setVisibility(w http.ResponseWriter, r *http.Request, public bool) {
	file, err := s.files.SetVisibility(r.Context(), r.Header.Get(common.TokenHeaderName), r.PathValue("id"), public)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, file)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	content, err := s.files.Download(r.Context(), r.Header.Get(common.TokenHeaderName), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", content.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content.Data); err != nil {
		s.logger.Error(r.Context(), "write content failed", "error", err.Error())
	}
}
