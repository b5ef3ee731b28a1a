package httpapi

import "net/http"

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	dbAlive, cacheAlive := s.app.Status(r.Context())
	s.respondJSON(w, http.StatusOK, map[string]bool{"db": dbAlive, "redis": cacheAlive})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	usersCount, filesCount, err := s.app.Stats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int64{"users": usersCount, "files": filesCount})
}
