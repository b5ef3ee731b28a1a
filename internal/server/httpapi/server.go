// Package httpapi exposes the file-manager operations over a JSON HTTP API.
// It is thin glue: request decoding, token extraction, and error-to-status
// mapping live here, all business rules live in the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akozinov/filedepot/internal/logging"
	"github.com/akozinov/filedepot/internal/server/services"
)

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	files   *services.FileService
	app     *services.AppService
}

func NewServer(address string, l logging.Logger, us *services.UserService, fs *services.FileService, as *services.AppService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		files:   fs,
		app:     as,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /stats", s.handleStats)

	mux.HandleFunc("POST /users", s.handleRegister)
	mux.HandleFunc("GET /users/me", s.handleMe)
	mux.HandleFunc("GET /connect", s.handleConnect)
	mux.HandleFunc("GET /disconnect", s.handleDisconnect)

	mux.HandleFunc("POST /files", s.handleUpload)
	mux.HandleFunc("GET /files", s.handleIndex)
	mux.HandleFunc("GET /files/{id}", s.handleShow)
	mux.HandleFunc("PUT /files/{id}/publish", s.handlePublish)
	mux.HandleFunc("PUT /files/{id}/unpublish", s.handleUnpublish)
	mux.HandleFunc("GET /files/{id}/data", s.handleDownload)

	return mux
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
