package services

import (
	"context"
	"database/sql"

	"github.com/akozinov/filedepot/internal/server/repositories/repomanager"
	"github.com/akozinov/filedepot/internal/server/sessions"
)

// AppService reports liveness of the backing stores and aggregate counters.
type AppService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Cache
}

func NewAppService(db *sql.DB, m repomanager.RepositoryManager, c sessions.Cache) *AppService {
	return &AppService{db: db, repomanager: m, sessions: c}
}

// Status pings the database and the session cache.
func (s *AppService) Status(ctx context.Context) (dbAlive, cacheAlive bool) {
	dbAlive = s.db.PingContext(ctx) == nil
	cacheAlive = s.sessions.Ping(ctx) == nil
	return dbAlive, cacheAlive
}

// Stats returns the total number of users and file records.
func (s *AppService) Stats(ctx context.Context) (usersCount, filesCount int64, err error) {
	usersCount, err = s.repomanager.Users(s.db).CountAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	filesCount, err = s.repomanager.Files(s.db).CountAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	return usersCount, filesCount, nil
}
