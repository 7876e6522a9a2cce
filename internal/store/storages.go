package store

import (
	"context"
	"fmt"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/logger"
)

// Storages groups the server-side repositories behind one constructor so the
// composition root does not deal with connection plumbing.
type Storages struct {
	ProfileRepository ProfileRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		ProfileRepository: NewProfileRepository(db, log),
		db:                db,
	}, nil
}

// Close releases the shared database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
