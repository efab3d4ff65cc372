package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/migrations"
)

// Storages aggregates every repository of the application. Currently the
// credential store is the only persistent collaborator.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages connects to PostgreSQL, applies pending schema migrations,
// and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating database connection: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		log.Err(err).Msg("error applying migrations")
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}, nil
}
