// Package storage provides the places a progress record can live: memory, a data directory, or a SQL table.
package storage

import (
	"fmt"
	"io"
	"strings"

	"digitalseekho/internal/config"
	"digitalseekho/internal/database"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/repository"
)

// Lister is implemented by backends that can enumerate their keys
type Lister interface {
	Keys() ([]string, error)
}

// Backend is an opened storage and whatever must be closed with it
type Backend interface {
	progress.Storage
	Lister
	io.Closer
}

type nopCloser struct {
	progress.Storage
	Lister
}

func (nopCloser) Close() error { return nil }

type databaseBackend struct {
	*repository.ProgressRepository
	db *database.DB
}

func (b databaseBackend) Close() error {
	return b.db.Close()
}

// Open returns the backend selected by cfg.StorageType. Database backends run migrations first.
func Open(cfg *config.Config) (Backend, error) {
	switch strings.ToLower(cfg.StorageType) {
	case "memory":
		m := NewMemory()
		return nopCloser{Storage: m, Lister: m}, nil

	case "file", "":
		f, err := NewFile(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return nopCloser{Storage: f, Lister: f}, nil

	case "database", "db":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return databaseBackend{ProgressRepository: repository.NewProgressRepository(db), db: db}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
