package repository

import (
	"context"
	"database/sql"
	"fmt"

	"telemetry_monitor/internal/models"
)

// Storage backends accepted by NewRepository.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// ErrorBuffer is an ordered, append-only log of rejected payloads.
// Implementations must make all four operations mutually exclusive.
type ErrorBuffer interface {
	Append(ctx context.Context, e models.ErrorEntry) error
	List(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int, error)
}

type Repository struct {
	ErrorBuffer ErrorBuffer
}

// NewRepository picks the error buffer backend. db is only used for StorageSQLite.
func NewRepository(storage string, db *sql.DB) (*Repository, error) {
	switch storage {
	case "", StorageMemory:
		return &Repository{ErrorBuffer: NewMemoryErrorBuffer()}, nil
	case StorageSQLite:
		if db == nil {
			return nil, fmt.Errorf("storage %q requires an open database", storage)
		}
		return &Repository{ErrorBuffer: NewErrorSQLite(db)}, nil
	default:
		return nil, fmt.Errorf("unknown error buffer storage %q", storage)
	}
}
