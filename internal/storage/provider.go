package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"email-intake/internal/config"
)

var (
	ErrUnsupportedStorage = errors.New("unsupported storage configuration")
	ErrClosed             = errors.New("storage provider is closed")
)

// Provider is an append-only, ordered log of submissions.
type Provider interface {
	Close() error

	// AppendSubmission adds s after every previously appended record.
	AppendSubmission(ctx context.Context, s Submission) error
	// ListSubmissions returns all records in insertion order. The slice is
	// owned by the caller.
	ListSubmissions(ctx context.Context) ([]Submission, error)
}

func NewProvider(cfg *config.Storage) (Provider, error) {
	switch cfg.Type {
	case config.StorageMemory, "":
		return NewMemoryProvider(), nil

	case config.StorageSQLite:
		provider, err := NewSQLiteProvider(cfg)
		if err != nil {
			return nil, err
		}
		if err := provider.runMigrations(context.Background(), "sqlite3"); err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return provider, nil

	default:
		slog.Error("Unsupported storage configuration", "type", cfg.Type)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedStorage, cfg.Type)
}
