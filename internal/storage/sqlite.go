package storage

import (
	"email-intake/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(cfg *config.Storage) (*SQLiteProvider, error) {
	provider, err := NewSQLProvider("sqlite3", cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}

	// A ":memory:" database exists per connection, and sqlite only has one
	// writer anyway. One connection keeps appends in arrival order.
	provider.db.SetMaxOpenConns(1)

	return &SQLiteProvider{
		SQLProvider: *provider,
	}, nil
}
