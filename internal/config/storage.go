package config

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Storage struct {
	// Backend for the submission log: "memory" or "sqlite".
	Type   string        `mapstructure:"type"`
	SQLite SQLiteStorage `mapstructure:"sqlite"`
}

type SQLiteStorage struct {
	// Database path. ":memory:" keeps the log in process memory only.
	Path string `mapstructure:"path,omitempty"`
}
