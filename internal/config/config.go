package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrUnknownStorage = errors.New("unknown storage type")
	ErrMissingDBPath  = errors.New("sqlite storage requires a path")
)

type Config struct {
	LogLevel string `mapstructure:"log_level"`
	// Address the HTTP server binds to, e.g. ":8081".
	Listen string `mapstructure:"listen"`

	// Directory served under /static.
	PublicDir string `mapstructure:"public_dir"`

	// Comma separated list of allowed CIDR networks. Empty means allow all.
	AllowedNetworks string `mapstructure:"allowed_networks"`

	// Expose Prometheus metrics on /metrics.
	Metrics bool `mapstructure:"metrics"`

	Storage Storage `mapstructure:"storage"`
}

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from an optional config file and environment
// variables, in that order of precedence (environment wins).
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")

	for _, path := range configFile {
		if path != "" {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	// storage.sqlite.path <- STORAGE_SQLITE_PATH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option combinations viper cannot express.
func (cfg *Config) Validate() error {
	switch strings.ToLower(cfg.Storage.Type) {
	case StorageMemory:
	case StorageSQLite:
		if cfg.Storage.SQLite.Path == "" {
			return ErrMissingDBPath
		}
		// Relative database paths live in the instance folder
		if p := cfg.Storage.SQLite.Path; p != ":memory:" && !os.IsPathSeparator(p[0]) {
			cfg.Storage.SQLite.Path = fmt.Sprintf("%s/%s", getConfigPath(), p)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage.Type)
	}
	cfg.Storage.Type = strings.ToLower(cfg.Storage.Type)

	if cfg.Listen == "" {
		slog.Warn("Listen address is empty, defaulting to :8081")
		cfg.Listen = ":8081"
	}
	return nil
}
