// Package config loads the forgeboard configuration file.
//
// The file is TOML and optional; a missing file yields [Default]. The
// default location is $XDG_CONFIG_HOME/forgeboard/config.toml, falling back
// to ~/.config/forgeboard/config.toml.
//
//	user = "local"
//
//	[store]
//	backend = "sqlite"
//	path = "/var/lib/forgeboard/settings.db"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forgeboard/pkg/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "forgeboard"

// Backend names accepted in [Store.Backend].
const (
	BackendMemory = "memory"
	BackendNull   = "null"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

var backends = []string{BackendMemory, BackendNull, BackendFile, BackendSQLite, BackendRedis, BackendMongo}

// Config is the full configuration.
type Config struct {
	User   string `toml:"user"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
	Editor Editor `toml:"editor"`
}

// Store selects and configures the settings backend.
type Store struct {
	Backend string `toml:"backend"`
	// Path is the directory of the file backend or the database file of the
	// sqlite backend. Empty means a location under the XDG data directory.
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Editor configures the terminal editor.
type Editor struct {
	ViewportWidth  int `toml:"viewport_width"`
	ViewportHeight int `toml:"viewport_height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		User: "local",
		Store: Store{
			Backend:       BackendFile,
			RedisAddr:     "localhost:6379",
			RedisPrefix:   "forgeboard:settings:",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "forgeboard",
		},
		Server: Server{Addr: ":8080"},
		Editor: Editor{ViewportWidth: 1280, ViewportHeight: 800},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configHome(), AppName, "config.toml")
}

// DataDir returns the directory for persisted data.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".config")
}

// Load reads path over the defaults. An empty path uses [DefaultPath]; a
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := errors.ValidateUserID(c.User); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "user")
	}
	if !slices.Contains(backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (want one of %s)",
			c.Store.Backend, strings.Join(backends, ", "))
	}
	switch c.Store.Backend {
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	}
	if c.Editor.ViewportWidth < 0 || c.Editor.ViewportHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor viewport must not be negative")
	}
	return nil
}

// StorePath returns the configured store path or the default for the
// backend.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Backend {
	case BackendSQLite:
		return filepath.Join(DataDir(), "settings.db")
	default:
		return filepath.Join(DataDir(), "settings")
	}
}
