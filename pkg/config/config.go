// Package config loads ontograph configuration from TOML.
//
// A missing file is not an error: [Load] falls back to [Default]. Values
// present in the file override the defaults key by key, and command-line
// flags override the file.
//
//	[source]
//	kind = "http"
//	url = "https://registry.example.com/api"
//	limit = 500
//
//	[source.headers]
//	Authorization = "Bearer ..."
//
//	[cache]
//	backend = "redis"
//	ttl = "15m"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[engine]
//	attach_entities = true
//	conflict_policy = "first_write_wins"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Source kinds.
const (
	SourceHTTP  = "http"
	SourceFile  = "file"
	SourceMongo = "mongo"
)

// Conflict policy names.
const (
	PolicyLastWriteWins  = "last_write_wins"
	PolicyFirstWriteWins = "first_write_wins"
)

// Config is the complete configuration.
type Config struct {
	Source Source `toml:"source"`
	Cache  Cache  `toml:"cache"`
	Engine Engine `toml:"engine"`
	Server Server `toml:"server"`
}

// Source selects where registry collections come from.
type Source struct {
	Kind     string            `toml:"kind"`
	URL      string            `toml:"url"`
	Path     string            `toml:"path"`
	MongoURI string            `toml:"mongo_uri"`
	Database string            `toml:"database"`
	Limit    int               `toml:"limit"`
	Headers  map[string]string `toml:"headers"`
	Timeout  Duration          `toml:"timeout"`
}

// Cache configures registry response caching.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	Redis   Redis    `toml:"redis"`
}

// Redis configures the Redis cache backend.
type Redis struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// Engine holds presentation and layout defaults.
type Engine struct {
	AttachEntities bool     `toml:"attach_entities"`
	ConflictPolicy string   `toml:"conflict_policy"`
	LayoutDuration Duration `toml:"layout_duration"`
	LayoutPeriod   Duration `toml:"layout_period"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: Source{
			Kind:     SourceHTTP,
			URL:      "http://localhost:8000/api",
			Database: "ontology",
			Limit:    1000,
			Timeout:  Duration(10 * time.Second),
		},
		Cache: Cache{
			Backend: "file",
			TTL:     Duration(15 * time.Minute),
			Redis:   Redis{Addr: "localhost:6379", KeyPrefix: "ontograph:"},
		},
		Engine: Engine{
			ConflictPolicy: PolicyLastWriteWins,
			LayoutDuration: Duration(3000 * time.Millisecond),
			LayoutPeriod:   Duration(50 * time.Millisecond),
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ontograph/config.toml, or the OS
// equivalent.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ontograph", "config.toml"), nil
}

// Load reads path on top of [Default] and validates the result.
// An empty path uses [DefaultPath]; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		return cfg, nil
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceHTTP:
		if err := errors.ValidateURL(c.Source.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.url")
		}
	case SourceFile:
		if c.Source.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source.path is required for file sources")
		}
	case SourceMongo:
		if c.Source.MongoURI == "" || c.Source.Database == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source.mongo_uri and source.database are required for mongo sources")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown source kind %q", c.Source.Kind)
	}
	if c.Source.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "source.limit must not be negative")
	}

	switch c.Cache.Backend {
	case "", "none", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if _, err := c.Engine.Policy(); err != nil {
		return err
	}
	if c.Engine.LayoutPeriod <= 0 || c.Engine.LayoutDuration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.layout_period must be positive")
	}
	return nil
}

// Policy converts the configured conflict policy name.
func (e Engine) Policy() (ontology.ConflictPolicy, error) {
	switch e.ConflictPolicy {
	case "", PolicyLastWriteWins:
		return ontology.LastWriteWins, nil
	case PolicyFirstWriteWins:
		return ontology.FirstWriteWins, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown conflict policy %q", e.ConflictPolicy)
	}
}

// Duration is a time.Duration written as a string ("15m", "50ms") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
