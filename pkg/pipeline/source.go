package pipeline

import (
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontograph/pkg/cache"
	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/registry"
)

// SourceOptions adjusts [OpenSource].
type SourceOptions struct {
	// Refresh bypasses cached registry responses.
	Refresh bool

	// Logger reports the chosen backend. Nil discards.
	Logger *log.Logger
}

// OpenSource builds the registry source described by cfg. The returned
// function releases the source and its cache; it is never nil.
func OpenSource(ctx context.Context, cfg config.Config, opts SourceOptions) (registry.Source, func() error, error) {
	noop := func() error { return nil }
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	switch cfg.Source.Kind {
	case config.SourceFile:
		src, err := registry.OpenFile(cfg.Source.Path)
		if err != nil {
			return nil, noop, errors.Wrap(errors.ErrCodeInvalidSource, err, "open snapshot")
		}
		logger.Debug("using snapshot source", "path", cfg.Source.Path)
		return src, noop, nil

	case config.SourceMongo:
		src, err := registry.NewMongoSource(ctx, cfg.Source.MongoURI, cfg.Source.Database)
		if err != nil {
			return nil, noop, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to registry database")
		}
		logger.Debug("using mongo source", "database", cfg.Source.Database)
		return src, func() error { return src.Close(context.Background()) }, nil

	case config.SourceHTTP, "":
		c, err := cache.Open(ctx, cache.Options{
			Backend: cfg.Cache.Backend,
			Dir:     cfg.Cache.Dir,
			Redis: cache.RedisConfig{
				Addr:      cfg.Cache.Redis.Addr,
				Password:  cfg.Cache.Redis.Password,
				DB:        cfg.Cache.Redis.DB,
				KeyPrefix: cfg.Cache.Redis.KeyPrefix,
			},
		})
		if err != nil {
			logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
			c = cache.NewNullCache()
		}
		src, err := registry.NewHTTPSource(registry.HTTPOptions{
			BaseURL: cfg.Source.URL,
			Headers: cfg.Source.Headers,
			Cache:   c,
			TTL:     cfg.Cache.TTL.Std(),
			Refresh: opts.Refresh,
			Client:  &http.Client{Timeout: cfg.Source.Timeout.Std()},
		})
		if err != nil {
			_ = c.Close()
			return nil, noop, err
		}
		logger.Debug("using http source", "url", src.BaseURL(), "cache", cfg.Cache.Backend)
		return src, c.Close, nil

	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidConfig, "unknown source kind %q", cfg.Source.Kind)
	}
}
