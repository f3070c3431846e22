package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/ontograph/pkg/cache"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/httputil"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// DefaultTTL is how long fetched collections stay cached.
const DefaultTTL = 15 * time.Minute

// HTTPOptions configures an [HTTPSource].
type HTTPOptions struct {
	// BaseURL is the registry root, e.g. https://registry.example.com/api.
	BaseURL string

	// Headers are sent with every request (auth tokens, API keys).
	Headers map[string]string

	// Cache stores fetched collections. Nil disables caching.
	Cache cache.Cache

	// TTL is the cache lifetime. Zero uses [DefaultTTL].
	TTL time.Duration

	// Refresh bypasses cached entries but still writes fresh ones.
	Refresh bool

	// Retry overrides [httputil.DefaultPolicy].
	Retry *httputil.Policy

	// Client overrides the default HTTP client.
	Client *http.Client
}

// HTTPSource reads collections from a REST registry.
//
// Each collection is served at {base}/{collection}?limit=N as either a JSON
// array or an envelope {"data": [...]}.
type HTTPSource struct {
	base    string
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	refresh bool
	policy  httputil.Policy
	headers map[string]string
}

// NewHTTPSource validates opts and returns a source.
func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	if _, err := url.Parse(base); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "invalid registry URL")
	}

	s := &HTTPSource{
		base:    base,
		http:    opts.Client,
		cache:   opts.Cache,
		keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), base+"|"),
		ttl:     opts.TTL,
		refresh: opts.Refresh,
		policy:  httputil.DefaultPolicy,
		headers: opts.Headers,
	}
	if s.http == nil {
		s.http = httputil.NewHTTPClient()
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if opts.Retry != nil {
		s.policy = *opts.Retry
	}
	return s, nil
}

// Name returns "http".
func (s *HTTPSource) Name() string { return "http" }

// BaseURL returns the normalized registry root.
func (s *HTTPSource) BaseURL() string { return s.base }

// Nodes fetches the collection for kind.
func (s *HTTPSource) Nodes(ctx context.Context, kind ontology.Kind, limit int) ([]ontology.Node, error) {
	recs, err := s.records(ctx, Collection(kind), limit)
	if err != nil {
		return nil, err
	}
	return decodeNodes(kind, recs), nil
}

// Relationships fetches the relationship collection.
func (s *HTTPSource) Relationships(ctx context.Context, limit int) ([]ontology.Edge, error) {
	recs, err := s.records(ctx, Relationships, limit)
	if err != nil {
		return nil, err
	}
	return decodeEdges(recs), nil
}

func (s *HTTPSource) records(ctx context.Context, collection string, limit int) ([]Record, error) {
	key := s.keyer.RegistryKey(s.Name(), collection, limit)
	hooks := observability.Cache()

	if !s.refresh {
		if data, ok, _ := s.cache.Get(ctx, key); ok {
			var recs []Record
			if json.Unmarshal(data, &recs) == nil {
				hooks.OnCacheHit(ctx, "registry")
				return recs, nil
			}
		}
		hooks.OnCacheMiss(ctx, "registry")
	}

	var recs []Record
	err := httputil.Retry(ctx, s.policy, func() error {
		body, err := httputil.Get(ctx, s.http, s.url(collection, limit), s.headers)
		if err != nil {
			return err
		}
		recs, err = decodeBody(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	recs = truncate(recs, limit)

	if data, err := json.Marshal(recs); err == nil {
		if s.cache.Set(ctx, key, data, s.ttl) == nil {
			hooks.OnCacheSet(ctx, "registry", len(data))
		}
	}
	return recs, nil
}

func (s *HTTPSource) url(collection string, limit int) string {
	u := s.base + "/" + url.PathEscape(collection)
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	return u
}
