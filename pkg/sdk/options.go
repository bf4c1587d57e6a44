package biosearch

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint   string
	apiKey     string
	apiVersion string
	timeout    time.Duration
	httpClient *http.Client

	biographyIndex string
	storyIndex     string

	forced          map[Facet]string
	strict          bool
	vocabulary      map[Facet][]string
	defaultPageSize int
	maxPageSize     int
	tagFacetCount   int
	bioFields       []string
	storyFields     []string
	highlightPre    string
	highlightPost   string

	addrs          []string
	username       string
	password       string
	db             int
	tagCountsTTL   time.Duration
	blobContainers []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSearchService sets the search service endpoint and its api-key. Required.
func WithSearchService(endpoint, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = endpoint
		c.apiKey = apiKey
	})
}

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(v string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiVersion = v
	})
}

// WithTimeout bounds each remote call. Default: only the caller's context.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient sets the HTTP client used for the search service.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithIndexes sets the biography and story index names.
// Defaults: "biographies" and "stories".
func WithIndexes(biography, story string) Option {
	return optionFunc(func(c *clientConfig) {
		c.biographyIndex = biography
		c.storyIndex = story
	})
}

// WithForcedFacet pins a facet value on every query, e.g. a restricted
// ScienceMakers deployment. Repeatable.
func WithForcedFacet(f Facet, value string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.forced == nil {
			c.forced = make(map[Facet]string)
		}
		c.forced[f] = value
	})
}

// WithStrictFacets rejects facet values outside vocabulary with ErrInvalidFacet.
// A facet missing from vocabulary accepts any value.
func WithStrictFacets(vocabulary map[Facet][]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.strict = true
		c.vocabulary = vocabulary
	})
}

// WithPageSizes sets the default and maximum page sizes. Defaults: 20 and 500.
func WithPageSizes(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	})
}

// WithTagFacetCount sets how many tag buckets a tag count query asks for. Default: 1000.
func WithTagFacetCount(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.tagFacetCount = n
	})
}

// WithDefaultSearchFields sets the fields searched when a TextQuery names none.
func WithDefaultSearchFields(biography, story []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.bioFields = biography
		c.storyFields = story
	})
}

// WithHighlightTags sets the markers around highlighted terms. Default: the
// search service's own markers.
func WithHighlightTags(pre, post string) Option {
	return optionFunc(func(c *clientConfig) {
		c.highlightPre = pre
		c.highlightPost = post
	})
}

// WithRedis connects a Redis or Valkey instance for blobs and the tag count cache.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisConfig is WithRedis for ACL users, several seed addresses or a
// non-zero logical database.
func WithRedisConfig(addrs []string, username, password string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.username = username
		c.password = password
		c.db = db
	})
}

// WithTagCountCache caches tag count results for ttl. Requires WithRedis.
func WithTagCountCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.tagCountsTTL = ttl
	})
}

// WithBlobContainers sets the containers Blobs() may read and write.
// Default: "transcripts" and "images".
func WithBlobContainers(containers ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.blobContainers = containers
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
