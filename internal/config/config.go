package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
)

// Config holds the biosearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Search   SearchConfig   `yaml:"search"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Blob     BlobConfig     `yaml:"blob"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds the remote search service and query compilation settings.
type SearchConfig struct {
	Endpoint          string `yaml:"endpoint"`
	APIKey            string `yaml:"api_key"`
	APIVersion        string `yaml:"api_version"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	BiographyIndex    string `yaml:"biography_index"`
	StoryIndex        string `yaml:"story_index"`

	MaxPageSize            int      `yaml:"max_page_size"`
	DefaultPageSize        int      `yaml:"default_page_size"`
	HighlightPreTag        string   `yaml:"highlight_pre_tag"`
	HighlightPostTag       string   `yaml:"highlight_post_tag"`
	BiographyDefaultFields []string `yaml:"biography_default_fields"`
	StoryDefaultFields     []string `yaml:"story_default_fields"`
	TagFacetCount          int      `yaml:"tag_facet_count"`

	// ForcedFacets are applied to every filter, e.g. {maker_categories: ScienceMakers}.
	ForcedFacets map[string]string `yaml:"forced_facets"`
	// StrictFacets rejects facet values outside Vocabulary instead of ignoring them.
	StrictFacets bool                `yaml:"strict_facets"`
	Vocabulary   map[string][]string `yaml:"vocabulary"`
}

// DatabaseConfig holds Redis/Valkey connection settings. Empty addrs disables
// the blob store and the tag count cache.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	TagCountsTTLSec int `yaml:"tag_counts_ttl_sec"` // 0 disables
}

// BlobConfig holds blob store settings.
type BlobConfig struct {
	Containers []string `yaml:"containers"` // empty allows any container
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML file path.
func LoadFile(configPath string) (Config, error) {
	if err := loadDotenv(); err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document after ${VAR} substitution.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// loadDotenv loads DOTENV (default .env) into the environment. A missing file is
// fine; variables already set win.
func loadDotenv() error {
	path := os.Getenv("DOTENV")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.RequestTimeoutSec <= 0 {
		c.Search.RequestTimeoutSec = 15
	}
	if c.Search.BiographyIndex == "" {
		c.Search.BiographyIndex = "biographies"
	}
	if c.Search.StoryIndex == "" {
		c.Search.StoryIndex = "stories"
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = request.MaxPageSize
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = request.DefaultPageSize
	}
	if c.Search.HighlightPreTag == "" && c.Search.HighlightPostTag == "" {
		c.Search.HighlightPreTag = "<em>"
		c.Search.HighlightPostTag = "</em>"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required")
	}
	if c.Search.MaxPageSize > request.MaxPageSize {
		return fmt.Errorf("search.max_page_size must be at most %d, got %d",
			request.MaxPageSize, c.Search.MaxPageSize)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size (%d) exceeds search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	for name := range c.Search.ForcedFacets {
		if !facet.Name(name).IsValid() {
			return fmt.Errorf("search.forced_facets: unknown facet %q", name)
		}
	}
	if _, err := facet.NewCompiler(c.Search.Forced()); err != nil {
		return fmt.Errorf("search.forced_facets: %w", err)
	}
	for name := range c.Search.Vocabulary {
		if !facet.Name(name).IsValid() {
			return fmt.Errorf("search.vocabulary: unknown facet %q", name)
		}
	}
	if c.Cache.TagCountsTTLSec > 0 && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("cache.tag_counts_ttl_sec requires database.addrs")
	}
	return nil
}

// Forced returns the forced facet constraints keyed by facet name.
func (s SearchConfig) Forced() map[facet.Name]string {
	out := make(map[facet.Name]string, len(s.ForcedFacets))
	for k, v := range s.ForcedFacets {
		out[facet.Name(k)] = v
	}
	return out
}

// FacetVocabulary returns the strict-mode vocabulary keyed by facet name.
func (s SearchConfig) FacetVocabulary() facet.Vocabulary {
	out := make(facet.Vocabulary, len(s.Vocabulary))
	for k, v := range s.Vocabulary {
		out[facet.Name(k)] = v
	}
	return out
}

// RequestTimeout returns the per-call timeout for the search service.
func (s SearchConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

// TagCountsTTL returns the tag count cache TTL; zero disables the cache.
func (c CacheConfig) TagCountsTTL() time.Duration {
	return time.Duration(c.TagCountsTTLSec) * time.Second
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
