// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Loaded with viper from defaults, an optional config file and environment overrides

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable holding an optional config file path
const ConfigFileEnv = "FEEDS_CONFIG"

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Store      StoreConfig      `mapstructure:"store"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Proxy      ProxyConfig      `mapstructure:"proxy"`
	Log        LogConfig        `mapstructure:"log"`
	Client     ClientConfig     `mapstructure:"client"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `mapstructure:"port"`

	// RateLimit is the sustained requests per second allowed per client IP; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit"`

	// RateBurst is the burst size allowed per client IP
	RateBurst int `mapstructure:"rate_burst"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `mapstructure:"type"`

	// TTL is how long successful extractions stay cached
	TTL time.Duration `mapstructure:"ttl"`

	Redis  RedisConfig  `mapstructure:"redis"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `mapstructure:"address"`

	// Password is the Redis authentication password
	Password string `mapstructure:"password"`

	// DB is the Redis database number
	DB int `mapstructure:"db"`

	// KeyPrefix namespaces every key this process writes
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig selects where the server keeps the shared sync snapshot
type StoreConfig struct {
	// Type is memory, redis or sqlite; Redis settings are shared with Cache
	Type string `mapstructure:"type"`

	// SQLitePath is the snapshot database, kept apart from the extraction cache
	SQLitePath string `mapstructure:"sqlite_path"`

	// Prefix namespaces snapshot keys inside the backend
	Prefix string `mapstructure:"prefix"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	ArticleTimeout  time.Duration  `mapstructure:"article_timeout"`
	BlueskyAPI      string         `mapstructure:"bluesky_api"`
	PodcastKeywords []string       `mapstructure:"podcast_keywords"`
	Captions        CaptionsConfig `mapstructure:"captions"`
}

// CaptionsConfig configures the yt-dlp caption source
type CaptionsConfig struct {
	Binary      string        `mapstructure:"binary"`
	Languages   string        `mapstructure:"languages"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OutputLimit int           `mapstructure:"output_limit"`
}

// ProxyConfig configures feed document fetching
type ProxyConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	Backoff    time.Duration `mapstructure:"backoff"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ClientConfig is used by the command line client
type ClientConfig struct {
	// APIURL is the server the client syncs with
	APIURL string `mapstructure:"api_url"`

	// StatePath is the SQLite file holding the local snapshot
	StatePath string `mapstructure:"state_path"`
}

// envBindings maps config keys to environment variables
var envBindings = map[string]string{
	"server.port":                      "PORT",
	"server.rate_limit":                "RATE_LIMIT_RPS",
	"server.rate_burst":                "RATE_LIMIT_BURST",
	"server.shutdown_timeout":          "SHUTDOWN_TIMEOUT",
	"cache.type":                       "CACHE_TYPE",
	"cache.ttl":                        "CACHE_TTL",
	"cache.redis.address":              "REDIS_ADDRESS",
	"cache.redis.password":             "REDIS_PASSWORD",
	"cache.redis.db":                   "REDIS_DB",
	"cache.redis.key_prefix":           "REDIS_KEY_PREFIX",
	"cache.sqlite.path":                "SQLITE_PATH",
	"store.type":                       "STORE_TYPE",
	"store.prefix":                     "STORE_PREFIX",
	"store.sqlite_path":                "STORE_SQLITE_PATH",
	"extraction.article_timeout":       "ARTICLE_TIMEOUT",
	"extraction.bluesky_api":           "BLUESKY_API",
	"extraction.podcast_keywords":      "PODCAST_KEYWORDS",
	"extraction.captions.binary":       "YTDLP_BINARY",
	"extraction.captions.languages":    "CAPTION_LANGUAGES",
	"extraction.captions.timeout":      "CAPTION_TIMEOUT",
	"extraction.captions.output_limit": "CAPTION_OUTPUT_LIMIT",
	"proxy.timeout":                    "PROXY_TIMEOUT",
	"proxy.max_retries":                "PROXY_MAX_RETRIES",
	"proxy.backoff":                    "PROXY_BACKOFF",
	"log.level":                        "LOG_LEVEL",
	"log.format":                       "LOG_FORMAT",
	"client.api_url":                   "FEEDS_API_URL",
	"client.state_path":                "FEEDS_STATE_PATH",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", "feeds:")
	v.SetDefault("cache.sqlite.path", "cache.db")

	v.SetDefault("store.type", "sqlite")
	v.SetDefault("store.sqlite_path", "sync.db")
	v.SetDefault("store.prefix", "sync:")

	v.SetDefault("extraction.article_timeout", 20*time.Second)
	v.SetDefault("extraction.bluesky_api", "https://public.api.bsky.app")
	v.SetDefault("extraction.podcast_keywords", []string{"podcast", "latent space", "lex fridman", "huberman"})
	v.SetDefault("extraction.captions.binary", "yt-dlp")
	v.SetDefault("extraction.captions.languages", "en.*,en")
	v.SetDefault("extraction.captions.timeout", 60*time.Second)
	v.SetDefault("extraction.captions.output_limit", 1<<20)

	v.SetDefault("proxy.timeout", 15*time.Second)
	v.SetDefault("proxy.max_retries", 2)
	v.SetDefault("proxy.backoff", time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("client.api_url", "http://localhost:8000")
	v.SetDefault("client.state_path", defaultStatePath())
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "feeds-state.db"
	}
	return filepath.Join(home, ".feeds", "state.db")
}

// LoadFromEnv loads configuration from environment variables and the file named by FEEDS_CONFIG
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv(ConfigFileEnv))
}

// Load reads defaults, then the config file at path (if non-empty), then environment overrides
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("rate limit settings cannot be negative")
	}

	if !validBackend(c.Cache.Type) {
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if !validBackend(c.Store.Type) {
		return errors.New("store type must be 'memory', 'redis' or 'sqlite'")
	}

	if (c.Cache.Type == "redis" || c.Store.Type == "redis") && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite")
	}

	if c.Store.Type == "sqlite" && c.Store.SQLitePath == "" {
		return errors.New("store sqlite path cannot be empty when using sqlite")
	}

	if c.Proxy.MaxRetries < 0 {
		return errors.New("proxy retries cannot be negative")
	}

	if c.Extraction.Captions.OutputLimit <= 0 {
		return errors.New("caption output limit must be positive")
	}

	return nil
}

func validBackend(t string) bool {
	return t == "memory" || t == "redis" || t == "sqlite"
}
