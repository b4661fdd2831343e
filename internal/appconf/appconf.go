// Package appconf holds the settings shared by the API server and the CLI.
package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// Config holds all the configuration settings for the application.
type Config struct {
	Port    int         `yaml:"port"`
	Env     Environment `yaml:"-"`
	EnvName string      `yaml:"env"`
	ApiKeys []string    `yaml:"apiKeys"`
	// RateLimit is the number of requests per second allowed per API key.
	RateLimit int `yaml:"rateLimit"`
	// RateLimitExemptKeys are API keys the rate limiter never throttles.
	RateLimitExemptKeys []string `yaml:"rateLimitExemptKeys"`
	// ResponseDelay is the pause between a session submission and parsing.
	ResponseDelay      time.Duration `yaml:"responseDelay"`
	FreshnessThreshold int           `yaml:"freshnessThreshold"`
	// SessionIdleTTL is how long an untouched session is kept. Zero keeps
	// sessions until they are deleted.
	SessionIdleTTL time.Duration `yaml:"sessionIdleTTL"`
	// RedisAddr enables the result cache when set.
	RedisAddr string        `yaml:"redisAddr"`
	CacheTTL  time.Duration `yaml:"cacheTTL"`
	LogLevel  string        `yaml:"logLevel"`
}

func Default() Config {
	return Config{
		Port:               4000,
		Env:                Development,
		EnvName:            Development.String(),
		ApiKeys:            []string{"test"},
		RateLimit:          100,
		ResponseDelay:      800 * time.Millisecond,
		FreshnessThreshold: 7,
		SessionIdleTTL:     30 * time.Minute,
		CacheTTL:           24 * time.Hour,
		LogLevel:           "info",
	}
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped and existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// LoadFile overlays the YAML file at path onto cfg. Fields absent from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)
	return nil
}

// ApplyEnv overrides cfg from ASKDATA_* variables. lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("ASKDATA_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v, ok := lookup("ASKDATA_ENV"); ok {
		cfg.EnvName = v
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := lookup("ASKDATA_API_KEYS"); ok {
		cfg.ApiKeys = SplitKeys(v)
	}
	if v, ok := lookup("ASKDATA_RATE_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}
	if v, ok := lookup("ASKDATA_RATE_LIMIT_EXEMPT_KEYS"); ok {
		cfg.RateLimitExemptKeys = SplitKeys(v)
	}
	if v, ok := lookup("ASKDATA_RESPONSE_DELAY"); ok {
		delay, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_RESPONSE_DELAY: %w", err)
		}
		cfg.ResponseDelay = delay
	}
	if v, ok := lookup("ASKDATA_FRESHNESS_THRESHOLD"); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_FRESHNESS_THRESHOLD: %w", err)
		}
		cfg.FreshnessThreshold = days
	}
	if v, ok := lookup("ASKDATA_SESSION_IDLE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_SESSION_IDLE_TTL: %w", err)
		}
		cfg.SessionIdleTTL = ttl
	}
	if v, ok := lookup("ASKDATA_REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookup("ASKDATA_CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASKDATA_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v, ok := lookup("ASKDATA_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return nil
}

// SplitKeys parses a comma separated key list, dropping blanks.
func SplitKeys(s string) []string {
	var keys []string
	for _, key := range strings.Split(s, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if len(c.ApiKeys) == 0 {
		errs = append(errs, errors.New("at least one API key is required"))
	}
	if c.ResponseDelay < 0 {
		errs = append(errs, errors.New("response delay cannot be negative"))
	}
	if c.SessionIdleTTL < 0 {
		errs = append(errs, errors.New("session idle ttl cannot be negative"))
	}
	return errors.Join(errs...)
}
