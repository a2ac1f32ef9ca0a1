// Package config loads emoji-search profiles from YAML files with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/search"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EMOJI_SEARCH_"

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the configuration of the emoji-search command.
type Profile struct {
	Database        DatabaseConfig        `yaml:"database"`
	Search          SearchConfig          `yaml:"search"`
	Logging         LoggingConfig         `yaml:"logging"`
	Personalization PersonalizationConfig `yaml:"personalization"`
}

// DatabaseConfig locates the dataset store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig controls result size and scoring concurrency.
// A zero PoolSize lets the searcher choose.
type SearchConfig struct {
	Limit    int `yaml:"limit"`
	PoolSize int `yaml:"poolSize"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PersonalizationConfig holds the per-user search options.
type PersonalizationConfig struct {
	CustomKeywords   map[string][]string `yaml:"customKeywords"`
	CustomPreferred  map[string]string   `yaml:"customPreferred"`
	RecentlySearched []string            `yaml:"recentlySearched"`
}

// Load reads a YAML profile (if path is not empty) and applies environment
// overrides. Missing values keep their defaults.
func Load(path string) (*Profile, error) {
	p := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading profile %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing profile %s: %w", path, err)
		}
	}
	applyEnvOverrides(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Default returns the profile used when nothing is configured.
func Default() *Profile {
	return &Profile{
		Database: DatabaseConfig{Path: "emoji-search.db"},
		Search:   SearchConfig{Limit: search.DefaultLimit},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Validate checks the profile for values no command can use.
func (p *Profile) Validate() error {
	if p.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidProfile)
	}
	if p.Search.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidProfile, p.Search.Limit)
	}
	if p.Search.PoolSize < 0 {
		return fmt.Errorf("%w: pool size must not be negative, got %d", ErrInvalidProfile, p.Search.PoolSize)
	}
	if _, err := ParseLevel(p.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

// Options converts the personalization section into search options.
func (p *Profile) Options() core.Options {
	var opts core.Options
	if n := len(p.Personalization.CustomKeywords); n > 0 {
		opts.CustomKeywords = make(map[core.EntityID][]string, n)
		for emoji, keywords := range p.Personalization.CustomKeywords {
			opts.CustomKeywords[core.EntityID(emoji)] = keywords
		}
	}
	if n := len(p.Personalization.CustomPreferred); n > 0 {
		opts.CustomPreferred = make(map[string]core.EntityID, n)
		for keyword, emoji := range p.Personalization.CustomPreferred {
			opts.CustomPreferred[keyword] = core.EntityID(emoji)
		}
	}
	opts.RecentlySearched = p.Personalization.RecentlySearched
	return opts
}

// ParseLevel maps debug, info, warn and error to their slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}

// applyEnvOverrides reads EMOJI_SEARCH_* environment variables and overrides
// the corresponding profile fields. Unparseable numbers are ignored.
func applyEnvOverrides(p *Profile) {
	if v := os.Getenv(EnvPrefix + "DB"); v != "" {
		p.Database.Path = v
	}
	if v := os.Getenv(EnvPrefix + "LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			p.Search.Limit = limit
		}
	}
	if v := os.Getenv(EnvPrefix + "POOL_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			p.Search.PoolSize = size
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		p.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "RECENT"); v != "" {
		p.Personalization.RecentlySearched = strings.Split(v, ",")
	}
}
