package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates the section from the key: POE2GENIE_CATALOG__DEFAULT_LEAGUE.
const EnvPrefix = "POE2GENIE_"

// DefaultPath is the config file used when --config is not given.
const DefaultPath = ".poe2genie.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      8080,
			PublicURL: "http://localhost:8080",
		},
		Catalog: CatalogConfig{
			BaseURL:            "https://poe.ninja",
			DefaultLeague:      "Affliction",
			DefaultItemType:    "UniqueArmour",
			PickerLeague:       "Standard",
			CacheMaxAgeSeconds: 3600,
			MaxConcurrency:     4,
		},
		Assistant: AssistantConfig{
			Provider:      ProviderOpenAI,
			Model:         "gpt-3.5-turbo",
			MaxTokens:     1000,
			Temperature:   0.7,
			MinIntervalMS: 1000,
		},
		Library: LibraryConfig{
			Backend: BackendSQLite,
			DataDir: ".poe2genie",
			Key:     "poe2genie_builds",
		},
		PassiveTree: PassiveTreeConfig{
			Path:   "assets/passive-tree.json",
			Margin: 50,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (POE2GENIE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: POE2GENIE_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderOpenAI:     true,
	ProviderOpenRouter: true,
}

var validBackends = map[LibraryBackend]bool{
	BackendSQLite: true,
	BackendRedis:  true,
	BackendMemory: true,
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.CacheMaxAgeSeconds < 0 {
		return fmt.Errorf("catalog.cache_max_age_seconds must be non-negative")
	}
	if c.Catalog.MaxConcurrency < 0 {
		return fmt.Errorf("catalog.max_concurrency must be non-negative")
	}

	if !validProviders[c.Assistant.Provider] {
		return fmt.Errorf("invalid assistant.provider %q: must be one of openai, openrouter", c.Assistant.Provider)
	}
	if c.Assistant.Model == "" {
		return fmt.Errorf("assistant.model is required")
	}
	if c.Assistant.MaxTokens <= 0 {
		return fmt.Errorf("assistant.max_tokens must be positive")
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("assistant.temperature must be between 0 and 2")
	}
	if c.Assistant.MinIntervalMS < 0 {
		return fmt.Errorf("assistant.min_interval_ms must be non-negative")
	}

	if !validBackends[c.Library.Backend] {
		return fmt.Errorf("invalid library.backend %q: must be one of sqlite, redis, memory", c.Library.Backend)
	}
	if c.Library.Backend == BackendRedis && c.Library.RedisAddr == "" {
		return fmt.Errorf("library.redis_addr is required for the redis backend")
	}
	if c.Library.Backend == BackendSQLite && c.Library.DataDir == "" {
		return fmt.Errorf("library.data_dir is required for the sqlite backend")
	}
	if c.Library.Key == "" {
		return fmt.Errorf("library.key is required")
	}

	if c.PassiveTree.Margin < 0 {
		return fmt.Errorf("passive_tree.margin must be non-negative")
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}
