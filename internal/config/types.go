package config

// ProviderType identifies a chat-completion provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// LibraryBackend selects where saved builds are persisted.
type LibraryBackend string

const (
	BackendSQLite LibraryBackend = "sqlite"
	BackendRedis  LibraryBackend = "redis"
	BackendMemory LibraryBackend = "memory"
)

// Config is the top-level poe2genie configuration, corresponding to .poe2genie.yml.
type Config struct {
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Catalog     CatalogConfig     `yaml:"catalog" koanf:"catalog"`
	Assistant   AssistantConfig   `yaml:"assistant" koanf:"assistant"`
	Library     LibraryConfig     `yaml:"library" koanf:"library"`
	PassiveTree PassiveTreeConfig `yaml:"passive_tree" koanf:"passive_tree"`
	LogLevel    string            `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	PublicURL       string `yaml:"public_url" koanf:"public_url"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// CatalogConfig points at the item-pricing provider.
type CatalogConfig struct {
	BaseURL            string `yaml:"base_url" koanf:"base_url"`
	DefaultLeague      string `yaml:"default_league" koanf:"default_league"`
	DefaultItemType    string `yaml:"default_item_type" koanf:"default_item_type"`
	PickerLeague       string `yaml:"picker_league" koanf:"picker_league"`
	CacheMaxAgeSeconds int    `yaml:"cache_max_age_seconds" koanf:"cache_max_age_seconds"`
	MaxConcurrency     int    `yaml:"max_concurrency" koanf:"max_concurrency"`
}

// AssistantConfig selects the chat-completion model. The API key is never
// stored here; see APIKeyEnvVar.
type AssistantConfig struct {
	Provider      ProviderType `yaml:"provider" koanf:"provider"`
	Model         string       `yaml:"model" koanf:"model"`
	MaxTokens     int          `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature   float64      `yaml:"temperature" koanf:"temperature"`
	MinIntervalMS int          `yaml:"min_interval_ms" koanf:"min_interval_ms"`
	BaseURL       string       `yaml:"base_url,omitempty" koanf:"base_url"`
}

// LibraryConfig configures the saved-build store.
type LibraryConfig struct {
	Backend   LibraryBackend `yaml:"backend" koanf:"backend"`
	DataDir   string         `yaml:"data_dir" koanf:"data_dir"`
	RedisAddr string         `yaml:"redis_addr,omitempty" koanf:"redis_addr"`
	Key       string         `yaml:"key" koanf:"key"`
}

// PassiveTreeConfig locates the static passive tree asset.
type PassiveTreeConfig struct {
	Path   string  `yaml:"path" koanf:"path"`
	Margin float64 `yaml:"margin" koanf:"margin"`
}
