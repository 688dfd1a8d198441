package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/clock"
	"github.com/ziadkadry99/poe2genie/internal/config"
	"github.com/ziadkadry99/poe2genie/internal/db"
	"github.com/ziadkadry99/poe2genie/internal/library"
	"github.com/ziadkadry99/poe2genie/internal/llm"
	"github.com/ziadkadry99/poe2genie/internal/passives"
)

// dbFile is the SQLite file name inside the library data dir.
const dbFile = "poe2genie.db"

// createGateway builds the assistant gateway. A missing API key is not an
// error: the gateway then answers every call with the not-configured error.
func createGateway(cfg *config.Config, logger *zap.Logger) (*assistant.Gateway, error) {
	a := cfg.Assistant
	provider, err := llm.NewProvider(string(a.Provider), a.Model, a.BaseURL)
	switch {
	case errors.Is(err, llm.ErrNoAPIKey):
		logger.Warn("assistant disabled", zap.String("env", config.APIKeyEnvVar(a.Provider)))
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("creating assistant provider: %w", err)
	}

	scheduler := llm.NewScheduler(clock.New(), time.Duration(a.MinIntervalMS)*time.Millisecond)
	return assistant.NewGateway(provider, scheduler, assistant.Options{
		Model:       a.Model,
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
		KeyEnvVar:   config.APIKeyEnvVar(a.Provider),
	}, logger.Named("assistant")), nil
}

// createCatalog builds the price catalog client and searcher.
func createCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.Client, *catalog.Searcher) {
	l := logger.Named("catalog")
	client := catalog.NewClient(cfg.Catalog.BaseURL, &http.Client{}, l)
	return client, catalog.NewSearcher(client, cfg.Catalog.MaxConcurrency, l)
}

func catalogDefaults(cfg *config.Config) catalog.Defaults {
	return catalog.Defaults{
		League:             cfg.Catalog.DefaultLeague,
		ItemType:           cfg.Catalog.DefaultItemType,
		CacheMaxAgeSeconds: cfg.Catalog.CacheMaxAgeSeconds,
	}
}

// openLibrary opens the configured build store. The returned func releases
// it.
func openLibrary(cfg *config.Config, logger *zap.Logger) (*library.Library, func() error, error) {
	l := logger.Named("library")
	var (
		surface library.Surface
		closer  = func() error { return nil }
	)

	switch cfg.Library.Backend {
	case config.BackendSQLite:
		database, err := db.Open(filepath.Join(cfg.Library.DataDir, dbFile))
		if err != nil {
			return nil, nil, fmt.Errorf("opening build database: %w", err)
		}
		l.Debug("using sqlite build store", zap.String("path", database.Path()))
		surface, closer = library.NewSQLiteSurface(database), database.Close
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Library.RedisAddr})
		l.Debug("using redis build store", zap.String("addr", cfg.Library.RedisAddr))
		surface, closer = library.NewRedisSurface(client), client.Close
	case config.BackendMemory:
		l.Warn("saved builds are kept in memory and lost on exit")
		surface = library.NewMemorySurface()
	default:
		return nil, nil, fmt.Errorf("unknown library backend %q", cfg.Library.Backend)
	}

	return library.New(surface, cfg.Library.Key, l), closer, nil
}

// loadTree loads the passive tree. A missing or broken asset only disables
// the tree.
func loadTree(cfg *config.Config, logger *zap.Logger) *passives.Handler {
	g, err := passives.LoadGraphFile(cfg.PassiveTree.Path)
	if err != nil {
		logger.Warn("passive tree unavailable", zap.String("path", cfg.PassiveTree.Path), zap.Error(err))
		return passives.NewHandler(nil, cfg.PassiveTree.Margin)
	}
	logger.Debug("passive tree loaded", zap.Int("nodes", len(g.Nodes)))
	return passives.NewHandler(g, cfg.PassiveTree.Margin)
}
