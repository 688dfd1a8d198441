package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to poe2genie! Let's configure your server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select assistant provider",
		Items: []string{string(ProviderOpenAI), string(ProviderOpenRouter)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Assistant.Provider = ProviderType(providerStr)
	if cfg.Assistant.Provider == ProviderOpenRouter {
		cfg.Assistant.Model = "openai/gpt-3.5-turbo"
	}

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: cfg.Assistant.Model,
	}
	if cfg.Assistant.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. League.
	leaguePrompt := promptui.Select{
		Label: "Default league",
		Items: catalog.Leagues,
	}
	if _, cfg.Catalog.DefaultLeague, err = leaguePrompt.Run(); err != nil {
		return nil, fmt.Errorf("league selection: %w", err)
	}

	// 4. Storage backend.
	backendPrompt := promptui.Select{
		Label: "Where should saved builds live",
		Items: []string{string(BackendSQLite), string(BackendRedis), string(BackendMemory)},
	}
	_, backendStr, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	cfg.Library.Backend = LibraryBackend(backendStr)

	if cfg.Library.Backend == BackendRedis {
		redisPrompt := promptui.Prompt{
			Label:   "Redis address",
			Default: "localhost:6379",
		}
		if cfg.Library.RedisAddr, err = redisPrompt.Run(); err != nil {
			return nil, fmt.Errorf("redis address: %w", err)
		}
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.Server.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Assistant.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment to enable the assistant.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
