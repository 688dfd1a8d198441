package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/config"
	"github.com/ziadkadry99/poe2genie/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// Set by the root command before any subcommand runs.
	appCfg *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "poe2genie",
	Short: "Item prices, build planning and an AI assistant for Path of Exile 2",
	Long: `poe2genie searches current item prices, plans and shares character
builds through links, and answers game questions with an AI assistant.
Run "poe2genie server" for the web application, or use the subcommands
directly from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w\nRun `poe2genie init` to create a config file", err)
		}
		l, err := logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		appCfg, logger = cfg, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (debug) logging")
}
