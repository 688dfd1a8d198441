package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize poe2genie configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the port, league, assistant provider and build storage, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
