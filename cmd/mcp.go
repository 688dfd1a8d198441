package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server on stdio",
	Long:  `Serves item search, build token decoding, the saved build list and the assistant as MCP tools over stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := createGateway(appCfg, logger)
		if err != nil {
			return err
		}
		_, searcher := createCatalog(appCfg, logger)
		lib, closeLib, err := openLibrary(appCfg, logger)
		if err != nil {
			return err
		}
		defer closeLib()

		mcp.Version = Version
		srv := mcp.NewServer(mcp.Deps{
			Searcher: searcher,
			Defaults: catalogDefaults(appCfg),
			Gateway:  gateway,
			Library:  lib,
			Logger:   logger.Named("mcp"),
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
