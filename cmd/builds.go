package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/library"
)

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Manage the saved build library",
}

var buildsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved builds with their share links",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary(appCfg, logger)
		if err != nil {
			return err
		}
		defer closeLib()

		out := cmd.OutOrStdout()
		builds := lib.List(cmd.Context())
		if len(builds) == 0 {
			fmt.Fprintln(out, "No saved builds.")
			return nil
		}
		for _, b := range builds {
			token, err := build.Encode(b)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n  %s\n", b.Name, b.CharacterClass, library.ShareURL(appCfg.Server.PublicURL, token))
		}
		return nil
	},
}

var buildsSaveCmd = &cobra.Command{
	Use:   "save <build.json|->",
	Short: "Save a build JSON file to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readBuildFile(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		lib, closeLib, err := openLibrary(appCfg, logger)
		if err != nil {
			return err
		}
		defer closeLib()

		res, err := library.SaveAndShare(cmd.Context(), lib, b, appCfg.Server.PublicURL)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n  %s\n", res.Build.Name, res.ShareURL)
		return nil
	},
}

var buildsExportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Export saved builds to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary(appCfg, logger)
		if err != nil {
			return err
		}
		defer closeLib()

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		builds := lib.List(cmd.Context())
		if err := library.ExportXLSX(f, builds); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d build(s) to %s\n", len(builds), args[0])
		return nil
	},
}

func init() {
	buildsCmd.AddCommand(buildsListCmd, buildsSaveCmd, buildsExportCmd)
	rootCmd.AddCommand(buildsCmd)
}
