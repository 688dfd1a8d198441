package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/library"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode build share tokens",
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <build.json|->",
	Short: "Encode a build JSON file into a share token and link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readBuildFile(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		token, err := build.Encode(b)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, token)
		fmt.Fprintln(out, library.ShareURL(appCfg.Server.PublicURL, token))
		return nil
	},
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a share token into build JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := build.Decode(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid build link: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	},
}

// readBuildFile reads a build as JSON from path, or from stdin for "-".
func readBuildFile(stdin io.Reader, path string) (build.Build, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return build.Build{}, err
		}
		defer f.Close()
		r = f
	}
	var b build.Build
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return build.Build{}, fmt.Errorf("parsing build %s: %w", path, err)
	}
	return b, nil
}

func init() {
	tokenCmd.AddCommand(tokenEncodeCmd, tokenDecodeCmd)
	rootCmd.AddCommand(tokenCmd)
}
