package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/markdown"
)

var askHTML bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return errors.New("question is required")
		}

		gateway, err := createGateway(appCfg, logger)
		if err != nil {
			return err
		}
		answer, err := gateway.Ask(cmd.Context(), question, assistant.QuestionSystemPrompt)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !askHTML {
			fmt.Fprintln(out, answer)
			return nil
		}
		html, err := markdown.New().Render(answer)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, html)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askHTML, "html", false, "render the answer as HTML")
	rootCmd.AddCommand(askCmd)
}
