package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/progress"
)

var (
	searchType   string
	searchLeague string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search item prices by name",
	Long: `Searches the price catalog for items whose name contains the query.
With --type All every item category is fetched concurrently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemType := searchType
		if itemType == "" {
			itemType = catalog.ItemTypeAll
		}
		if itemType != catalog.ItemTypeAll && !catalog.KnownItemType(itemType) {
			return fmt.Errorf("unknown item type %q", itemType)
		}
		league := searchLeague
		if league == "" {
			league = appCfg.Catalog.DefaultLeague
		}

		_, searcher := createCatalog(appCfg, logger)

		reporter := progress.NewReporter(os.Stderr)
		reporter.Start(len(catalog.TypesFor(itemType)), "Fetching "+league)
		items, err := searcher.SearchWithProgress(cmd.Context(), args[0], itemType, league,
			func(t string, matches int, err error) {
				if err != nil {
					reporter.Step(t + ": failed")
					return
				}
				reporter.Step(t + ": " + strconv.Itoa(matches))
			})
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("fetching item data: %w", err)
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No items found.")
			return nil
		}
		return printItems(out, items)
	},
}

func printItems(w io.Writer, items []catalog.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tCHAOS\tDETAILS")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			it.Name, it.ItemType, strconv.FormatFloat(it.ChaosValue, 'f', -1, 64), it.DetailsID)
	}
	return tw.Flush()
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "", "item type, or All (default All)")
	searchCmd.Flags().StringVar(&searchLeague, "league", "", "league (default catalog.default_league)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}
