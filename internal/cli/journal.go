package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"optionscout/pkg/utils"
)

// addJournalCommands registers the journal command.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	var (
		symbol string
		limit  int
	)

	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("journal store is unavailable")
			}

			entries, err := app.Store.ListAnalyses(cmd.Context(), strings.ToUpper(symbol), limit)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.JSON(map[string]interface{}{"entries": entries})
			}

			if len(entries) == 0 {
				out.Dim("No journal entries")
				return nil
			}
			out.Bold("%-6s %-12s %-20s %-12s %-8s %-10s %-8s", "ID", "SYMBOL", "AT", "PRICE", "BIAS", "TRADE", "SCORE")
			for _, e := range entries {
				out.Printf("%-6d %-12s %-20s %-12s %-8s %-10s %-8.2f\n",
					e.ID, e.Symbol,
					e.AnalyzedAt.Local().Format("2006-01-02 15:04"),
					utils.FormatIndianCurrency(e.CurrentPrice),
					e.Bias, e.TradeType, e.TradeScore)
			}
			return nil
		},
	}
	journalCmd.Flags().StringVarP(&symbol, "symbol", "s", "", "filter by symbol")
	journalCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	rootCmd.AddCommand(journalCmd)
}
