package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// addAnalysisCommands registers the analyze and chain commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	var (
		filePath string
		price    float64
		expiry   string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Analyze an option chain from a downloaded CSV file",
		Long: `Analyze an option chain from a CSV file downloaded from the NSE
website. The file keeps the two NSE header rows; the spot price must be
supplied since CSV downloads do not carry it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("opening chain file: %w", err)
			}
			defer f.Close()

			result, err := app.Pipeline.AnalyzeUpload(cmd.Context(), symbol, price, f)
			if err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(result)
			}
			displayResult(out, result)
			return nil
		},
	}
	analyzeCmd.Flags().StringVarP(&filePath, "file", "f", "", "option chain CSV file (required)")
	analyzeCmd.Flags().Float64VarP(&price, "price", "p", 0, "current spot price (required)")
	analyzeCmd.MarkFlagRequired("file")
	analyzeCmd.MarkFlagRequired("price")
	rootCmd.AddCommand(analyzeCmd)

	chainCmd := &cobra.Command{
		Use:   "chain SYMBOL",
		Short: "Fetch the live option chain and analyze it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			result, err := app.Pipeline.AnalyzeSymbol(cmd.Context(), symbol, expiry)
			if err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(result)
			}
			displayResult(out, result)
			return nil
		},
	}
	chainCmd.Flags().StringVarP(&expiry, "expiry", "e", "", "expiry date (default: nearest)")
	rootCmd.AddCommand(chainCmd)
}
