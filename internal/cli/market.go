package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"optionscout/internal/models"
	"optionscout/internal/pipeline"
	"optionscout/pkg/utils"
)

// addMarketDataCommands registers news, symbols, and price commands.
func addMarketDataCommands(rootCmd *cobra.Command, app *App) {
	newsCmd := &cobra.Command{
		Use:   "news [SYMBOL]",
		Short: "Show market news, or recent news for one symbol",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)

			if len(args) == 0 {
				result, err := app.Pipeline.MarketNews(cmd.Context())
				if err != nil {
					return err
				}
				if out.IsJSON() {
					return out.JSON(result)
				}
				displayMarketNews(out, result)
				return nil
			}

			symbol := strings.ToUpper(args[0])
			items, overall, err := app.Pipeline.StockNews(cmd.Context(), symbol)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"symbol":            symbol,
					"news":              items,
					"overall_sentiment": overall,
				})
			}
			displayStockNews(out, symbol, items, overall)
			return nil
		},
	}
	rootCmd.AddCommand(newsCmd)

	symbolsCmd := &cobra.Command{
		Use:   "symbols",
		Short: "List symbols with listed derivatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			symbols, err := app.Pipeline.Symbols(cmd.Context())
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.JSON(map[string]interface{}{"symbols": symbols})
			}
			for _, s := range symbols {
				out.Println(s)
			}
			out.Dim("%d symbols", len(symbols))
			return nil
		},
	}
	rootCmd.AddCommand(symbolsCmd)

	priceCmd := &cobra.Command{
		Use:   "price SYMBOL",
		Short: "Show the current underlying price and expiries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			info, err := app.Pipeline.Price(cmd.Context(), symbol)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.JSON(info)
			}

			out.Bold("%s", info.Symbol)
			out.Printf("Price:      %s\n", utils.FormatIndianCurrency(info.CurrentPrice))
			out.Printf("As of:      %s\n", info.Timestamp)
			if len(info.ExpiryDates) > 0 {
				out.Printf("Expiries:   %s\n", strings.Join(info.ExpiryDates, ", "))
			}
			return nil
		},
	}
	rootCmd.AddCommand(priceCmd)

	var days int
	volumeCmd := &cobra.Command{
		Use:   "volume SYMBOL",
		Short: "Show recent daily volume against its average",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			trend, err := app.Pipeline.VolumeTrend(cmd.Context(), symbol, days)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.JSON(trend)
			}

			out.Bold("Volume trend for %s", trend.Symbol)
			for _, day := range trend.Days {
				out.Printf("%-14s vol %-14s close %s\n",
					day.Date,
					utils.FormatQuantity(int64(day.Volume)),
					utils.FormatIndianCurrency(day.Close))
			}
			if trend.AverageVolume > 0 {
				out.Println()
				out.Printf("Average:     %s\n", utils.FormatQuantity(int64(trend.AverageVolume)))
				out.Printf("Latest:      %s (%s vs average)\n",
					utils.FormatQuantity(int64(trend.LatestVolume)),
					utils.FormatPercent(trend.VolumeChangePercent))
			}
			return nil
		},
	}
	volumeCmd.Flags().IntVarP(&days, "days", "d", 5, "number of days to fetch")
	rootCmd.AddCommand(volumeCmd)
}

func displayStockNews(out *Output, symbol string, items []models.NewsItem, overall models.OverallSentiment) {
	out.Bold("News for %s", symbol)
	if len(items) == 0 {
		out.Dim("No recent news")
		return
	}
	for _, item := range items {
		marker := sentimentMarker(out, item.Sentiment)
		out.Printf("%s %s\n", marker, item.Title)
		out.Dim("   %s | %s", item.Source, item.Date)
	}
	out.Println()
	out.Info("Overall: %s", overall.Summary)
}

func displayMarketNews(out *Output, result *pipeline.MarketNewsResult) {
	out.Bold("Market News")
	if len(result.News) == 0 {
		out.Dim("No market news available")
		return
	}
	for _, item := range result.News {
		marker := sentimentMarker(out, item.Sentiment)
		out.Printf("%s %s\n", marker, item.Title)
		out.Dim("   %s | %s", item.Source, item.Date)
	}

	if len(result.SectorAnalysis) > 0 {
		out.Println()
		out.Bold("Sector Sentiment")
		for name, sa := range result.SectorAnalysis {
			out.Printf("%-20s %s (bullish %d, bearish %d, stocks: %s)\n",
				name, sa.Sentiment, sa.BullishCount, sa.BearishCount,
				strings.Join(sa.StocksMentioned, ", "))
		}
	}
}
