package cli

import (
	"github.com/fatih/color"

	"optionscout/internal/models"
	"optionscout/pkg/utils"
)

var (
	bullishText = color.New(color.FgGreen, color.Bold).SprintFunc()
	bearishText = color.New(color.FgRed, color.Bold).SprintFunc()
	neutralText = color.New(color.FgYellow).SprintFunc()
)

func biasText(out *Output, bias models.Bias) string {
	switch bias {
	case models.BiasBullish:
		return bullishText(string(bias))
	case models.BiasBearish:
		return bearishText(string(bias))
	}
	return neutralText(string(bias))
}

func sentimentMarker(out *Output, s models.Sentiment) string {
	switch s {
	case models.SentimentBullish:
		return out.Green("▲")
	case models.SentimentBearish:
		return out.Red("▼")
	}
	return out.Yellow("•")
}

// displayResult renders a full analysis result for the terminal.
func displayResult(out *Output, result models.AnalysisResult) {
	out.Bold("═══ %s @ %s ═══", result.Symbol, utils.FormatIndianCurrency(result.CurrentPrice))
	out.Println()

	md := result.MarketDirection
	out.Printf("Direction:   %s (%.0f%% confidence)\n", biasText(out, md.Bias), md.Confidence)
	out.Printf("PCR:         %.2f   Volume ratio: %.2f\n", md.PutCallRatio, md.VolumeRatio)
	out.Printf("Target:      %s\n", utils.FormatIndianCurrency(md.TargetPrice))
	if md.Reason != "" {
		out.Dim("%s", md.Reason)
	}
	out.Println()

	out.Printf("Volume:      %s (score %.1f)\n", result.VolumeSignal.Label, result.VolumeSignal.Score)
	for _, reason := range result.VolumeSignal.Reasons {
		out.Dim("  - %s", reason)
	}
	out.Println()

	if result.Sector != "" {
		out.Printf("Sector:      %s (%s)\n", result.Sector, result.SectorSentiment)
	}
	if len(result.News.StockNews) > 0 {
		out.Bold("News")
		for _, item := range result.News.StockNews {
			out.Printf("%s %s\n", sentimentMarker(out, item.Sentiment), item.Title)
		}
		out.Info("%s", result.News.Overall.Summary)
		out.Println()
	}

	displayRecommendation(out, result.BestTrade)
	displayBestTrades(out, result.BestTrades)

	if len(result.ImbalanceTrades) > 0 {
		out.Bold("Imbalance Trades")
		for _, t := range result.ImbalanceTrades {
			displayCandidate(out, t)
		}
		out.Println()
	}

	if len(result.AllTrades) > 0 {
		out.Bold("All Trades (within 10%% of spot)")
		out.Printf("%-6s %-10s %-10s %-10s %-10s %-8s\n",
			"TYPE", "STRIKE", "LTP", "OI CHG", "VOLUME", "DIST%")
		for _, t := range result.AllTrades {
			out.Printf("%-6s %-10.2f %-10.2f %-10d %-10d %-8.1f\n",
				t.Type, t.Strike, t.LastPrice, t.OIChange, t.Volume, t.DistancePct)
		}
	}
}

func displayRecommendation(out *Output, rec models.Recommendation) {
	switch rec.Type {
	case models.OptionNone:
		out.Warning("%s", rec.Text)
		out.Dim("%s", rec.Reason)
	case models.OptionError:
		out.Error("%s", rec.Text)
	default:
		out.Success("%s", rec.Text)
		if rec.Trade != nil {
			out.Printf("  Buy:  %s   Exit: %s   Stop: %s   Score: %.2f\n",
				utils.FormatIndianCurrency(rec.Trade.BuyPrice),
				utils.FormatIndianCurrency(rec.Trade.ExitTarget),
				utils.FormatIndianCurrency(rec.Trade.StopLoss),
				rec.Trade.Score)
		}
	}
	out.Println()
}

func displayBestTrades(out *Output, best models.BestTrades) {
	sections := []struct {
		title  string
		trades []models.TradeCandidate
	}{
		{"Best Overall", best.BestOverall},
		{"Best ATM", best.BestATM},
		{"Best OTM", best.BestOTM},
	}
	for _, sec := range sections {
		if len(sec.trades) == 0 {
			continue
		}
		out.Bold("%s", sec.title)
		for _, t := range sec.trades {
			displayCandidate(out, t)
		}
		out.Println()
	}
}

func displayCandidate(out *Output, t models.TradeCandidate) {
	label := out.Green(string(t.Type))
	if t.Type == models.OptionPut {
		label = out.Red(string(t.Type))
	}
	out.Printf("  %s %.2f  buy %s  exit %s  stop %s  score %.2f\n",
		label, t.Strike,
		utils.FormatIndianCurrency(t.BuyPrice),
		utils.FormatIndianCurrency(t.ExitTarget),
		utils.FormatIndianCurrency(t.StopLoss),
		t.Score)
	if t.Reason != "" {
		out.Dim("    %s", t.Reason)
	}
}
