package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	oerrors "optionscout/internal/errors"
	"optionscout/internal/models"
)

// Classifier scores a single news headline. Implementations must not
// return errors; a classifier that can fail internally degrades to a
// neutral result on its own.
type Classifier interface {
	Classify(ctx context.Context, title string) (models.Sentiment, float64, []string)
}

// Aggregator folds classified news items into one overall sentiment.
type Aggregator interface {
	Aggregate(items []models.NewsItem) models.OverallSentiment
}

// RawNewsItem is an unclassified headline handed to the engine.
type RawNewsItem struct {
	Title  string
	Source string
	Date   string
	URL    string
}

// Input bundles everything one analysis run consumes. Chain is required;
// Volume and News degrade to neutral when absent.
type Input struct {
	Symbol          string
	Chain           models.ChainSnapshot
	CurrentPrice    float64
	Volume          *models.VolumeData
	News            []RawNewsItem
	MarketMentions  []models.NewsItem
	Sector          string
	SectorSentiment models.Sentiment
}

// Engine runs the full scoring pipeline over one option chain. It holds
// no per-run state; a single Engine is safe for concurrent use.
type Engine struct {
	logger       zerolog.Logger
	classifier   Classifier
	aggregator   Aggregator
	maxNewsItems int
}

func NewEngine(logger zerolog.Logger, classifier Classifier, aggregator Aggregator, maxNewsItems int) *Engine {
	if maxNewsItems <= 0 {
		maxNewsItems = 3
	}
	return &Engine{
		logger:       logger,
		classifier:   classifier,
		aggregator:   aggregator,
		maxNewsItems: maxNewsItems,
	}
}

// Analyze runs direction, volume, and news extraction concurrently, then
// generates and ranks candidates. It never panics outward: an internal
// failure yields a result whose Error field is set and whose
// recommendation carries the error marker.
func (e *Engine) Analyze(ctx context.Context, in Input) (result models.AnalysisResult, err error) {
	if strings.TrimSpace(in.Symbol) == "" {
		return result, oerrors.NewValidationError("symbol", in.Symbol, "symbol is required")
	}
	if in.CurrentPrice <= 0 {
		return result, oerrors.NewValidationError("current_price", in.CurrentPrice, "current price must be positive")
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("symbol", in.Symbol).
				Interface("panic", r).
				Msg("analysis panicked")
			result = errorResult(in, fmt.Errorf("%v", r))
			err = nil
		}
	}()

	var (
		wg        sync.WaitGroup
		direction models.MarketDirection
		volume    models.VolumeSignal
		news      models.NewsBundle
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		direction = safeDirection(in.Chain, in.CurrentPrice)
	}()
	go func() {
		defer wg.Done()
		volume = safeVolume(in.Volume)
	}()
	go func() {
		defer wg.Done()
		news = e.classifyNews(ctx, in)
	}()
	wg.Wait()

	atm := ATMCandidates(in.Chain, in.CurrentPrice, &volume)
	otm := OTMCandidates(in.Chain, in.CurrentPrice, &volume)
	imbalance := ImbalanceCandidates(in.Chain, in.CurrentPrice)
	all := AllTrades(in.Chain, in.CurrentPrice)

	ranked := Rank(RankInput{
		ATM:             atm,
		OTM:             otm,
		Imbalance:       imbalance,
		Direction:       direction,
		News:            news.Overall,
		Sector:          in.Sector,
		SectorSentiment: in.SectorSentiment,
	})

	result = models.AnalysisResult{
		Symbol:          in.Symbol,
		CurrentPrice:    in.CurrentPrice,
		MarketDirection: direction,
		Sector:          in.Sector,
		SectorSentiment: in.SectorSentiment,
		VolumeSignal:    volume,
		News:            news,
		BestTrade:       ranked.Recommendation,
		BestTrades:      ranked.BestTrades,
		ImbalanceTrades: imbalance,
		AllTrades:       all,
	}

	if ranked.Recommendation.Trade != nil {
		e.logger.Info().
			Str("symbol", in.Symbol).
			Str("bias", string(direction.Bias)).
			Float64("confidence", direction.Confidence).
			Str("type", string(ranked.Recommendation.Type)).
			Float64("strike", ranked.Recommendation.Trade.Strike).
			Msg("analysis complete")
	} else {
		e.logger.Info().
			Str("symbol", in.Symbol).
			Str("bias", string(direction.Bias)).
			Msg("analysis complete, no trade selected")
	}

	return result, nil
}

// classifyNews scores up to maxNewsItems headlines and aggregates them.
// With no classifier or no news the bundle is neutral.
func (e *Engine) classifyNews(ctx context.Context, in Input) models.NewsBundle {
	bundle := models.NewsBundle{
		MarketMentions: in.MarketMentions,
		Overall:        models.NoNewsSentiment(),
	}
	if e.classifier == nil || len(in.News) == 0 {
		return bundle
	}

	items := make([]models.NewsItem, 0, len(in.News))
	for i, raw := range in.News {
		if i >= e.maxNewsItems {
			break
		}
		sentiment, score, impacts := e.classifier.Classify(ctx, raw.Title)
		items = append(items, models.NewsItem{
			Title:          raw.Title,
			Source:         raw.Source,
			Date:           raw.Date,
			URL:            raw.URL,
			Sentiment:      sentiment,
			SentimentScore: score,
			ImpactFactors:  impacts,
		})
	}
	bundle.StockNews = items

	if e.aggregator != nil && len(items) > 0 {
		bundle.Overall = e.aggregator.Aggregate(items)
	}
	return bundle
}

// safeDirection isolates direction extraction so a fault there degrades
// to neutral instead of taking the run down.
func safeDirection(snap models.ChainSnapshot, price float64) (d models.MarketDirection) {
	defer func() {
		if r := recover(); r != nil {
			d = models.NeutralDirection(price)
		}
	}()
	return AnalyzeDirection(snap, price)
}

func safeVolume(data *models.VolumeData) (v models.VolumeSignal) {
	defer func() {
		if r := recover(); r != nil {
			v = models.NeutralVolumeSignal()
		}
	}()
	return AnalyzeVolume(data)
}

// errorResult is the degraded shape returned when analysis fails past
// input validation. Lists are empty, never nil, so encoded output stays
// stable for consumers.
func errorResult(in Input, cause error) models.AnalysisResult {
	return models.AnalysisResult{
		Symbol:          in.Symbol,
		CurrentPrice:    in.CurrentPrice,
		MarketDirection: models.NeutralDirection(in.CurrentPrice),
		Sector:          in.Sector,
		VolumeSignal:    models.NeutralVolumeSignal(),
		News: models.NewsBundle{
			Overall: models.NoNewsSentiment(),
		},
		BestTrade: models.Recommendation{
			Type:   models.OptionError,
			Text:   "Failed to analyze trades",
			Reason: cause.Error(),
		},
		ImbalanceTrades: []models.TradeCandidate{},
		AllTrades:       []models.ChainTrade{},
		Error:           cause.Error(),
	}
}
