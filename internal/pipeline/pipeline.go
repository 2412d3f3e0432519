// Package pipeline orchestrates fetching, classification, and analysis
// for one symbol or for the market-wide news feed.
package pipeline

import (
	"context"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"optionscout/internal/analysis"
	"optionscout/internal/chain"
	"optionscout/internal/config"
	oerrors "optionscout/internal/errors"
	"optionscout/internal/models"
	"optionscout/internal/nse"
	"optionscout/internal/sector"
	"optionscout/internal/sentiment"
	"optionscout/internal/store"
)

var tickerPattern = regexp.MustCompile(`\b[A-Z]+\b`)

// Pipeline wires the NSE client, the scoring engine, and the optional
// journal store. Collaborator failures other than the chain fetch
// degrade to neutral inputs instead of failing the run.
type Pipeline struct {
	client     *nse.Client
	engine     *analysis.Engine
	classifier analysis.Classifier
	store      *store.SQLiteStore
	logger     zerolog.Logger
	cfg        config.AnalysisConfig
	symbolTTL  time.Duration
}

func New(client *nse.Client, engine *analysis.Engine, classifier analysis.Classifier,
	st *store.SQLiteStore, cfg config.AnalysisConfig, symbolTTL time.Duration,
	logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		client:     client,
		engine:     engine,
		classifier: classifier,
		store:      st,
		logger:     logger,
		cfg:        cfg,
		symbolTTL:  symbolTTL,
	}
}

// AnalyzeSymbol fetches the live option chain for a symbol and runs the
// full analysis. An empty expiry selects the nearest one. Only the chain
// fetch is fatal.
func (p *Pipeline) AnalyzeSymbol(ctx context.Context, symbol, expiry string) (models.AnalysisResult, error) {
	snap, err := p.client.FetchOptionChain(ctx, symbol, expiry)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return p.analyzeChain(ctx, symbol, snap.CurrentPrice, snap)
}

// AnalyzeUpload analyzes an uploaded option-chain CSV at a caller-given
// spot price. Collaborator data is still fetched live for the symbol.
func (p *Pipeline) AnalyzeUpload(ctx context.Context, symbol string, currentPrice float64, r io.Reader) (models.AnalysisResult, error) {
	if currentPrice <= 0 {
		return models.AnalysisResult{}, oerrors.NewValidationError("current_price", currentPrice, "current price must be positive")
	}
	snap := chain.ReadCSV(r, symbol, currentPrice)
	if snap.Empty() {
		return models.AnalysisResult{}, oerrors.NewValidationError("file", nil, "no valid data found in file")
	}
	return p.analyzeChain(ctx, symbol, currentPrice, snap)
}

func (p *Pipeline) analyzeChain(ctx context.Context, symbol string, currentPrice float64, snap models.ChainSnapshot) (models.AnalysisResult, error) {
	var (
		wg         sync.WaitGroup
		volume     *models.VolumeData
		headlines  []nse.Headline
		marketNews *MarketNewsResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		v, err := p.client.FetchVolumeFlow(ctx, symbol)
		if err != nil {
			p.logger.Warn().Err(err).Str("symbol", symbol).Msg("volume flow unavailable")
			return
		}
		volume = v
	}()
	go func() {
		defer wg.Done()
		h, err := p.client.FetchStockNews(ctx, symbol, p.cfg.MaxNewsItems)
		if err != nil {
			p.logger.Warn().Err(err).Str("symbol", symbol).Msg("stock news unavailable")
			return
		}
		headlines = h
	}()
	go func() {
		defer wg.Done()
		m, err := p.MarketNews(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Msg("market news unavailable")
			return
		}
		marketNews = m
	}()
	wg.Wait()

	in := analysis.Input{
		Symbol:       symbol,
		Chain:        snap,
		CurrentPrice: currentPrice,
		Volume:       volume,
		Sector:       sector.Lookup(symbol),
	}
	for _, h := range headlines {
		in.News = append(in.News, analysis.RawNewsItem{
			Title:  h.Title,
			Source: h.Source,
			Date:   h.Date,
			URL:    h.URL,
		})
	}
	if marketNews != nil {
		in.MarketMentions = marketNews.StockMentions[symbol]
		in.SectorSentiment = sector.SentimentFor(symbol, marketNews.SectorAnalysis)
	}

	result, err := p.engine.Analyze(ctx, in)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	if p.store != nil && p.cfg.JournalEnabled {
		if err := p.store.SaveAnalysis(ctx, result); err != nil {
			p.logger.Warn().Err(err).Str("symbol", symbol).Msg("journal write failed")
		}
	}
	return result, nil
}

// MarketNewsResult is the market-wide feed with per-symbol mentions and
// sector sentiment tallies.
type MarketNewsResult struct {
	News           []models.NewsItem                 `json:"news"`
	StockMentions  map[string][]models.NewsItem      `json:"stock_mentions"`
	SectorAnalysis map[string]*models.SectorAnalysis `json:"sector_analysis"`
	LastUpdated    time.Time                         `json:"last_updated"`
}

// MarketNews fetches market-wide headlines, classifies them, and maps
// uppercase ticker mentions against the F&O symbol list.
func (p *Pipeline) MarketNews(ctx context.Context) (*MarketNewsResult, error) {
	headlines, err := p.client.FetchMarketNews(ctx)
	if err != nil {
		return nil, err
	}

	fno := map[string]bool{}
	symbols, err := p.Symbols(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("symbol list unavailable, skipping mention extraction")
	}
	for _, s := range symbols {
		fno[s] = true
	}

	result := &MarketNewsResult{
		StockMentions: map[string][]models.NewsItem{},
		LastUpdated:   time.Now(),
	}
	var mentionOrder []string

	for _, h := range headlines {
		sentiment, score, impacts := p.classifier.Classify(ctx, h.Title)
		item := models.NewsItem{
			Title:          h.Title,
			Source:         h.Source,
			Date:           h.Date,
			URL:            h.URL,
			Sentiment:      sentiment,
			SentimentScore: score,
			ImpactFactors:  impacts,
		}
		result.News = append(result.News, item)

		for _, word := range tickerPattern.FindAllString(h.Title, -1) {
			if !fno[word] {
				continue
			}
			if _, ok := result.StockMentions[word]; !ok {
				mentionOrder = append(mentionOrder, word)
			}
			result.StockMentions[word] = append(result.StockMentions[word], item)
		}
	}

	result.SectorAnalysis = sector.BuildAnalysis(result.StockMentions, mentionOrder)
	return result, nil
}

// Symbols returns the F&O symbol list, served from the cache when fresh
// and refetched otherwise.
func (p *Pipeline) Symbols(ctx context.Context) ([]string, error) {
	if p.store != nil {
		if cached, err := p.store.LoadSymbols(ctx, p.symbolTTL); err == nil {
			return cached, nil
		}
	}

	symbols, err := p.client.FetchSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if p.store != nil {
		if err := p.store.SaveSymbols(ctx, symbols); err != nil {
			p.logger.Warn().Err(err).Msg("symbol cache write failed")
		}
	}
	return symbols, nil
}

// Price returns the live quote for a symbol.
func (p *Pipeline) Price(ctx context.Context, symbol string) (nse.PriceInfo, error) {
	return p.client.FetchPrice(ctx, symbol)
}

// VolumeTrend returns recent daily volume against its average.
func (p *Pipeline) VolumeTrend(ctx context.Context, symbol string, days int) (nse.VolumeTrend, error) {
	return p.client.FetchHistoricalVolume(ctx, symbol, days)
}

// StockNews fetches and classifies recent headlines for one symbol.
func (p *Pipeline) StockNews(ctx context.Context, symbol string) ([]models.NewsItem, models.OverallSentiment, error) {
	headlines, err := p.client.FetchStockNews(ctx, symbol, p.cfg.MaxNewsItems)
	if err != nil {
		return nil, models.NoNewsSentiment(), err
	}

	items := make([]models.NewsItem, 0, len(headlines))
	for _, h := range headlines {
		sentiment, score, impacts := p.classifier.Classify(ctx, h.Title)
		items = append(items, models.NewsItem{
			Title:          h.Title,
			Source:         h.Source,
			Date:           h.Date,
			URL:            h.URL,
			Sentiment:      sentiment,
			SentimentScore: score,
			ImpactFactors:  impacts,
		})
	}
	return items, sentiment.NewWeightedAggregator().Aggregate(items), nil
}
