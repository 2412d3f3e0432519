package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"optionscout/internal/analysis"
	"optionscout/internal/config"
	oerrors "optionscout/internal/errors"
	"optionscout/internal/models"
	"optionscout/internal/nse"
	"optionscout/internal/sentiment"
)

// newTestPipeline wires a pipeline against a stub NSE server. The stub
// answers market status and the F&O list; everything else is a 404 so
// those collaborators degrade.
func newTestPipeline(t *testing.T, mux *http.ServeMux) *Pipeline {
	t.Helper()
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := nse.NewClient(config.NSEConfig{
		BaseURL:        srv.URL,
		UserAgent:      "test-agent",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     1,
	}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	classifier := sentiment.NewKeywordClassifier()
	engine := analysis.NewEngine(zerolog.Nop(), classifier, sentiment.NewWeightedAggregator(), 3)
	return New(client, engine, classifier, nil,
		config.AnalysisConfig{MaxNewsItems: 3}, time.Hour, zerolog.Nop())
}

// chainCSV builds a minimal option-chain export around the 24000 strike.
func chainCSV() string {
	rows := []string{
		"CALLS,,,,,,,,,,,STRIKE,,,,,,,,,,PUTS,",
		"OI,CHNG IN OI,VOLUME,IV,LTP,CHNG,BID QTY,BID,ASK,ASK QTY,,PRICE,BID QTY,BID,ASK,ASK QTY,CHNG,LTP,IV,VOLUME,CHNG IN OI,OI,",
		",50000,6000,45000,18.5,105.50,2.30,,105.00,106.00,,24000,,95.00,96.00,,-1.10,95.50,19.1,38000,4000,80000,",
		",40000,5500,42000,19.0,68.20,1.80,,68.00,69.00,,24100,,125.00,126.00,,-2.00,125.40,18.7,30000,3500,70000,",
		",30000,5000,40000,19.5,42.10,1.20,,42.00,43.00,,24200,,160.00,161.00,,-2.40,160.80,18.2,26000,3000,60000,",
	}
	return strings.Join(rows, "\n") + "\n"
}

func TestAnalyzeUploadDegradedCollaborators(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.AnalyzeUpload(context.Background(), "NIFTY", 24100, strings.NewReader(chainCSV()))
	if err != nil {
		t.Fatal(err)
	}

	if result.Symbol != "NIFTY" || result.CurrentPrice != 24100 {
		t.Errorf("identity = %s/%v", result.Symbol, result.CurrentPrice)
	}
	if result.Error != "" {
		t.Errorf("unexpected error field: %q", result.Error)
	}
	if result.MarketDirection.Bias == "" {
		t.Error("missing market direction")
	}
	// Volume and news were unreachable, so their signals are neutral.
	if result.News.Overall.Sentiment != models.SentimentNeutral {
		t.Errorf("news sentiment = %s, want Neutral", result.News.Overall.Sentiment)
	}
	if result.SectorSentiment != models.SentimentNeutral && result.SectorSentiment != "" {
		t.Errorf("sector sentiment = %s", result.SectorSentiment)
	}
	if len(result.AllTrades) == 0 {
		t.Error("no trades from a populated chain")
	}
}

func TestAnalyzeUploadRejectsBadPrice(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.AnalyzeUpload(context.Background(), "NIFTY", 0, strings.NewReader(chainCSV()))
	if !oerrors.Is(err, oerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestMarketNewsMentions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/marketStatus", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"marketState": [
			{"market": "Capital Market", "marketStatusMessage": "RELIANCE surges on record profit and strong growth"},
			{"market": "Capital Market", "marketStatusMessage": "TCS falls after weak quarterly miss"}
		]}`))
	})
	mux.HandleFunc("/api/equity-stock-derivatives", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol": "RELIANCE"}, {"symbol": "TCS"}]`))
	})

	p := newTestPipeline(t, mux)
	result, err := p.MarketNews(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.News) != 2 {
		t.Fatalf("got %d news items", len(result.News))
	}
	if result.News[0].Sentiment != models.SentimentBullish {
		t.Errorf("first headline sentiment = %s, want Bullish", result.News[0].Sentiment)
	}
	if result.News[1].Sentiment != models.SentimentBearish {
		t.Errorf("second headline sentiment = %s, want Bearish", result.News[1].Sentiment)
	}

	if len(result.StockMentions["RELIANCE"]) != 1 || len(result.StockMentions["TCS"]) != 1 {
		t.Errorf("mentions = %v", result.StockMentions)
	}

	oil := result.SectorAnalysis["Oil & Gas"]
	if oil == nil || oil.Sentiment != models.SentimentBullish {
		t.Errorf("oil sector = %+v", oil)
	}
	it := result.SectorAnalysis["IT"]
	if it == nil || it.Sentiment != models.SentimentBearish {
		t.Errorf("it sector = %+v", it)
	}
}

func TestMarketNewsWithoutSymbolList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/marketStatus", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"marketState": [{"marketStatusMessage": "RELIANCE hits record high"}]}`))
	})

	p := newTestPipeline(t, mux)
	result, err := p.MarketNews(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Mention extraction needs the F&O list; without it headlines still
	// classify but nothing is attributed to a stock.
	if len(result.News) != 1 {
		t.Fatalf("got %d news items", len(result.News))
	}
	if len(result.StockMentions) != 0 {
		t.Errorf("mentions = %v", result.StockMentions)
	}
}

func TestStockNewsClassifiesAndAggregates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/quote-equity", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news": [
			{"title": "Company reports record profit with strong growth", "date": "28-Aug-2026"},
			{"title": "Quarterly update released", "date": "27-Aug-2026"}
		]}`))
	})

	p := newTestPipeline(t, mux)
	items, overall, err := p.StockNews(context.Background(), "RELIANCE")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Sentiment != models.SentimentBullish {
		t.Errorf("first item sentiment = %s", items[0].Sentiment)
	}
	if overall.Sentiment != models.SentimentBullish {
		t.Errorf("overall = %+v", overall)
	}
}

func TestAnalyzeUploadRejectsUnparseableFile(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.AnalyzeUpload(context.Background(), "NIFTY", 24100, strings.NewReader("garbage"))
	if !oerrors.Is(err, oerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if err == nil || !strings.Contains(err.Error(), "no valid data found in file") {
		t.Errorf("err = %v, want no-valid-data message", err)
	}
}

func TestAnalyzeSymbolChainFetchFatal(t *testing.T) {
	// The default stub answers the chain path with an empty 200 body,
	// which surfaces as a malformed-response DataError.
	p := newTestPipeline(t, nil)

	_, err := p.AnalyzeSymbol(context.Background(), "NIFTY", "")
	var dataErr *oerrors.DataError
	if !oerrors.As(err, &dataErr) {
		t.Fatalf("err = %v, want DataError", err)
	}
	if dataErr.Symbol != "NIFTY" {
		t.Errorf("symbol = %q, want NIFTY", dataErr.Symbol)
	}
}

func TestAnalyzeSymbolChainEndpointDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/option-chain-indices", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	p := newTestPipeline(t, mux)

	_, err := p.AnalyzeSymbol(context.Background(), "NIFTY", "")
	var fetchErr *oerrors.FetchError
	if !oerrors.As(err, &fetchErr) {
		t.Errorf("err = %v, want FetchError", err)
	}
}
