package nse

import (
	"context"
	"fmt"
	"time"

	"optionscout/internal/chain"
	oerrors "optionscout/internal/errors"
	"optionscout/internal/models"
)

// nseTimestampLayout matches timestamps like "28-Aug-2026 15:30:00".
const nseTimestampLayout = "02-Jan-2006 15:04:05"

type optionLegJSON struct {
	OpenInterest      flexFloat `json:"openInterest"`
	ChangeInOI        flexFloat `json:"changeinOpenInterest"`
	TotalTradedVolume flexFloat `json:"totalTradedVolume"`
	ImpliedVolatility flexFloat `json:"impliedVolatility"`
	LastPrice         flexFloat `json:"lastPrice"`
	Change            flexFloat `json:"change"`
	BidPrice          flexFloat `json:"bidprice"`
	AskPrice          flexFloat `json:"askPrice"`
}

type optionChainJSON struct {
	Records struct {
		ExpiryDates     []string  `json:"expiryDates"`
		UnderlyingValue flexFloat `json:"underlyingValue"`
		Timestamp       string    `json:"timestamp"`
		Data            []struct {
			StrikePrice flexFloat      `json:"strikePrice"`
			ExpiryDate  string         `json:"expiryDate"`
			CE          *optionLegJSON `json:"CE"`
			PE          *optionLegJSON `json:"PE"`
		} `json:"data"`
	} `json:"records"`
}

func optionChainPath(symbol string) string {
	if IsIndex(symbol) {
		return "/api/option-chain-indices?symbol=" + queryEscape(symbol)
	}
	return "/api/option-chain-equities?symbol=" + queryEscape(symbol)
}

// FetchOptionChain fetches the chain for one symbol, filtered to a
// single expiry. An empty expiry selects the nearest one.
func (c *Client) FetchOptionChain(ctx context.Context, symbol, expiry string) (models.ChainSnapshot, error) {
	var raw optionChainJSON
	if err := c.getJSON(ctx, "option-chain", symbol, optionChainPath(symbol), &raw); err != nil {
		return models.ChainSnapshot{}, err
	}
	if len(raw.Records.Data) == 0 {
		return models.ChainSnapshot{}, oerrors.NewFetchError("option-chain", symbol, 0, oerrors.ErrNoData)
	}

	if expiry == "" {
		if len(raw.Records.ExpiryDates) > 0 {
			expiry = raw.Records.ExpiryDates[0]
		} else {
			expiry = raw.Records.Data[0].ExpiryDate
		}
	}

	records := make([]chain.Record, 0, len(raw.Records.Data))
	for _, item := range raw.Records.Data {
		if item.ExpiryDate != expiry {
			continue
		}
		rec := chain.Record{
			Strike:     item.StrikePrice.value(),
			ExpiryDate: item.ExpiryDate,
		}
		if item.CE != nil {
			rec.Call = legFromJSON(item.CE)
		}
		if item.PE != nil {
			rec.Put = legFromJSON(item.PE)
		}
		records = append(records, rec)
	}

	ts, err := time.Parse(nseTimestampLayout, raw.Records.Timestamp)
	if err != nil {
		ts = time.Now()
	}

	snap := chain.FromRecords(symbol, raw.Records.UnderlyingValue.value(), ts, records)
	if snap.Empty() {
		return snap, oerrors.NewFetchError("option-chain", symbol, 0, oerrors.ErrNoData)
	}
	return snap, nil
}

func legFromJSON(leg *optionLegJSON) *chain.Leg {
	return &chain.Leg{
		OI:       int64(leg.OpenInterest.value()),
		OIChange: int64(leg.ChangeInOI.value()),
		Volume:   int64(leg.TotalTradedVolume.value()),
		IV:       leg.ImpliedVolatility.value(),
		LTP:      leg.LastPrice.value(),
		Change:   leg.Change.value(),
		Bid:      leg.BidPrice.value(),
		Ask:      leg.AskPrice.value(),
	}
}

// PriceInfo is the lightweight quote derived from the option-chain
// endpoint: spot, exchange timestamp, and available expiries.
type PriceInfo struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"current_price"`
	Timestamp    string    `json:"timestamp"`
	FetchedAt    time.Time `json:"fetched_at"`
	ExpiryDates  []string  `json:"expiry_dates"`
}

// FetchPrice returns the underlying price and expiry list for a symbol.
func (c *Client) FetchPrice(ctx context.Context, symbol string) (PriceInfo, error) {
	var raw optionChainJSON
	if err := c.getJSON(ctx, "price", symbol, optionChainPath(symbol), &raw); err != nil {
		return PriceInfo{}, err
	}
	if raw.Records.UnderlyingValue.value() <= 0 {
		return PriceInfo{}, oerrors.NewFetchError("price", symbol, 0, oerrors.ErrNoData)
	}
	return PriceInfo{
		Symbol:       symbol,
		CurrentPrice: raw.Records.UnderlyingValue.value(),
		Timestamp:    raw.Records.Timestamp,
		FetchedAt:    time.Now(),
		ExpiryDates:  raw.Records.ExpiryDates,
	}, nil
}

type quoteEquityJSON struct {
	MarketDeptOrderBook struct {
		TradeInfo struct {
			TotalBuyQuantity  flexFloat `json:"totalBuyQuantity"`
			TotalSellQuantity flexFloat `json:"totalSellQuantity"`
		} `json:"tradeInfo"`
	} `json:"marketDeptOrderBook"`
	SecurityWiseDP struct {
		DeliveryQuantity flexFloat `json:"deliveryQuantity"`
		TradedQuantity   flexFloat `json:"quantityTraded"`
	} `json:"securityWiseDP"`
	PriceInfo struct {
		Change  flexFloat `json:"change"`
		PChange flexFloat `json:"pChange"`
	} `json:"priceInfo"`
	News []struct {
		Title string `json:"title"`
		Date  string `json:"date"`
		URL   string `json:"url"`
	} `json:"news"`
}

type stockIndicesJSON struct {
	Advance struct {
		Advances  flexFloat `json:"advances"`
		Declines  flexFloat `json:"declines"`
		Unchanged flexFloat `json:"unchanged"`
	} `json:"advance"`
}

// FetchVolumeFlow fetches buy/sell flow for a stock, or market breadth
// as a proxy when the symbol is an index.
func (c *Client) FetchVolumeFlow(ctx context.Context, symbol string) (*models.VolumeData, error) {
	if IsIndex(symbol) {
		var raw stockIndicesJSON
		path := "/api/equity-stockIndices?index=SECURITIES%20IN%20F%26O"
		if err := c.getJSON(ctx, "volume-flow", symbol, path, &raw); err != nil {
			return nil, err
		}

		advances := raw.Advance.Advances.value()
		declines := raw.Advance.Declines.value()
		unchanged := raw.Advance.Unchanged.value()
		total := advances + declines + unchanged

		data := &models.VolumeData{
			Symbol:    symbol,
			Advances:  int(advances),
			Declines:  int(declines),
			Unchanged: int(unchanged),
			NetFlow:   advances - declines,
		}
		if total > 0 {
			data.InflowRatio = advances / total
			data.OutflowRatio = declines / total
		}
		return data, nil
	}

	var raw quoteEquityJSON
	path := "/api/quote-equity?symbol=" + queryEscape(symbol)
	if err := c.getJSON(ctx, "volume-flow", symbol, path, &raw); err != nil {
		return nil, err
	}

	buy := raw.MarketDeptOrderBook.TradeInfo.TotalBuyQuantity.value()
	sell := raw.MarketDeptOrderBook.TradeInfo.TotalSellQuantity.value()
	total := buy + sell

	data := &models.VolumeData{
		Symbol:             symbol,
		NetFlow:            buy - sell,
		PriceChange:        raw.PriceInfo.Change.value(),
		PriceChangePercent: raw.PriceInfo.PChange.value(),
	}
	if total > 0 {
		data.InflowRatio = buy / total
		data.OutflowRatio = sell / total
	}

	delivered := raw.SecurityWiseDP.DeliveryQuantity.value()
	traded := raw.SecurityWiseDP.TradedQuantity.value()
	if traded > 0 {
		data.DeliveryPercent = delivered / traded * 100
		data.DeliveryKnown = true
	}
	return data, nil
}

// Headline is one unclassified news headline from an NSE feed.
type Headline struct {
	Title  string
	Source string
	Date   string
	URL    string
}

// FetchStockNews returns up to limit recent headlines for a stock.
// Index symbols have no quote-equity news; callers get an empty list.
func (c *Client) FetchStockNews(ctx context.Context, symbol string, limit int) ([]Headline, error) {
	if IsIndex(symbol) {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	var raw quoteEquityJSON
	path := "/api/quote-equity?symbol=" + queryEscape(symbol)
	if err := c.getJSON(ctx, "stock-news", symbol, path, &raw); err != nil {
		return nil, err
	}

	headlines := make([]Headline, 0, limit)
	for _, n := range raw.News {
		if len(headlines) >= limit {
			break
		}
		headlines = append(headlines, Headline{
			Title:  n.Title,
			Source: "NSE",
			Date:   n.Date,
			URL:    n.URL,
		})
	}
	return headlines, nil
}

type marketStatusJSON struct {
	MarketState []struct {
		Market              string `json:"market"`
		MarketStatusMessage string `json:"marketStatusMessage"`
	} `json:"marketState"`
}

// FetchMarketNews returns market-wide status messages as headlines.
func (c *Client) FetchMarketNews(ctx context.Context) ([]Headline, error) {
	var raw marketStatusJSON
	if err := c.getJSON(ctx, "market-news", "", "/api/marketStatus", &raw); err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	var headlines []Headline
	for _, state := range raw.MarketState {
		if state.MarketStatusMessage == "" {
			continue
		}
		title := state.MarketStatusMessage
		if state.Market != "" {
			title = fmt.Sprintf("%s: %s", state.Market, state.MarketStatusMessage)
		}
		headlines = append(headlines, Headline{
			Title:  title,
			Source: "NSE",
			Date:   today,
		})
	}
	return headlines, nil
}

// Index display names for the historical endpoint, which keys indices
// by full name instead of trading symbol.
var indexNames = map[string]string{
	"NIFTY":      "NIFTY 50",
	"BANKNIFTY":  "NIFTY BANK",
	"FINNIFTY":   "NIFTY FINANCIAL SERVICES",
	"MIDCPNIFTY": "NIFTY MIDCAP SELECT",
}

// Historical rows carry lower or upper case keys depending on endpoint.
type historicalRowJSON struct {
	Date        string    `json:"date"`
	Volume      flexFloat `json:"volume"`
	VolumeUpper flexFloat `json:"VOLUME"`
	Close       flexFloat `json:"close"`
	CloseUpper  flexFloat `json:"CLOSE"`
}

func (r historicalRowJSON) volume() float64 {
	if v := r.Volume.value(); v != 0 {
		return v
	}
	return r.VolumeUpper.value()
}

func (r historicalRowJSON) close() float64 {
	if v := r.Close.value(); v != 0 {
		return v
	}
	return r.CloseUpper.value()
}

type historicalJSON struct {
	Data []historicalRowJSON `json:"data"`
}

// VolumeTrendDay is one day of historical volume.
type VolumeTrendDay struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
	Close  float64 `json:"close"`
}

// VolumeTrend summarizes recent volume against its average. Days are
// newest first, as the endpoint returns them.
type VolumeTrend struct {
	Symbol              string           `json:"symbol"`
	Days                []VolumeTrendDay `json:"volume_trend"`
	AverageVolume       float64          `json:"avg_volume"`
	LatestVolume        float64          `json:"latest_volume"`
	VolumeChangePercent float64          `json:"volume_change_percent"`
}

// FetchHistoricalVolume fetches daily volume over the last days days and
// computes the latest-vs-average change.
func (c *Client) FetchHistoricalVolume(ctx context.Context, symbol string, days int) (VolumeTrend, error) {
	if days <= 0 {
		days = 5
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	dateRange := fmt.Sprintf("from=%s&to=%s",
		from.Format("02-01-2006"), to.Format("02-01-2006"))

	var path string
	if IsIndex(symbol) {
		path = "/api/historical/indicesHistory?indexType=" +
			queryEscape(indexNames[symbol]) + "&" + dateRange
	} else {
		path = "/api/historical/cm/equity?symbol=" + queryEscape(symbol) + "&" + dateRange
	}

	var raw historicalJSON
	if err := c.getJSON(ctx, "historical-volume", symbol, path, &raw); err != nil {
		return VolumeTrend{}, err
	}

	trend := VolumeTrend{Symbol: symbol}
	var total float64
	for _, row := range raw.Data {
		trend.Days = append(trend.Days, VolumeTrendDay{
			Date:   row.Date,
			Volume: row.volume(),
			Close:  row.close(),
		})
		total += row.volume()
	}
	if len(trend.Days) > 1 {
		trend.AverageVolume = total / float64(len(trend.Days))
		trend.LatestVolume = trend.Days[0].Volume
		if trend.AverageVolume > 0 {
			trend.VolumeChangePercent = (trend.LatestVolume/trend.AverageVolume - 1) * 100
		}
	}
	return trend, nil
}

// FetchSymbols returns the list of symbols with listed derivatives.
func (c *Client) FetchSymbols(ctx context.Context) ([]string, error) {
	var raw []struct {
		Symbol string `json:"symbol"`
	}
	if err := c.getJSON(ctx, "symbols", "", "/api/equity-stock-derivatives", &raw); err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(raw))
	seen := map[string]struct{}{}
	for _, item := range raw {
		if item.Symbol == "" {
			continue
		}
		if _, ok := seen[item.Symbol]; ok {
			continue
		}
		seen[item.Symbol] = struct{}{}
		symbols = append(symbols, item.Symbol)
	}
	if len(symbols) == 0 {
		return nil, oerrors.NewFetchError("symbols", "", 0, oerrors.ErrNoData)
	}
	return symbols, nil
}
