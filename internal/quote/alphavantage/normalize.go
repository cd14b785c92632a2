package alphavantage

import (
	"fmt"
	"strconv"
	"time"

	"marketquote/internal/quote"
)

// This file is the only place upstream field names are interpreted. All
// three endpoint shapes converge to quote.Quote here so callers never
// branch on asset type after a fetch.

// Normalize maps a stock envelope to the common quote shape. An empty
// "Global Quote" object is the upstream's "symbol not found" signal; it is
// indistinguishable from a rate-limited empty answer, so the advisory note
// (when present) rides along on the error instead of being guessed at.
func (r GlobalQuoteResult) Normalize(requested string) (quote.Quote, error) {
	gq := r.GlobalQuote
	if gq.Symbol == "" {
		return quote.Quote{}, &quote.NoDataError{Symbol: requested, Note: r.advisory()}
	}
	return quote.Quote{
		Symbol:           gq.Symbol,
		Open:             gq.Open,
		High:             gq.High,
		Low:              gq.Low,
		Price:            gq.Price,
		Volume:           gq.Volume,
		LatestTradingDay: gq.LatestTradingDay,
		PreviousClose:    gq.PreviousClose,
		Change:           gq.Change,
		ChangePercent:    gq.ChangePercent,
	}, nil
}

// Normalize maps a forex envelope to the common quote shape. Upstream
// supplies a point rate only, so the rate fans out to open/high/low/price;
// volume and the change fields have no forex equivalent and default to zero.
func (r ExchangeRateResult) Normalize(pair string, now time.Time) (quote.Quote, error) {
	if r.ExchangeRate == nil {
		return quote.Quote{}, &quote.NoDataError{Symbol: pair, Note: r.advisory()}
	}
	day := now.Format(time.DateOnly)
	if lr := r.ExchangeRate.LastRefreshed; len(lr) >= len(time.DateOnly) {
		day = lr[:len(time.DateOnly)]
	}
	rate := r.ExchangeRate.Rate
	return quote.Quote{
		Symbol:           pair,
		Open:             rate,
		High:             rate,
		Low:              rate,
		Price:            rate,
		LatestTradingDay: day,
		ChangePercent:    "0%",
	}, nil
}

// Normalize maps the most recent day of a crypto series to the common
// quote shape. OHLC keys prefer the market-suffixed variant and fall back
// to the unsuffixed one; upstream has emitted both shapes.
func (r DigitalDailyResult) Normalize(pair, market string) (quote.Quote, error) {
	if len(r.Series) == 0 {
		return quote.Quote{}, &quote.NoDataError{Symbol: pair, Note: r.advisory()}
	}
	var latest string
	for d := range r.Series {
		if d > latest {
			latest = d
		}
	}
	bar := r.Series[latest]

	open, err := bar.field(fmt.Sprintf("1a. open (%s)", market), "1. open")
	if err != nil {
		return quote.Quote{}, err
	}
	high, err := bar.field(fmt.Sprintf("2a. high (%s)", market), "2. high")
	if err != nil {
		return quote.Quote{}, err
	}
	low, err := bar.field(fmt.Sprintf("3a. low (%s)", market), "3. low")
	if err != nil {
		return quote.Quote{}, err
	}
	cls, err := bar.field(fmt.Sprintf("4a. close (%s)", market), "4. close")
	if err != nil {
		return quote.Quote{}, err
	}
	volume, err := bar.field("5. volume")
	if err != nil {
		return quote.Quote{}, err
	}

	return quote.Quote{
		Symbol:           pair,
		Open:             open,
		High:             high,
		Low:              low,
		Price:            cls,
		Volume:           volume,
		LatestTradingDay: latest,
		ChangePercent:    "0%",
	}, nil
}

// field returns the first of keys present in the bar, parsed as a float.
func (b DailyBar) field(keys ...string) (float64, error) {
	for _, k := range keys {
		raw, ok := b[k]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &quote.ParseError{Reason: fmt.Sprintf("bad value %q for %q", raw, k)}
		}
		return v, nil
	}
	return 0, &quote.ParseError{Reason: fmt.Sprintf("missing field %q", keys[0])}
}
