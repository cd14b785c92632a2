package alphavantage

import (
	"context"
	"log"
	"net/url"

	"marketquote/internal/quote"
)

// DigitalDailyResult is the DIGITAL_CURRENCY_DAILY response envelope.
// The series maps ISO dates to raw bar fields; keys differ between API
// generations (market-suffixed "1a. open (USD)" vs plain "1. open"), so
// bars stay untyped here and the normalizer resolves the variants.
type DigitalDailyResult struct {
	Series       map[string]DailyBar `json:"Time Series (Digital Currency Daily)"`
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
}

// DailyBar is one day of the digital currency series, raw key to raw value.
type DailyBar map[string]string

// DigitalDaily retrieves the daily series for a crypto code quoted in a
// fiat market. Unlike the other two endpoints the advisory note is not a
// hard failure here: the series may still be partially present.
func (c *Client) DigitalDaily(ctx context.Context, symbol, market string, opts ...ClientOption) (DigitalDailyResult, error) {
	var out DigitalDailyResult
	params := url.Values{}
	params.Set("function", "DIGITAL_CURRENCY_DAILY")
	params.Set("symbol", symbol)
	params.Set("market", market)
	if err := c.doQuery(ctx, params, &out, opts...); err != nil {
		return DigitalDailyResult{}, err
	}
	if out.ErrorMessage != "" {
		return DigitalDailyResult{}, &quote.UpstreamError{Message: out.ErrorMessage}
	}
	if n := out.advisory(); n != "" {
		log.Printf("alphavantage: rate limit note on DIGITAL_CURRENCY_DAILY %s/%s: %s", symbol, market, n)
	}
	return out, nil
}

func (r DigitalDailyResult) advisory() string {
	if r.Note != "" {
		return r.Note
	}
	return r.Information
}
