package alphavantage

import (
	"context"
	"log"
	"net/url"

	"marketquote/internal/quote"
)

// ExchangeRateResult is the CURRENCY_EXCHANGE_RATE response envelope.
// ExchangeRate is nil when upstream returned no payload for the pair.
type ExchangeRateResult struct {
	ExchangeRate *ExchangeRateResponse `json:"Realtime Currency Exchange Rate"`
	ErrorMessage string                `json:"Error Message"`
	Note         string                `json:"Note"`
	Information  string                `json:"Information"`
}

// ExchangeRateResponse is a point rate, not an OHLC bar.
type ExchangeRateResponse struct {
	FromCurrencyCode string  `json:"1. From_Currency Code"`
	FromCurrencyName string  `json:"2. From_Currency Name"`
	ToCurrencyCode   string  `json:"3. To_Currency Code"`
	ToCurrencyName   string  `json:"4. To_Currency Name"`
	Rate             float64 `json:"5. Exchange Rate,string"`
	LastRefreshed    string  `json:"6. Last Refreshed"`
	TimeZone         string  `json:"7. Time Zone"`
}

// ExchangeRate retrieves the realtime exchange rate for a currency pair.
func (c *Client) ExchangeRate(ctx context.Context, from, to string, opts ...ClientOption) (ExchangeRateResult, error) {
	var out ExchangeRateResult
	params := url.Values{}
	params.Set("function", "CURRENCY_EXCHANGE_RATE")
	params.Set("from_currency", from)
	params.Set("to_currency", to)
	if err := c.doQuery(ctx, params, &out, opts...); err != nil {
		return ExchangeRateResult{}, err
	}
	if out.ErrorMessage != "" {
		return ExchangeRateResult{}, &quote.UpstreamError{Message: out.ErrorMessage}
	}
	if n := out.advisory(); n != "" {
		log.Printf("alphavantage: rate limit note on CURRENCY_EXCHANGE_RATE %s/%s: %s", from, to, n)
	}
	return out, nil
}

func (r ExchangeRateResult) advisory() string {
	if r.Note != "" {
		return r.Note
	}
	return r.Information
}
