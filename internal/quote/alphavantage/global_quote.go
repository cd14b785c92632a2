package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"net/http"
	"net/url"

	"marketquote/internal/quote"
)

// GlobalQuoteResult is the GLOBAL_QUOTE response envelope. Upstream reports
// errors and rate-limit advisories as JSON fields, not HTTP statuses.
type GlobalQuoteResult struct {
	GlobalQuote  GlobalQuoteResponse `json:"Global Quote"`
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
}

// GlobalQuoteResponse carries the ordinal-prefixed quote fields.
type GlobalQuoteResponse struct {
	Symbol           string  `json:"01. symbol"`
	Open             float64 `json:"02. open,string"`
	High             float64 `json:"03. high,string"`
	Low              float64 `json:"04. low,string"`
	Price            float64 `json:"05. price,string"`
	Volume           float64 `json:"06. volume,string"`
	LatestTradingDay string  `json:"07. latest trading day"`
	PreviousClose    float64 `json:"08. previous close,string"`
	Change           float64 `json:"09. change,string"`
	ChangePercent    string  `json:"10. change percent"`
}

// GlobalQuote retrieves the "global quote" for a single stock symbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string, opts ...ClientOption) (GlobalQuoteResult, error) {
	var out GlobalQuoteResult
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	if err := c.doQuery(ctx, params, &out, opts...); err != nil {
		return GlobalQuoteResult{}, err
	}
	if out.ErrorMessage != "" {
		return GlobalQuoteResult{}, &quote.UpstreamError{Message: out.ErrorMessage}
	}
	if n := out.advisory(); n != "" {
		log.Printf("alphavantage: rate limit note on GLOBAL_QUOTE %s: %s", symbol, n)
	}
	return out, nil
}

func (r GlobalQuoteResult) advisory() string {
	if r.Note != "" {
		return r.Note
	}
	return r.Information
}

// doQuery performs one GET against /query and decodes the JSON body.
func (c *Client) doQuery(ctx context.Context, params url.Values, out any, opts ...ClientOption) error {
	var override = &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	u := fmt.Sprintf("%s/query?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &quote.StatusError{Status: res.StatusCode}
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
