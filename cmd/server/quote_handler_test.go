package main

import (
    "context"
    "encoding/json"
    "net/http/httptest"
    "testing"

    "marketquote/internal/quote"
    "marketquote/internal/symbol"
)

type fakeFetcher struct {
    name  string
    q     quote.Quote
    asset symbol.AssetType
    err   error
}

func (f fakeFetcher) Name() string { return f.name }
func (f fakeFetcher) Fetch(_ context.Context, _ string) (quote.Quote, symbol.AssetType, error) {
    return f.q, f.asset, f.err
}

func TestWriteQuote_Stock(t *testing.T) {
    f := fakeFetcher{
        name:  "fake",
        asset: symbol.TypeStock,
        q: quote.Quote{
            Symbol: "AAPL", Open: 189.20, High: 192.00, Low: 188.00, Price: 190.50,
            Volume: 51234567, LatestTradingDay: "2026-08-31", PreviousClose: 189.00,
            Change: 1.50, ChangePercent: "0.7937%",
        },
    }
    rr := httptest.NewRecorder()
    writeQuote(rr, context.Background(), f, "AAPL")
    if rr.Code != 200 {
        t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
    }
    var resp quoteResponse
    if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if resp.AssetType != "stock" || resp.Error != "" || resp.Quote == nil {
        t.Fatalf("unexpected: %+v", resp)
    }
    if resp.Quote.Symbol != "AAPL" || resp.Quote.Price != 190.50 || resp.Quote.High != 192.00 {
        t.Fatalf("unexpected quote: %+v", resp.Quote)
    }
}

func TestWriteQuote_ErrorStatuses(t *testing.T) {
    cases := []struct {
        name   string
        asset  symbol.AssetType
        err    error
        status int
    }{
        {"unrecognized", symbol.TypeUnknown, quote.ErrUnrecognizedSymbol, 400},
        {"no data", symbol.TypeStock, &quote.NoDataError{Symbol: "ZZZZ"}, 404},
        {"upstream message", symbol.TypeForex, &quote.UpstreamError{Message: "Invalid API call."}, 502},
        {"throttled status", symbol.TypeCrypto, &quote.StatusError{Status: 429}, 429},
        {"missing key", symbol.TypeStock, quote.ErrMissingAPIKey, 500},
    }
    for _, tc := range cases {
        rr := httptest.NewRecorder()
        writeQuote(rr, context.Background(), fakeFetcher{asset: tc.asset, err: tc.err}, "X")
        if rr.Code != tc.status {
            t.Fatalf("%s: status=%d want %d", tc.name, rr.Code, tc.status)
        }
        var resp quoteResponse
        if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
            t.Fatalf("%s: decode: %v", tc.name, err)
        }
        if resp.Error == "" || resp.Quote != nil {
            t.Fatalf("%s: unexpected body: %+v", tc.name, resp)
        }
        if resp.AssetType != tc.asset.String() {
            t.Fatalf("%s: asset_type=%q", tc.name, resp.AssetType)
        }
    }
}

func TestHandleGetQuote_MissingSymbol(t *testing.T) {
    rr := httptest.NewRecorder()
    req := httptest.NewRequest("GET", "/api/quote", nil)
    handleGetQuote(rr, req, fakeFetcher{})
    if rr.Code != 400 {
        t.Fatalf("status=%d", rr.Code)
    }
}
