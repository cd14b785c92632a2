package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "net/http"
    "net/url"
    "os"
    "time"

    "github.com/joho/godotenv"

    "marketquote/internal/config"
    "marketquote/internal/httpx"
    "marketquote/internal/quote"
    "marketquote/internal/quote/alphavantage"
    "marketquote/internal/quote/avprovider"
    "marketquote/internal/symbol"
)

func main() {
    // .env is optional; real deployments set ALPHAVANTAGE_API_KEY directly.
    _ = godotenv.Load()

    var sym string
    var timeout int
    var configPath string
    var raw bool

    flag.StringVar(&sym, "symbol", getenv("SYMBOL", ""), "ticker to fetch (e.g. AAPL, EURUSD, BTC/USD)")
    flag.IntVar(&timeout, "timeout", 0, "request timeout seconds (overrides config)")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.BoolVar(&raw, "raw", false, "print the undecoded upstream body instead of the normalized quote")
    flag.Parse()

    if sym == "" && flag.NArg() > 0 {
        sym = flag.Arg(0)
    }
    if sym == "" {
        log.Fatal("no symbol: pass -symbol or set SYMBOL")
    }

    cfg, err := config.Load(configPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }
    if timeout > 0 {
        cfg.Server.RequestTimeoutSec = timeout
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    if raw {
        if err := dumpRaw(ctx, httpClient, cfg.AlphaVantage, sym); err != nil {
            log.Fatalf("raw fetch: %v", err)
        }
        return
    }

    client, err := alphavantage.NewClient(
        cfg.AlphaVantage.APIKey,
        alphavantage.WithBaseURL(cfg.AlphaVantage.Endpoint),
        alphavantage.WithHTTPClient(httpClient),
    )
    if err != nil {
        log.Fatalf("alphavantage: %v", err)
    }

    f := avprovider.New(avprovider.Config{}, client)
    q, asset, err := f.Fetch(ctx, sym)
    if err != nil {
        log.Fatalf("fetch %s: %v", sym, err)
    }

    out := struct {
        AssetType string      `json:"asset_type"`
        Quote     quote.Quote `json:"quote"`
    }{AssetType: asset.String(), Quote: q}
    enc := json.NewEncoder(os.Stdout)
    enc.SetIndent("", "  ")
    if err := enc.Encode(out); err != nil {
        log.Fatalf("encode: %v", err)
    }
}

// dumpRaw issues the classified endpoint call directly and copies the body
// to stdout, bypassing normalization. Useful when upstream changes shape.
func dumpRaw(ctx context.Context, hc *http.Client, av config.AlphaVantage, sym string) error {
    if av.APIKey == "" {
        return quote.ErrMissingAPIKey
    }
    cls := symbol.Classify(sym)
    params := url.Values{}
    params.Set("apikey", av.APIKey)
    switch cls.Type {
    case symbol.TypeStock:
        params.Set("function", "GLOBAL_QUOTE")
        params.Set("symbol", cls.APISymbol)
    case symbol.TypeForex:
        params.Set("function", "CURRENCY_EXCHANGE_RATE")
        params.Set("from_currency", cls.FromCurrency)
        params.Set("to_currency", cls.ToCurrency)
    case symbol.TypeCrypto:
        params.Set("function", "DIGITAL_CURRENCY_DAILY")
        params.Set("symbol", cls.APISymbol)
        params.Set("market", cls.Market)
    default:
        return fmt.Errorf("%w: %q", quote.ErrUnrecognizedSymbol, sym)
    }

    u := fmt.Sprintf("%s/query?%s", av.Endpoint, params.Encode())
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
    if err != nil {
        return err
    }
    resp, err := hc.Do(req)
    if err != nil {
        return err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return &quote.StatusError{Status: resp.StatusCode}
    }
    _, err = io.Copy(os.Stdout, resp.Body)
    return err
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
