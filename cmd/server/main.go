package main

import (
    "compress/gzip"
    "context"
    "encoding/json"
    "errors"
    "io"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "marketquote/internal/config"
    "marketquote/internal/httpx"
    "marketquote/internal/quote"
    "marketquote/internal/quote/alphavantage"
    "marketquote/internal/quote/avprovider"
    "marketquote/internal/quote/cache"
    "marketquote/internal/quote/ratelimit"
)

// quoteResponse is the inbound contract: either a normalized quote or an
// error string, always labeled with the classified asset type.
type quoteResponse struct {
    AssetType string       `json:"asset_type"`
    Quote     *quote.Quote `json:"quote,omitempty"`
    Error     string       `json:"error,omitempty"`
}

func main() {
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }
    port := cfg.Server.Port
    timeoutSec := cfg.Server.RequestTimeoutSec

    httpClient := httpx.New(time.Duration(timeoutSec) * time.Second)

    avClient, err := alphavantage.NewClient(
        cfg.AlphaVantage.APIKey,
        alphavantage.WithBaseURL(cfg.AlphaVantage.Endpoint),
        alphavantage.WithHTTPClient(httpClient),
        alphavantage.WithHeader(http.Header{
            "User-Agent": []string{"market-quote/1.0"},
        }),
    )
    if err != nil {
        log.Fatalf("alphavantage: %v", err)
    }

    var fetcher quote.Fetcher = avprovider.New(avprovider.Config{Name: "AlphaVantage"}, avClient)
    // Prefer token bucket with burst if RPM is set, otherwise use min-interval
    if cfg.AlphaVantage.MaxRequestsPerMinute > 0 {
        rate := float64(cfg.AlphaVantage.MaxRequestsPerMinute) / 60.0
        burst := cfg.AlphaVantage.Burst
        if burst <= 0 {
            burst = 1
        }
        fetcher = &ratelimit.TokenBucketFetcher{F: fetcher, TB: ratelimit.NewTokenBucket(rate, burst)}
    } else if cfg.AlphaVantage.MinRequestIntervalSec > 0 {
        interval := time.Duration(cfg.AlphaVantage.MinRequestIntervalSec) * time.Second
        fetcher = &ratelimit.MinInterval{F: fetcher, Interval: interval}
    }
    if cfg.AlphaVantage.CacheTTLSeconds > 0 {
        fetcher = &cache.Fetcher{
            F:        fetcher,
            TTL:      time.Duration(cfg.AlphaVantage.CacheTTLSeconds) * time.Second,
            MaxItems: cfg.AlphaVantage.CacheMaxItems,
        }
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/quote", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        handleGetQuote(w, r, fetcher)
    })

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(mux))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func handleGetQuote(w http.ResponseWriter, r *http.Request, fetcher quote.Fetcher) {
    sym := strings.TrimSpace(r.URL.Query().Get("symbol"))
    if sym == "" {
        http.Error(w, "missing symbol query param", http.StatusBadRequest)
        return
    }
    writeQuote(w, r.Context(), fetcher, sym)
}

func writeQuote(w http.ResponseWriter, rctx context.Context, fetcher quote.Fetcher, sym string) {
    ctx, cancel := context.WithTimeout(rctx, 15*time.Second)
    defer cancel()

    q, asset, err := fetcher.Fetch(ctx, sym)
    if err != nil {
        w.WriteHeader(statusForError(err))
        writeJSON(w, quoteResponse{AssetType: asset.String(), Error: err.Error()})
        return
    }
    w.WriteHeader(http.StatusOK)
    writeJSON(w, quoteResponse{AssetType: asset.String(), Quote: &q})
}

// statusForError maps the error taxonomy to distinct HTTP statuses so
// callers can branch on the failure kind instead of parsing strings.
func statusForError(err error) int {
    var noData *quote.NoDataError
    var upstream *quote.UpstreamError
    var status *quote.StatusError
    switch {
    case errors.Is(err, quote.ErrUnrecognizedSymbol):
        return http.StatusBadRequest
    case errors.Is(err, quote.ErrMissingAPIKey):
        return http.StatusInternalServerError
    case errors.As(err, &noData):
        return http.StatusNotFound
    case errors.As(err, &status):
        if status.Status == http.StatusTooManyRequests {
            return http.StatusTooManyRequests
        }
        return http.StatusBadGateway
    case errors.As(err, &upstream):
        return http.StatusBadGateway
    default:
        // parse failures, network failures
        return http.StatusBadGateway
    }
}

func writeJSON(w http.ResponseWriter, v any) {
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
