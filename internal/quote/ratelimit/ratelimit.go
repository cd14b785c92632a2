package ratelimit

import (
    "context"
    "sync"
    "time"

    "marketquote/internal/quote"
    "marketquote/internal/symbol"
)

// MinInterval wraps a fetcher and enforces a minimum time between upstream
// calls. Alpha Vantage's free tier throttles per minute, so callers queue
// here instead of burning requests into advisory notes. Waiters return
// early if the context is canceled.
type MinInterval struct {
    F        quote.Fetcher
    Interval time.Duration

    mu   sync.Mutex
    last time.Time
}

func (m *MinInterval) Name() string { return m.F.Name() }

func (m *MinInterval) Fetch(ctx context.Context, rawSymbol string) (quote.Quote, symbol.AssetType, error) {
    if m.Interval > 0 {
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        m.mu.Unlock()
        if wait > 0 {
            t := time.NewTimer(wait)
            defer t.Stop()
            select {
            case <-ctx.Done():
                return quote.Quote{}, symbol.TypeUnknown, ctx.Err()
            case <-t.C:
            }
        }
    }
    q, asset, err := m.F.Fetch(ctx, rawSymbol)
    if m.Interval > 0 {
        m.mu.Lock()
        m.last = time.Now()
        m.mu.Unlock()
    }
    return q, asset, err
}
