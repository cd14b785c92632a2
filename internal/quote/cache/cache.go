package cache

import (
    "context"
    "strings"
    "sync"
    "time"

    "golang.org/x/sync/singleflight"

    "marketquote/internal/quote"
    "marketquote/internal/symbol"
)

// entry stores one cached quote with expiry.
type entry struct {
    expiresAt time.Time
    q         quote.Quote
    asset     symbol.AssetType
}

// Fetcher caches quotes per symbol for a TTL and coalesces concurrent
// fetches of the same symbol into a single upstream call. Errors are not
// cached. The underlying pipeline stays cache-free; layering is the
// caller's choice and TTL <= 0 disables caching entirely.
type Fetcher struct {
    F        quote.Fetcher
    TTL      time.Duration
    MaxItems int

    mu    sync.RWMutex
    items map[string]entry

    sf singleflight.Group
}

func (c *Fetcher) Name() string { return c.F.Name() }

func (c *Fetcher) Fetch(ctx context.Context, rawSymbol string) (quote.Quote, symbol.AssetType, error) {
    if c.TTL <= 0 {
        return c.F.Fetch(ctx, rawSymbol)
    }

    // Key on the trimmed upper-cased input. Equivalent spellings of the
    // same pair (EURUSD vs EUR/USD) cache separately; both resolve to the
    // same upstream call and that is acceptable for a short TTL.
    key := strings.ToUpper(strings.TrimSpace(rawSymbol))
    now := time.Now()

    c.mu.RLock()
    e, ok := c.items[key]
    c.mu.RUnlock()
    if ok && now.Before(e.expiresAt) {
        return e.q, e.asset, nil
    }

    type result struct {
        q     quote.Quote
        asset symbol.AssetType
    }
    v, err, _ := c.sf.Do(key, func() (any, error) {
        q, asset, err := c.F.Fetch(ctx, rawSymbol)
        if err != nil {
            return result{asset: asset}, err
        }
        c.store(key, q, asset)
        return result{q: q, asset: asset}, nil
    })
    res := v.(result)
    return res.q, res.asset, err
}

func (c *Fetcher) store(key string, q quote.Quote, asset symbol.AssetType) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.items == nil {
        c.items = make(map[string]entry)
    }
    c.items[key] = entry{expiresAt: time.Now().Add(c.TTL), q: q, asset: asset}

    // best-effort cap: drop expired entries first, then arbitrary ones
    if c.MaxItems > 0 && len(c.items) > c.MaxItems {
        now := time.Now()
        for k, e := range c.items {
            if now.After(e.expiresAt) {
                delete(c.items, k)
            }
            if len(c.items) <= c.MaxItems {
                return
            }
        }
        for k := range c.items {
            if len(c.items) <= c.MaxItems {
                return
            }
            delete(c.items, k)
        }
    }
}
