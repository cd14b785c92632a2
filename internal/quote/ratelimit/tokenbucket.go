package ratelimit

import (
    "context"
    "sync"
    "time"

    "marketquote/internal/quote"
    "marketquote/internal/symbol"
)

// TokenBucket is a stdlib-only token bucket limiter.
// - rate: tokens per second
// - capacity: maximum tokens the bucket can hold (burst)
type TokenBucket struct {
    rate     float64
    capacity float64

    mu     sync.Mutex
    tokens float64
    last   time.Time
}

func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
    if tokensPerSecond <= 0 {
        tokensPerSecond = 0.0000001
    }
    if burst <= 0 {
        burst = 1
    }
    return &TokenBucket{
        rate:     tokensPerSecond,
        capacity: float64(burst),
        tokens:   float64(burst), // start full to allow an initial burst
        last:     time.Now(),
    }
}

// wait blocks until one token is available or the context is canceled.
func (tb *TokenBucket) wait(ctx context.Context) error {
    for {
        tb.mu.Lock()
        now := time.Now()
        if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
            tb.tokens = min(tb.tokens+elapsed*tb.rate, tb.capacity)
            tb.last = now
        }
        if tb.tokens >= 1 {
            tb.tokens--
            tb.mu.Unlock()
            return nil
        }
        deficit := 1 - tb.tokens
        tb.mu.Unlock()

        waitDur := time.Duration(deficit / tb.rate * float64(time.Second))
        if waitDur <= 0 {
            waitDur = time.Millisecond
        }
        timer := time.NewTimer(waitDur)
        select {
        case <-ctx.Done():
            timer.Stop()
            return ctx.Err()
        case <-timer.C:
        }
    }
}

// TokenBucketFetcher wraps a fetcher and gates calls using a token bucket.
type TokenBucketFetcher struct {
    F  quote.Fetcher
    TB *TokenBucket
}

func (t *TokenBucketFetcher) Name() string { return t.F.Name() }

func (t *TokenBucketFetcher) Fetch(ctx context.Context, rawSymbol string) (quote.Quote, symbol.AssetType, error) {
    if t.TB != nil {
        if err := t.TB.wait(ctx); err != nil {
            return quote.Quote{}, symbol.TypeUnknown, err
        }
    }
    return t.F.Fetch(ctx, rawSymbol)
}
