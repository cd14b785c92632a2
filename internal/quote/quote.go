package quote

import (
    "context"

    "marketquote/internal/symbol"
)

// Quote is the normalized shape all upstream endpoint variants converge to.
// Fields not supplied by a source default to zero values ("0%" for
// ChangePercent); forex quotes carry the single point rate in all four of
// Open/High/Low/Price.
type Quote struct {
    Symbol           string  `json:"symbol"`
    Open             float64 `json:"open"`
    High             float64 `json:"high"`
    Low              float64 `json:"low"`
    Price            float64 `json:"price"`
    Volume           float64 `json:"volume"`
    LatestTradingDay string  `json:"latest_trading_day"`
    PreviousClose    float64 `json:"previous_close"`
    Change           float64 `json:"change"`
    ChangePercent    string  `json:"change_percent"`
}

// Fetcher resolves one raw ticker string into a normalized quote.
// The asset type is reported even when the fetch fails so callers can
// label the error.
type Fetcher interface {
    Name() string
    Fetch(ctx context.Context, rawSymbol string) (Quote, symbol.AssetType, error)
}
