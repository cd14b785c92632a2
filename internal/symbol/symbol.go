package symbol

import (
    "strings"
)

// AssetType is the asset class a ticker string resolves to.
type AssetType int

const (
    TypeUnknown AssetType = iota
    TypeStock
    TypeForex
    TypeCrypto
)

var typeName = map[AssetType]string{
    TypeUnknown: "unknown",
    TypeStock:   "stock",
    TypeForex:   "forex",
    TypeCrypto:  "crypto",
}

func (t AssetType) String() string { return typeName[t] }

// Classification is the result of classifying one raw ticker string.
// Exactly one field group is populated per type:
// - TypeStock:  APISymbol
// - TypeForex:  FromCurrency + ToCurrency
// - TypeCrypto: APISymbol + Market
// - TypeUnknown: none
type Classification struct {
    Type         AssetType
    APISymbol    string
    FromCurrency string
    ToCurrency   string
    Market       string
    // Original is the canonical display form, e.g. "EUR/USD", "BTC/USD", "AAPL".
    Original string
}

// fiatCodes are the recognized fiat/stable quote currencies used to
// disambiguate crypto pairs. A symbol in this set is never a stock.
// Ordered longest-first so suffix stripping prefers USDT over USD.
var fiatCodes = []string{
    "USDT", "USDC", "BUSD",
    "USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CNY", "INR",
}

func isFiatCode(s string) bool {
    for _, c := range fiatCodes {
        if s == c {
            return true
        }
    }
    return false
}

// isCurrencyCode reports whether s is a 3-letter fiat currency code.
// Both legs of a forex pair must pass this check; a pair with an
// unrecognized leg (BTC/USD, BTCUSD) falls through to the crypto rules.
func isCurrencyCode(s string) bool {
    return len(s) == 3 && isFiatCode(s)
}

// rule is one classification attempt. Rules are tried in order and the
// first match wins; the order (forex, crypto, stock) is a policy decision
// that resolves ambiguous tickers deterministically.
type rule func(s string) (Classification, bool)

var rules = []rule{
    classifyForexSlashed,
    classifyForexConcat,
    classifyCryptoSlashed,
    classifyCryptoConcat,
    classifyStock,
}

// Classify determines the asset class of a free-form ticker string.
// It never fails; TypeUnknown signals the caller to stop before any
// network call.
func Classify(raw string) Classification {
    s := strings.ToUpper(strings.TrimSpace(raw))
    if s == "" {
        return Classification{Type: TypeUnknown, Original: s}
    }
    for _, r := range rules {
        if c, ok := r(s); ok {
            return c
        }
    }
    return Classification{Type: TypeUnknown, Original: s}
}

// classifyForexSlashed matches XXX/YYY with two 3-letter currency codes.
func classifyForexSlashed(s string) (Classification, bool) {
    if len(s) != 7 || strings.Count(s, "/") != 1 || s[3] != '/' {
        return Classification{}, false
    }
    from, to := s[:3], s[4:]
    if !isCurrencyCode(from) || !isCurrencyCode(to) {
        return Classification{}, false
    }
    return Classification{
        Type:         TypeForex,
        FromCurrency: from,
        ToCurrency:   to,
        Original:     from + "/" + to,
    }, true
}

// classifyForexConcat matches the concatenated 6-letter form, e.g. EURUSD.
func classifyForexConcat(s string) (Classification, bool) {
    if len(s) != 6 || strings.Contains(s, "/") || !isAlpha(s) {
        return Classification{}, false
    }
    if !isCurrencyCode(s[:3]) || !isCurrencyCode(s[3:]) {
        return Classification{}, false
    }
    return Classification{
        Type:         TypeForex,
        FromCurrency: s[:3],
        ToCurrency:   s[3:],
        Original:     s[:3] + "/" + s[3:],
    }, true
}

// classifyCryptoSlashed matches {2-5 alphanumerics}/{3-4 letters} where the
// right segment is a recognized fiat/stable code.
func classifyCryptoSlashed(s string) (Classification, bool) {
    i := strings.Index(s, "/")
    if i < 0 {
        return Classification{}, false
    }
    code, market := s[:i], s[i+1:]
    if len(code) < 2 || len(code) > 5 || !isAlnum(code) {
        return Classification{}, false
    }
    if len(market) < 3 || len(market) > 4 || !isAlpha(market) || !isFiatCode(market) {
        return Classification{}, false
    }
    return Classification{
        Type:      TypeCrypto,
        APISymbol: code,
        Market:    market,
        Original:  code + "/" + market,
    }, true
}

// classifyCryptoConcat matches a 4-8 character string ending in a recognized
// fiat/stable code, e.g. BTCUSD or DOGEUSDT.
func classifyCryptoConcat(s string) (Classification, bool) {
    if len(s) < 4 || len(s) > 8 || strings.Contains(s, "/") {
        return Classification{}, false
    }
    for _, market := range fiatCodes {
        code, ok := strings.CutSuffix(s, market)
        if !ok {
            continue
        }
        if len(code) < 2 || len(code) > 5 || !isAlnum(code) {
            continue
        }
        return Classification{
            Type:      TypeCrypto,
            APISymbol: code,
            Market:    market,
            Original:  code + "/" + market,
        }, true
    }
    return Classification{}, false
}

// classifyStock is the fallback: a short plain ticker that is not itself a
// reserved fiat/stable code.
func classifyStock(s string) (Classification, bool) {
    if len(s) > 5 || strings.Contains(s, "/") || !isTicker(s) || isFiatCode(s) {
        return Classification{}, false
    }
    return Classification{
        Type:      TypeStock,
        APISymbol: s,
        Original:  s,
    }, true
}

func isAlpha(s string) bool {
    for i := 0; i < len(s); i++ {
        if s[i] < 'A' || s[i] > 'Z' {
            return false
        }
    }
    return len(s) > 0
}

func isAlnum(s string) bool {
    for i := 0; i < len(s); i++ {
        c := s[i]
        if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
            return false
        }
    }
    return len(s) > 0
}

// isTicker allows letters, digits and periods (e.g. BRK.B).
func isTicker(s string) bool {
    for i := 0; i < len(s); i++ {
        c := s[i]
        if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '.' {
            return false
        }
    }
    return len(s) > 0
}
