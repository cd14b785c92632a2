package quote

import (
    "errors"
    "fmt"
)

// ErrUnrecognizedSymbol means classification failed; no network call was made.
var ErrUnrecognizedSymbol = errors.New("unrecognized symbol format")

// ErrMissingAPIKey means no upstream credential was configured.
var ErrMissingAPIKey = errors.New("api key not configured")

// NoDataError means the upstream answered with a well-formed but empty
// payload for the symbol. Upstream does not distinguish "not found" from
// "rate limited"; when an advisory note accompanied the empty payload it
// is carried in Note rather than guessed at.
type NoDataError struct {
    Symbol string
    Note   string
}

func (e *NoDataError) Error() string {
    if e.Note != "" {
        return fmt.Sprintf("no data for %q (upstream note: %s)", e.Symbol, e.Note)
    }
    return fmt.Sprintf("no data for %q", e.Symbol)
}

// UpstreamError is an explicit error message reported by the upstream in
// its JSON body.
type UpstreamError struct {
    Message string
}

func (e *UpstreamError) Error() string { return "upstream error: " + e.Message }

// StatusError is a non-2xx HTTP response from the upstream.
type StatusError struct {
    Status int
}

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected status code: %d", e.Status) }

// ParseError means the payload was present but missing fields expected for
// the asset branch.
type ParseError struct {
    Reason string
}

func (e *ParseError) Error() string { return "parse: " + e.Reason }
