package avprovider

import (
	"context"
	"fmt"
	"time"

	"marketquote/internal/quote"
	"marketquote/internal/quote/alphavantage"
	"marketquote/internal/symbol"
)

// Config controls the Alpha Vantage provider behavior.
type Config struct {
	Name string // display name, default: AlphaVantage
}

// Provider runs the classify -> fetch -> normalize pipeline against
// Alpha Vantage. It is stateless; concurrent fetches for different
// symbols are safe.
type Provider struct {
	cfg    Config
	client *alphavantage.Client
}

func New(cfg Config, client *alphavantage.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "AlphaVantage"
	}
	return &Provider{cfg: cfg, client: client}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Fetch classifies the raw ticker, performs exactly one call to the
// matching endpoint variant, and normalizes the result. An unrecognized
// symbol short-circuits before any network activity.
func (p *Provider) Fetch(ctx context.Context, rawSymbol string) (quote.Quote, symbol.AssetType, error) {
	cls := symbol.Classify(rawSymbol)
	switch cls.Type {
	case symbol.TypeStock:
		res, err := p.client.GlobalQuote(ctx, cls.APISymbol)
		if err != nil {
			return quote.Quote{}, cls.Type, err
		}
		q, err := res.Normalize(cls.Original)
		return q, cls.Type, err

	case symbol.TypeForex:
		res, err := p.client.ExchangeRate(ctx, cls.FromCurrency, cls.ToCurrency)
		if err != nil {
			return quote.Quote{}, cls.Type, err
		}
		q, err := res.Normalize(cls.Original, time.Now().UTC())
		return q, cls.Type, err

	case symbol.TypeCrypto:
		res, err := p.client.DigitalDaily(ctx, cls.APISymbol, cls.Market)
		if err != nil {
			return quote.Quote{}, cls.Type, err
		}
		q, err := res.Normalize(cls.Original, cls.Market)
		return q, cls.Type, err

	default:
		return quote.Quote{}, symbol.TypeUnknown, fmt.Errorf("%w: %q", quote.ErrUnrecognizedSymbol, rawSymbol)
	}
}
