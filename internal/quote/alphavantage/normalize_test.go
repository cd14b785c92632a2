package alphavantage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketquote/internal/quote"
	alphavantage "marketquote/internal/quote/alphavantage"
)

func TestNormalizeGlobalQuote_EmptyPayloadIsNoData(t *testing.T) {
	t.Parallel()

	// An empty "Global Quote" object is the canonical "symbol not found"
	// signal; it must never produce a partially-populated quote.
	res := alphavantage.GlobalQuoteResult{}
	_, err := res.Normalize("ZZZZ")
	var noData *quote.NoDataError
	require.ErrorAs(t, err, &noData)
	require.Equal(t, "ZZZZ", noData.Symbol)
	require.Empty(t, noData.Note)

	// With an advisory note the ambiguity is preserved on the error.
	res.Note = "call frequency is 5 calls per minute"
	_, err = res.Normalize("ZZZZ")
	require.ErrorAs(t, err, &noData)
	require.Equal(t, "call frequency is 5 calls per minute", noData.Note)
}

func TestNormalizeGlobalQuote_Populated(t *testing.T) {
	t.Parallel()

	res := alphavantage.GlobalQuoteResult{
		GlobalQuote: alphavantage.GlobalQuoteResponse{
			Symbol: "AAPL", Open: 189.2, High: 192, Low: 188, Price: 190.5,
			Volume: 51234567, LatestTradingDay: "2026-08-31",
			PreviousClose: 189, Change: 1.5, ChangePercent: "0.7937%",
		},
	}
	q, err := res.Normalize("AAPL")
	require.NoError(t, err)
	require.Equal(t, quote.Quote{
		Symbol: "AAPL", Open: 189.2, High: 192, Low: 188, Price: 190.5,
		Volume: 51234567, LatestTradingDay: "2026-08-31",
		PreviousClose: 189, Change: 1.5, ChangePercent: "0.7937%",
	}, q)
}

func TestNormalizeExchangeRate_RateFansOut(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)
	res := alphavantage.ExchangeRateResult{
		ExchangeRate: &alphavantage.ExchangeRateResponse{
			FromCurrencyCode: "EUR",
			ToCurrencyCode:   "USD",
			Rate:             1.085,
			LastRefreshed:    "2026-08-31 21:55:01",
		},
	}
	q, err := res.Normalize("EUR/USD", now)
	require.NoError(t, err)
	require.Equal(t, "EUR/USD", q.Symbol)
	// upstream provides a point rate only; all four fields carry it
	require.Equal(t, 1.085, q.Open)
	require.Equal(t, 1.085, q.High)
	require.Equal(t, 1.085, q.Low)
	require.Equal(t, 1.085, q.Price)
	require.Zero(t, q.Volume)
	require.Zero(t, q.PreviousClose)
	require.Zero(t, q.Change)
	require.Equal(t, "0%", q.ChangePercent)
	require.Equal(t, "2026-08-31", q.LatestTradingDay)
}

func TestNormalizeExchangeRate_MissingRefreshDefaultsToToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	res := alphavantage.ExchangeRateResult{
		ExchangeRate: &alphavantage.ExchangeRateResponse{Rate: 150.25},
	}
	q, err := res.Normalize("USD/JPY", now)
	require.NoError(t, err)
	require.Equal(t, "2026-09-01", q.LatestTradingDay)
}

func TestNormalizeExchangeRate_AbsentPayloadIsNoData(t *testing.T) {
	t.Parallel()

	res := alphavantage.ExchangeRateResult{Note: "throttled"}
	_, err := res.Normalize("EUR/USD", time.Now())
	var noData *quote.NoDataError
	require.ErrorAs(t, err, &noData)
	require.Equal(t, "throttled", noData.Note)
}

func TestNormalizeDigitalDaily_MarketSuffixedKeys(t *testing.T) {
	t.Parallel()

	res := alphavantage.DigitalDailyResult{
		Series: map[string]alphavantage.DailyBar{
			"2026-08-30": {
				"1a. open (USD)": "107500.00", "2a. high (USD)": "108400.00",
				"3a. low (USD)": "106900.00", "4a. close (USD)": "108000.00",
				"5. volume": "2345.67",
			},
			"2026-08-31": {
				"1a. open (USD)": "108000.00", "2a. high (USD)": "110000.00",
				"3a. low (USD)": "107000.00", "4a. close (USD)": "109500.00",
				"5. volume": "1234.56",
			},
		},
	}
	q, err := res.Normalize("BTC/USD", "USD")
	require.NoError(t, err)
	// most recent date wins
	require.Equal(t, "2026-08-31", q.LatestTradingDay)
	require.Equal(t, 108000.00, q.Open)
	require.Equal(t, 110000.00, q.High)
	require.Equal(t, 107000.00, q.Low)
	require.Equal(t, 109500.00, q.Price)
	require.Equal(t, 1234.56, q.Volume)
	require.Equal(t, "0%", q.ChangePercent)
	require.Zero(t, q.PreviousClose)
}

func TestNormalizeDigitalDaily_UnsuffixedFallbackKeys(t *testing.T) {
	t.Parallel()

	// upstream has been observed to emit plain ordinal keys instead
	res := alphavantage.DigitalDailyResult{
		Series: map[string]alphavantage.DailyBar{
			"2026-08-31": {
				"1. open": "108000.00", "2. high": "110000.00",
				"3. low": "107000.00", "4. close": "109500.00",
				"5. volume": "1234.56",
			},
		},
	}
	q, err := res.Normalize("BTC/USD", "USD")
	require.NoError(t, err)
	require.Equal(t, 108000.00, q.Open)
	require.Equal(t, 109500.00, q.Price)
	require.Equal(t, 1234.56, q.Volume)
}

func TestNormalizeDigitalDaily_MissingFieldIsParseError(t *testing.T) {
	t.Parallel()

	res := alphavantage.DigitalDailyResult{
		Series: map[string]alphavantage.DailyBar{
			"2026-08-31": {"1. open": "108000.00"},
		},
	}
	_, err := res.Normalize("BTC/USD", "USD")
	var parse *quote.ParseError
	require.ErrorAs(t, err, &parse)
}

func TestNormalizeDigitalDaily_EmptySeriesIsNoData(t *testing.T) {
	t.Parallel()

	res := alphavantage.DigitalDailyResult{Note: "5 calls per minute"}
	_, err := res.Normalize("BTC/USD", "USD")
	var noData *quote.NoDataError
	require.ErrorAs(t, err, &noData)
	require.Equal(t, "BTC/USD", noData.Symbol)
	require.Equal(t, "5 calls per minute", noData.Note)
}
