package provider

import (
	"context"
	"fmt"

	"github.com/ankurmani/stock-mvp/internal/model"
)

// PriceProvider returns EOD price history for a ticker over a trading-day
// window. The returned series is ascending by date and may cover fewer days
// than requested.
type PriceProvider interface {
	PriceSeries(ctx context.Context, ticker string, windowDays int) (*model.PriceSeries, error)
}

// NewsProvider returns recent articles for a ticker. An empty batch is not
// an error; it means no articles exist in the lookback window.
type NewsProvider interface {
	RecentNews(ctx context.Context, ticker string, lookbackDays int) (*model.NewsBatch, error)
}

// DataUnavailableError reports a provider failure for one ticker: unknown
// ticker, unreachable backend, or timeout. It is surfaced as a per-ticker
// failure and must not abort scoring of other tickers in a batch.
type DataUnavailableError struct {
	Ticker   string
	Resource string // "prices" or "news"
	Err      error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s unavailable: %v", e.Ticker, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s %s unavailable", e.Ticker, e.Resource)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
