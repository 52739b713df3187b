package provider

import (
	"context"
	"sync"
	"time"

	"github.com/ankurmani/stock-mvp/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Call counters let cache tests assert how many times the backend was hit.
type MockProvider struct {
	mu         sync.Mutex
	Series     map[string]*model.PriceSeries
	News       map[string]*model.NewsBatch
	PriceErr   error
	NewsErr    error
	PriceCalls int
	NewsCalls  int
}

func (m *MockProvider) PriceSeries(_ context.Context, ticker string, windowDays int) (*model.PriceSeries, error) {
	m.mu.Lock()
	m.PriceCalls++
	m.mu.Unlock()

	if m.PriceErr != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: m.PriceErr}
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	return GenerateSeries(ticker, 100, windowDays), nil
}

func (m *MockProvider) RecentNews(_ context.Context, ticker string, _ int) (*model.NewsBatch, error) {
	m.mu.Lock()
	m.NewsCalls++
	m.mu.Unlock()

	if m.NewsErr != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "news", Err: m.NewsErr}
	}
	if b, ok := m.News[ticker]; ok {
		return b, nil
	}
	return &model.NewsBatch{Ticker: ticker}, nil
}

// Calls returns the provider hit counts under the lock.
func (m *MockProvider) Calls() (prices, news int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PriceCalls, m.NewsCalls
}

// GenerateSeries builds a gently trending series around basePrice, one
// point per day ending today.
func GenerateSeries(ticker string, basePrice float64, count int) *model.PriceSeries {
	pts := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		pts[i] = model.PricePoint{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Close:  p,
			Volume: 1000000,
		}
	}
	return &model.PriceSeries{Ticker: ticker, Points: pts, FetchedAt: time.Now()}
}
