package model

import "time"

// PricePoint is a single end-of-day observation.
type PricePoint struct {
	Date   time.Time
	Close  float64 // always > 0
	Volume int64
}

// PriceSeries holds EOD history for one ticker, oldest first, no duplicate
// dates. The series may cover less than the requested window; Coverage lets
// consumers disclose when full-range analysis is unavailable.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Coverage returns the number of trading days the series actually covers.
func (s *PriceSeries) Coverage() int { return len(s.Points) }

// Closes extracts the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
