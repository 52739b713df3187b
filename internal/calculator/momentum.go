package calculator

import (
	"github.com/ankurmani/stock-mvp/internal/model"
)

// MomentumResult carries the blended short-horizon return and enough detail
// for explanations to disclose any degradation.
type MomentumResult struct {
	Value         float64 // w1*R1 + w5*R5
	R1            float64 // 1-day return
	R5            float64 // return over Window5 trading days
	Window5       int     // trading days actually used for R5
	ReducedWindow bool    // true when fewer than 5 days were available
}

// Momentum computes the blended 1-day/5-day return from an ascending price
// series. When fewer than 6 points exist, R5 falls back to the longest
// available window and ReducedWindow is set so the degradation can be
// disclosed. Weights come from configuration (default 0.5/0.5).
func Momentum(series *model.PriceSeries, w1, w5 float64) (MomentumResult, error) {
	pts := series.Points
	if len(pts) < 2 {
		return MomentumResult{}, &InsufficientDataError{Ticker: series.Ticker, Points: len(pts), Required: 2}
	}

	last := pts[len(pts)-1].Close
	r1 := (last - pts[len(pts)-2].Close) / pts[len(pts)-2].Close

	window := 5
	reduced := false
	if len(pts) < window+1 {
		window = len(pts) - 1
		reduced = true
	}
	base := pts[len(pts)-1-window].Close
	r5 := (last - base) / base

	return MomentumResult{
		Value:         w1*r1 + w5*r5,
		R1:            r1,
		R5:            r5,
		Window5:       window,
		ReducedWindow: reduced,
	}, nil
}
