package calculator

import (
	"math"

	"github.com/ankurmani/stock-mvp/internal/model"
)

// Risk computes the volatility proxy: population standard deviation of
// daily close-to-close returns over the available window. The value stays
// on the raw daily scale; the bucket thresholds in config are stated on the
// same scale.
func Risk(series *model.PriceSeries) (float64, error) {
	pts := series.Points
	if len(pts) < 2 {
		return 0, &InsufficientDataError{Ticker: series.Ticker, Points: len(pts), Required: 2}
	}

	rets := make([]float64, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		rets = append(rets, (pts[i].Close-pts[i-1].Close)/pts[i-1].Close)
	}

	var mean float64
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var variance float64
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets))

	return math.Sqrt(variance), nil
}

// BucketFor maps a volatility value onto Low/Medium/High. Upper edges are
// inclusive (v <= lowMax is Low), so the mapping is monotonic and exact at
// the thresholds.
func BucketFor(v, lowMax, mediumMax float64) model.RiskBucket {
	switch {
	case v <= lowMax:
		return model.RiskLow
	case v <= mediumMax:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
