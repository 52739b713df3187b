package scoring

// Composite combines the three signals via the fixed linear formula
//
//	final = wNews*newsImpact + wMomentum*momentum - wRisk*riskValue
//
// Default weights (0.5/0.3/0.2) live in config, preserving the original
// system's explainability-over-performance rationale. Deterministic: no
// randomness, no wall-clock dependence, linear in each input.
func Composite(momentum, riskValue, newsImpact, wNews, wMomentum, wRisk float64) float64 {
	return wNews*newsImpact + wMomentum*momentum - wRisk*riskValue
}

// Clamp bounds v to [min, max]. Only applied when clamping is enabled in
// config; the bounds are then part of the documented configuration surface.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// IsTurnaround reports a weak price trend offset by strongly positive news.
// Both comparisons are strict: a value sitting exactly on either threshold
// does not flag.
func IsTurnaround(momentum, newsImpact, weakMomentum, strongNews float64) bool {
	return momentum < weakMomentum && newsImpact > strongNews
}
