package model

// RiskBucket is the categorical volatility label, ordered Low < Medium < High.
type RiskBucket int

const (
	RiskLow RiskBucket = iota
	RiskMedium
	RiskHigh
)

func (b RiskBucket) String() string {
	switch b {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// ScoreResult is the final per-ticker output of the scoring engine.
// Immutable once produced; it lives for a single request and is never
// persisted. The explanation is generated from these fields alone so the
// text can never contradict the numbers.
type ScoreResult struct {
	Ticker string

	// Momentum
	Momentum      float64
	Return1Day    float64
	Return5Day    float64
	Window5Days   int  // trading days actually used for the 5-day return
	ReducedWindow bool // true when fewer than 5 days were available

	// Risk
	RiskValue  float64 // daily-return volatility proxy
	RiskBucket RiskBucket

	// News
	NewsImpact    float64
	ArticleCount  int
	PositiveCount int
	NeutralCount  int
	NegativeCount int
	Dominant      SentimentLabel

	// Composite
	FinalScore   float64
	IsTurnaround bool
	Label        string

	// Data coverage
	CoverageDays   int
	PartialHistory bool // series shorter than the requested window

	Explanation string
}
