package scoring

import "fmt"

// NonFiniteResultError flags a NaN or infinite computed scalar. It is a
// defect signal: the ticker's result is dropped and surfaced, never
// silently coerced to zero.
type NonFiniteResultError struct {
	Ticker string
	Metric string
}

func (e *NonFiniteResultError) Error() string {
	return fmt.Sprintf("%s: %s is not finite", e.Ticker, e.Metric)
}
