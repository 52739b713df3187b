package calculator

import "fmt"

// InsufficientDataError reports a price series too short to analyze.
// Recoverable by reporting a degraded result to the caller, never by
// fabricating data.
type InsufficientDataError struct {
	Ticker   string
	Points   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %d price points available, need at least %d", e.Ticker, e.Points, e.Required)
}
