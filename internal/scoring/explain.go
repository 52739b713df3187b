package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ankurmani/stock-mvp/internal/calculator"
	"github.com/ankurmani/stock-mvp/internal/model"
	"github.com/ankurmani/stock-mvp/internal/provider"
)

// Explain renders the "why today" text purely from already-computed
// ScoreResult fields, so the story can never contradict the numbers.
func Explain(r *model.ScoreResult) string {
	var b strings.Builder

	if r.ArticleCount == 0 {
		b.WriteString("News: no articles in the lookback window. ")
	} else {
		fmt.Fprintf(&b, "News: %s sentiment across %d articles (impact %+.2f). ",
			r.Dominant, r.ArticleCount, r.NewsImpact)
	}

	fmt.Fprintf(&b, "Momentum: blended 1D/5D return %+.2f%% (1D %+.2f%%, %dD %+.2f%%)",
		r.Momentum*100, r.Return1Day*100, r.Window5Days, r.Return5Day*100)
	if r.ReducedWindow {
		fmt.Fprintf(&b, "; 5-day window reduced to %d days", r.Window5Days)
	}
	b.WriteString(". ")

	fmt.Fprintf(&b, "Risk: %s (daily volatility %.2f%%). ", r.RiskBucket, r.RiskValue*100)

	if r.PartialHistory {
		fmt.Fprintf(&b, "Note: only %d days of history were available, so full-range analysis is limited. ", r.CoverageDays)
	}

	if r.IsTurnaround {
		b.WriteString("Setup: weak trend offset by strongly positive news; possible turnaround, needs confirmation. ")
	}

	fmt.Fprintf(&b, "Final score: %+.2f (%s).", r.FinalScore, r.Label)
	return b.String()
}

// labelFor derives the heuristic interpretability label from computed
// fields. Ladder order matters: later matches override earlier ones.
func labelFor(r *model.ScoreResult) string {
	label := "Watch"
	if r.RiskBucket == model.RiskHigh && r.FinalScore > 0 {
		label = "High Risk Watch"
	}
	if r.NewsImpact > 0 && r.Momentum > 0 {
		label = "Catalyst + Momentum"
	}
	if r.IsTurnaround {
		label = "Turnaround Watch"
	}
	return label
}

// FailureMessage maps the error taxonomy onto plain-language text in the
// same register as the explanations. Raw internal error text is never
// exposed to callers.
func FailureMessage(ticker string, err error) string {
	var insufficient *calculator.InsufficientDataError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("Not enough price history for %s yet; more end-of-day data is needed before it can be scored.", ticker)
	}

	var unavailable *provider.DataUnavailableError
	if errors.As(err, &unavailable) {
		if unavailable.Resource == "news" {
			return fmt.Sprintf("News for %s is currently unavailable; please try again later.", ticker)
		}
		return fmt.Sprintf("Market data for %s is currently unavailable; please try again later.", ticker)
	}

	var nonFinite *NonFiniteResultError
	if errors.As(err, &nonFinite) {
		return fmt.Sprintf("Scoring %s produced an invalid number and the result was discarded.", ticker)
	}

	return fmt.Sprintf("%s could not be scored right now.", ticker)
}
