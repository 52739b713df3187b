package calculator

import (
	"strings"
	"unicode"

	"github.com/ankurmani/stock-mvp/internal/model"
)

// ClassifySentiment labels one article by keyword polarity scoring over its
// title and description. Ties and empty text classify as Neutral. No
// external model calls: same text in, same label out, always.
func ClassifySentiment(a model.NewsArticle) model.SentimentLabel {
	score := 0
	for _, tok := range tokenize(a.Title + " " + a.Description) {
		score += polarity[tok]
	}
	switch {
	case score > 0:
		return model.SentimentPositive
	case score < 0:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// SentimentSummary aggregates per-article labels for one batch.
type SentimentSummary struct {
	ArticleCount int
	Positive     int
	Neutral      int
	Negative     int
	Net          int     // Positive - Negative
	Impact       float64 // Net normalized by article volume, in [-1, 1]
	Dominant     model.SentimentLabel
}

// NewsImpact classifies every article in the batch and folds the labels
// into a single impact scalar: net positive-minus-negative count divided by
// the article count. More positive articles raise impact, more negative
// articles lower it; an empty batch yields impact 0 with count 0 and no
// division takes place.
func NewsImpact(batch *model.NewsBatch) SentimentSummary {
	sum := SentimentSummary{Dominant: model.SentimentNeutral}
	if batch == nil || len(batch.Articles) == 0 {
		return sum
	}

	for _, a := range batch.Articles {
		switch ClassifySentiment(a) {
		case model.SentimentPositive:
			sum.Positive++
		case model.SentimentNegative:
			sum.Negative++
		default:
			sum.Neutral++
		}
	}

	sum.ArticleCount = len(batch.Articles)
	sum.Net = sum.Positive - sum.Negative
	sum.Impact = float64(sum.Net) / float64(sum.ArticleCount)

	switch {
	case sum.Net > 0:
		sum.Dominant = model.SentimentPositive
	case sum.Net < 0:
		sum.Dominant = model.SentimentNegative
	}
	return sum
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
