package model

import "time"

// SentimentLabel classifies a single article or an aggregate.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// NewsArticle is one headline returned by the news provider.
// Description may be empty. Duplicates are tolerated and counted.
type NewsArticle struct {
	Title       string
	Description string
	PublishedAt time.Time
	Source      string
}

// NewsBatch holds recent articles for one ticker, in provider return order.
type NewsBatch struct {
	Ticker   string
	Articles []NewsArticle
}
