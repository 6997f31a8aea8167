package model

import "strings"

// Sentiment is the tone of a query as judged by the classifier.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

func (s Sentiment) String() string {
	return string(s)
}

// ParseSentiment maps free classifier output onto the three labels.
// Anything unrecognised is Neutral.
func ParseSentiment(raw string) Sentiment {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(text, "negative"):
		return SentimentNegative
	case strings.Contains(text, "positive"):
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}
