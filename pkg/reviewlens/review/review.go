package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/sentiment"
)

// Sentiment is the bucket a review is partitioned into.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Sentiments lists the buckets in display order.
var Sentiments = []Sentiment{Positive, Neutral, Negative}

// Classification thresholds applied to the raw polarity score.
const (
	PositiveThreshold = 0.15
	NegativeThreshold = -0.15
)

// Review is a single immutable review record.
type Review struct {
	ID             string    `json:"id,omitempty"`
	Score          int       `json:"score"`
	SentimentLabel string    `json:"sentiment"`
	SentimentType  Sentiment `json:"sentiment_type"`
	SentimentRaw   *float64  `json:"sentiment_raw"`
	Text           string    `json:"review"`
	Date           string    `json:"date"`
	Platform       string    `json:"platform"`
	Year           int       `json:"year"`
}

// Raw returns the raw sentiment score, or 0 when absent.
func (r Review) Raw() float64 {
	if r.SentimentRaw == nil {
		return 0
	}
	return *r.SentimentRaw
}

// Time returns the best-effort parsed date of the review.
func (r Review) Time() (time.Time, bool) {
	return ParseDate(r.Date)
}

// Classify maps a raw polarity score onto a sentiment bucket.
func Classify(raw float64) Sentiment {
	switch {
	case raw > PositiveThreshold:
		return Positive
	case raw < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Label formats a raw score for display; absent scores yield "".
func Label(raw *float64) string {
	if raw == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *raw)
}

// ParseSentiment parses a sentiment bucket name.
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive, nil
	case Neutral:
		return Neutral, nil
	case Negative:
		return Negative, nil
	}
	return "", fmt.Errorf("sentiment %q: %w", s, internalerr.ErrInvalidInput)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses s against the known layouts. The second result is false when no
// layout matched; callers get the zero time in that case.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize fills derived fields that a source left empty: the sentiment bucket and
// label from the raw score, and the year from the date. A review with text but
// neither a raw score nor a bucket is scored from its text.
func Normalize(r Review) Review {
	if r.SentimentRaw == nil && r.SentimentType == "" && strings.TrimSpace(r.Text) != "" {
		raw := sentiment.Score(r.Text)
		r.SentimentRaw = &raw
	}
	if r.SentimentType == "" {
		r.SentimentType = Classify(r.Raw())
	}
	if r.SentimentLabel == "" {
		r.SentimentLabel = Label(r.SentimentRaw)
	}
	if r.Year == 0 {
		if t, ok := r.Time(); ok {
			r.Year = t.Year()
		}
	}
	return r
}
