package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
)

// Record is one line of a review export.
type Record struct {
	ID            string          `json:"id"`
	Score         int             `json:"score"`
	Sentiment     string          `json:"sentiment"`
	SentimentRaw  json.RawMessage `json:"sentiment_raw"`
	SentimentType string          `json:"sentiment_type"`
	Review        *string         `json:"review"`
	Date          string          `json:"date"`
	Year          *int            `json:"year"`
	Platform      string          `json:"platform"`
}

// ToReview converts the record. Unparsable raw scores and unknown sentiment types are
// dropped so they can be derived again.
func (rec Record) ToReview() review.Review {
	r := review.Review{
		ID:             rec.ID,
		Score:          rec.Score,
		SentimentLabel: rec.Sentiment,
		SentimentRaw:   parseRaw(rec.SentimentRaw),
		Date:           rec.Date,
		Platform:       rec.Platform,
	}
	if rec.Review != nil {
		r.Text = *rec.Review
	}
	if rec.Year != nil {
		r.Year = *rec.Year
	}
	if s, err := review.ParseSentiment(rec.SentimentType); err == nil {
		r.SentimentType = s
	}
	return r
}

// parseRaw accepts a JSON number or a numeric string; anything else is absent.
func parseRaw(msg json.RawMessage) *float64 {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

// Decode reads reviews from r, one JSON object per line. Malformed lines are
// logged and skipped.
func Decode(r io.Reader, logger *zap.Logger) ([]review.Review, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var reviews []review.Review
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			logger.Warn("skipping malformed review line", zap.Int("line", line), zap.Error(err))
			continue
		}
		reviews = append(reviews, rec.ToReview())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// LoadReviews loads reviews from a JSONL file with proper error handling
func LoadReviews(path string, logger *zap.Logger) ([]review.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	if logger == nil {
		logger = zap.NewNop()
	}
	reviews, err := Decode(f, logger.With(zap.String("path", path)))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("no valid reviews found in %s: %w", path, internalerr.ErrEmptyDataset)
	}
	return reviews, nil
}

// Source serves a JSONL file as a store.Source.
type Source struct {
	Path      string
	Platforms []string // optional explicit platform tabs
	Logger    *zap.Logger
}

var _ store.Source = (*Source)(nil)

// Load implements store.Source.
func (s *Source) Load(ctx context.Context) (store.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return store.Dataset{}, err
	}
	reviews, err := LoadReviews(s.Path, s.Logger)
	if err != nil {
		return store.Dataset{}, err
	}
	return store.NewDataset(reviews, s.Platforms), nil
}

// Close implements store.Source.
func (s *Source) Close() error { return nil }

// Write encodes reviews as JSONL, the inverse of Decode.
func Write(w io.Writer, reviews []review.Review) error {
	enc := json.NewEncoder(w)
	for _, r := range reviews {
		rec := Record{
			ID:            r.ID,
			Score:         r.Score,
			Sentiment:     r.SentimentLabel,
			SentimentType: string(r.SentimentType),
			Date:          r.Date,
			Platform:      r.Platform,
		}
		if r.SentimentRaw != nil && !math.IsNaN(*r.SentimentRaw) {
			rec.SentimentRaw = json.RawMessage(strconv.FormatFloat(*r.SentimentRaw, 'g', -1, 64))
		}
		text := r.Text
		rec.Review = &text
		year := r.Year
		rec.Year = &year
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
