package cards

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/reviewlens/pkg/reviewlens/analytics"
	"github.com/cognicore/reviewlens/pkg/reviewlens/highlight"
	"github.com/cognicore/reviewlens/pkg/reviewlens/query"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// Builder constructs the display cards handed to the renderer.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a new card builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a fresh, time-ordered identifier.
func (b *Builder) NewID() string {
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Leaderboard is one ranked word or phrase table.
type Leaderboard struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Sentiment review.Sentiment  `json:"sentiment"`
	Size      int               `json:"size"` // words per key
	Entries   []analytics.Entry `json:"entries"`
}

// Comments is the drill-down listing shown under the leaderboards.
type Comments struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Key       string           `json:"key"`
	Sentiment review.Sentiment `json:"sentiment"`
	Visible   bool             `json:"visible"`
	Rows      []CommentRow     `json:"rows"`
}

// CommentRow is a single comment with the key highlighted.
type CommentRow struct {
	ReviewID       string           `json:"review_id,omitempty"`
	Score          int              `json:"score"`
	SentimentLabel string           `json:"sentiment"`
	SentimentType  review.Sentiment `json:"sentiment_type"`
	HTML           string           `json:"html"`
	Date           string           `json:"date"`
	Platform       string           `json:"platform"`
}

// Leaderboard builds a word (size 1) or phrase leaderboard card.
func (b *Builder) Leaderboard(sentiment review.Sentiment, size int, entries []analytics.Entry) Leaderboard {
	if entries == nil {
		entries = []analytics.Entry{}
	}
	return Leaderboard{
		ID:        b.NewID(),
		Title:     LeaderboardTitle(sentiment, size),
		Sentiment: sentiment,
		Size:      size,
		Entries:   entries,
	}
}

// LeaderboardTitle names a leaderboard, e.g. "Top Words in Negative Reviews".
func LeaderboardTitle(sentiment review.Sentiment, size int) string {
	if size <= 1 {
		return fmt.Sprintf("Top Words in %s Reviews", titleCase(string(sentiment)))
	}
	return fmt.Sprintf("Top Phrases (%d words) in %s Reviews", size, titleCase(string(sentiment)))
}

// Comments builds the drill-down card for matched records. The card is hidden when
// nothing matched.
func (b *Builder) Comments(d query.DrillDown, matched []review.Review) Comments {
	card := Comments{
		ID:        b.NewID(),
		Title:     CommentsTitle(d, len(matched)),
		Key:       d.Key,
		Sentiment: d.Sentiment,
		Visible:   len(matched) > 0,
		Rows:      make([]CommentRow, 0, len(matched)),
	}
	for _, r := range matched {
		card.Rows = append(card.Rows, CommentRow{
			ReviewID:       r.ID,
			Score:          r.Score,
			SentimentLabel: r.SentimentLabel,
			SentimentType:  r.SentimentType,
			HTML:           highlight.Highlight(r.Text, d.Key),
			Date:           r.Date,
			Platform:       r.Platform,
		})
	}
	return card
}

// CommentsTitle is the heading of the drill-down listing.
func CommentsTitle(d query.DrillDown, n int) string {
	return fmt.Sprintf("All %d %s comments containing %q", n, d.Sentiment, d.Key)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
