// Package reviewlens wires the filter, aggregation and drill-down stages into a
// single dashboard render.
package reviewlens

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/reviewlens/pkg/reviewlens/analytics"
	"github.com/cognicore/reviewlens/pkg/reviewlens/cards"
	"github.com/cognicore/reviewlens/pkg/reviewlens/filter"
	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/query"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
)

// Dashboard is the main facade over a loaded review set. It holds no filter
// state; every Render call takes the state it should show.
//
// A Dashboard is not safe for concurrent use.
type Dashboard struct {
	dataset    store.Dataset
	aggregator *analytics.Aggregator
	matcher    *query.Matcher
	cards      *cards.Builder
	logger     *zap.Logger
}

// Options configures a Dashboard instance
type Options struct {
	Dataset     store.Dataset
	Tokenizer   *ingest.Tokenizer // nil uses the built-in stoplist
	Analytics   analytics.Options // zero value uses analytics.DefaultOptions
	StripMarkup bool
	Logger      *zap.Logger
}

// New creates a Dashboard with the given dependencies. It fails with
// internalerr.ErrInvalidConfig when the analytics options cannot be honored.
func New(opts Options) (*Dashboard, error) {
	aopts := opts.Analytics
	if aopts == (analytics.Options{}) {
		aopts = analytics.DefaultOptions()
	}
	if err := aopts.Validate(); err != nil {
		return nil, fmt.Errorf("dashboard analytics: %w", err)
	}

	tok := opts.Tokenizer
	if tok == nil {
		tok = ingest.NewTokenizer(stoplist.DefaultTerms())
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ds := opts.Dataset
	if opts.StripMarkup {
		ds = ds.PlainText()
	}
	return &Dashboard{
		dataset:    ds,
		aggregator: analytics.NewAggregator(tok, aopts),
		matcher:    query.NewMatcher(tok),
		cards:      cards.New(),
		logger:     logger,
	}, nil
}

// Snapshot is everything the presentation layer draws for one filter state.
type Snapshot struct {
	ID        string              `json:"id"`
	Filter    filter.State        `json:"filter"`
	Summary   analytics.Summary   `json:"summary"`
	Stars     []analytics.StarRow `json:"stars"`
	CrossTab  analytics.CrossTab  `json:"cross_tab"`
	Histogram []analytics.Bin     `json:"histogram,omitempty"`
	Words     []cards.Leaderboard `json:"words"`
	Phrases   []cards.Leaderboard `json:"phrases,omitempty"`
	Comments  *cards.Comments     `json:"comments,omitempty"`
}

// Board returns the word (size 1) or phrase leaderboard of a sentiment bucket.
func (s Snapshot) Board(sentiment review.Sentiment, size int) (cards.Leaderboard, bool) {
	boards := s.Words
	if size > 1 {
		boards = s.Phrases
	}
	for _, b := range boards {
		if b.Sentiment == sentiment && b.Size == size {
			return b, true
		}
	}
	return cards.Leaderboard{}, false
}

// Render computes the dashboard for state. When drill is non-nil the comments of
// its bucket containing its key are listed as well. Rendering the same state twice
// yields the same content.
func (d *Dashboard) Render(state filter.State, drill *query.DrillDown) Snapshot {
	records := state.Apply(d.dataset.Reviews)
	opts := d.aggregator.Options()

	snap := Snapshot{
		ID:       d.cards.NewID(),
		Filter:   state,
		Summary:  analytics.Summarize(records),
		Stars:    analytics.StarCounts(records),
		CrossTab: analytics.CrossTabulate(records),
	}
	if opts.EnableHistogram {
		snap.Histogram = analytics.Histogram(records, opts.HistogramBins)
	}

	for _, sent := range review.Sentiments {
		snap.Words = append(snap.Words, d.cards.Leaderboard(sent, 1, d.aggregator.TopWords(records, sent)))
		if opts.EnableBigrams {
			snap.Phrases = append(snap.Phrases, d.cards.Leaderboard(sent, opts.PhraseSize, d.aggregator.TopPhrases(records, sent)))
		}
	}

	if drill != nil {
		matched := d.matcher.Match(records, *drill)
		card := d.cards.Comments(*drill, matched)
		snap.Comments = &card
	}

	d.logger.Debug("rendered dashboard",
		zap.Stringer("filter", state),
		zap.Int("records", len(records)),
		zap.Bool("drill_down", drill != nil),
	)
	return snap
}

// DrillDown lists the comments behind a leaderboard key without recomputing the
// leaderboards.
func (d *Dashboard) DrillDown(state filter.State, drill query.DrillDown) cards.Comments {
	return d.cards.Comments(drill, d.matcher.Match(state.Apply(d.dataset.Reviews), drill))
}

// YearBounds returns the year range the slider starts with. An empty dataset
// spans last year to the current year.
func (d *Dashboard) YearBounds() (lo, hi int) {
	if lo, hi, ok := d.dataset.YearBounds(); ok {
		return lo, hi
	}
	now := time.Now().Year()
	return now - 1, now
}

// InitialState is the unfiltered state over the full year range.
func (d *Dashboard) InitialState() filter.State {
	return filter.New(d.YearBounds())
}

// Platforms returns the platform tabs, "all" first.
func (d *Dashboard) Platforms() []string {
	out := make([]string, 0, len(d.dataset.Platforms)+1)
	out = append(out, filter.AllPlatforms)
	for _, p := range d.dataset.Platforms {
		if p != filter.AllPlatforms {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of loaded reviews.
func (d *Dashboard) Len() int {
	return d.dataset.Len()
}
