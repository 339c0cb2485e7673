package analytics

import (
	"fmt"
	"strings"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
)

// CountMode selects how often a key is counted per comment.
type CountMode int

const (
	// PerComment counts a key at most once per comment (support).
	PerComment CountMode = iota
	// PerOccurrence counts every raw occurrence of a key.
	PerOccurrence
)

func (m CountMode) String() string {
	switch m {
	case PerComment:
		return "per_comment"
	case PerOccurrence:
		return "per_occurrence"
	}
	return fmt.Sprintf("CountMode(%d)", int(m))
}

// ParseCountMode parses the names produced by CountMode.String.
func ParseCountMode(s string) (CountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per_comment", "per-comment", "comment":
		return PerComment, nil
	case "per_occurrence", "per-occurrence", "occurrence":
		return PerOccurrence, nil
	}
	return PerComment, fmt.Errorf("count mode %q: %w", s, internalerr.ErrInvalidConfig)
}

// Leaderboard and histogram defaults.
const (
	DefaultLimit         = 10
	DefaultMinSupport    = 3
	DefaultPhraseSize    = 2
	DefaultHistogramBins = 20
)

// Options configures the aggregation pipeline.
type Options struct {
	CountMode       CountMode
	Limit           int // entries per leaderboard
	MinSupport      int64
	PhraseSize      int // n for phrase leaderboards
	EnableBigrams   bool
	EnableHistogram bool
	HistogramBins   int
}

// DefaultOptions returns the dashboard defaults: per-comment counting, top 10,
// bigrams with support of at least 3 and a 20-bin histogram.
func DefaultOptions() Options {
	return Options{
		CountMode:       PerComment,
		Limit:           DefaultLimit,
		MinSupport:      DefaultMinSupport,
		PhraseSize:      DefaultPhraseSize,
		EnableBigrams:   true,
		EnableHistogram: true,
		HistogramBins:   DefaultHistogramBins,
	}
}

// Validate rejects option values the pipeline cannot honor.
func (o Options) Validate() error {
	switch {
	case o.Limit <= 0:
		return fmt.Errorf("limit %d: %w", o.Limit, internalerr.ErrInvalidConfig)
	case o.MinSupport < 0:
		return fmt.Errorf("min support %d: %w", o.MinSupport, internalerr.ErrInvalidConfig)
	case o.PhraseSize < 2 || o.PhraseSize > 3:
		return fmt.Errorf("phrase size %d: %w", o.PhraseSize, internalerr.ErrInvalidConfig)
	case o.EnableHistogram && o.HistogramBins <= 0:
		return fmt.Errorf("histogram bins %d: %w", o.HistogramBins, internalerr.ErrInvalidConfig)
	case o.CountMode != PerComment && o.CountMode != PerOccurrence:
		return fmt.Errorf("count mode %v: %w", o.CountMode, internalerr.ErrInvalidConfig)
	}
	return nil
}
