package filter

import (
	"fmt"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// AllPlatforms disables platform filtering.
const AllPlatforms = "all"

// State is the active dashboard filter. It is a value: every UI event produces a
// new State through the With* methods instead of mutating a shared one.
type State struct {
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
	Platform  string `json:"platform"`
}

// New returns a state covering the inclusive year range on every platform.
func New(yearStart, yearEnd int) State {
	return State{YearStart: yearStart, YearEnd: yearEnd, Platform: AllPlatforms}
}

// WithYears returns a copy of s with a new inclusive year range.
func (s State) WithYears(start, end int) State {
	s.YearStart = start
	s.YearEnd = end
	return s
}

// WithPlatform returns a copy of s restricted to platform.
func (s State) WithPlatform(platform string) State {
	if platform == "" {
		platform = AllPlatforms
	}
	s.Platform = platform
	return s
}

// AnyPlatform reports whether the platform filter is disabled.
func (s State) AnyPlatform() bool {
	return s.Platform == "" || s.Platform == AllPlatforms
}

// Validate checks the year range is ordered.
func (s State) Validate() error {
	if s.YearStart > s.YearEnd {
		return fmt.Errorf("year range %d-%d: %w", s.YearStart, s.YearEnd, internalerr.ErrInvalidInput)
	}
	return nil
}

// Matches reports whether r falls inside the year range and platform selection.
func (s State) Matches(r review.Review) bool {
	if r.Year < s.YearStart || r.Year > s.YearEnd {
		return false
	}
	return s.AnyPlatform() || r.Platform == s.Platform
}

// Apply returns the records matching s, in their original order. The input slice
// is not modified.
func (s State) Apply(records []review.Review) []review.Review {
	out := make([]review.Review, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s State) String() string {
	return fmt.Sprintf("%d-%d/%s", s.YearStart, s.YearEnd, s.Platform)
}
