package query

import (
	"sort"
	"strings"
	"time"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// DrillDown is a leaderboard click: the displayed key and the bucket it came from.
type DrillDown struct {
	Key       string           `json:"key"`
	Sentiment review.Sentiment `json:"sentiment"`
}

// IsPhrase reports whether the key spans more than one word.
func (d DrillDown) IsPhrase() bool {
	return strings.Contains(d.Key, " ")
}

// Matcher expands a leaderboard key into the comments that contain it, using the
// same tokenization and canonical forms as the leaderboards.
type Matcher struct {
	tokenizer *ingest.Tokenizer
}

// NewMatcher creates a matcher over the given tokenizer.
func NewMatcher(tokenizer *ingest.Tokenizer) *Matcher {
	return &Matcher{tokenizer: tokenizer}
}

// Match returns the records of the requested bucket whose canonical tokens contain
// the key, newest first. A single-word key matches any token; a phrase matches a
// run of consecutive tokens.
func (m *Matcher) Match(records []review.Review, d DrillDown) []review.Review {
	want := strings.Split(ingest.CanonicalKey(d.Key), " ")
	phrase := d.IsPhrase()

	var out []review.Review
	for _, r := range records {
		if r.SentimentType != d.Sentiment {
			continue
		}
		canon := ingest.CanonicalWords(m.tokenizer.Tokenize(r.Text))
		var ok bool
		if phrase {
			ok = containsRun(canon, want)
		} else {
			ok = contains(canon, want[0])
		}
		if ok {
			out = append(out, r)
		}
	}

	SortNewestFirst(out)
	return out
}

func contains(tokens []string, key string) bool {
	for _, tok := range tokens {
		if tok == key {
			return true
		}
	}
	return false
}

// containsRun reports whether run appears as consecutive elements of tokens.
func containsRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		match := true
		for j := range run {
			if tokens[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// SortNewestFirst orders records by parsed date, newest first. Records whose date
// does not parse sort after all dated ones; ties keep their input order.
func SortNewestFirst(records []review.Review) {
	times := make(map[int]time.Time, len(records))
	idx := make([]int, len(records))
	for i, r := range records {
		idx[i] = i
		if t, ok := r.Time(); ok {
			times[i] = t
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return times[idx[a]].After(times[idx[b]])
	})

	sorted := make([]review.Review, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}
