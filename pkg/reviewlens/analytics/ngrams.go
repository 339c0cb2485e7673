package analytics

import (
	"sort"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// Entry is one ranked leaderboard row.
type Entry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Aggregator ranks canonical words and phrases per sentiment bucket.
type Aggregator struct {
	tokenizer *ingest.Tokenizer
	opts      Options
}

// NewAggregator creates an aggregator over the given tokenizer.
func NewAggregator(tokenizer *ingest.Tokenizer, opts Options) *Aggregator {
	return &Aggregator{tokenizer: tokenizer, opts: opts}
}

// Options returns the aggregator configuration.
func (a *Aggregator) Options() Options {
	return a.opts
}

// TopWords ranks canonical words in the sentiment bucket.
func (a *Aggregator) TopWords(records []review.Review, sentiment review.Sentiment) []Entry {
	return a.TopNGrams(records, sentiment, 1, a.opts.Limit, a.opts.MinSupport)
}

// TopPhrases ranks canonical phrases of the configured size in the sentiment bucket.
// It returns nil when phrases are disabled.
func (a *Aggregator) TopPhrases(records []review.Review, sentiment review.Sentiment) []Entry {
	if !a.opts.EnableBigrams {
		return nil
	}
	return a.TopNGrams(records, sentiment, a.opts.PhraseSize, a.opts.Limit, a.opts.MinSupport)
}

// TopNGrams counts canonical n-gram keys over the records of one sentiment bucket
// and returns the limit highest counts, descending.
//
// In PerComment mode a key counts once per comment that contains it. Keys of two
// or more words below minSupport are dropped; single words have no floor. Equal
// counts keep the order in which keys were first seen.
func (a *Aggregator) TopNGrams(records []review.Review, sentiment review.Sentiment, n, limit int, minSupport int64) []Entry {
	c := newCounter()
	for _, r := range records {
		if r.SentimentType != sentiment {
			continue
		}
		keys := ingest.NGrams(a.tokenizer.Tokenize(r.Text), n)
		if a.opts.CountMode == PerOccurrence {
			c.addAll(keys)
		} else {
			c.addUnique(keys)
		}
	}

	floor := int64(0)
	if n >= 2 {
		floor = minSupport
	}
	return c.top(limit, floor)
}

// counter tallies keys and remembers first-seen order for stable ties.
type counter struct {
	counts map[string]int64
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int64)}
}

func (c *counter) inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) addAll(keys []string) {
	for _, k := range keys {
		c.inc(k)
	}
}

func (c *counter) addUnique(keys []string) {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		c.inc(k)
	}
}

func (c *counter) top(limit int, minCount int64) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		if count := c.counts[k]; count >= minCount {
			entries = append(entries, Entry{Key: k, Count: count})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
