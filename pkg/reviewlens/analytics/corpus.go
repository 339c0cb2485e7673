package analytics

import (
	"math"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
)

// CorpusStats aggregates per-token document frequencies, overall and per
// sentiment bucket, for stoplist tuning.
type CorpusStats struct {
	totalDocs  int64
	bucketDocs map[review.Sentiment]int64
	tokenDF    map[string]int64
	bucketDF   map[string]map[review.Sentiment]int64
}

// NewCorpusStats creates an empty collector.
func NewCorpusStats() *CorpusStats {
	return &CorpusStats{
		bucketDocs: make(map[review.Sentiment]int64),
		tokenDF:    make(map[string]int64),
		bucketDF:   make(map[string]map[review.Sentiment]int64),
	}
}

// Add consumes one review's canonical tokens.
func (c *CorpusStats) Add(tokens []string, sentiment review.Sentiment) {
	c.totalDocs++
	c.bucketDocs[sentiment]++

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		c.tokenDF[tok]++
		if c.bucketDF[tok] == nil {
			c.bucketDF[tok] = make(map[review.Sentiment]int64, len(review.Sentiments))
		}
		c.bucketDF[tok][sentiment]++
	}
}

// Docs returns the number of reviews consumed.
func (c *CorpusStats) Docs() int64 {
	return c.totalDocs
}

// TokenStats converts the counts for stoplist.Manager.Suggest.
func (c *CorpusStats) TokenStats() []stoplist.TokenStats {
	if c.totalDocs == 0 {
		return nil
	}
	out := make([]stoplist.TokenStats, 0, len(c.tokenDF))
	for tok, df := range c.tokenDF {
		out = append(out, stoplist.TokenStats{
			Token:     tok,
			DF:        df,
			DFPercent: 100 * float64(df) / float64(c.totalDocs),
			Spread:    c.spread(tok),
		})
	}
	return out
}

// spread is the entropy of the token's per-bucket document rates, normalized by
// the entropy of a uniform spread over the non-empty buckets.
func (c *CorpusStats) spread(tok string) float64 {
	var rates []float64
	var total float64
	for _, s := range review.Sentiments {
		docs := c.bucketDocs[s]
		if docs == 0 {
			continue
		}
		r := float64(c.bucketDF[tok][s]) / float64(docs)
		rates = append(rates, r)
		total += r
	}
	if len(rates) < 2 || total == 0 {
		return 0
	}
	var h float64
	for _, r := range rates {
		if p := r / total; p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h / math.Log2(float64(len(rates)))
}

// Corpus collects CorpusStats over records using the aggregator's tokenizer.
func (a *Aggregator) Corpus(records []review.Review) *CorpusStats {
	c := NewCorpusStats()
	for _, r := range records {
		c.Add(ingest.CanonicalWords(a.tokenizer.Tokenize(r.Text)), r.SentimentType)
	}
	return c
}
