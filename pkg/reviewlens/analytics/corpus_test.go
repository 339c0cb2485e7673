package analytics

import (
	"math"
	"testing"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
)

func statsByToken(stats []stoplist.TokenStats) map[string]stoplist.TokenStats {
	out := make(map[string]stoplist.TokenStats, len(stats))
	for _, s := range stats {
		out[s.Token] = s
	}
	return out
}

func TestCorpusStatsSpread(t *testing.T) {
	c := NewCorpusStats()
	// "shop" appears at the same rate in every bucket, "broken" only in negatives.
	c.Add([]string{"shop", "great"}, review.Positive)
	c.Add([]string{"great"}, review.Positive)
	c.Add([]string{"shop", "fine"}, review.Neutral)
	c.Add([]string{"fine"}, review.Neutral)
	c.Add([]string{"shop", "broken", "broken"}, review.Negative)
	c.Add([]string{"broken"}, review.Negative)

	if c.Docs() != 6 {
		t.Fatalf("Docs = %d", c.Docs())
	}
	stats := statsByToken(c.TokenStats())

	shop := stats["shop"]
	if shop.DF != 3 || math.Abs(shop.DFPercent-50) > 1e-9 {
		t.Errorf("shop df = %d (%.1f%%)", shop.DF, shop.DFPercent)
	}
	if math.Abs(shop.Spread-1) > 1e-9 {
		t.Errorf("shop spread = %f, want 1", shop.Spread)
	}

	broken := stats["broken"]
	if broken.DF != 2 {
		t.Errorf("broken counted per review, got df %d", broken.DF)
	}
	if broken.Spread != 0 {
		t.Errorf("broken spread = %f, want 0", broken.Spread)
	}
}

func TestCorpusStatsEmpty(t *testing.T) {
	if got := NewCorpusStats().TokenStats(); got != nil {
		t.Errorf("expected nil stats, got %v", got)
	}
}

func TestAggregatorCorpusUsesCanonicalWords(t *testing.T) {
	agg := NewAggregator(ingest.NewTokenizer([]string{"the"}), DefaultOptions())
	c := agg.Corpus([]review.Review{
		{Text: "the orders", SentimentType: review.Positive},
		{Text: "order late", SentimentType: review.Negative},
	})
	stats := statsByToken(c.TokenStats())
	if stats["order"].DF != 2 {
		t.Errorf("order df = %d, want 2", stats["order"].DF)
	}
	if _, ok := stats["the"]; ok {
		t.Error("stopwords should not be counted")
	}
}
