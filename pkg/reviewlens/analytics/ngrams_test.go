package analytics

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
)

func newTestAggregator(opts Options) *Aggregator {
	return NewAggregator(ingest.NewTokenizer(stoplist.DefaultTerms()), opts)
}

func entryCount(entries []Entry, key string) (int64, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Count, true
		}
	}
	return 0, false
}

func TestTopWordsScenario(t *testing.T) {
	records := []review.Review{
		{Score: 5, SentimentType: review.Positive, Text: "great service and great staff", Date: "2023-01-01"},
		{Score: 1, SentimentType: review.Negative, Text: "bad service", Date: "2022-06-01"},
	}
	agg := newTestAggregator(DefaultOptions())

	words := agg.TopWords(records, review.Positive)

	for _, key := range []string{"great", "service", "staff"} {
		count, ok := entryCount(words, key)
		if !ok {
			t.Errorf("expected %q in positive leaderboard, got %v", key, words)
			continue
		}
		if count != 1 {
			t.Errorf("%q count = %d, want 1 (per-comment support)", key, count)
		}
	}
	if _, ok := entryCount(words, "and"); ok {
		t.Error("stopword 'and' should not be ranked")
	}
	if _, ok := entryCount(words, "bad"); ok {
		t.Error("negative comment leaked into positive leaderboard")
	}
}

func TestTopWordsMergesPlurals(t *testing.T) {
	records := []review.Review{
		{SentimentType: review.Negative, Text: "returns are slow"},
		{SentimentType: review.Negative, Text: "the return was refused"},
		{SentimentType: review.Negative, Text: "glass broken, class action"},
	}
	agg := newTestAggregator(DefaultOptions())

	words := agg.TopWords(records, review.Negative)
	if count, _ := entryCount(words, "return"); count != 2 {
		t.Errorf("return count = %d, want 2; board %v", count, words)
	}
	if _, ok := entryCount(words, "returns"); ok {
		t.Error("plural form should be collapsed into 'return'")
	}
	if _, ok := entryCount(words, "class"); !ok {
		t.Error("'class' should be kept whole")
	}
}

func TestTopPhrasesMinSupport(t *testing.T) {
	records := []review.Review{
		{SentimentType: review.Positive, Text: "great service overall"},
		{SentimentType: review.Positive, Text: "really great service"},
		{SentimentType: review.Positive, Text: "great prices"},
	}
	agg := newTestAggregator(DefaultOptions())

	phrases := agg.TopPhrases(records, review.Positive)
	if _, ok := entryCount(phrases, "great service"); ok {
		t.Errorf("'great service' has support 2 and must be excluded, got %v", phrases)
	}

	words := agg.TopWords(records, review.Positive)
	if count, _ := entryCount(words, "great"); count != 3 {
		t.Errorf("great count = %d, want 3", count)
	}
	if count, _ := entryCount(words, "service"); count != 2 {
		t.Errorf("service count = %d, want 2", count)
	}

	records = append(records, review.Review{SentimentType: review.Positive, Text: "great services again"})
	phrases = agg.TopPhrases(records, review.Positive)
	if count, _ := entryCount(phrases, "great service"); count != 3 {
		t.Errorf("great service count = %d, want 3; board %v", count, phrases)
	}
}

func TestTopPhrasesWindowsSkipStopwords(t *testing.T) {
	records := []review.Review{
		{SentimentType: review.Negative, Text: "delivery was late"},
		{SentimentType: review.Negative, Text: "delivery is late"},
		{SentimentType: review.Negative, Text: "Delivery, late again"},
	}
	agg := newTestAggregator(DefaultOptions())

	phrases := agg.TopPhrases(records, review.Negative)
	if count, _ := entryCount(phrases, "delivery late"); count != 3 {
		t.Errorf("delivery late count = %d, want 3; board %v", count, phrases)
	}
}

func TestPerCommentVersusPerOccurrence(t *testing.T) {
	records := []review.Review{
		{SentimentType: review.Neutral, Text: "sizes sizes sizes"},
		{SentimentType: review.Neutral, Text: "size chart"},
	}

	perComment := newTestAggregator(DefaultOptions()).TopWords(records, review.Neutral)
	if count, _ := entryCount(perComment, "size"); count != 2 {
		t.Errorf("per comment: size = %d, want 2", count)
	}

	opts := DefaultOptions()
	opts.CountMode = PerOccurrence
	perOccurrence := newTestAggregator(opts).TopWords(records, review.Neutral)
	if count, _ := entryCount(perOccurrence, "size"); count != 4 {
		t.Errorf("per occurrence: size = %d, want 4", count)
	}
}

func TestTopPhrasesDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.EnableBigrams = false
	records := []review.Review{{SentimentType: review.Positive, Text: "great service"}}

	if got := newTestAggregator(opts).TopPhrases(records, review.Positive); got != nil {
		t.Errorf("expected nil when phrases disabled, got %v", got)
	}
}

func TestTopNGramsTieOrderIsFirstSeen(t *testing.T) {
	records := []review.Review{
		{SentimentType: review.Positive, Text: "zebra apple mango"},
	}
	got := newTestAggregator(DefaultOptions()).TopWords(records, review.Positive)
	want := []string{"zebra", "apple", "mango"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i].Key != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i].Key, want[i])
		}
	}
}

func TestTopNGramsEmpty(t *testing.T) {
	agg := newTestAggregator(DefaultOptions())
	if got := agg.TopWords(nil, review.Positive); len(got) != 0 {
		t.Errorf("expected empty board, got %v", got)
	}
	if got := agg.TopPhrases([]review.Review{{SentimentType: review.Positive}}, review.Positive); len(got) != 0 {
		t.Errorf("expected empty board for empty text, got %v", got)
	}
}

func randomRecords(rng *rand.Rand, n int) []review.Review {
	vocab := []string{"great", "service", "services", "staff", "delivery", "late", "price", "prices",
		"quality", "return", "returns", "size", "the", "and", "ok", "refund", "fast", "slow"}
	records := make([]review.Review, n)
	for i := range records {
		words := make([]string, 1+rng.Intn(12))
		for j := range words {
			words[j] = vocab[rng.Intn(len(vocab))]
		}
		records[i] = review.Review{
			SentimentType: review.Sentiments[rng.Intn(len(review.Sentiments))],
			Text:          strings.Join(words, " "),
		}
	}
	return records
}

func TestLeaderboardProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	agg := newTestAggregator(DefaultOptions())

	for round := 0; round < 20; round++ {
		records := randomRecords(rng, 5+rng.Intn(80))
		for _, sent := range review.Sentiments {
			bucket := 0
			for _, r := range records {
				if r.SentimentType == sent {
					bucket++
				}
			}

			words := agg.TopWords(records, sent)
			phrases := agg.TopPhrases(records, sent)

			for _, board := range [][]Entry{words, phrases} {
				if len(board) > DefaultLimit {
					t.Fatalf("board longer than %d: %d", DefaultLimit, len(board))
				}
				for i := 1; i < len(board); i++ {
					if board[i].Count > board[i-1].Count {
						t.Fatalf("board not sorted descending: %v", board)
					}
				}
			}
			for _, e := range words {
				if e.Count > int64(bucket) {
					t.Fatalf("word %q counted %d times over %d comments", e.Key, e.Count, bucket)
				}
			}
			for _, e := range phrases {
				if e.Count < DefaultMinSupport {
					t.Fatalf("phrase %q below min support: %d", e.Key, e.Count)
				}
			}
		}
	}
}
