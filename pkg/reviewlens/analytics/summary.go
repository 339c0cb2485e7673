package analytics

import (
	"math"

	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// Summary holds the headline numbers of a filtered set.
type Summary struct {
	Total            int     `json:"total"`
	AverageSentiment float64 `json:"average_sentiment"`
	PositivePct      float64 `json:"positive_pct"`
	NeutralPct       float64 `json:"neutral_pct"`
	NegativePct      float64 `json:"negative_pct"`

	Counts map[review.Sentiment]int `json:"counts"`
}

// Summarize computes totals, the mean raw sentiment and the share of each bucket.
// Absent or NaN raw scores count as 0 in the mean. An empty set yields zeros.
func Summarize(records []review.Review) Summary {
	s := Summary{
		Total:  len(records),
		Counts: make(map[review.Sentiment]int, len(review.Sentiments)),
	}
	for _, sent := range review.Sentiments {
		s.Counts[sent] = 0
	}
	if s.Total == 0 {
		return s
	}

	var sum float64
	for _, r := range records {
		if raw := r.Raw(); !math.IsNaN(raw) {
			sum += raw
		}
		if _, ok := s.Counts[r.SentimentType]; ok {
			s.Counts[r.SentimentType]++
		}
	}

	total := float64(s.Total)
	s.AverageSentiment = sum / total
	s.PositivePct = float64(s.Counts[review.Positive]) / total * 100
	s.NeutralPct = float64(s.Counts[review.Neutral]) / total * 100
	s.NegativePct = float64(s.Counts[review.Negative]) / total * 100
	return s
}

// Star ratings shown in the tables, highest first.
var Stars = []int{5, 4, 3, 2, 1}

// StarRow is one row of the star-count table.
type StarRow struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

// StarCounts counts records per star rating, rows ordered 5 to 1. Scores outside
// 1..5 are ignored.
func StarCounts(records []review.Review) []StarRow {
	counts := make(map[int]int, len(Stars))
	for _, r := range records {
		if r.Score >= 1 && r.Score <= 5 {
			counts[r.Score]++
		}
	}
	rows := make([]StarRow, len(Stars))
	for i, star := range Stars {
		rows[i] = StarRow{Stars: star, Count: counts[star]}
	}
	return rows
}

// CrossTab counts records per (star rating, sentiment) cell.
type CrossTab struct {
	Sentiments []review.Sentiment `json:"sentiments"`
	Rows       []CrossTabRow      `json:"rows"`
}

// CrossTabRow holds one star rating's counts, aligned with CrossTab.Sentiments.
type CrossTabRow struct {
	Stars  int   `json:"stars"`
	Counts []int `json:"counts"`
}

// CrossTabulate builds the 5x3 star by sentiment grid.
func CrossTabulate(records []review.Review) CrossTab {
	col := make(map[review.Sentiment]int, len(review.Sentiments))
	for i, s := range review.Sentiments {
		col[s] = i
	}
	row := make(map[int]int, len(Stars))
	for i, star := range Stars {
		row[star] = i
	}

	ct := CrossTab{
		Sentiments: append([]review.Sentiment(nil), review.Sentiments...),
		Rows:       make([]CrossTabRow, len(Stars)),
	}
	for i, star := range Stars {
		ct.Rows[i] = CrossTabRow{Stars: star, Counts: make([]int, len(review.Sentiments))}
	}

	for _, r := range records {
		ri, okRow := row[r.Score]
		ci, okCol := col[r.SentimentType]
		if okRow && okCol {
			ct.Rows[ri].Counts[ci]++
		}
	}
	return ct
}

// Cell returns the count for a star rating and sentiment, or 0 when out of range.
func (ct CrossTab) Cell(stars int, sentiment review.Sentiment) int {
	for _, row := range ct.Rows {
		if row.Stars != stars {
			continue
		}
		for i, s := range ct.Sentiments {
			if s == sentiment {
				return row.Counts[i]
			}
		}
	}
	return 0
}
