package analytics

import (
	"math"

	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// Display thresholds drawn over the histogram. They colour bins only and play no
// part in bin membership.
const (
	NegativeBoundary = -0.12
	PositiveBoundary = 0.61
)

// Histogram range of the raw sentiment score.
const (
	HistogramMin = -1.0
	HistogramMax = 1.0
)

// Band is the display colour class of a histogram bin.
type Band string

const (
	BandNegative Band = "negative"
	BandNeutral  Band = "neutral"
	BandPositive Band = "positive"
)

// Bin covers raw scores in [Min, Max).
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
	Band  Band    `json:"band"`
}

// Histogram bins the raw sentiment scores of records into binCount equal-width bins
// over [-1, 1]. Records without a raw score are skipped; out-of-range scores land
// in the first or last bin.
func Histogram(records []review.Review, binCount int) []Bin {
	if binCount <= 0 {
		return nil
	}
	width := (HistogramMax - HistogramMin) / float64(binCount)

	bins := make([]Bin, binCount)
	for i := range bins {
		lo := HistogramMin + float64(i)*width
		hi := HistogramMin + float64(i+1)*width
		bins[i] = Bin{Min: lo, Max: hi, Band: bandFor(lo, hi)}
	}

	for _, r := range records {
		if r.SentimentRaw == nil || math.IsNaN(*r.SentimentRaw) {
			continue
		}
		bins[binIndex(*r.SentimentRaw, width, binCount)].Count++
	}
	return bins
}

func binIndex(score, width float64, binCount int) int {
	idx := int(math.Floor((score - HistogramMin) / width))
	if idx < 0 {
		return 0
	}
	if idx > binCount-1 {
		return binCount - 1
	}
	return idx
}

func bandFor(lo, hi float64) Band {
	switch {
	case hi < NegativeBoundary:
		return BandNegative
	case lo > PositiveBoundary:
		return BandPositive
	default:
		return BandNeutral
	}
}

// MaxCount returns the largest bin count, used to scale bar heights.
func MaxCount(bins []Bin) int {
	highest := 0
	for _, b := range bins {
		if b.Count > highest {
			highest = b.Count
		}
	}
	return highest
}
