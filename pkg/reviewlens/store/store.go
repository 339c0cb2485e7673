package store

import (
	"context"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

// Source materializes the review dataset once, before the first render.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
	Close() error
}

// Dataset is the immutable input of the dashboard.
type Dataset struct {
	Reviews   []review.Review
	Platforms []string
}

// NewDataset normalizes reviews (sentiment bucket, label and year derived from the
// raw fields when missing), mints IDs for records without one and, when platforms
// is nil, derives the platform set from the records.
func NewDataset(reviews []review.Review, platforms []string) Dataset {
	out := make([]review.Review, len(reviews))
	for i, r := range reviews {
		r = review.Normalize(r)
		if r.ID == "" {
			r.ID = ulid.Make().String()
		}
		out[i] = r
	}
	if platforms == nil {
		platforms = DistinctPlatforms(out)
	} else {
		platforms = append([]string(nil), platforms...)
	}
	return Dataset{Reviews: out, Platforms: platforms}
}

// DistinctPlatforms returns the sorted set of non-empty platform names.
func DistinctPlatforms(reviews []review.Review) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range reviews {
		if r.Platform == "" {
			continue
		}
		if _, ok := seen[r.Platform]; ok {
			continue
		}
		seen[r.Platform] = struct{}{}
		out = append(out, r.Platform)
	}
	sort.Strings(out)
	return out
}

// PlainText returns a copy of the dataset with markup stripped from review bodies.
func (d Dataset) PlainText() Dataset {
	out := make([]review.Review, len(d.Reviews))
	for i, r := range d.Reviews {
		r.Text = ingest.StripMarkup(r.Text)
		out[i] = r
	}
	return Dataset{Reviews: out, Platforms: append([]string(nil), d.Platforms...)}
}

// YearBounds returns the smallest and largest year present. ok is false when no
// record carries a year.
func (d Dataset) YearBounds() (lo, hi int, ok bool) {
	for _, r := range d.Reviews {
		if r.Year == 0 {
			continue
		}
		if !ok {
			lo, hi, ok = r.Year, r.Year, true
			continue
		}
		if r.Year < lo {
			lo = r.Year
		}
		if r.Year > hi {
			hi = r.Year
		}
	}
	return lo, hi, ok
}

// Len returns the number of reviews.
func (d Dataset) Len() int {
	return len(d.Reviews)
}
