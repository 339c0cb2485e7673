package memstore

import (
	"context"
	"testing"

	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
)

func raw(f float64) *float64 { return &f }

func TestLoadNormalizes(t *testing.T) {
	s := New(
		review.Review{Score: 4, SentimentRaw: raw(0.4), Text: "good", Date: "2022-04-01", Platform: "ios"},
		review.Review{ID: "fixed", Score: 1, SentimentRaw: raw(-0.4), Text: "bad", Date: "2021-01-05", Platform: "android"},
	)

	ds, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 reviews, got %d", ds.Len())
	}
	first := ds.Reviews[0]
	if first.ID == "" {
		t.Error("expected minted ID")
	}
	if first.SentimentType != review.Positive || first.Year != 2022 || first.SentimentLabel != "0.40" {
		t.Errorf("review not normalized: %+v", first)
	}
	if ds.Reviews[1].ID != "fixed" {
		t.Errorf("existing ID replaced: %q", ds.Reviews[1].ID)
	}
	if len(ds.Platforms) != 2 || ds.Platforms[0] != "android" || ds.Platforms[1] != "ios" {
		t.Errorf("platforms = %v", ds.Platforms)
	}
}

func TestSetPlatforms(t *testing.T) {
	s := New(review.Review{Platform: "ios"})
	s.SetPlatforms([]string{"web", "ios"})

	ds, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Platforms) != 2 || ds.Platforms[0] != "web" {
		t.Errorf("explicit platforms should be kept in order, got %v", ds.Platforms)
	}
}

func TestLoadDoesNotAlias(t *testing.T) {
	s := New(review.Review{Text: "original"})
	ds, _ := s.Load(context.Background())
	ds.Reviews[0].Text = "changed"

	again, _ := s.Load(context.Background())
	if again.Reviews[0].Text != "original" {
		t.Error("dataset aliases store memory")
	}

	s.Add(review.Review{Text: "second"})
	again, _ = s.Load(context.Background())
	if again.Len() != 2 {
		t.Errorf("expected 2 reviews after Add, got %d", again.Len())
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Load(ctx); err == nil {
		t.Error("expected error on cancelled context")
	}
}
