package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/cognicore/reviewlens/internal/jsonl"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store/sqlite"
)

const fixture = `{"id": "r1", "score": 4, "sentiment_raw": 0.3, "review": "quick delivery", "date": "2024-01-10", "platform": "web"}
{"id": "r2", "score": 2, "sentiment_raw": -0.6, "review": "late parcel", "date": "2024-03-02", "platform": "ios"}
`

func TestImportThenExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "reviews.jsonl")
	dbPath := filepath.Join(dir, "reviews.db")
	if err := os.WriteFile(dataPath, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := importReviews(ctx, dbPath, dataPath, []string{"web", "ios"}, zap.NewNop())
	if err != nil {
		t.Fatalf("importReviews: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := st.Load(ctx)
	st.Close()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ds.Platforms, []string{"web", "ios"}) {
		t.Errorf("platforms = %v", ds.Platforms)
	}

	var buf bytes.Buffer
	n, err = exportReviews(ctx, dbPath, &buf)
	if err != nil {
		t.Fatalf("exportReviews: %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d, want 2", n)
	}
	out, err := jsonl.Decode(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].ID != "r2" || out[1].ID != "r1" {
		t.Errorf("expected newest first, got %+v", out)
	}
	if out[0].SentimentLabel != "-0.60" {
		t.Errorf("label = %q", out[0].SentimentLabel)
	}
}

func TestImportMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := importReviews(context.Background(), filepath.Join(dir, "x.db"), filepath.Join(dir, "missing.jsonl"), nil, zap.NewNop()); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" ios, ,android ,")
	if !reflect.DeepEqual(got, []string{"ios", "android"}) {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("empty list should be nil")
	}
}
