package sentiment

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"positive", "Great service", 0.8},
		{"negative", "Terrible delivery, awful support", -1.0},
		{"mixed", "good but slow", 0.2},
		{"negated", "not good", -0.35},
		{"contraction negates", "It wasn't good", -0.35},
		{"intensified", "very good", 0.91},
		{"intensified then negated", "not very good", -0.455},
		{"intensifier clamps", "extremely excellent", 1.0},
		{"no lexicon words", "the parcel arrived on tuesday", 0},
		{"empty", "", 0},
		{"case insensitive", "GREAT", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text); !approx(got, tt.want) {
				t.Errorf("Score(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeCounts(t *testing.T) {
	res := Analyze("Good shoes but slow and late delivery")
	if res.Total != 7 {
		t.Errorf("Total = %d, want 7", res.Total)
	}
	if res.Scored != 3 || res.Positive != 1 || res.Negative != 2 {
		t.Errorf("counts = %+v", res)
	}
	if want := (0.7 - 0.3 - 0.3) / 3; !approx(res.Score, want) {
		t.Errorf("Score = %v, want %v", res.Score, want)
	}
}

func TestNegationFlipsNegativeWords(t *testing.T) {
	if got := Score("no problems at all"); got <= 0 {
		t.Errorf("negated negative word should score positive, got %v", got)
	}
}

func TestNeutralShortWordsAreUnscored(t *testing.T) {
	for _, w := range []string{"ok", "new", "shoes"} {
		if Known(w) {
			t.Errorf("%q should not carry polarity", w)
		}
	}
	if !Known("Excellent") {
		t.Error("lookup should be case insensitive")
	}
}

func TestParseLexicon(t *testing.T) {
	m := parseLexicon("# comment\n\ngood\t0.5\nbad\tx\nloud\t3\nbroken line\n")
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %v", m)
	}
	if m["good"] != 0.5 {
		t.Errorf("good = %v", m["good"])
	}
	if m["loud"] != 1 {
		t.Errorf("out-of-range score should clamp, got %v", m["loud"])
	}
}

func TestEmbeddedLexiconLoaded(t *testing.T) {
	if len(lexicon) < 50 {
		t.Fatalf("embedded lexicon too small: %d entries", len(lexicon))
	}
	for w, s := range lexicon {
		if s < -1 || s > 1 {
			t.Errorf("%q score %v out of range", w, s)
		}
	}
}
