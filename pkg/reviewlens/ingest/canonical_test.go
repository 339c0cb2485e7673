package ingest

import (
	"reflect"
	"testing"
)

func TestCanonicalWord(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"services", "service"},
		{"class", "class"},
		{"business", "business"},
		{"gas", "gas"},
		{"has", "has"},
		{"news", "new"},
		{"shoes", "shoe"},
		{"staff", "staff"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CanonicalWord(tc.in); got != tc.want {
			t.Errorf("CanonicalWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalWordIdempotent(t *testing.T) {
	for _, w := range []string{"services", "class", "gas", "bass", "dresses", "news", "glasses", "sss", "ssss", "items"} {
		once := CanonicalWord(w)
		if twice := CanonicalWord(once); twice != once {
			t.Errorf("CanonicalWord not idempotent for %q: %q then %q", w, once, twice)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	if got := CanonicalKey("great services"); got != "great service" {
		t.Errorf("got %q, want %q", got, "great service")
	}
	if got := CanonicalKey("returns"); got != "return" {
		t.Errorf("got %q, want %q", got, "return")
	}
	if got := CanonicalPhrase([]string{"fast", "deliveries"}); got != "fast deliverie" {
		t.Errorf("got %q", got)
	}
}

func TestNGrams(t *testing.T) {
	tokens := []string{"great", "services", "great", "staff"}

	if got := NGrams(tokens, 1); !reflect.DeepEqual(got, []string{"great", "service", "great", "staff"}) {
		t.Errorf("unigrams: %v", got)
	}

	want := []string{"great service", "service great", "great staff"}
	if got := NGrams(tokens, 2); !reflect.DeepEqual(got, want) {
		t.Errorf("bigrams: got %v, want %v", got, want)
	}

	if got := NGrams(tokens[:1], 2); got != nil {
		t.Errorf("expected nil for short input, got %v", got)
	}
	if got := NGrams(tokens, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}
