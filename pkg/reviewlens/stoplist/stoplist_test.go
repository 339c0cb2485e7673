package stoplist

import (
	"sort"
	"testing"
)

func TestManagerBasic(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}

	if !mgr.IsStop("THE") {
		t.Error("lookups should be case-insensitive")
	}

	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
}

func TestManagerAddRemove(t *testing.T) {
	mgr := NewManager([]string{"the"})

	mgr.Add(" Test ")
	if !mgr.IsStop("test") {
		t.Error("'test' should be stopword after adding")
	}

	mgr.Remove("test")
	if mgr.IsStop("test") {
		t.Error("'test' should not be stopword after removing")
	}

	mgr.Add("   ")
	if mgr.Len() != 1 {
		t.Errorf("blank token should be ignored, got %d stopwords", mgr.Len())
	}
}

func TestManagerAllSorted(t *testing.T) {
	mgr := NewManager([]string{"the", "and", "a"})
	mgr.Merge([]string{"zalando", "and"})

	all := mgr.All()
	if len(all) != 4 {
		t.Fatalf("Expected 4 stopwords, got %d", len(all))
	}
	if !sort.StringsAreSorted(all) {
		t.Errorf("All() should be sorted, got %v", all)
	}
}

func TestDefault(t *testing.T) {
	mgr := Default()

	for _, w := range []string{"and", "the", "app", "zalando", "lounge", "get", "use", "has"} {
		if !mgr.IsStop(w) {
			t.Errorf("expected %q in default stoplist", w)
		}
	}
	for _, w := range []string{"great", "service", "staff", "delivery"} {
		if mgr.IsStop(w) {
			t.Errorf("%q should not be a default stopword", w)
		}
	}

	terms := DefaultTerms()
	terms[0] = "mutated"
	if DefaultTerms()[0] == "mutated" {
		t.Error("DefaultTerms should return a copy")
	}
}
