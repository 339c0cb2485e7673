package ingest

import (
	"strings"
	"unicode"
)

// MinTokenLength is the shortest token kept by the tokenizer.
const MinTokenLength = 3

// Tokenizer turns review text into candidate tokens.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize lowercases text, drops every rune that is not an ASCII letter or
// whitespace, splits on whitespace and removes stopwords and short tokens.
//
// Dropped runes do not split words: "don't" becomes "dont".
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := current.String(); t.keep(word) {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			current.WriteRune(r)
		case isSpace(r):
			flush()
		}
	}
	flush()

	return tokens
}

// isSpace reports word separators: Unicode white space and the byte order mark.
// NEL (U+0085) is not a separator.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\ufeff' || unicode.IsSpace(r)
}

func (t *Tokenizer) keep(word string) bool {
	if len(word) < MinTokenLength {
		return false
	}
	return !t.IsStopword(word)
}

// IsStopword reports whether word is on the stoplist.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
