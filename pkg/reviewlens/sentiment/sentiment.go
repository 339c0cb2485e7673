// Package sentiment scores the polarity of English review text.
//
// Each word found in an embedded lexicon contributes its polarity. A preceding
// intensifier ("very", "really") scales the word and a preceding negation ("not",
// "never", "n't" contractions) flips it at half strength. The text's score is
// the mean of the contributing words, clamped to [-1, 1]; text without lexicon
// words scores 0.
//
// All functions are safe for concurrent use.
package sentiment

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

//go:embed lexicon.tsv
var lexiconTSV string

// lexicon maps lowercase words to polarity, built once at init.
var lexicon = parseLexicon(lexiconTSV)

// negationFactor scales a negated word: "not good" is mildly negative.
const negationFactor = -0.5

// negations are matched after apostrophes are dropped, so "didn't" is "didnt".
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nothing": {}, "hardly": {}, "cannot": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "isnt": {}, "wasnt": {}, "arent": {},
	"werent": {}, "cant": {}, "couldnt": {}, "wont": {}, "wouldnt": {},
	"shouldnt": {}, "hasnt": {}, "havent": {}, "hadnt": {}, "aint": {},
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"so":         1.2,
	"too":        1.2,
	"super":      1.3,
	"extremely":  1.5,
	"absolutely": 1.4,
	"totally":    1.3,
	"incredibly": 1.5,
}

// Result holds the polarity of a text.
type Result struct {
	Score    float64 `json:"score"`    // -1.0 to +1.0
	Positive int     `json:"positive"` // count of positive words
	Negative int     `json:"negative"` // count of negative words
	Scored   int     `json:"scored"`   // words found in the lexicon
	Total    int     `json:"total"`    // words analyzed
}

func (r Result) String() string {
	return fmt.Sprintf("score=%.2f pos=%d neg=%d scored=%d/%d", r.Score, r.Positive, r.Negative, r.Scored, r.Total)
}

// Analyze returns the polarity of text.
func Analyze(text string) Result {
	toks := words(text)
	res := Result{Total: len(toks)}

	var sum float64
	for i, w := range toks {
		score, ok := lexicon[w]
		if !ok {
			continue
		}

		prev := i - 1
		if prev >= 0 {
			if f, ok := intensifiers[toks[prev]]; ok {
				score = clamp(score * f)
				prev--
			}
		}
		if prev >= 0 && isNegation(toks[prev]) {
			score *= negationFactor
		}

		sum += score
		res.Scored++
		switch {
		case score > 0:
			res.Positive++
		case score < 0:
			res.Negative++
		}
	}

	if res.Scored > 0 {
		res.Score = clamp(sum / float64(res.Scored))
	}
	return res
}

// Score returns the polarity of text in [-1, 1].
func Score(text string) float64 {
	return Analyze(text).Score
}

// Known reports whether word has a lexicon entry.
func Known(word string) bool {
	_, ok := lexicon[strings.ToLower(word)]
	return ok
}

// words lowercases text and splits it into letter runs. Apostrophes are dropped
// inside a word so "don't" reads as "dont".
func words(text string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r):
			cur.WriteRune(r)
		case r == '\'' || r == '’':
		default:
			flush()
		}
	}
	flush()
	return out
}

func isNegation(w string) bool {
	_, ok := negations[w]
	return ok
}

func clamp(f float64) float64 {
	switch {
	case f > 1:
		return 1
	case f < -1:
		return -1
	}
	return f
}

// parseLexicon parses tab-separated "word\tscore" lines.
func parseLexicon(raw string) map[string]float64 {
	m := make(map[string]float64, 128)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		m[strings.ToLower(strings.TrimSpace(parts[0]))] = clamp(score)
	}
	return m
}
