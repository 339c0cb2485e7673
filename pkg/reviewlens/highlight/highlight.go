// Package highlight marks leaderboard keys inside review text for display.
//
// Highlighting works on the raw key, word by word, and is independent of the
// canonical matching used to select comments: a comment matched through a plural
// form ("services" for key "service") may show no highlight.
package highlight

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

const (
	openTag  = "<b>"
	closeTag = "</b>"
)

type span struct{ start, end int }

// Highlight returns text as escaped HTML with every whole-word, case-insensitive
// occurrence of each space-separated word of key wrapped in <b> tags. An empty key
// only escapes the text.
func Highlight(text, key string) string {
	spans := Spans(text, key)
	if len(spans) == 0 {
		return html.EscapeString(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(openTag)+len(closeTag)))
	last := 0
	for _, sp := range spans {
		b.WriteString(html.EscapeString(text[last:sp[0]]))
		b.WriteString(openTag)
		b.WriteString(html.EscapeString(text[sp[0]:sp[1]]))
		b.WriteString(closeTag)
		last = sp[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// Spans returns the sorted, non-overlapping byte ranges of text that Highlight
// wraps.
func Spans(text, key string) [][2]int {
	var found []span
	for _, word := range strings.Split(key, " ") {
		if word == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			found = append(found, span{loc[0], loc[1]})
		}
	}
	if len(found) == 0 {
		return nil
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].start == found[j].start {
			return found[i].end > found[j].end
		}
		return found[i].start < found[j].start
	})

	merged := [][2]int{{found[0].start, found[0].end}}
	for _, sp := range found[1:] {
		cur := &merged[len(merged)-1]
		if sp.start <= cur[1] {
			if sp.end > cur[1] {
				cur[1] = sp.end
			}
			continue
		}
		merged = append(merged, [2]int{sp.start, sp.end})
	}
	return merged
}
