package ingest

import "strings"

// CanonicalWord collapses a simple plural: a single trailing "s" is stripped from
// tokens longer than three letters unless the token ends in "ss".
//
// The rule is a heuristic and has false cases ("news" -> "new"). Leaderboards and
// drill-down matching must share it, so it is not refined.
func CanonicalWord(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return word[:len(word)-1]
	}
	return word
}

// CanonicalPhrase canonicalizes each word and joins them with single spaces.
func CanonicalPhrase(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = CanonicalWord(w)
	}
	return strings.Join(out, " ")
}

// CanonicalKey canonicalizes a space-separated key such as a leaderboard entry.
func CanonicalKey(key string) string {
	return CanonicalPhrase(strings.Split(key, " "))
}

// CanonicalWords maps tokens to their canonical forms, preserving order.
func CanonicalWords(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = CanonicalWord(tok)
	}
	return out
}

// NGrams returns the canonical keys of every window of n consecutive tokens, in
// order and with repeats. Windows are taken over the raw tokens and canonicalized
// afterwards.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	if n == 1 {
		return CanonicalWords(tokens)
	}
	keys := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		keys = append(keys, CanonicalPhrase(tokens[i:i+n]))
	}
	return keys
}
