// Package similarity provides the token-overlap measure shared by the skill and
// profile sub-scores.
package similarity

import (
	"regexp"
	"strings"
)

// minTokenLength is the shortest token that takes part in the comparison.
// Shorter tokens ("go", "of", "a") are discarded.
const minTokenLength = 3

var (
	// space matches Unicode separators, vertical tab and the byte order mark
	// on top of the ASCII whitespace class.
	space   = regexp.MustCompile(`[\s\p{Z}\v\x{feff}]`)
	nonWord = regexp.MustCompile(`[^a-z0-9 ]`)
)

// Tokens lower-cases s, turns every kind of whitespace into a plain space,
// strips everything except ASCII letters, digits and spaces, and returns the
// remaining words longer than two characters. Duplicates are kept in source order.
func Tokens(s string) []string {
	normalized := space.ReplaceAllString(strings.ToLower(s), " ")
	normalized = strings.TrimSpace(nonWord.ReplaceAllString(normalized, ""))

	words := strings.Fields(normalized)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= minTokenLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Score returns the overlap of a against b in [0, 1].
//
// Every token of a (duplicates included) found in b counts once toward the
// numerator, which is doubled and divided by the size of the deduplicated union
// of both token sets. The measure is therefore not symmetric when a repeats
// tokens. Values above 1 (identical inputs reach 2) are clamped.
func Score(a, b string) float64 {
	tokensA := Tokens(a)
	tokensB := Tokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	inB := make(map[string]struct{}, len(tokensB))
	union := make(map[string]struct{}, len(tokensA)+len(tokensB))
	for _, t := range tokensB {
		inB[t] = struct{}{}
		union[t] = struct{}{}
	}

	common := 0
	for _, t := range tokensA {
		union[t] = struct{}{}
		if _, ok := inB[t]; ok {
			common++
		}
	}

	return min(float64(common*2)/float64(len(union)), 1)
}
