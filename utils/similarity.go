package utils

import (
	"strings"
	"unicode"
)

// =============================================================================
// Fuzzy Text Similarity
// =============================================================================

// NormalizeText lowercases, strips punctuation and collapses whitespace so
// that "Sommerfest in Dornbirn!" and "sommerfest in dornbirn" compare equal.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// trigramSet builds the set of rune trigrams of the normalized text.
// Inputs shorter than three runes collapse to a single-element set.
func trigramSet(text string) map[string]struct{} {
	normalized := NormalizeText(text)
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	if len(runes) < 3 {
		return map[string]struct{}{string(runes): {}}
	}

	set := make(map[string]struct{}, len(runes)-2)
	for i := 0; i <= len(runes)-3; i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

// TrigramSimilarity returns the Jaccard overlap of the two texts' trigram
// sets, in [0, 1]. 1 means identical after normalization, 0 means no
// overlap at all.
func TrigramSimilarity(left, right string) float64 {
	leftSet := trigramSet(left)
	rightSet := trigramSet(right)
	if len(leftSet) == 0 || len(rightSet) == 0 {
		return 0
	}

	intersection := 0
	for gram := range leftSet {
		if _, ok := rightSet[gram]; ok {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}

	union := len(leftSet) + len(rightSet) - intersection
	return float64(intersection) / float64(union)
}
