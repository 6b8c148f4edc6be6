// Package util holds small helpers shared by the parsers.
package util

import "strings"

// maxSuggestDistance bounds how far a typo may be from a valid name and
// still get a suggestion.
const maxSuggestDistance = 3

// Suggest returns the option closest to input by Levenshtein distance, or
// "" when none is within maxSuggestDistance. Comparison is case-insensitive
// and ties go to the earlier option.
func Suggest(input string, options []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	bestDistance := maxSuggestDistance + 1
	var bestMatch string
	for _, opt := range options {
		distance := levenshteinDistance(input, strings.ToLower(opt))
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = opt
		}
	}
	return bestMatch
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to change one string into the other.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rolling rows are enough for the distance alone.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
