// Package alphabet provides the shared keyed-alphabet, Polybius-grid, and
// column-order helpers used by the keyword, grid, and transposition ciphers.
package alphabet

import (
	"strings"
	"unicode"
)

// Letters is the reference alphabet for every 26-letter cipher.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Digits extends 6x6 grids beyond the letters.
const Digits = "0123456789"

// Normalize uppercases a keyword and strips everything that is not A-Z.
func Normalize(keyword string) string {
	var b strings.Builder
	for _, r := range keyword {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Keyed builds a 26-letter permutation starting with the keyword's unique
// letters in order of first appearance, followed by the remaining letters in
// natural order.
func Keyed(keyword string) string {
	return keyedFrom(keyword, Letters, false)
}

// keyedFrom lays the normalized keyword's unique letters over the given
// alphabet. mergeIJ folds J onto I for 5x5 grids.
func keyedFrom(keyword, source string, mergeIJ bool) string {
	seen := make(map[rune]bool, len(source))
	var b strings.Builder

	appendRune := func(r rune) {
		if mergeIJ && r == 'J' {
			r = 'I'
		}
		if !seen[r] {
			seen[r] = true
			b.WriteRune(r)
		}
	}

	for _, r := range Normalize(keyword) {
		if strings.ContainsRune(source, r) {
			appendRune(r)
		}
	}
	for _, r := range source {
		appendRune(r)
	}

	return b.String()
}

// ColumnOrder derives the read order of grid columns from a keyword: column
// indices sorted by (letter, then original position). An empty keyword
// yields nil.
func ColumnOrder(keyword string) []int {
	key := []rune(strings.ToUpper(keyword))
	if len(key) == 0 {
		return nil
	}

	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}

	// Stable insertion keeps equal letters in original position order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if key[a] > key[b] || (key[a] == key[b] && a > b) {
				order[j-1], order[j] = b, a
			} else {
				break
			}
		}
	}

	return order
}
