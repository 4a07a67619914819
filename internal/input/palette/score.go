package palette

import (
	"strings"
	"unicode"
)

// match finds query in text as an in-order subsequence, case-insensitive.
// It returns the score and the rune indices of matched characters, or
// zero when some query rune is missing.
func match(query, text string) (int, []int) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 || text == "" {
		return 0, nil
	}
	original := []rune(text)
	lower := []rune(strings.ToLower(text))

	matches := make([]int, 0, len(q))
	qi := 0
	for i := 0; i < len(lower) && qi < len(q); i++ {
		if lower[i] == q[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(q) {
		return 0, nil
	}
	return score(q, original, lower, matches), matches
}

func score(query, original, lower []rune, matches []int) int {
	s := 100

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			s += 15
		}
	}
	if matches[0] == 0 {
		s += 25
	} else {
		s -= matches[0]
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * 2
	}
	if n := len(lower); n < 20 {
		s += 20 - n
	}
	if len(lower) >= len(query) && string(lower[:len(query)]) == string(query) {
		s += 50
	}
	return max(s, 1)
}

// isWordBoundary reports whether idx starts a word: the first rune, a
// rune after a separator, or an upper-case rune after a lower-case one.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
