package tui

import (
	"strings"
	"unicode"

	"github.com/rnwolfe/tally/internal/task"
)

// FuzzyMatch reports whether every rune of query appears in target in order,
// ignoring case, with a relevance score. Runs of adjacent matches score more,
// as do matches at the start of target or of a word.
func FuzzyMatch(query, target string) (bool, int) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true, 0
	}
	t := []rune(strings.ToLower(target))

	qi, score, run := 0, 0, 0
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			run = 0
			continue
		}
		qi++
		run++
		score += run
		switch {
		case ti == 0:
			score += 3
		case isWordBreak(t[ti-1]):
			score += 2
		}
	}
	return qi == len(q), score
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("/-_.:#", r)
}

// matchTask applies a filter query to a task. A query starting with '#'
// matches tags only; otherwise the name is matched fuzzily, falling back to
// tags.
func matchTask(query string, t task.Task) bool {
	if tag, ok := strings.CutPrefix(query, "#"); ok {
		for _, tt := range t.Tags {
			if ok, _ := FuzzyMatch(tag, tt); ok {
				return true
			}
		}
		return false
	}
	if ok, _ := FuzzyMatch(query, t.Name); ok {
		return true
	}
	for _, tt := range t.Tags {
		if ok, _ := FuzzyMatch(query, tt); ok {
			return true
		}
	}
	return false
}
