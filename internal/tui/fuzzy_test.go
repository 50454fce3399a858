package tui

import (
	"testing"

	"github.com/rnwolfe/tally/internal/task"
)

func TestFuzzyMatch(t *testing.T) {
	cases := []struct {
		query, target string
		want          bool
	}{
		{"", "anything", true},
		{"", "", true},
		{"x", "", false},
		{"milk", "buy milk", true},
		{"BM", "buy milk", true},
		{"bmk", "buy milk", true},
		{"kmb", "buy milk", false},
		{"tx", "file taxes", true},
		{"café", "Café run", true},
		{"zz", "buy milk", false},
	}
	for _, tc := range cases {
		if ok, _ := FuzzyMatch(tc.query, tc.target); ok != tc.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tc.query, tc.target, ok, tc.want)
		}
	}
}

func TestFuzzyMatch_Scoring(t *testing.T) {
	_, adjacent := FuzzyMatch("ta", "taxes")
	_, spread := FuzzyMatch("ta", "the plan")
	if adjacent <= spread {
		t.Errorf("adjacent run should outscore a spread match: %d vs %d", adjacent, spread)
	}

	_, boundary := FuzzyMatch("r", "pay rent")
	_, inner := FuzzyMatch("r", "parent")
	if boundary <= inner {
		t.Errorf("word-start match should outscore an inner match: %d vs %d", boundary, inner)
	}

	_, start := FuzzyMatch("p", "pay")
	if start <= boundary {
		t.Errorf("start match should score highest: %d vs %d", start, boundary)
	}
}

func TestMatchTask(t *testing.T) {
	tk := task.Task{Name: "renew passport", Tags: []string{"travel", "admin"}}

	cases := []struct {
		query string
		want  bool
	}{
		{"passp", true},
		{"adm", true},
		{"#trav", true},
		{"#passport", false},
		{"#", true},
		{"gym", false},
	}
	for _, tc := range cases {
		if got := matchTask(tc.query, tk); got != tc.want {
			t.Errorf("matchTask(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}
