package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/tally/internal/task"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*dayFlag)(nil)
	_ pflag.Value = (*intFlag)(nil)
	_ pflag.Value = (*stringFlag)(nil)
)

// clock is the wall clock used to resolve relative dates. Tests pin it.
var clock = time.Now

// dayFlag is a pflag.Value holding a calendar day. It accepts "today",
// "tomorrow", "+Nd" (N days from today) or an ISO date.
type dayFlag struct {
	day *time.Time
}

func (f *dayFlag) String() string {
	if f.day == nil {
		return ""
	}
	return f.day.Format(time.DateOnly)
}

func (f *dayFlag) Set(s string) error {
	d, err := parseDay(s)
	if err != nil {
		return err
	}
	f.day = &d
	return nil
}

func (f *dayFlag) Type() string { return "date" }

// parseDay resolves a user-supplied day at UTC midnight. Relative forms count
// from the same UTC day that dateContext reports as today.
func parseDay(s string) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	today := dateContext().Today()

	switch {
	case v == "today":
		return today, nil
	case v == "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case v == "yesterday":
		return today.AddDate(0, 0, -1), nil
	case strings.HasPrefix(v, "+") && strings.HasSuffix(v, "d"):
		n, err := strconv.Atoi(v[1 : len(v)-1])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid relative date %q — use +Nd, e.g. +3d", s)
		}
		return today.AddDate(0, 0, n), nil
	}

	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q — use today, tomorrow, +Nd or YYYY-MM-DD", s)
	}
	return t, nil
}

// isClearWord reports whether s asks to remove a date.
func isClearWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "clear", "-":
		return true
	}
	return false
}

// intFlag is an int flag that remembers whether it was given.
type intFlag struct {
	val int
	set bool
}

func (f *intFlag) String() string {
	if !f.set {
		return ""
	}
	return strconv.Itoa(f.val)
}

func (f *intFlag) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	f.val, f.set = n, true
	return nil
}

func (f *intFlag) Type() string { return "int" }

// ptr returns the value, or nil when the flag was not given.
func (f *intFlag) ptr() *int {
	if !f.set {
		return nil
	}
	v := f.val
	return &v
}

// or returns the value, or fallback when the flag was not given.
func (f *intFlag) or(fallback int) int {
	if !f.set {
		return fallback
	}
	return f.val
}

// stringFlag is a string flag that remembers whether it was given, so an
// explicit empty value can clear a field.
type stringFlag struct {
	val string
	set bool
}

func (f *stringFlag) String() string { return f.val }

func (f *stringFlag) Set(s string) error {
	f.val, f.set = s, true
	return nil
}

func (f *stringFlag) Type() string { return "string" }

func (f *stringFlag) ptr() *string {
	if !f.set {
		return nil
	}
	v := f.val
	return &v
}

// splitTags parses a comma-separated tag list, dropping blanks.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// dateContext snapshots the calendar for one command run.
func dateContext() task.DateContext {
	return task.NewDateContext(clock())
}
