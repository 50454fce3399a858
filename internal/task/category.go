package task

import (
	"fmt"
	"strings"
	"time"
)

// Category buckets a task by its effective date and score. Every task falls
// into exactly one.
type Category string

const (
	CategoryCollected Category = "collected"
	CategoryOverdue   Category = "overdue"
	CategoryToday     Category = "today"
	CategoryTomorrow  Category = "tomorrow"
	CategoryNoDate    Category = "no-date"
	CategoryFuture    Category = "future"
)

// categoryOrder is the fixed precedence; index+1 is the priority.
var categoryOrder = []Category{
	CategoryCollected,
	CategoryOverdue,
	CategoryToday,
	CategoryTomorrow,
	CategoryNoDate,
	CategoryFuture,
}

// Categories returns all categories in priority order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Priority returns the category's rank, 1 (collected) through 6 (future).
// Unknown categories rank 0.
func (c Category) Priority() int {
	for i, k := range categoryOrder {
		if k == c {
			return i + 1
		}
	}
	return 0
}

func (c Category) String() string { return string(c) }

// ParseCategory accepts a category name or its display label,
// case-insensitively. "nodate" and "none" are accepted for no-date.
func ParseCategory(s string) (Category, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "nodate", "none", "anytime":
		return CategoryNoDate, nil
	case "inbox":
		return CategoryCollected, nil
	case "upcoming":
		return CategoryFuture, nil
	default:
		c := Category(v)
		if c.Priority() == 0 {
			return "", fmt.Errorf("invalid category %q — valid values: collected, overdue, today, tomorrow, no-date, future", s)
		}
		return c, nil
	}
}

// EffectiveDate picks the day a task is judged against: its due date when
// that is urgent, otherwise its planned date. A non-urgent due date is
// ignored entirely.
func EffectiveDate(t Task, ctx DateContext) (time.Time, bool) {
	if IsUrgent(t.DueDate, ctx) {
		return dayOf(t.DueDate)
	}
	return dayOf(t.PlannedDate)
}

// IsCollectable reports whether a task looks like a fresh inbox capture:
// either it still has the default importance and complexity, or it carries
// the maximum legacy score. Only meaningful for tasks with no effective date.
func IsCollectable(t Task) bool {
	if t.Importance == DefaultImportance && t.Complexity == DefaultComplexity {
		return true
	}
	return t.Points >= MaxPoints
}

// Classify assigns t to its category for the given day snapshot. Completed
// tasks are classified like open ones.
func Classify(t Task, ctx DateContext) Category {
	day, ok := EffectiveDate(t, ctx)
	return categorize(t, day, ok, ctx)
}

func categorize(t Task, day time.Time, ok bool, ctx DateContext) Category {
	if !ok {
		if IsCollectable(t) {
			return CategoryCollected
		}
		return CategoryNoDate
	}
	switch {
	case day.Before(ctx.today):
		return CategoryOverdue
	case day.Equal(ctx.today):
		return CategoryToday
	case day.Equal(ctx.tomorrow):
		return CategoryTomorrow
	default:
		return CategoryFuture
	}
}

// Group is a run of tasks sharing a category.
type Group struct {
	Category Category
	Tasks    []Task
}

// GroupByCategory buckets tasks into non-empty groups in priority order.
// Tasks keep their input order within a group, so pass a sorted slice.
func GroupByCategory(tasks []Task, ctx DateContext) []Group {
	buckets := make(map[Category][]Task, len(categoryOrder))
	for _, t := range tasks {
		c := Classify(t, ctx)
		buckets[c] = append(buckets[c], t)
	}

	var groups []Group
	for _, c := range categoryOrder {
		if ts := buckets[c]; len(ts) > 0 {
			groups = append(groups, Group{Category: c, Tasks: ts})
		}
	}
	return groups
}
