package task

import (
	"cmp"
	"time"
)

// sortKey caches everything Compare derives from a task for one pass.
type sortKey struct {
	category Category
	day      time.Time // effective date; zero when absent
	points   int
	created  time.Time
	hasDay   bool
	hasStamp bool
}

func keyOf(t Task, ctx DateContext) sortKey {
	day, ok := EffectiveDate(t, ctx)
	created, hasStamp := Instant(t.CreatedAt)
	return sortKey{
		category: categorize(t, day, ok, ctx),
		day:      day,
		hasDay:   ok,
		points:   t.Points,
		created:  created,
		hasStamp: hasStamp,
	}
}

// Compare orders two tasks for display: category priority first, then the
// category's own keys. It returns a negative number when a sorts before b.
//
//   - overdue, future: effective date ascending, then points rule
//   - collected, today, tomorrow, no-date: points rule
//
// The points rule is points descending, then creation time descending so
// newer tasks lead among equals.
func Compare(a, b Task, ctx DateContext) int {
	return compareKeys(keyOf(a, ctx), keyOf(b, ctx))
}

func compareKeys(a, b sortKey) int {
	if c := cmp.Compare(a.category.Priority(), b.category.Priority()); c != 0 {
		return c
	}
	switch a.category {
	case CategoryOverdue, CategoryFuture:
		if a.hasDay && b.hasDay {
			if c := a.day.Compare(b.day); c != 0 {
				return c
			}
		}
	}
	return comparePointKeys(a, b)
}

// ComparePoints orders by points descending, then creation time descending.
// An unparseable creation time on either side makes the pair equal.
func ComparePoints(a, b Task) int {
	ca, okA := Instant(a.CreatedAt)
	cb, okB := Instant(b.CreatedAt)
	return comparePointKeys(
		sortKey{points: a.Points, created: ca, hasStamp: okA},
		sortKey{points: b.Points, created: cb, hasStamp: okB},
	)
}

func comparePointKeys(a, b sortKey) int {
	if c := cmp.Compare(b.points, a.points); c != 0 {
		return c
	}
	if !a.hasStamp || !b.hasStamp {
		return 0
	}
	return b.created.Compare(a.created)
}
