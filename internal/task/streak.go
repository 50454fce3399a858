package task

import (
	"slices"
	"time"
)

// Streak counts consecutive calendar days with at least one completion.
type Streak struct {
	Current int
	Longest int
}

// ComputeStreak derives the streak from completion days in any order. The
// current streak survives until the end of today, so a run that ended
// yesterday still counts.
func ComputeStreak(days []time.Time, ctx DateContext) Streak {
	if len(days) == 0 {
		return Streak{}
	}

	uniq := make([]time.Time, 0, len(days))
	for _, d := range days {
		uniq = append(uniq, midnight(d))
	}
	slices.SortFunc(uniq, func(a, b time.Time) int { return b.Compare(a) })
	uniq = slices.CompactFunc(uniq, time.Time.Equal)

	var s Streak
	if latest := uniq[0]; latest.Equal(ctx.today) || latest.Equal(ctx.Offset(-1)) {
		s.Current = runFrom(uniq)
	}
	for i := 0; i < len(uniq); {
		n := runFrom(uniq[i:])
		s.Longest = max(s.Longest, n)
		i += n
	}
	return s
}

// runFrom counts the leading run of consecutive days in a descending list.
func runFrom(desc []time.Time) int {
	n := 1
	for n < len(desc) && desc[n].Equal(desc[n-1].AddDate(0, 0, -1)) {
		n++
	}
	return n
}
