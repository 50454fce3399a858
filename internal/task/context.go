package task

import "time"

// DateContext is a snapshot of "now" taken once per classification or sort
// pass, so every decision in that pass sees the same day boundaries.
// All three days are UTC midnight. The zero value is not meaningful; build
// one with NewDateContext or Now.
type DateContext struct {
	today            time.Time
	tomorrow         time.Time
	dayAfterTomorrow time.Time
}

// NewDateContext builds a DateContext for the UTC calendar day containing now.
func NewDateContext(now time.Time) DateContext {
	today := midnight(now)
	return DateContext{
		today:            today,
		tomorrow:         today.AddDate(0, 0, 1),
		dayAfterTomorrow: today.AddDate(0, 0, 2),
	}
}

func (c DateContext) Today() time.Time            { return c.today }
func (c DateContext) Tomorrow() time.Time         { return c.tomorrow }
func (c DateContext) DayAfterTomorrow() time.Time { return c.dayAfterTomorrow }

// Offset returns UTC midnight n days from today. Negative n looks back.
func (c DateContext) Offset(n int) time.Time {
	return c.today.AddDate(0, 0, n)
}
