package task

import (
	"strings"
	"time"
)

// Date is any representation of a task date that can be resolved to a
// calendar day. The server passes Time values; clients send ISO-8601 text.
// Day reports ok=false when the date is absent or cannot be parsed.
type Date interface {
	Day() (time.Time, bool)
}

// Raw is the set of native date representations accepted by Normalize.
type Raw interface {
	time.Time | string
}

// Time is a Date backed by a timestamp. The zero Time is absent.
type Time time.Time

// Text is a Date backed by ISO-8601 text. Empty or malformed text is absent.
type Text string

// At wraps a timestamp as a Date.
func At(t time.Time) Date { return Time(t) }

// Day implements Date.
func (t Time) Day() (time.Time, bool) { return Normalize(time.Time(t)) }

// Day implements Date.
func (s Text) Day() (time.Time, bool) { return Normalize(string(s)) }

// textLayouts are tried in order when parsing Text. Zone-less layouts are read as UTC.
var textLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a timestamp or ISO-8601 string to UTC midnight of its
// calendar day. The instant is moved to UTC before the time of day is
// dropped, so equivalent instants normalize identically in either form.
func Normalize[D Raw](v D) (time.Time, bool) {
	t, ok := instantOf(v)
	if !ok {
		return time.Time{}, false
	}
	return midnight(t), true
}

// Instant resolves d to a full-precision UTC instant without dropping the
// time of day. Absent and unparseable dates report ok=false.
func Instant(d Date) (time.Time, bool) {
	switch v := d.(type) {
	case nil:
		return time.Time{}, false
	case Time:
		return instantOf(time.Time(v))
	case Text:
		return instantOf(string(v))
	default:
		// Foreign Date implementations only promise day resolution.
		return v.Day()
	}
}

func instantOf[D Raw](v D) (time.Time, bool) {
	switch x := any(v).(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC(), true
	case string:
		return parseText(x)
	}
	return time.Time{}, false
}

func parseText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayOf resolves a possibly-nil Date.
func dayOf(d Date) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return d.Day()
}

// IsUrgent reports whether d falls before the day after tomorrow. The window
// is open backwards: any past date is urgent. Absent dates are never urgent.
func IsUrgent(d Date, ctx DateContext) bool {
	day, ok := dayOf(d)
	if !ok {
		return false
	}
	return day.Before(ctx.dayAfterTomorrow)
}

// CompareDates compares the calendar days of a and b, returning -1, 0 or 1.
// If either date is absent the dates compare equal.
func CompareDates(a, b Date) int {
	da, okA := dayOf(a)
	db, okB := dayOf(b)
	if !okA || !okB {
		return 0
	}
	return da.Compare(db)
}

// ISO formats t as the text form used for storage and the client wire format.
func ISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
