package task

import (
	"fmt"
	"time"
)

// baseTime is a fixed reference time for deterministic tests.
var baseTime = time.Date(2026, 2, 24, 15, 30, 0, 0, time.UTC)

var ctx = NewDateContext(baseTime)

// day returns UTC midnight n days from the base day.
func day(n int) time.Time { return ctx.Offset(n) }

// dayAt returns a timestamp inside day n, away from midnight.
func dayAt(n int) Date { return At(day(n).Add(13 * time.Hour)) }

// dayISO returns day n as date-only ISO text.
func dayISO(n int) Date { return Text(day(n).Format("2006-01-02")) }

// created returns a creation stamp n minutes after the base time.
func created(n int) Date { return At(baseTime.Add(time.Duration(n) * time.Minute)) }

func scored(id string, points int) Task {
	return Task{ID: id, Name: id, Importance: 10, Complexity: 5, Points: points, CreatedAt: created(0)}
}

func ids(tasks []Task) string {
	out := ""
	for i, t := range tasks {
		if i > 0 {
			out += ","
		}
		out += t.ID
	}
	return out
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func describe(t Task) string {
	return fmt.Sprintf("%s(%s, %d pts)", t.ID, Classify(t, ctx), t.Points)
}
