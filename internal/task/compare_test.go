package task

import (
	"testing"
	"time"
)

// sample covers every category with a spread of dates, points and stamps.
func sample() []Task {
	return []Task{
		{ID: "c1", Importance: 0, Complexity: 3, Points: 0, CreatedAt: created(1)},
		{ID: "c2", Importance: 50, Complexity: 1, Points: 500, CreatedAt: created(2)},
		{ID: "o1", Points: 10, PlannedDate: dayISO(-5), CreatedAt: created(3)},
		{ID: "o2", Points: 90, PlannedDate: dayAt(-1), CreatedAt: created(4)},
		{ID: "o3", Points: 90, DueDate: dayAt(-1), PlannedDate: dayISO(8), CreatedAt: created(5)},
		{ID: "t1", Points: 200, PlannedDate: dayISO(0), CreatedAt: created(6)},
		{ID: "t2", Points: 200, DueDate: dayAt(0), CreatedAt: created(7)},
		{ID: "t3", Points: 5, PlannedDate: dayAt(0), CreatedAt: created(8)},
		{ID: "m1", Points: 40, PlannedDate: dayISO(1), CreatedAt: created(9)},
		{ID: "n1", Importance: 20, Complexity: 4, Points: 50, CreatedAt: created(10)},
		{ID: "n2", Importance: 20, Complexity: 4, Points: 50, CreatedAt: Text("bogus")},
		{ID: "n3", Importance: 40, Complexity: 1, Points: 400, CreatedAt: created(11)},
		{ID: "f1", Points: 999, PlannedDate: dayISO(5), CreatedAt: created(12)},
		{ID: "f2", Points: 1, PlannedDate: dayAt(3), CreatedAt: created(13)},
		{ID: "f3", Points: 7, PlannedDate: dayISO(3), CreatedAt: created(14)},
	}
}

func TestCompare_Self(t *testing.T) {
	for _, a := range sample() {
		if got := Compare(a, a, ctx); got != 0 {
			t.Errorf("Compare(%s, itself) = %d", describe(a), got)
		}
		b := a
		if got := Compare(a, b, ctx); got != 0 {
			t.Errorf("Compare(%s, copy) = %d", describe(a), got)
		}
	}
}

func TestCompare_CategoryPrecedence(t *testing.T) {
	tasks := sample()
	for _, x := range tasks {
		for _, y := range tasks {
			px, py := Classify(x, ctx).Priority(), Classify(y, ctx).Priority()
			if px >= py {
				continue
			}
			if got := Compare(x, y, ctx); got >= 0 {
				t.Errorf("Compare(%s, %s) = %d, want < 0", describe(x), describe(y), got)
			}
			if got := Compare(y, x, ctx); got <= 0 {
				t.Errorf("Compare(%s, %s) = %d, want > 0", describe(y), describe(x), got)
			}
		}
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	tasks := sample()
	for _, a := range tasks {
		for _, b := range tasks {
			if sign(Compare(a, b, ctx)) != -sign(Compare(b, a, ctx)) {
				t.Errorf("Compare(%s, %s) and reverse disagree", describe(a), describe(b))
			}
		}
	}
}

func TestCompare_Transitive(t *testing.T) {
	tasks := sample()
	for _, a := range tasks {
		for _, b := range tasks {
			if Compare(a, b, ctx) >= 0 {
				continue
			}
			for _, c := range tasks {
				if Compare(b, c, ctx) < 0 && Compare(a, c, ctx) >= 0 {
					t.Errorf("%s < %s < %s but Compare(a, c) >= 0", describe(a), describe(b), describe(c))
				}
			}
		}
	}
}

func TestCompare_WithinCategory(t *testing.T) {
	tests := []struct {
		name string
		a, b Task
		want int
	}{
		{
			name: "overdue: older date first despite fewer points",
			a:    Task{Points: 1, PlannedDate: dayISO(-7), CreatedAt: created(0)},
			b:    Task{Points: 400, PlannedDate: dayISO(-1), CreatedAt: created(0)},
			want: -1,
		},
		{
			name: "overdue: same day falls back to points",
			a:    Task{Points: 10, PlannedDate: dayISO(-2), CreatedAt: created(0)},
			b:    Task{Points: 90, PlannedDate: dayAt(-2), CreatedAt: created(0)},
			want: 1,
		},
		{
			name: "future: soonest first",
			a:    Task{Points: 1, PlannedDate: dayISO(3), CreatedAt: created(0)},
			b:    Task{Points: 999, PlannedDate: dayISO(5), CreatedAt: created(0)},
			want: -1,
		},
		{
			name: "future: same day, newer first",
			a:    Task{Points: 7, PlannedDate: dayISO(4), CreatedAt: created(1)},
			b:    Task{Points: 7, PlannedDate: dayISO(4), CreatedAt: created(2)},
			want: 1,
		},
		{
			name: "today: points descending",
			a:    Task{Points: 200, PlannedDate: dayISO(0), CreatedAt: created(0)},
			b:    Task{Points: 5, PlannedDate: dayISO(0), CreatedAt: created(9)},
			want: -1,
		},
		{
			name: "tomorrow: newer first on equal points",
			a:    Task{Points: 40, PlannedDate: dayISO(1), CreatedAt: created(9)},
			b:    Task{Points: 40, PlannedDate: dayISO(1), CreatedAt: created(1)},
			want: -1,
		},
		{
			name: "collected: points descending",
			a:    Task{Importance: 0, Complexity: 3, Points: 0, CreatedAt: created(9)},
			b:    Task{Importance: 50, Complexity: 1, Points: 500, CreatedAt: created(0)},
			want: 1,
		},
		{
			name: "no-date: unparseable stamp ties",
			a:    Task{Importance: 20, Complexity: 4, Points: 50, CreatedAt: Text("bogus")},
			b:    Task{Importance: 20, Complexity: 4, Points: 50, CreatedAt: created(0)},
			want: 0,
		},
		{
			name: "no-date: missing stamp ties",
			a:    Task{Importance: 20, Complexity: 4, Points: 50},
			b:    Task{Importance: 20, Complexity: 4, Points: 50, CreatedAt: created(3)},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sign(Compare(tt.a, tt.b, ctx)); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompare_RepresentationIndependent(t *testing.T) {
	stamp := baseTime.Add(-90 * time.Minute)
	asTime := []Task{
		{ID: "a", Points: 30, PlannedDate: At(day(-2)), CreatedAt: At(stamp)},
		{ID: "b", Points: 30, PlannedDate: At(day(-2).Add(5 * time.Second)), CreatedAt: At(stamp.Add(time.Second))},
		{ID: "c", Points: 12, DueDate: At(day(0)), PlannedDate: At(day(6)), CreatedAt: At(stamp)},
	}
	asText := make([]Task, len(asTime))
	for i, tk := range asTime {
		asText[i] = FromTask(tk).Task()
	}

	for i := range asTime {
		for j := range asTime {
			a := Compare(asTime[i], asTime[j], ctx)
			b := Compare(asText[i], asText[j], ctx)
			mixed := Compare(asTime[i], asText[j], ctx)
			if sign(a) != sign(b) || sign(a) != sign(mixed) {
				t.Errorf("(%s, %s): time %d, text %d, mixed %d", asTime[i].ID, asTime[j].ID, a, b, mixed)
			}
		}
	}
}

func TestComparePoints(t *testing.T) {
	hi := Task{Points: 80, CreatedAt: created(0)}
	lo := Task{Points: 20, CreatedAt: created(5)}
	newer := Task{Points: 80, CreatedAt: created(5)}

	if ComparePoints(hi, lo) >= 0 {
		t.Error("higher points should sort first")
	}
	if ComparePoints(newer, hi) >= 0 {
		t.Error("newer task should win a points tie")
	}
	if ComparePoints(hi, hi) != 0 {
		t.Error("task should equal itself")
	}
	if ComparePoints(Task{Points: 80, CreatedAt: Text("x")}, hi) != 0 {
		t.Error("unparseable stamp should tie")
	}
}
