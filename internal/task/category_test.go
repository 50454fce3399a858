package task

import (
	"testing"
	"time"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want Category
	}{
		{
			name: "planned today",
			task: Task{Importance: 10, Complexity: 5, Points: 20, PlannedDate: dayISO(0)},
			want: CategoryToday,
		},
		{
			name: "fresh capture",
			task: Task{Importance: 0, Complexity: 3, Points: 0},
			want: CategoryCollected,
		},
		{
			name: "legacy max score",
			task: Task{Importance: 50, Complexity: 1, Points: 500},
			want: CategoryCollected,
		},
		{
			name: "just under max score",
			task: Task{Importance: 10, Complexity: 2, Points: 499},
			want: CategoryNoDate,
		},
		{
			name: "ordinary dateless",
			task: Task{Importance: 20, Complexity: 4, Points: 50},
			want: CategoryNoDate,
		},
		{
			name: "dated capture is never collected",
			task: Task{Importance: 0, Complexity: 3, Points: 0, PlannedDate: dayISO(5)},
			want: CategoryFuture,
		},
		{
			name: "dated max score is never collected",
			task: Task{Points: 500, PlannedDate: dayAt(-2)},
			want: CategoryOverdue,
		},
		{
			name: "planned yesterday",
			task: Task{Points: 10, PlannedDate: dayAt(-1)},
			want: CategoryOverdue,
		},
		{
			name: "planned tomorrow",
			task: Task{Points: 10, PlannedDate: dayAt(1)},
			want: CategoryTomorrow,
		},
		{
			name: "planned day after tomorrow",
			task: Task{Points: 10, PlannedDate: dayISO(2)},
			want: CategoryFuture,
		},
		{
			name: "completed tasks classify like open ones",
			task: Task{Points: 10, PlannedDate: dayISO(-3), IsCompleted: true, CompletedAt: dayAt(0)},
			want: CategoryOverdue,
		},
		{
			name: "zero complexity keeps stored points",
			task: Task{Importance: 30, Complexity: 0, Points: 500},
			want: CategoryCollected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.task, ctx); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_DueDateOverride(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want Category
	}{
		{
			name: "urgent due beats distant plan",
			task: Task{Points: 10, PlannedDate: dayISO(10), DueDate: dayISO(0)},
			want: CategoryToday,
		},
		{
			name: "non-urgent due is ignored",
			task: Task{Points: 10, PlannedDate: dayISO(2), DueDate: dayISO(10)},
			want: CategoryFuture,
		},
		{
			name: "overdue due beats plan for today",
			task: Task{Points: 10, PlannedDate: dayISO(0), DueDate: dayAt(-30)},
			want: CategoryOverdue,
		},
		{
			name: "due tomorrow with no plan",
			task: Task{Points: 10, DueDate: dayAt(1)},
			want: CategoryTomorrow,
		},
		{
			name: "distant due alone leaves no effective date",
			task: Task{Importance: 20, Complexity: 4, Points: 50, DueDate: dayISO(10)},
			want: CategoryNoDate,
		},
		{
			name: "distant due on a fresh capture stays collected",
			task: Task{Importance: 0, Complexity: 3, DueDate: dayISO(10)},
			want: CategoryCollected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.task, ctx); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_MalformedDatesAreAbsent(t *testing.T) {
	ordinary := Task{Importance: 20, Complexity: 4, Points: 50, PlannedDate: Text("next tuesday"), DueDate: Text("")}
	if got := Classify(ordinary, ctx); got != CategoryNoDate {
		t.Errorf("ordinary task with bad dates = %s, want no-date", got)
	}

	capture := Task{Importance: 0, Complexity: 3, PlannedDate: Text("31/31/2026")}
	if got := Classify(capture, ctx); got != CategoryCollected {
		t.Errorf("capture with bad date = %s, want collected", got)
	}

	// A bad due date must not hide a good planned date.
	planned := Task{Points: 10, PlannedDate: dayISO(1), DueDate: Text("??")}
	if got := Classify(planned, ctx); got != CategoryTomorrow {
		t.Errorf("bad due, good plan = %s, want tomorrow", got)
	}
}

func TestClassify_RepresentationIndependent(t *testing.T) {
	for n := -3; n <= 4; n++ {
		asTime := Task{Points: 10, PlannedDate: At(day(n).Add(23 * time.Hour)), DueDate: At(day(n - 1))}
		asText := Task{Points: 10, PlannedDate: Text(day(n).Format("2006-01-02") + "T23:00:00Z"), DueDate: dayISO(n - 1)}
		a, b := Classify(asTime, ctx), Classify(asText, ctx)
		if a != b {
			t.Errorf("offset %d: time form %s, text form %s", n, a, b)
		}
		if again := Classify(asTime, ctx); again != a {
			t.Errorf("offset %d: repeated call gave %s then %s", n, a, again)
		}
	}
}

func TestEffectiveDate(t *testing.T) {
	d, ok := EffectiveDate(Task{PlannedDate: dayAt(5), DueDate: dayAt(1)}, ctx)
	if !ok || !d.Equal(day(1)) {
		t.Errorf("urgent due: got %v, %v; want %v", d, ok, day(1))
	}
	d, ok = EffectiveDate(Task{PlannedDate: dayAt(5), DueDate: dayAt(6)}, ctx)
	if !ok || !d.Equal(day(5)) {
		t.Errorf("planned fallback: got %v, %v; want %v", d, ok, day(5))
	}
	if _, ok := EffectiveDate(Task{DueDate: dayAt(6)}, ctx); ok {
		t.Error("non-urgent due alone should leave no effective date")
	}
}

func TestCategoryPriority(t *testing.T) {
	cats := Categories()
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}
	for i, c := range cats {
		if c.Priority() != i+1 {
			t.Errorf("%s.Priority() = %d, want %d", c, c.Priority(), i+1)
		}
	}
	if Category("someday").Priority() != 0 {
		t.Error("unknown category should rank 0")
	}

	cats[0] = "mutated"
	if Categories()[0] != CategoryCollected {
		t.Error("Categories must return a copy")
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"today":    CategoryToday,
		" Future":  CategoryFuture,
		"no-date":  CategoryNoDate,
		"nodate":   CategoryNoDate,
		"none":     CategoryNoDate,
		"Inbox":    CategoryCollected,
		"anytime":  CategoryNoDate,
		"upcoming": CategoryFuture,
	} {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("later"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestGroupByCategory(t *testing.T) {
	tasks := []Task{
		{ID: "f", Points: 1, PlannedDate: dayISO(9)},
		{ID: "t1", Points: 1, PlannedDate: dayISO(0)},
		{ID: "c", Importance: 0, Complexity: 3},
		{ID: "t2", Points: 1, DueDate: dayISO(0)},
	}
	groups := GroupByCategory(tasks, ctx)

	want := []struct {
		cat Category
		ids string
	}{
		{CategoryCollected, "c"},
		{CategoryToday, "t1,t2"},
		{CategoryFuture, "f"},
	}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i].Category != w.cat || ids(groups[i].Tasks) != w.ids {
			t.Errorf("group %d = %s [%s], want %s [%s]", i, groups[i].Category, ids(groups[i].Tasks), w.cat, w.ids)
		}
	}
}
