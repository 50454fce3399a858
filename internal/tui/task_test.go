package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/tally/internal/task"
)

var testNow = time.Date(2026, 2, 24, 15, 30, 0, 0, time.UTC)

func makeTasks(names ...string) []task.Task {
	out := make([]task.Task, len(names))
	for i, n := range names {
		out[i] = task.Task{
			ID:         string(rune('a'+i)) + "0000000-0000",
			Name:       n,
			Importance: 10,
			Complexity: 2,
			Points:     task.CalculatePoints(10, 2),
			CreatedAt:  task.At(testNow.Add(-time.Duration(i) * time.Hour)),
		}
	}
	return out
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewTaskModel_Defaults(t *testing.T) {
	m := NewTaskModel(makeTasks("buy milk", "write tests", "ship it"), task.NewDateContext(testNow))

	if m.cursor != 0 {
		t.Fatalf("cursor should start at 0, got %d", m.cursor)
	}
	if len(m.filtered) != 3 {
		t.Fatalf("all tasks should be visible initially, got %d", len(m.filtered))
	}
	if m.mode != taskModeNormal {
		t.Fatalf("initial mode should be normal, got %d", m.mode)
	}
}

func TestNewTaskModel_FlattensSubtasks(t *testing.T) {
	tasks := makeTasks("parent")
	tasks[0].Subtasks = makeTasks("child one", "child two")
	m := NewTaskModel(tasks, task.NewDateContext(testNow))

	if len(m.rows) != 3 {
		t.Fatalf("expected parent and two subtasks, got %d rows", len(m.rows))
	}
	if m.rows[1].depth != 1 || m.rows[2].depth != 1 {
		t.Fatalf("subtasks should be at depth 1, got %d and %d", m.rows[1].depth, m.rows[2].depth)
	}
	if m.rows[1].category != m.rows[0].category {
		t.Fatalf("subtasks should inherit the parent's category group")
	}
}

func TestTaskModel_NavigateDownUp(t *testing.T) {
	m := NewTaskModel(makeTasks("one", "two", "three"), task.NewDateContext(testNow))

	m.Update(key('j'))
	if m.cursor != 1 {
		t.Fatalf("cursor should be 1 after j, got %d", m.cursor)
	}
	m.Update(key('j'))
	m.Update(key('j'))
	if m.cursor != 2 {
		t.Fatalf("cursor should clamp at 2, got %d", m.cursor)
	}
	m.Update(key('k'))
	if m.cursor != 1 {
		t.Fatalf("cursor should be 1 after k, got %d", m.cursor)
	}
}

func TestTaskModel_ArrowKeysNavigate(t *testing.T) {
	m := NewTaskModel(makeTasks("one", "two"), task.NewDateContext(testNow))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor should be 1 after down arrow, got %d", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor should be 0 after up arrow, got %d", m.cursor)
	}
}

func TestTaskModel_GotoTopBottom(t *testing.T) {
	m := NewTaskModel(makeTasks("a", "b", "c", "d"), task.NewDateContext(testNow))

	m.Update(key('G'))
	if m.cursor != 3 {
		t.Fatalf("G should move to last item, got %d", m.cursor)
	}
	m.Update(key('g'))
	if m.cursor != 0 {
		t.Fatalf("g should move to first item, got %d", m.cursor)
	}
}

func TestTaskModel_ToggleAction(t *testing.T) {
	tasks := makeTasks("buy milk")
	m := NewTaskModel(tasks, task.NewDateContext(testNow))

	m.Update(key('x'))

	if len(m.Actions) != 1 {
		t.Fatalf("expected 1 action after toggle, got %d", len(m.Actions))
	}
	if m.Actions[0].Type != "toggle" || m.Actions[0].ID != tasks[0].ID {
		t.Fatalf("unexpected action %+v", m.Actions[0])
	}
	if !m.rows[0].task.IsCompleted {
		t.Fatal("local state should be toggled to completed")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.rows[0].task.IsCompleted {
		t.Fatal("space should toggle back to open")
	}
	if len(m.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(m.Actions))
	}
}

func TestTaskModel_DeleteAction(t *testing.T) {
	tasks := makeTasks("one", "two")
	m := NewTaskModel(tasks, task.NewDateContext(testNow))

	m.Update(key('G'))
	m.Update(key('d'))

	if len(m.Actions) != 1 || m.Actions[0].Type != "delete" || m.Actions[0].ID != tasks[1].ID {
		t.Fatalf("unexpected actions %+v", m.Actions)
	}
	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(m.filtered))
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestTaskModel_AddMode(t *testing.T) {
	m := NewTaskModel(makeTasks("existing"), task.NewDateContext(testNow))

	m.Update(key('a'))
	if m.mode != taskModeAdd {
		t.Fatalf("a should enter add mode, got %d", m.mode)
	}
	for _, r := range "new thing" {
		m.Update(key(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != taskModeNormal {
		t.Fatal("enter should return to normal mode")
	}
	if len(m.Actions) != 1 || m.Actions[0].Type != "add" || m.Actions[0].Text != "new thing" {
		t.Fatalf("unexpected actions %+v", m.Actions)
	}
	if m.rows[0].task.Name != "new thing" || m.rows[0].category != task.CategoryCollected {
		t.Fatalf("captured task should head the list in the inbox, got %+v", m.rows[0])
	}
}

func TestTaskModel_AddModeEscapeCancels(t *testing.T) {
	m := NewTaskModel(makeTasks("existing"), task.NewDateContext(testNow))

	m.Update(key('a'))
	m.Update(key('z'))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != taskModeNormal {
		t.Fatal("esc should return to normal mode")
	}
	if len(m.Actions) != 0 {
		t.Fatalf("esc should not record an action, got %d", len(m.Actions))
	}
}

func TestTaskModel_Filter(t *testing.T) {
	m := NewTaskModel(makeTasks("buy milk", "write tests", "ship it"), task.NewDateContext(testNow))

	m.Update(key('/'))
	for _, r := range "wt" {
		m.Update(key(r))
	}
	if len(m.filtered) != 1 || m.filtered[0].task.Name != "write tests" {
		t.Fatalf("filter should match only 'write tests', got %d rows", len(m.filtered))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.filtered) != 3 {
		t.Fatalf("esc should clear the filter, got %d rows", len(m.filtered))
	}
}

func TestTaskModel_ViewGroupsByCategory(t *testing.T) {
	ctx := task.NewDateContext(testNow)
	tasks := makeTasks("inbox item", "due today")
	tasks[0].Importance, tasks[0].Complexity, tasks[0].Points = 0, 3, 0
	tasks[1].PlannedDate = task.At(testNow)
	m := NewTaskModel(task.SortByPriority(tasks, ctx), ctx)

	view := m.View()
	for _, want := range []string{"Inbox", "Today", "inbox item", "due today"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Index(view, "Inbox") > strings.Index(view, "Today") {
		t.Error("Inbox group should render before Today")
	}
}

func TestTaskModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{key('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := NewTaskModel(makeTasks("one"), task.NewDateContext(testNow))
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s should quit", k.String())
		}
	}
}
