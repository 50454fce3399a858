package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rnwolfe/tally/internal/store"
	"github.com/rnwolfe/tally/internal/task"
)

// testNow is a Tuesday afternoon.
var testNow = time.Date(2026, 2, 24, 15, 30, 0, 0, time.UTC)

// configTestEnv points every XDG dir at a fresh temp dir.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
}

// taskTestEnv isolates config and data, pins the clock and resets flags.
func taskTestEnv(t *testing.T) {
	t.Helper()
	configTestEnv(t)
	old := clock
	clock = func() time.Time { return testNow }
	t.Cleanup(func() { clock = old })
	resetTaskFlags()
	t.Cleanup(resetTaskFlags)
	taskShowDone, taskFlat, taskCategory = false, false, ""
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	fn()

	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("io.Copy: %v", err)
	}
	return buf.String()
}

// listAll returns every task, flat, including completed ones.
func listAll(t *testing.T) []task.Task {
	t.Helper()
	db, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer db.Close()

	tasks, err := task.NewStore(db.Conn()).List(task.ListOptions{ShowDone: true, Flat: true, ReferenceTime: testNow})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return tasks
}

// mustAdd runs `task add` and returns the new task.
func mustAdd(t *testing.T, name string, setup func()) task.Task {
	t.Helper()
	resetTaskFlags()
	if setup != nil {
		setup()
	}
	before := map[string]bool{}
	for _, x := range listAll(t) {
		before[x.ID] = true
	}
	captureStdout(t, func() {
		if err := runTaskAdd(nil, []string{name}); err != nil {
			t.Fatalf("runTaskAdd(%q): %v", name, err)
		}
	})
	resetTaskFlags()
	for _, x := range listAll(t) {
		if !before[x.ID] {
			return x
		}
	}
	t.Fatalf("task %q was not stored", name)
	return task.Task{}
}

func findTask(t *testing.T, id string) task.Task {
	t.Helper()
	for _, x := range listAll(t) {
		if x.ID == id {
			return x
		}
	}
	t.Fatalf("task %s not found", id)
	return task.Task{}
}
