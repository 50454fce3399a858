// Package task holds the task model and the prioritization engine that
// categorizes and orders tasks, plus the SQLite-backed Store that feeds it.
//
// The engine (Classify, Compare, SortByPriority, CalculatePoints) is pure:
// it reads task values and a DateContext and never touches the store or the
// clock.
package task

import "slices"

// Task is a single unit of work. Dates accept either representation (Time
// or Text); nil means absent.
type Task struct {
	ID   string
	Name string
	Link string
	Note string

	Importance int // 0-50
	Complexity int // 1-9; 0 is tolerated as "undefined"
	Points     int // 0-500, authoritative during comparison

	PlannedDate Date
	DueDate     Date

	ParentID    string
	IsCompleted bool
	CompletedAt Date
	CreatedAt   Date
	UpdatedAt   Date

	Subtasks []Task
	Tags     []string
}

// Clone returns a copy of t whose Subtasks and Tags slices (at every depth)
// do not share backing arrays with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	if t.Subtasks != nil {
		c.Subtasks = make([]Task, len(t.Subtasks))
		for i, s := range t.Subtasks {
			c.Subtasks[i] = s.Clone()
		}
	}
	return c
}

// BuildTree nests a flat list under ParentID. Tasks whose parent is not in
// the list stay at the top level. Each task is placed exactly once, so a
// parent cycle is cut at the first of its members in input order, which
// becomes a top-level task.
func BuildTree(flat []Task) []Task {
	index := make(map[string]int, len(flat))
	for i, t := range flat {
		index[t.ID] = i
	}

	children := make(map[string][]int)
	var roots []int
	for i, t := range flat {
		if _, ok := index[t.ParentID]; ok && t.ParentID != "" && t.ParentID != t.ID {
			children[t.ParentID] = append(children[t.ParentID], i)
			continue
		}
		roots = append(roots, i)
	}

	placed := make([]bool, len(flat))
	var build func(i int) Task
	build = func(i int) Task {
		placed[i] = true
		t := flat[i].Clone()
		t.Subtasks = nil
		for _, c := range children[t.ID] {
			if !placed[c] {
				t.Subtasks = append(t.Subtasks, build(c))
			}
		}
		return t
	}

	out := make([]Task, 0, len(roots))
	for _, i := range roots {
		out = append(out, build(i))
	}
	// Members of a parent cycle are never reached from a root.
	for i := range flat {
		if !placed[i] {
			out = append(out, build(i))
		}
	}
	return out
}

// Flatten walks a tree depth-first and returns every task without its
// Subtasks, parents before children.
func Flatten(tree []Task) []Task {
	var out []Task
	var walk func([]Task)
	walk = func(ts []Task) {
		for _, t := range ts {
			c := t
			c.Subtasks = nil
			out = append(out, c)
			walk(t.Subtasks)
		}
	}
	walk(tree)
	return out
}
