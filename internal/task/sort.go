package task

import "slices"

// SortByPriority returns a new slice of copies ordered by Compare. Each
// copy's subtasks, at every depth, are re-sorted by the points rule only:
// nested tasks are not categorized. The input and its nested slices are left
// untouched.
func SortByPriority(tasks []Task, ctx DateContext) []Task {
	type keyed struct {
		key  sortKey
		task Task
	}

	// One key per task keeps every comparison in the pass on the same
	// category and parsed dates.
	items := make([]keyed, len(tasks))
	for i, t := range tasks {
		items[i] = keyed{key: keyOf(t, ctx), task: t}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compareKeys(a.key, b.key)
	})

	out := make([]Task, len(items))
	for i, it := range items {
		out[i] = shallowCopy(it.task)
		out[i].Subtasks = SortSubtasks(it.task.Subtasks)
	}
	return out
}

// SortSubtasks returns copies of tasks ordered by ComparePoints, recursing
// into every nested Subtasks list.
func SortSubtasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = shallowCopy(t)
	}
	slices.SortStableFunc(out, ComparePoints)
	for i := range out {
		out[i].Subtasks = SortSubtasks(out[i].Subtasks)
	}
	return out
}

// shallowCopy detaches Tags; callers replace Subtasks with a sorted copy.
func shallowCopy(t Task) Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	return c
}
