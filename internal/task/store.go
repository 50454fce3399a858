package task

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no task matches an ID or ID prefix.
var ErrNotFound = errors.New("task not found")

// ErrAmbiguousID is returned when an ID prefix matches more than one task.
var ErrAmbiguousID = errors.New("ambiguous task id")

// NewTask carries the fields for Store.Add. Points are derived.
type NewTask struct {
	Name        string
	Link        string
	Note        string
	Importance  int
	Complexity  int
	PlannedDate *time.Time
	DueDate     *time.Time
	ParentID    string
	Tags        []string
}

// Update lists the fields to change; nil leaves a field alone. The Clear
// flags remove a date.
type Update struct {
	Name         *string
	Link         *string
	Note         *string
	Importance   *int
	Complexity   *int
	PlannedDate  *time.Time
	ClearPlanned bool
	DueDate      *time.Time
	ClearDue     bool
}

// ListOptions configures which tasks List returns and how.
type ListOptions struct {
	// ShowDone includes completed tasks.
	ShowDone bool
	// Flat skips nesting subtasks under their parents; every task is
	// categorized and ordered at the top level.
	Flat bool
	// ReferenceTime is the "now" for the date context. Zero means time.Now()
	// at list time.
	ReferenceTime time.Time
}

// Counts summarizes open tasks per category.
type Counts struct {
	Open       int
	Total      int
	ByCategory map[Category]int
}

// Store handles task persistence.
type Store struct {
	db    *sql.DB
	clock func() time.Time
}

// NewStore creates a new task store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, clock: time.Now}
}

const taskColumns = `id, name, link, note, importance, complexity, points, planned_date, due_date, parent_id, done, completed_at, created_at, updated_at, tags`

// Add validates and inserts a task, returning its new ID.
func (s *Store) Add(nt NewTask) (string, error) {
	name := strings.TrimSpace(nt.Name)
	if name == "" {
		return "", errors.New("task name is required")
	}
	if err := ValidateScore(nt.Importance, nt.Complexity); err != nil {
		return "", err
	}
	if nt.ParentID != "" {
		parentID, err := s.Resolve(nt.ParentID)
		if err != nil {
			return "", fmt.Errorf("parent: %w", err)
		}
		nt.ParentID = parentID
	}

	now := ISO(s.clock())
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NULL, ?, ?, ?)`,
		id, name, nt.Link, nt.Note, nt.Importance, nt.Complexity, Score(nt.Importance, nt.Complexity),
		dayText(nt.PlannedDate), dayText(nt.DueDate), nullString(nt.ParentID), now, now, strings.Join(nt.Tags, ","),
	)
	if err != nil {
		return "", fmt.Errorf("inserting task: %w", err)
	}
	return id, nil
}

// Import inserts tasks as-is, flattening subtasks under their parent. Tasks
// without an ID get a fresh one; points are kept as given, clamped to range.
// Existing IDs are replaced. Returns the number of rows written.
func (s *Store) Import(tasks []Task) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := ISO(s.clock())
	n := 0
	var insert func(t Task, parentID string) error
	insert = func(t Task, parentID string) error {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if parentID != "" {
			t.ParentID = parentID
		}
		created := dateText(t.CreatedAt)
		if created == "" {
			created = now
		}
		updated := dateText(t.UpdatedAt)
		if updated == "" {
			updated = created
		}
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Link, t.Note, t.Importance, t.Complexity, ClampPoints(t.Points),
			nullString(dateText(t.PlannedDate)), nullString(dateText(t.DueDate)), nullString(t.ParentID),
			boolInt(t.IsCompleted), nullString(dateText(t.CompletedAt)), created, updated, strings.Join(t.Tags, ","),
		)
		if err != nil {
			return fmt.Errorf("importing task %q: %w", t.Name, err)
		}
		n++
		for _, sub := range t.Subtasks {
			if err := insert(sub, t.ID); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range tasks {
		if err := insert(t, ""); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Resolve expands an ID or unique ID prefix to a full task ID.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	rows, err := s.db.Query(`SELECT id FROM tasks WHERE id = ? OR id LIKE ? || '%' LIMIT 2`, ref, ref)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if id == ref {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
	}
}

// Get returns a single task (without subtasks) by ID or unique prefix.
func (s *Store) Get(ref string) (*Task, error) {
	id, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns tasks ordered by SortByPriority. Unless opts.Flat is set,
// subtasks are nested under their parents. A hidden (done) parent leaves its
// open subtasks at the top level.
func (s *Store) List(opts ListOptions) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if !opts.ShowDone {
		query += ` WHERE done = 0`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !opts.Flat {
		tasks = BuildTree(tasks)
	}

	ref := opts.ReferenceTime
	if ref.IsZero() {
		ref = s.clock()
	}
	return SortByPriority(tasks, NewDateContext(ref)), nil
}

// Complete marks a task done.
func (s *Store) Complete(ref string) error {
	id, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	now := ISO(s.clock())
	res, err := s.db.Exec(
		`UPDATE tasks SET done = 1, completed_at = ?, updated_at = ? WHERE id = ? AND done = 0`,
		now, now, id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("task %s is already done", ShortID(id))
	}
	return nil
}

// Uncomplete marks a task as not done.
func (s *Store) Uncomplete(ref string) error {
	id, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE tasks SET done = 0, completed_at = NULL, updated_at = ? WHERE id = ?`,
		ISO(s.clock()), id,
	)
	return err
}

// Delete removes a task. Its direct subtasks move to the top level.
func (s *Store) Delete(ref string) error {
	id, err := s.Resolve(ref)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE tasks SET parent_id = NULL, updated_at = ? WHERE parent_id = ?`, ISO(s.clock()), id); err != nil {
		return fmt.Errorf("detaching subtasks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Edit applies u to a task and recomputes its points.
func (s *Store) Edit(ref string, u Update) error {
	t, err := s.Get(ref)
	if err != nil {
		return err
	}

	importance, complexity := t.Importance, t.Complexity
	if u.Importance != nil {
		importance = *u.Importance
	}
	if u.Complexity != nil {
		complexity = *u.Complexity
	}
	if err := ValidateScore(importance, complexity); err != nil {
		return err
	}

	sets := []string{"importance = ?", "complexity = ?", "points = ?"}
	args := []any{importance, complexity, Score(importance, complexity)}

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return errors.New("task name is required")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if u.Link != nil {
		sets = append(sets, "link = ?")
		args = append(args, *u.Link)
	}
	if u.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *u.Note)
	}
	switch {
	case u.ClearPlanned:
		sets = append(sets, "planned_date = NULL")
	case u.PlannedDate != nil:
		sets = append(sets, "planned_date = ?")
		args = append(args, dayText(u.PlannedDate))
	}
	switch {
	case u.ClearDue:
		sets = append(sets, "due_date = NULL")
	case u.DueDate != nil:
		sets = append(sets, "due_date = ?")
		args = append(args, dayText(u.DueDate))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, ISO(s.clock()), t.ID)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	_, err = s.db.Exec(query, args...)
	return err
}

// Count tallies tasks, classifying open ones against ctx.
func (s *Store) Count(ctx DateContext) (Counts, error) {
	c := Counts{ByCategory: make(map[Category]int)}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&c.Total); err != nil {
		return c, err
	}

	open, err := s.List(ListOptions{Flat: true, ReferenceTime: ctx.today})
	if err != nil {
		return c, fmt.Errorf("listing open tasks: %w", err)
	}
	c.Open = len(open)
	for _, t := range open {
		c.ByCategory[Classify(t, ctx)]++
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (Task, error) {
	var t Task
	var doneInt int
	var link, note, planned, due, parent, completed, tags sql.NullString
	var created, updated string

	if err := r.Scan(&t.ID, &t.Name, &link, &note, &t.Importance, &t.Complexity, &t.Points,
		&planned, &due, &parent, &doneInt, &completed, &created, &updated, &tags); err != nil {
		return Task{}, err
	}

	t.Link = link.String
	t.Note = note.String
	t.ParentID = parent.String
	t.IsCompleted = doneInt == 1
	t.PlannedDate = textOrNil(planned.String)
	t.DueDate = textOrNil(due.String)
	t.CompletedAt = textOrNil(completed.String)
	t.CreatedAt = textOrNil(created)
	t.UpdatedAt = textOrNil(updated)
	if tags.Valid && tags.String != "" {
		t.Tags = strings.Split(tags.String, ",")
	}
	return t, nil
}

// dayText stores a calendar day as UTC-midnight ISO text.
func dayText(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	day, _ := Normalize(*t)
	return ISO(day)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Streak computes the completion streak against ctx.
func (s *Store) Streak(ctx DateContext) (Streak, error) {
	rows, err := s.db.Query(`SELECT completed_at FROM tasks WHERE done = 1 AND completed_at IS NOT NULL`)
	if err != nil {
		return Streak{}, err
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var at string
		if err := rows.Scan(&at); err != nil {
			return Streak{}, err
		}
		if day, ok := Text(at).Day(); ok {
			days = append(days, day)
		}
	}
	if err := rows.Err(); err != nil {
		return Streak{}, err
	}
	return ComputeStreak(days, ctx), nil
}
