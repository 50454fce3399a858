package task

import (
	"encoding/json"
	"fmt"
	"io"
)

// Record is the JSON shape exchanged with clients and export files. Every
// date travels as ISO-8601 text.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Link        string   `json:"link,omitempty"`
	Note        string   `json:"note,omitempty"`
	Importance  int      `json:"importance"`
	Complexity  int      `json:"complexity"`
	Points      int      `json:"points"`
	PlannedDate string   `json:"plannedDate,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	IsCompleted bool     `json:"isCompleted"`
	CompletedAt string   `json:"completedAt,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	Subtasks    []Record `json:"subtasks,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Task converts the record, keeping its dates as Text.
func (r Record) Task() Task {
	t := Task{
		ID:          r.ID,
		Name:        r.Name,
		Link:        r.Link,
		Note:        r.Note,
		Importance:  r.Importance,
		Complexity:  r.Complexity,
		Points:      r.Points,
		PlannedDate: textOrNil(r.PlannedDate),
		DueDate:     textOrNil(r.DueDate),
		ParentID:    r.ParentID,
		IsCompleted: r.IsCompleted,
		CompletedAt: textOrNil(r.CompletedAt),
		CreatedAt:   textOrNil(r.CreatedAt),
		UpdatedAt:   textOrNil(r.UpdatedAt),
		Tags:        r.Tags,
	}
	for _, s := range r.Subtasks {
		t.Subtasks = append(t.Subtasks, s.Task())
	}
	return t
}

// FromTask builds the wire record for t. Absent or unparseable dates are
// omitted; Text dates that parse are passed through unchanged.
func FromTask(t Task) Record {
	r := Record{
		ID:          t.ID,
		Name:        t.Name,
		Link:        t.Link,
		Note:        t.Note,
		Importance:  t.Importance,
		Complexity:  t.Complexity,
		Points:      t.Points,
		PlannedDate: dateText(t.PlannedDate),
		DueDate:     dateText(t.DueDate),
		ParentID:    t.ParentID,
		IsCompleted: t.IsCompleted,
		CompletedAt: dateText(t.CompletedAt),
		CreatedAt:   dateText(t.CreatedAt),
		UpdatedAt:   dateText(t.UpdatedAt),
		Tags:        t.Tags,
	}
	for _, s := range t.Subtasks {
		r.Subtasks = append(r.Subtasks, FromTask(s))
	}
	return r
}

// DecodeRecords reads a JSON array of records and converts them to tasks.
func DecodeRecords(r io.Reader) ([]Task, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decoding task records: %w", err)
	}
	tasks := make([]Task, len(recs))
	for i, rec := range recs {
		tasks[i] = rec.Task()
	}
	return tasks, nil
}

// EncodeRecords writes tasks as an indented JSON array.
func EncodeRecords(w io.Writer, tasks []Task) error {
	recs := make([]Record, len(tasks))
	for i, t := range tasks {
		recs[i] = FromTask(t)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func textOrNil(s string) Date {
	if s == "" {
		return nil
	}
	return Text(s)
}

func dateText(d Date) string {
	if s, ok := d.(Text); ok {
		if _, valid := s.Day(); valid {
			return string(s)
		}
		return ""
	}
	t, ok := Instant(d)
	if !ok {
		return ""
	}
	return ISO(t)
}
