package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
)

// TaskAction represents an action taken in the task TUI.
type TaskAction struct {
	Type string // "toggle", "delete", "add"
	ID   string
	Text string
}

// row is one visible line: a task at some nesting depth. Top-level rows
// carry the category their group header shows.
type row struct {
	task     task.Task
	depth    int
	category task.Category
}

// TaskModel is an interactive Bubbletea model over a prioritized task list.
type TaskModel struct {
	rows     []row
	filtered []row
	cursor   int
	filter   string
	mode     taskMode
	ctx      task.DateContext

	addInput string

	width  int
	height int

	// pending actions to apply after quitting
	Actions []TaskAction
}

type taskMode int

const (
	taskModeNormal taskMode = iota
	taskModeFilter
	taskModeAdd
)

// NewTaskModel builds a model over tasks already ordered by SortByPriority.
// ctx must be the snapshot the tasks were sorted with.
func NewTaskModel(tasks []task.Task, ctx task.DateContext) *TaskModel {
	m := &TaskModel{ctx: ctx, width: 80, height: 24}
	for _, t := range tasks {
		m.rows = appendRows(m.rows, t, 0, task.Classify(t, ctx))
	}
	m.applyFilter()
	return m
}

func appendRows(rows []row, t task.Task, depth int, c task.Category) []row {
	rows = append(rows, row{task: t, depth: depth, category: c})
	for _, s := range t.Subtasks {
		rows = appendRows(rows, s, depth+1, c)
	}
	return rows
}

// RunTasks launches the interactive task TUI. Returns actions for the caller to apply.
func RunTasks(tasks []task.Task, ctx task.DateContext) ([]TaskAction, error) {
	m := NewTaskModel(tasks, ctx)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("task tui: %w", err)
	}
	return result.(*TaskModel).Actions, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (m *TaskModel) Init() tea.Cmd {
	return nil
}

func (m *TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case taskModeFilter:
			return m.handleFilterKey(msg)
		case taskModeAdd:
			return m.handleAddKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m *TaskModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "g":
		m.cursor = 0

	case "G":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}

	case "x", " ", "enter":
		if len(m.filtered) > 0 {
			id := m.filtered[m.cursor].task.ID
			m.Actions = append(m.Actions, TaskAction{Type: "toggle", ID: id})
			for i := range m.rows {
				if m.rows[i].task.ID == id {
					m.rows[i].task.IsCompleted = !m.rows[i].task.IsCompleted
				}
			}
			m.applyFilter()
		}

	case "d":
		if len(m.filtered) > 0 {
			id := m.filtered[m.cursor].task.ID
			m.Actions = append(m.Actions, TaskAction{Type: "delete", ID: id})
			kept := m.rows[:0]
			for _, r := range m.rows {
				if r.task.ID != id {
					kept = append(kept, r)
				}
			}
			m.rows = kept
			m.applyFilter()
			m.clampCursor()
		}

	case "a":
		m.mode = taskModeAdd
		m.addInput = ""

	case "/":
		m.mode = taskModeFilter
		m.filter = ""
		m.applyFilter()
		m.cursor = 0
	}

	return m, nil
}

func (m *TaskModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = taskModeNormal
		m.filter = ""
		m.applyFilter()
		m.cursor = 0

	case "enter":
		m.mode = taskModeNormal

	case "backspace":
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
			m.cursor = 0
		}

	default:
		if len(msg.Runes) > 0 {
			m.filter += string(msg.Runes)
			m.applyFilter()
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *TaskModel) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = taskModeNormal
		m.addInput = ""

	case "enter":
		text := strings.TrimSpace(m.addInput)
		if text != "" {
			m.Actions = append(m.Actions, TaskAction{Type: "add", Text: text})
			// New captures land in the inbox, which always heads the list.
			captured := task.Task{
				Name:       text,
				Importance: task.DefaultImportance,
				Complexity: task.DefaultComplexity,
			}
			m.rows = append([]row{{task: captured, category: task.CategoryCollected}}, m.rows...)
			m.applyFilter()
			m.cursor = 0
		}
		m.mode = taskModeNormal
		m.addInput = ""

	case "backspace":
		if len(m.addInput) > 0 {
			runes := []rune(m.addInput)
			m.addInput = string(runes[:len(runes)-1])
		}

	default:
		if len(msg.Runes) > 0 {
			m.addInput += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *TaskModel) applyFilter() {
	m.filtered = nil
	for _, r := range m.rows {
		if m.filter == "" {
			m.filtered = append(m.filtered, r)
			continue
		}
		if matchTask(m.filter, r.task) {
			m.filtered = append(m.filtered, r)
		}
	}
}

func (m *TaskModel) clampCursor() {
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m *TaskModel) View() string {
	var b strings.Builder

	header := ui.Title.Render("  " + ui.IconTask + " Tasks")
	if m.filter != "" {
		header += ui.Muted.Render(fmt.Sprintf("  filter: %q", m.filter))
	}
	b.WriteString(header + "\n")

	visHeight := max(m.height-9, 3)
	offset := 0
	if m.cursor >= visHeight {
		offset = m.cursor - visHeight + 1
	}

	if len(m.filtered) == 0 {
		b.WriteString("\n")
		if m.filter != "" {
			b.WriteString("  " + ui.Muted.Render("No matches. Press esc to clear filter.") + "\n")
		} else {
			b.WriteString("  " + ui.Muted.Render("Nothing to do. Press 'a' to capture a task.") + "\n")
		}
	} else {
		end := min(offset+visHeight, len(m.filtered))
		var last task.Category
		for i := offset; i < end; i++ {
			r := m.filtered[i]
			if r.category != last {
				b.WriteString("\n" + task.CategoryStyle(r.category).Render("  "+task.CategoryLabel(r.category)) + "\n")
				last = r.category
			}
			b.WriteString(m.renderRow(r, i == m.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	switch m.mode {
	case taskModeFilter:
		prompt := lipgloss.NewStyle().Foreground(ui.Marigold).Bold(true).Render("/")
		b.WriteString("  " + prompt + " " + m.filter + blinkCursor() + "\n")
	case taskModeAdd:
		prompt := lipgloss.NewStyle().Foreground(ui.Teal).Bold(true).Render("add:")
		b.WriteString("  " + prompt + " " + m.addInput + blinkCursor() + "\n")
	default:
		b.WriteString("\n")
	}

	open := 0
	for _, r := range m.rows {
		if !r.task.IsCompleted {
			open++
		}
	}
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d shown · %d open", len(m.filtered), len(m.rows), open)) + "\n")

	var help string
	switch m.mode {
	case taskModeFilter:
		help = "  esc clear · enter confirm"
	case taskModeAdd:
		help = "  enter save · esc cancel"
	default:
		help = "  j/k move · x toggle · a add · d delete · / filter · q quit"
	}
	b.WriteString(ui.Muted.Render(help) + "\n")

	return b.String()
}

func (m *TaskModel) renderRow(r row, selected bool) string {
	t := r.task
	pointer := "  "
	nameStyle := lipgloss.NewStyle()
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		nameStyle = lipgloss.NewStyle().Foreground(ui.Marigold).Bold(true)
	}

	marker := " "
	if t.IsCompleted {
		marker = ui.Success.Render("✓")
	}

	id := ui.Muted.Render(fmt.Sprintf("%-8s", task.ShortID(t.ID)))
	if t.ID == "" {
		id = ui.Muted.Render("new     ")
	}

	name := t.Name
	if t.IsCompleted {
		name = ui.Muted.Render(name)
	} else {
		name = nameStyle.Render(name)
	}

	indent := strings.Repeat("  ", r.depth)
	line := fmt.Sprintf("  %s %s %s %s %s%s", pointer, marker, id, task.FormatPoints(t.Points), indent, name)

	if when := task.FormatDay(t.PlannedDate, m.ctx); when != "" && r.depth == 0 {
		line += ui.Muted.Render(" (" + when + ")")
	}
	if due := task.FormatDay(t.DueDate, m.ctx); due != "" && !t.IsCompleted {
		style := ui.Muted
		if task.IsUrgent(t.DueDate, m.ctx) {
			style = ui.Error
		}
		line += style.Render(" (due " + due + ")")
	}
	if len(t.Tags) > 0 {
		line += ui.Muted.Render(" [" + strings.Join(t.Tags, ", ") + "]")
	}
	return line
}

func blinkCursor() string {
	return lipgloss.NewStyle().Foreground(ui.Marigold).Render("▎")
}
