package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/tui"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runTaskList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var only task.Category
	if taskCategory != "" {
		if only, err = task.ParseCategory(taskCategory); err != nil {
			return err
		}
	}

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	now := clock()
	ctx := task.NewDateContext(now)
	tasks, err := ts.List(task.ListOptions{
		ShowDone:      taskShowDone || cfg.Tasks.ShowDone,
		Flat:          taskFlat || !cfg.Display.ShowSubtasks(),
		ReferenceTime: now,
	})
	if err != nil {
		return err
	}
	if only != "" {
		tasks = filterCategory(tasks, only, ctx)
	}

	if tui.IsTTY() && ui.IsStdoutTTY() {
		return runTaskTUI(ts, tasks, ctx, cfg)
	}
	return printTaskList(tasks, ctx)
}

func runTaskTUI(ts *task.Store, tasks []task.Task, ctx task.DateContext, cfg *config.Config) error {
	actions, err := tui.RunTasks(tasks, ctx)
	if err != nil {
		return err
	}

	var failedActions []string
	for _, a := range actions {
		switch a.Type {
		case "toggle":
			t, err := ts.Get(a.ID)
			if err != nil {
				failedActions = append(failedActions, fmt.Sprintf("toggle %s: %v", task.ShortID(a.ID), err))
				continue
			}
			if t.IsCompleted {
				err = ts.Uncomplete(a.ID)
			} else {
				err = ts.Complete(a.ID)
			}
			if err != nil {
				failedActions = append(failedActions, fmt.Sprintf("toggle %s: %v", task.ShortID(a.ID), err))
			}
		case "delete":
			if err := ts.Delete(a.ID); err != nil {
				failedActions = append(failedActions, fmt.Sprintf("delete %s: %v", task.ShortID(a.ID), err))
			}
		case "add":
			_, err := ts.Add(task.NewTask{
				Name:       a.Text,
				Importance: cfg.Tasks.Importance(),
				Complexity: cfg.Tasks.Complexity(),
			})
			if err != nil {
				failedActions = append(failedActions, fmt.Sprintf("add %q: %v", a.Text, err))
			}
		}
	}

	if len(failedActions) > 0 {
		fmt.Println(ui.Warning.Render("Some actions failed:"))
		for _, msg := range failedActions {
			fmt.Println("  " + msg)
		}
	}
	return nil
}

// filterCategory keeps the top-level tasks classified as c, subtasks included.
func filterCategory(tasks []task.Task, c task.Category, ctx task.DateContext) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if task.Classify(t, ctx) == c {
			out = append(out, t)
		}
	}
	return out
}

// listPrefixWidth is everything left of the task name on a list line.
const listPrefixWidth = 2 + 1 + 1 + task.ColWidthID + task.ColWidthPoints + 1

func printTaskList(tasks []task.Task, ctx task.DateContext) error {
	if len(tasks) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  Nothing on the list. Enjoy it while it lasts."))
		fmt.Println()
		fmt.Printf("  Add one: %s\n", ui.Accent.Render(`tally task add "something worth doing"`))
		fmt.Println()
		return nil
	}

	width := terminalWidth()
	open := 0
	for _, g := range task.GroupByCategory(tasks, ctx) {
		fmt.Println()
		fmt.Println(task.CategoryStyle(g.Category).Render("  " + task.CategoryLabel(g.Category)))
		for _, t := range g.Tasks {
			open += printTaskLines(t, 0, ctx, width)
		}
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d open", open)))
	fmt.Println()
	return nil
}

// printTaskLines prints t and its subtasks, returning how many are open.
func printTaskLines(t task.Task, depth int, ctx task.DateContext, width int) int {
	marker := " "
	if t.IsCompleted {
		marker = ui.Success.Render("✓")
	}

	id := lipgloss.NewStyle().Width(task.ColWidthID).Render(ui.Muted.Render(task.ShortID(t.ID)))
	indent := strings.Repeat("  ", depth)

	var suffix []string
	if d := task.FormatDay(t.PlannedDate, ctx); d != "" && depth == 0 {
		suffix = append(suffix, ui.Muted.Render("("+d+")"))
	}
	if d := task.FormatDay(t.DueDate, ctx); d != "" && !t.IsCompleted {
		style := ui.Muted
		if task.IsUrgent(t.DueDate, ctx) {
			style = ui.Error
		}
		suffix = append(suffix, style.Render("(due "+d+")"))
	}
	if len(t.Tags) > 0 {
		suffix = append(suffix, ui.Muted.Render("["+strings.Join(t.Tags, ", ")+"]"))
	}

	name := ui.Truncate(t.Name, width-listPrefixWidth-len(indent))
	if t.IsCompleted {
		name = ui.Muted.Render(name)
	}

	line := fmt.Sprintf("  %s %s%s %s%s", marker, id, task.FormatPoints(t.Points), indent, name)
	if len(suffix) > 0 {
		line += " " + strings.Join(suffix, " ")
	}
	fmt.Println(line)

	open := 0
	if !t.IsCompleted {
		open = 1
	}
	for _, s := range t.Subtasks {
		open += printTaskLines(s, depth+1, ctx, width)
	}
	return open
}

// terminalWidth returns the stdout width, or 0 (no truncation) when stdout
// is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
