package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "List tasks in priority order",
	Long: `List open tasks grouped by category and sorted by priority.

Categories, highest first:
  inbox      unscored captures (importance 0, complexity 3) or maxed-out points
  overdue    planned or due before today
  today      planned or due today
  tomorrow   planned or due tomorrow
  anytime    no date
  upcoming   planned or due later

Within a category, higher points come first; overdue and upcoming tasks are
ordered by date before points. Subtasks are nested under their parent and
ordered by points alone.

In an interactive terminal, launches a full-screen browser.

Keyboard shortcuts (interactive mode):
  j / k        Move down / up
  x / space    Toggle done/undone
  a            Capture a new task
  d            Delete selected task
  /            Filter tasks (fuzzy search)
  g / G        Jump to top / bottom
  q / Esc      Quit`,
	RunE: runTaskList,
}

var (
	taskShowDone bool
	taskFlat     bool
	taskCategory string

	taskImportance intFlag
	taskComplexity intFlag
	taskPlanned    dayFlag
	taskDue        dayFlag
	taskParent     string
	taskTags       string
	taskLink       stringFlag
	taskNote       stringFlag
)

func init() {
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskPlanCmd)
	taskCmd.AddCommand(taskDueCmd)
	taskCmd.AddCommand(taskNextCmd)

	taskCmd.Flags().BoolVar(&taskShowDone, "done", false, "Show completed tasks too")
	taskCmd.Flags().BoolVar(&taskFlat, "flat", false, "Don't nest subtasks under their parent")
	taskCmd.Flags().StringVar(&taskCategory, "category", "", "Only show tasks in one category (inbox, overdue, today, ...)")

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().VarP(&taskImportance, "importance", "i", "Importance, 0-50")
		c.Flags().VarP(&taskComplexity, "complexity", "c", "Complexity, 1-9")
		c.Flags().Var(&taskPlanned, "planned", "Planned day (today, tomorrow, +Nd, YYYY-MM-DD)")
		c.Flags().Var(&taskDue, "due", "Due day (today, tomorrow, +Nd, YYYY-MM-DD)")
		c.Flags().Var(&taskLink, "link", "URL or reference")
		c.Flags().Var(&taskNote, "note", "Free-form note")
	}
	taskAddCmd.Flags().StringVarP(&taskParent, "parent", "p", "", "Parent task ID (or unique prefix)")
	taskAddCmd.Flags().StringVarP(&taskTags, "tags", "t", "", "Comma-separated tags")
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Capture a task",
	Long: `Capture a task. Without -i/-c the configured defaults apply; out of the
box that is importance 0, complexity 3, which lands the task in the inbox
until you score it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"do", "complete", "x"},
	Short:   "Mark a task complete",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDone,
}

var taskUndoCmd = &cobra.Command{
	Use:     "undo <id>",
	Aliases: []string{"reopen"},
	Short:   "Reopen a completed task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskUndo,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a task; its subtasks move to the top level",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRm,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id> [new name]",
	Short: "Rename, rescore or redate a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskEdit,
}

var taskPlanCmd = &cobra.Command{
	Use:   "plan <id> <day|none>",
	Short: "Set or clear the day you plan to work on a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskPlan,
}

var taskDueCmd = &cobra.Command{
	Use:   "due <id> <day|none>",
	Short: "Set or clear a task's deadline",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskDue,
}

var taskNextCmd = &cobra.Command{
	Use:   "next [n]",
	Short: "Show the top of the list — what should you work on?",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTaskNext,
}

// resetTaskFlags clears flag state shared between subcommands.
func resetTaskFlags() {
	taskImportance, taskComplexity = intFlag{}, intFlag{}
	taskPlanned, taskDue = dayFlag{}, dayFlag{}
	taskLink, taskNote = stringFlag{}, stringFlag{}
	taskParent, taskTags = "", ""
}

func runTaskAdd(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	nt := task.NewTask{
		Name:        strings.Join(args, " "),
		Link:        taskLink.val,
		Note:        taskNote.val,
		Importance:  taskImportance.or(cfg.Tasks.Importance()),
		Complexity:  taskComplexity.or(cfg.Tasks.Complexity()),
		PlannedDate: taskPlanned.day,
		DueDate:     taskDue.day,
		ParentID:    taskParent,
		Tags:        splitTags(taskTags),
	}

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := ts.Add(nt)
	if err != nil {
		return describeTaskErr(err, "adding task")
	}
	t, err := ts.Get(id)
	if err != nil {
		return err
	}

	ctx := dateContext()
	fmt.Printf("  %s Added %s %s\n", ui.Success.Render("✓"), task.FormatPoints(t.Points), ui.Accent.Render(task.ShortID(id)))
	fmt.Printf("    %s\n", t.Name)
	fmt.Printf("    Category: %s\n", task.FormatCategoryTag(task.Classify(*t, ctx)))
	if d := task.FormatDay(t.PlannedDate, ctx); d != "" {
		fmt.Printf("    Planned: %s\n", ui.Muted.Render(d))
	}
	if d := task.FormatDay(t.DueDate, ctx); d != "" {
		fmt.Printf("    Due: %s\n", ui.Muted.Render(d))
	}
	fmt.Println()
	return nil
}

func runTaskDone(_ *cobra.Command, args []string) error {
	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Get(args[0])
	if err != nil {
		return describeTaskErr(err, "completing task")
	}
	if err := ts.Complete(t.ID); err != nil {
		return err
	}

	fmt.Printf("  %s Done! %s %s\n", ui.Success.Render("✓"), ui.Muted.Render(t.Name), task.FormatPoints(t.Points))

	counts, err := ts.Count(dateContext())
	if err == nil {
		if counts.Open == 0 {
			fmt.Println(ui.Success.Render("  All clear! Nothing left to do."))
		} else {
			fmt.Printf("  %s\n", ui.Muted.Render(fmt.Sprintf("%d remaining", counts.Open)))
		}
	}
	fmt.Println()
	return nil
}

func runTaskUndo(_ *cobra.Command, args []string) error {
	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Get(args[0])
	if err != nil {
		return describeTaskErr(err, "reopening task")
	}
	if err := ts.Uncomplete(t.ID); err != nil {
		return err
	}
	fmt.Printf("  %s Reopened %s\n", ui.Success.Render("✓"), t.Name)
	fmt.Println()
	return nil
}

func runTaskRm(_ *cobra.Command, args []string) error {
	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Get(args[0])
	if err != nil {
		return describeTaskErr(err, "removing task")
	}
	if err := ts.Delete(t.ID); err != nil {
		return err
	}
	fmt.Printf("  %s Removed %s %s\n", ui.Success.Render("✓"), ui.Muted.Render(task.ShortID(t.ID)), t.Name)
	fmt.Println()
	return nil
}

func runTaskEdit(_ *cobra.Command, args []string) error {
	u := task.Update{
		Link:        taskLink.ptr(),
		Note:        taskNote.ptr(),
		Importance:  taskImportance.ptr(),
		Complexity:  taskComplexity.ptr(),
		PlannedDate: taskPlanned.day,
		DueDate:     taskDue.day,
	}
	if len(args) > 1 {
		name := strings.Join(args[1:], " ")
		u.Name = &name
	}

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ts.Edit(args[0], u); err != nil {
		return describeTaskErr(err, "editing task")
	}
	t, err := ts.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("  %s Updated %s → %s %s\n", ui.Success.Render("✓"),
		ui.Muted.Render(task.ShortID(t.ID)), t.Name, task.FormatPoints(t.Points))
	fmt.Println()
	return nil
}

func runTaskPlan(_ *cobra.Command, args []string) error {
	return setTaskDay(args[0], args[1], "Planned", func(u *task.Update, d *dayFlag, unset bool) {
		u.PlannedDate, u.ClearPlanned = d.day, unset
	})
}

func runTaskDue(_ *cobra.Command, args []string) error {
	return setTaskDay(args[0], args[1], "Due", func(u *task.Update, d *dayFlag, unset bool) {
		u.DueDate, u.ClearDue = d.day, unset
	})
}

func setTaskDay(ref, when, label string, apply func(*task.Update, *dayFlag, bool)) error {
	var d dayFlag
	unset := isClearWord(when)
	if !unset {
		if err := d.Set(when); err != nil {
			return err
		}
	}
	var u task.Update
	apply(&u, &d, unset)

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ts.Edit(ref, u); err != nil {
		return describeTaskErr(err, "dating task")
	}
	t, err := ts.Get(ref)
	if err != nil {
		return err
	}

	ctx := dateContext()
	shown := "cleared"
	if !unset {
		shown = task.FormatDay(task.At(*d.day), ctx)
	}
	fmt.Printf("  %s %s %s → %s %s\n", ui.Success.Render("✓"), label, t.Name,
		ui.Accent.Render(shown), task.FormatCategoryTag(task.Classify(*t, ctx)))
	fmt.Println()
	return nil
}

func runTaskNext(_ *cobra.Command, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%q is not a valid count — use %s",
				args[0], ui.Accent.Render("tally task next [n]"))
		}
		count = n
	}

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	// One snapshot for sorting and rendering.
	now := clock()
	ctx := task.NewDateContext(now)
	tasks, err := ts.List(task.ListOptions{ReferenceTime: now})
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println()
		fmt.Println(ui.Success.Render("  All clear! No open tasks."))
		fmt.Println()
		return nil
	}

	count = min(count, len(tasks))
	fmt.Println()
	for rank, t := range tasks[:count] {
		printTaskCard(t, rank+1, ctx)
	}
	return nil
}

// printTaskCard prints a detailed card for a single task.
func printTaskCard(t task.Task, rank int, ctx task.DateContext) {
	rankStr := ui.Muted.Render(fmt.Sprintf("%d.", rank))
	fmt.Printf("  %s %s %s %s\n", rankStr, task.FormatCategoryTag(task.Classify(t, ctx)),
		task.FormatPoints(t.Points), ui.Accent.Render(t.Name))

	fmt.Printf("     %s  importance %d · complexity %d\n", ui.Muted.Render(task.ShortID(t.ID)), t.Importance, t.Complexity)
	if d := task.FormatDay(t.PlannedDate, ctx); d != "" {
		fmt.Printf("     planned %s\n", d)
	}
	if d := task.FormatDay(t.DueDate, ctx); d != "" {
		style := ui.Muted
		if task.IsUrgent(t.DueDate, ctx) {
			style = ui.Error
		}
		fmt.Printf("     %s\n", style.Render("due "+d))
	}
	if t.Link != "" {
		fmt.Printf("     %s\n", ui.Muted.Render(t.Link))
	}
	if t.Note != "" {
		fmt.Printf("     %s\n", ui.Muted.Render(t.Note))
	}
	if n := len(task.Flatten(t.Subtasks)); n > 0 {
		fmt.Printf("     %s\n", ui.Muted.Render(fmt.Sprintf("%d subtask(s)", n)))
	}
	fmt.Println()
}

// describeTaskErr adds a hint to lookup failures.
func describeTaskErr(err error, action string) error {
	switch {
	case errors.Is(err, task.ErrNotFound):
		return fmt.Errorf("%s: %w — use %s to see IDs", action, err, ui.Accent.Render("tally task"))
	case errors.Is(err, task.ErrAmbiguousID):
		return fmt.Errorf("%s: %w — type more of the ID", action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
