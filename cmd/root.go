package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/store"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/tips"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/rnwolfe/tally/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Score your tasks and work the list top-down",
	Long: `tally — a personal task list that tells you what to do next.

Every task gets points from its importance and complexity, lands in a
category by its dates (inbox, overdue, today, tomorrow, anytime, upcoming),
and the list is always sorted the same way: category first, then points.`,
	RunE:              runDashboard,
	PersistentPreRunE: applyDisplayConfig,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyDisplayConfig sets the color profile before any command prints. A
// broken config file must not lock the user out of `tally config set`, so
// load failures only warn here.
func applyDisplayConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: loading config: %v", err)
		return nil
	}
	return ui.Configure(cfg.Display.Color)
}

// openTasks opens the database and returns a task store over it. Callers
// close the returned DB.
func openTasks() (*store.DB, *task.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, task.NewStore(db.Conn()), nil
}

// runDashboard shows the at-a-glance tally when you just type `tally`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("tally init"))
		fmt.Println()
		return nil
	}

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := dateContext()
	counts, err := ts.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting tasks: %w", err)
	}

	summary := fmt.Sprintf("%d open", counts.Open)
	if counts.Total > 0 {
		summary += fmt.Sprintf(" / %d total", counts.Total)
	}
	ui.Kv(ui.IconTask+" Tasks", summary)

	for _, c := range task.Categories() {
		n := counts.ByCategory[c]
		if n == 0 {
			continue
		}
		label := task.CategoryStyle(c).Render(fmt.Sprintf("%-9s", task.CategoryLabel(c)))
		fmt.Printf("    %s %d\n", label, n)
	}

	fmt.Println()
	ui.Kv("  Today", ctx.Today().Format("Monday, January 2"))
	if streak, err := ts.Streak(ctx); err == nil && streak.Longest > 0 {
		ui.Kv("  Streak", fmt.Sprintf("%d day(s), best %d", streak.Current, streak.Longest))
	}
	if at, ok := lastImport(db); ok {
		ui.Kv("  Imported", at.Local().Format("Jan 2 15:04"))
	}
	ui.Kv("  tally", version.Short())

	switch {
	case counts.ByCategory[task.CategoryOverdue] > 0:
		ui.Tip("`tally task next` to tackle what slipped.")
	case counts.ByCategory[task.CategoryCollected] > 0:
		ui.Tip("score your inbox: `tally task edit <id> -i 20 -c 2`.")
	case counts.Total == 0:
		ui.Tip("`tally task add \"something worth doing\"` to capture a task.")
	default:
		ui.Tip(tips.Daily(ctx.Today()))
	}

	fmt.Println()
	return nil
}
