package cmd

import (
	"fmt"
	"strconv"

	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var pointsCmd = &cobra.Command{
	Use:   "points <importance> <complexity>",
	Short: "Score a task without saving it",
	Long: `Print the points for an importance (0-50) and complexity (1-9).

Points are 10 × importance ÷ complexity, rounded, so important, simple work
scores highest. The maximum is 500, which also sends a dateless task to the
inbox.`,
	Args: cobra.ExactArgs(2),
	RunE: runPoints,
}

func runPoints(_ *cobra.Command, args []string) error {
	importance, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("importance %q is not an integer", args[0])
	}
	complexity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("complexity %q is not an integer", args[1])
	}
	if err := task.ValidateScore(importance, complexity); err != nil {
		return err
	}

	points := task.Score(importance, complexity)
	fmt.Printf("  %s  importance %d · complexity %d\n", ui.Accent.Render(fmt.Sprintf("%s%d", ui.IconPoints, points)), importance, complexity)
	if task.IsCollectable(task.Task{Importance: importance, Complexity: complexity, Points: points}) {
		fmt.Println(ui.Muted.Render("  lands in the inbox"))
	}
	return nil
}
