package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rnwolfe/tally/internal/task"
	"github.com/spf13/cobra"
)

var classifySort bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Categorize task records read from stdin",
	Long: `Read a JSON array of task records on stdin and print one line per task:
its ID, category and points. Dates are taken as ISO-8601 text, exactly as a
client would send them.

With --sort the lines come out in priority order.`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVarP(&classifySort, "sort", "s", false, "Print in priority order")
}

func runClassify(_ *cobra.Command, _ []string) error {
	return classifyRecords(os.Stdin, os.Stdout, dateContext(), classifySort)
}

func classifyRecords(r io.Reader, w io.Writer, ctx task.DateContext, sorted bool) error {
	tasks, err := task.DecodeRecords(r)
	if err != nil {
		return err
	}
	if sorted {
		tasks = task.SortByPriority(tasks, ctx)
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", t.ID, task.Classify(t, ctx), t.Points); err != nil {
			return err
		}
	}
	return nil
}
