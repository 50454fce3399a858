package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rnwolfe/tally/internal/store"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

// kvLastImport records when tasks were last imported.
const kvLastImport = "last_import"

var (
	exportDone   bool
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write tasks as JSON records",
	Long: `Write tasks as a JSON array of records, subtasks nested, in priority
order. Dates are ISO-8601 text. The output can be read back with 'tally import'.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load tasks from JSON records",
	Long: `Load a JSON array of task records, as written by 'tally export'. Use "-"
to read stdin. Records with an existing ID replace that task.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportDone, "done", true, "Include completed tasks")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}

func runExport(_ *cobra.Command, _ []string) error {
	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	tasks, err := ts.List(task.ListOptions{ShowDone: exportDone, ReferenceTime: clock()})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := task.EncodeRecords(w, tasks); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	if exportOutput != "" {
		ui.Ok(fmt.Sprintf("Exported %d task(s) to %s", len(task.Flatten(tasks)), exportOutput))
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	tasks, err := task.DecodeRecords(r)
	if err != nil {
		return err
	}

	db, ts, err := openTasks()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := ts.Import(tasks)
	if err != nil {
		return fmt.Errorf("importing tasks: %w", err)
	}
	recordImport(db)

	ui.Ok(fmt.Sprintf("Imported %d task(s)", n))
	return nil
}

// recordImport notes the import time; failure is cosmetic.
func recordImport(db *store.DB) {
	if err := db.SetKV(kvLastImport, task.ISO(clock())); err != nil {
		ui.Warn(fmt.Sprintf("recording import time: %v", err))
	}
}

// lastImport returns when tasks were last imported, if ever.
func lastImport(db *store.DB) (time.Time, bool) {
	v, ok, err := db.GetKV(kvLastImport)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return task.Instant(task.Text(v))
}
