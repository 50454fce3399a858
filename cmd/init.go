package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/store"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

// kvInitializedAt records when `tally init` last ran.
const kvInitializedAt = "initialized_at"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up tally for the first time",
	Long:  `Initialize tally with your preferences. Creates config and data directories.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconTally + "Welcome to tally!"))
	fmt.Println()
	ui.Inf("A few questions and you're set.")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	defaultName := cfg.User.Name
	if defaultName == "" {
		defaultName = os.Getenv("USER")
	}
	cfg.User.Name = prompt(reader, "  What should I call you?", defaultName)

	fmt.Println()
	fmt.Println(ui.Muted.Render("  New tasks start at importance 0, complexity 3 and wait in the inbox"))
	fmt.Println(ui.Muted.Render("  until you score them. Change the defaults to skip the inbox."))
	fmt.Println()

	imp, err := promptInt(reader, "  Default importance (0-50)?", cfg.Tasks.Importance())
	if err != nil {
		return err
	}
	cx, err := promptInt(reader, "  Default complexity (1-9)?", cfg.Tasks.Complexity())
	if err != nil {
		return err
	}
	if err := task.ValidateScore(imp, cx); err != nil {
		return err
	}
	if imp != task.DefaultImportance {
		cfg.Tasks.DefaultImportance = config.IntPtr(imp)
	}
	if cx != task.DefaultComplexity {
		cfg.Tasks.DefaultComplexity = config.IntPtr(cx)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()
	if err := db.SetKV(kvInitializedAt, task.ISO(clock())); err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}

	paths := config.GetPaths()
	fmt.Println()
	ui.Ok("All set!")
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	fmt.Printf("  Capture something: %s\n", ui.Accent.Render(`tally task add "first thing"`))
	fmt.Println()
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func promptInt(reader *bufio.Reader, question string, defaultVal int) (int, error) {
	answer := prompt(reader, question, strconv.Itoa(defaultVal))
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", answer)
	}
	return n, nil
}
