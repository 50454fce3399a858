package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configUnsetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.GetPaths().ConfigFile)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Known keys:\n" + keyHelp(),
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a configuration value to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func keyHelp() string {
	var b strings.Builder
	for _, name := range config.ValidKeyNames() {
		entry, _ := config.LookupKey(name)
		fmt.Fprintf(&b, "  %-26s %s (default %q)\n", name, entry.Desc, entry.DefaultStr)
	}
	return b.String()
}

func lookupKey(key string) (*config.KeyEntry, error) {
	entry, ok := config.LookupKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown config key %q — valid keys: %s",
			key, strings.Join(config.ValidKeyNames(), ", "))
	}
	return entry, nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	entry, err := lookupKey(key)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := entry.Set(cfg, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, entry.Get(cfg)))
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	entry, err := lookupKey(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println(entry.Get(cfg))
	return nil
}

func runConfigUnset(_ *cobra.Command, args []string) error {
	key := args[0]
	entry, err := lookupKey(key)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	entry.Unset(cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s reset to %s", key, entry.Get(cfg)))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths := config.GetPaths()

	ui.Header("Configuration")
	fmt.Println()
	for _, name := range config.ValidKeyNames() {
		entry, _ := config.LookupKey(name)
		ui.Kv(name, entry.Get(cfg))
	}
	fmt.Println()
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	ui.Tip(fmt.Sprintf("Edit directly: %s", ui.Accent.Render("$EDITOR "+paths.ConfigFile)))
	fmt.Println()

	return nil
}
