package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
)

// Config holds the top-level tally configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Tasks   TasksConfig   `toml:"tasks"`
	Display DisplayConfig `toml:"display"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// TasksConfig holds defaults applied when capturing a task.
type TasksConfig struct {
	// DefaultImportance and DefaultComplexity fall back to the capture
	// defaults (0 and 3) when unset, which lands new dateless tasks in the inbox.
	DefaultImportance *int `toml:"default_importance,omitempty"`
	DefaultComplexity *int `toml:"default_complexity,omitempty"`
	// ShowDone includes completed tasks in list output.
	ShowDone bool `toml:"show_done"`
}

// Importance returns the configured default importance.
func (t TasksConfig) Importance() int {
	if t.DefaultImportance == nil {
		return task.DefaultImportance
	}
	return *t.DefaultImportance
}

// Complexity returns the configured default complexity.
func (t TasksConfig) Complexity() int {
	if t.DefaultComplexity == nil {
		return task.DefaultComplexity
	}
	return *t.DefaultComplexity
}

type DisplayConfig struct {
	Color string `toml:"color"` // auto, always, never
	// Subtasks controls whether list output nests subtasks under their parent.
	// Defaults to true when not set.
	Subtasks *bool `toml:"subtasks,omitempty"`
}

// ShowSubtasks treats nil (missing from config) as true.
func (d DisplayConfig) ShowSubtasks() bool {
	if d.Subtasks == nil {
		return true
	}
	return *d.Subtasks
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	tallyConfig := filepath.Join(configDir, "tally")
	tallyData := filepath.Join(dataDir, "tally")

	return Paths{
		ConfigDir:  tallyConfig,
		DataDir:    tallyData,
		StateDir:   filepath.Join(stateDir, "tally"),
		ConfigFile: filepath.Join(tallyConfig, "config.toml"),
		DBFile:     filepath.Join(tallyData, "tally.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", paths.ConfigFile, err)
	}
	return cfg, nil
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if err := task.ValidateScore(c.Tasks.Importance(), c.Tasks.Complexity()); err != nil {
		return fmt.Errorf("tasks defaults: %w", err)
	}
	switch c.Display.Color {
	case "", ui.ColorAuto, ui.ColorAlways, ui.ColorNever:
	default:
		return fmt.Errorf("invalid display.color %q — valid values: auto, always, never", c.Display.Color)
	}
	return nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if tally has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr returns a pointer to an int value.
func IntPtr(v int) *int {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Color:    ui.ColorAuto,
			Subtasks: BoolPtr(true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
