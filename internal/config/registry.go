package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rnwolfe/tally/internal/task"
	"github.com/rnwolfe/tally/internal/ui"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	Type       KeyType
	Desc       string
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the registry of all settable config keys, in TOML dot-notation.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"tasks.default_importance": {
		Type:       KeyTypeInt,
		Desc:       "Importance given to new tasks (0-50)",
		DefaultStr: strconv.Itoa(task.DefaultImportance),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Tasks.Importance()) },
		set: func(cfg *Config, v string) error {
			n, err := parseIntValue(v)
			if err != nil {
				return err
			}
			if err := task.ValidateScore(n, cfg.Tasks.Complexity()); err != nil {
				return err
			}
			cfg.Tasks.DefaultImportance = IntPtr(n)
			return nil
		},
		unset: func(cfg *Config) { cfg.Tasks.DefaultImportance = nil },
	},
	"tasks.default_complexity": {
		Type:       KeyTypeInt,
		Desc:       "Complexity given to new tasks (1-9)",
		DefaultStr: strconv.Itoa(task.DefaultComplexity),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Tasks.Complexity()) },
		set: func(cfg *Config, v string) error {
			n, err := parseIntValue(v)
			if err != nil {
				return err
			}
			if err := task.ValidateScore(cfg.Tasks.Importance(), n); err != nil {
				return err
			}
			cfg.Tasks.DefaultComplexity = IntPtr(n)
			return nil
		},
		unset: func(cfg *Config) { cfg.Tasks.DefaultComplexity = nil },
	},
	"tasks.show_done": {
		Type:       KeyTypeBool,
		Desc:       "Include completed tasks in lists",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Tasks.ShowDone) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return err
			}
			cfg.Tasks.ShowDone = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Tasks.ShowDone = false },
	},
	"display.color": {
		Type:       KeyTypeString,
		Desc:       "Color output (auto, always, never)",
		DefaultStr: ui.ColorAuto,
		get:        func(cfg *Config) string { return cfg.Display.Color },
		set: func(cfg *Config, v string) error {
			switch v {
			case ui.ColorAuto, ui.ColorAlways, ui.ColorNever:
				cfg.Display.Color = v
				return nil
			}
			return fmt.Errorf("invalid color mode %q — valid values: auto, always, never", v)
		},
		unset: func(cfg *Config) { cfg.Display.Color = ui.ColorAuto },
	},
	"display.subtasks": {
		Type:       KeyTypeBool,
		Desc:       "Nest subtasks under their parent in lists",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Display.ShowSubtasks()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return err
			}
			cfg.Display.Subtasks = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.Subtasks = BoolPtr(true) },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

func parseIntValue(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}
