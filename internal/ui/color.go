package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by Configure.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Configure selects the lipgloss color profile for the process.
// In auto mode color is dropped when NO_COLOR is set or stdout is not a terminal.
func Configure(mode string) error {
	p, err := profileFor(mode, os.Getenv("NO_COLOR") != "", IsStdoutTTY())
	if err != nil {
		return err
	}
	lipgloss.SetColorProfile(p)
	return nil
}

func profileFor(mode string, noColor, tty bool) (termenv.Profile, error) {
	switch mode {
	case ColorNever:
		return termenv.Ascii, nil
	case ColorAlways:
		return termenv.TrueColor, nil
	case "", ColorAuto:
		if noColor || !tty {
			return termenv.Ascii, nil
		}
		return termenv.EnvColorProfile(), nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid color mode %q — valid values: auto, always, never", mode)
	}
}
