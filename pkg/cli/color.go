package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Colour modes accepted by diagnostics.color and FEKAL_COLOR.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnableColor resolves a colour mode to a decision. Auto enables colour
// when stdout is a terminal that advertises at least one colour and
// NO_COLOR is unset.
func EnableColor(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return stdoutHasColors()
}

func stdoutHasColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termAdvertisesColor(os.Getenv("TERM"))
}

// termAdvertisesColor approximates the terminfo colours capability
// without linking curses: an unset or dumb TERM gets no colour.
func termAdvertisesColor(term string) bool {
	switch term {
	case "", "dumb":
		return false
	}
	return true
}
