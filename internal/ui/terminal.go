package ui

import (
	"os"

	"golang.org/x/term"
)

// InteractiveTerminal reports whether stdin and stdout are both terminals.
// The pickers refuse to start otherwise so piped runs stay scriptable.
func InteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the current terminal width, or fallback when the
// size cannot be determined.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
