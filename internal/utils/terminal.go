package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
// Commands that read plaintext from stdin use this to print a prompt hint
// before blocking on interactive input.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsOutputTerminal returns true if stdout is a terminal. Binary ciphertext
// is refused on an interactive stdout so it does not wreck the terminal.
func IsOutputTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
