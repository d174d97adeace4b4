// Package printer writes colored CLI output.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix.
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(w, msg)
}

// Info prints an informational message in the default color.
func Info(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format, a...)
}

// Warning prints a warning message in yellow.
func Warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "warning: "+format, a...)
}

// Outcome prints one evaluated neighborhood.
func Outcome(w io.Writer, state, outcome string) {
	fmt.Fprintf(w, "%s -> ", state)
	cyan.Fprintln(w, outcome)
}

// Error prints a titled error with suggestions to stderr and returns a plain
// error for cobra, which is configured not to print it again.
func Error(title, explanation string, suggestions ...string) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", explanation)
	}
	if len(suggestions) == 1 {
		fmt.Fprintf(os.Stderr, "\n%s\n", suggestions[0])
	} else if len(suggestions) > 1 {
		fmt.Fprintf(os.Stderr, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, s)
		}
	}
	return fmt.Errorf("%s", title)
}
