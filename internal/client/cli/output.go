package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

func printError(w io.Writer, format string, args ...any) {
	_, _ = errorColor.Fprintf(w, format+"\n", args...)
}

// printField prints an aligned "label: value" line.
func printField(w io.Writer, label string, value any) {
	_, _ = labelColor.Fprintf(w, "%-12s", label+":")
	_, _ = fmt.Fprintf(w, " %v\n", value)
}
