package cmdutils

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const logo = "💬"

var (
	accent = color.New(color.FgCyan, color.Bold).SprintFunc()
	failed = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// Logo returns the CLI's banner glyph.
func Logo() string { return logo }

// PrintResponse writes a reply block. Empty replies are skipped.
func PrintResponse(w io.Writer, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s %s\n%s\n\n", logo, accent("nexuchat"), text)
}

// PrintError writes an error line in red.
func PrintError(w io.Writer, text string) {
	fmt.Fprintf(w, "%s\n", failed(text))
}

// PrintProgress writes an indented, dimmed status line.
func PrintProgress(w io.Writer, text string) {
	fmt.Fprintf(w, "  ↳ %s\n", faint(text))
}
