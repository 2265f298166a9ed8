package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/spookylukey/booklet-maker/pkg/booklet"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// printResult writes the outcome of a conversion followed by the print
// instructions, which are kept unstyled so they can be copied verbatim.
func printResult(w io.Writer, output string, res *booklet.Result) {
	fmt.Fprintf(w, "%s Wrote %s %s\n",
		styleSuccess.Render(iconSuccess),
		output,
		styleDim.Render(fmt.Sprintf("(%s sheets, %s pages)",
			styleNumber.Render(fmt.Sprint(res.Sheets)),
			styleNumber.Render(fmt.Sprint(res.OutputPages)))))
	fmt.Fprintln(w)
	fmt.Fprint(w, res.Instructions.String())
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), msg)
}
