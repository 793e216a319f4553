package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusOut receives status lines. Results go to the command's stdout so
// they can be piped.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Styles
// =============================================================================

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleHighlight marks the spinner frame.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)

	// StyleLink renders share URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim renders secondary text and the viewer's key help.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	// StyleError renders the viewer's decode error banner.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleLabel   = styleMuted.Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	sep         = " · "
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleOK.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(statusOut, StyleWarning.Render(iconWarning+" "+fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleMuted.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

func printLink(key, url string) {
	fmt.Fprintln(statusOut, styleLabel.Render(key)+" "+StyleLink.Render(url))
}

// printStats prints a pattern's shape and whether its artifacts came from
// the cache, e.g. "d=120 · 4 circles · 1 line · cached".
func printStats(diameter, circles, lines int, cached bool) {
	parts := []string{
		fmt.Sprintf("d=%d", diameter),
		plural(circles, "circle"),
		plural(lines, "line"),
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	status := styleMuted.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(sep))+StyleDim.Render(sep)+status)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
