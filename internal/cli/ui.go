package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles are shared with the picker and the check command.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// marker is the colored glyph leading a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func status(m marker, msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { status(markSuccess, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any) { status(markInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints "n participants · n messages [· n warnings] · cached|fresh".
func printStats(participants, messages, warnings int, cached bool) {
	parts := []string{plural(participants, "participant"), plural(messages, "message")}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	sep := StyleDim.Render(" · ")
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	state := styleFresh.Render("fresh")
	if cached {
		state = styleCached.Render("cached")
	}
	fmt.Fprintln(stdout, "  "+strings.Join(append(parts, state), sep))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
