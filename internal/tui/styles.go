package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Symbols for visual feedback.
const (
	SymbolCheck = "✓"
	SymbolCross = "✗"
	SymbolWarn  = "⚠"
)

// Row is one label and value line of a summary.
type Row struct {
	Label string
	Value string
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// RenderSummary lays out sections as aligned label/value lines. Styled
// output adds color and a border around each section; plain output is
// suitable for logs and diffs.
func RenderSummary(mode Mode, sections ...Section) string {
	width := 0
	for _, s := range sections {
		for _, r := range s.Rows {
			width = max(width, len(r.Label))
		}
	}

	var out []string
	for _, s := range sections {
		var lines []string
		for _, r := range s.Rows {
			label := fmt.Sprintf("%-*s", width+1, r.Label+":")
			if mode == ModeStyled {
				label = LabelStyle.Render(label)
			}
			lines = append(lines, label+" "+r.Value)
		}
		body := strings.Join(lines, "\n")

		if mode == ModeStyled {
			out = append(out, TitleStyle.Render(s.Title)+"\n"+BoxStyle.Render(body))
		} else {
			out = append(out, s.Title+"\n"+body)
		}
	}
	return strings.Join(out, "\n\n") + "\n"
}

// Status renders a pass or fail line.
func Status(mode Mode, ok bool, msg string) string {
	if mode != ModeStyled {
		if ok {
			return "OK: " + msg
		}
		return "FAIL: " + msg
	}
	if ok {
		return SuccessStyle.Render(SymbolCheck + " " + msg)
	}
	return ErrorStyle.Render(SymbolCross + " " + msg)
}

// Warning renders a line that needs attention but is not a failure.
func Warning(mode Mode, msg string) string {
	if mode != ModeStyled {
		return "WARN: " + msg
	}
	return WarningStyle.Render(SymbolWarn + " " + msg)
}
