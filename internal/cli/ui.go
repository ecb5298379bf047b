package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ANSI 256 colours shared by all command output.
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorCommand = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

// Styles used by commands to highlight parts of their output.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(16)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleNumber = styleCell.Foreground(colorText).Align(lipgloss.Right)
)

// Line prefixes.
var (
	markOK    = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markWarn  = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	markInfo  = lipgloss.NewStyle().Foreground(colorMuted).Render("›")
	markArrow = StyleDim.Render("→")
)

// printer writes styled status lines to a command's output stream.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) println(s string) { fmt.Fprintln(p.w, s) }

func (p printer) newline() { fmt.Fprintln(p.w) }

func (p printer) success(format string, args ...any) {
	p.println(markOK + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.println(markWarn + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.println(markInfo + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	p.println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints one written output path.
func (p printer) file(path string) {
	p.println("  " + markArrow + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// runStats prints a one-line run summary such as
// "12 columns · 7 buckets · cached".
func (p printer) runStats(columns, buckets int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d columns", columns),
		fmt.Sprintf("%d buckets", buckets),
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	p.println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// nextStep suggests the command to run next.
func (p printer) nextStep(description, cmd string) {
	p.println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// renderTable formats rows under headers with a rounded border. Column
// indexes listed in numeric are right-aligned.
func renderTable(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if right[col] {
				return styleNumber
			}
			return styleCell
		}).
		String()
}
