package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/barnframe/pkg/space"
)

// =============================================================================
// Palette and styles
// =============================================================================

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

// Exported styles are shared with the constraint browser.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// marker is a one-character status prefix.
type marker struct {
	icon  string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// =============================================================================
// Line output
// =============================================================================

// printer writes human-readable output for one command invocation. Commands
// build it from cmd.OutOrStdout so tables and --json go to the same place.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(text string) { fmt.Fprintln(p.w, text) }

func (p printer) mark(m marker, text string) { p.line(m.style.Render(m.icon) + " " + text) }

func (p printer) success(format string, args ...any) { p.mark(markSuccess, fmt.Sprintf(format, args...)) }

func (p printer) failure(format string, args ...any) { p.mark(markError, fmt.Sprintf(format, args...)) }

func (p printer) info(format string, args ...any) { p.mark(markInfo, fmt.Sprintf(format, args...)) }

func (p printer) warning(format string, args ...any) {
	p.mark(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, muted line under a status line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file points at a file that was written.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p printer) newline() { p.line("") }

// stats prints result counts on one line and whether they were cached.
func (p printer) stats(parts []string, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for _, part := range parts {
		b.WriteString(StyleDim.Render(part + " · "))
	}
	b.WriteString(statusStyle.Render(status))
	p.line(b.String())
}

// table prints rows under headers; see renderTable.
func (p printer) table(headers []string, rows [][]string, styleRow func(row int) lipgloss.Style) {
	p.line(renderTable(headers, rows, styleRow))
}

// =============================================================================
// Tables
// =============================================================================

// renderTable draws rows under a bold header with a rounded border.
// styleRow, when non-nil, styles body cells by row index.
func renderTable(headers []string, rows [][]string, styleRow func(row int) lipgloss.Style) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if styleRow != nil {
				return styleRow(row).Padding(0, 1)
			}
			return cellStyle
		})
	return t.Render()
}

// severityStyle colors a constraint severity.
func severityStyle(sev space.Severity) lipgloss.Style {
	switch sev {
	case space.SeverityCritical:
		return lipgloss.NewStyle().Foreground(colorRed)
	case space.SeverityImportant:
		return StyleWarning
	default:
		return StyleDim
	}
}
