package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/barnframe/pkg/space"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConstraintListModel - Interactive constraint browser
// =============================================================================

// ConstraintListModel is the bubbletea model for browsing layout constraints.
type ConstraintListModel struct {
	Title       string
	Constraints []space.LayoutConstraint
	Cursor      int
	Height      int
	Offset      int
	// Expanded shows the detail pane for the constraint under the cursor.
	Expanded bool
	// OnlyBlocking hides constraints that cannot reject a change.
	OnlyBlocking bool

	all []space.LayoutConstraint
}

// NewConstraintListModel creates a new constraint list model.
func NewConstraintListModel(title string, constraints []space.LayoutConstraint) ConstraintListModel {
	return ConstraintListModel{
		Title:       title,
		Constraints: constraints,
		Height:      15,
		all:         constraints,
	}
}

func (m ConstraintListModel) Init() tea.Cmd {
	return nil
}

func (m ConstraintListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Constraints)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		case "b":
			m.OnlyBlocking = !m.OnlyBlocking
			m.Constraints = m.all
			if m.OnlyBlocking {
				m.Constraints = blockingOnly(m.all)
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ConstraintListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  b blocking only  q quit"))
	b.WriteString("\n\n")

	if len(m.Constraints) == 0 {
		b.WriteString(listDimStyle.Render("  no constraints"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Constraints))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		lc := m.Constraints[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		override := "—"
		if lc.CanOverride {
			override = "✓"
		}
		rows = append(rows, []string{cursor, lc.ID, string(lc.Kind), string(lc.Severity), override})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Constraint", "Kind", "Severity", "Override").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Constraints) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if col == 3 {
				style = severityStyle(m.Constraints[idx].Severity)
			}
			if idx == m.Cursor {
				if col != 3 {
					style = style.Foreground(colorCyan)
				}
				return style.Bold(true)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Constraints))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(constraintDetail(m.Constraints[m.Cursor]))
	}

	return b.String()
}

// Selected returns the constraint under the cursor.
func (m ConstraintListModel) Selected() (space.LayoutConstraint, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Constraints) {
		return space.LayoutConstraint{}, false
	}
	return m.Constraints[m.Cursor], true
}

// =============================================================================
// Helpers
// =============================================================================

func constraintDetail(lc space.LayoutConstraint) string {
	var b strings.Builder
	a := lc.AffectedArea
	b.WriteString(listSelectedStyle.Render(lc.Description))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  area    x %.1f..%.1f  y %.1f..%.1f  front %.1f ft",
		a.Left, a.Right, a.Bottom, a.Top, a.Front)))
	b.WriteString("\n")
	if lc.Blocking() {
		b.WriteString("  " + StyleWarning.Render("blocks dimension changes"))
		b.WriteString("\n")
	}
	for _, req := range lc.OverrideRequirements {
		b.WriteString(listDimStyle.Render("  override: " + req))
		b.WriteString("\n")
	}
	return b.String()
}

func blockingOnly(constraints []space.LayoutConstraint) []space.LayoutConstraint {
	var out []space.LayoutConstraint
	for _, lc := range constraints {
		if lc.Blocking() {
			out = append(out, lc)
		}
	}
	return out
}
