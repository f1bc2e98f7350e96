package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/barnframe/pkg/space"
)

func sampleConstraints() []space.LayoutConstraint {
	return []space.LayoutConstraint{
		{ID: "clearance-bay", Kind: space.ConstraintClearance, Severity: space.SeverityCritical, Description: "keep the bay clear"},
		{ID: "clearance-win", Kind: space.ConstraintClearance, Severity: space.SeverityImportant, CanOverride: true, Description: "keep the window clear"},
		{ID: "structural-bay", Kind: space.ConstraintStructural, Severity: space.SeverityCritical, CanOverride: true,
			Description: "bay weakens the front wall", OverrideRequirements: []string{"structural engineering review"}},
	}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestConstraintListNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"start", nil, "clearance-bay"},
		{"down", []string{"down"}, "clearance-win"},
		{"vim keys", []string{"j", "j", "k"}, "clearance-win"},
		{"clamped at end", []string{"down", "down", "down", "down"}, "structural-bay"},
		{"clamped at start", []string{"up"}, "clearance-bay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewConstraintListModel("Constraints", sampleConstraints()), tt.keys...).(ConstraintListModel)
			got, ok := m.Selected()
			if !ok || got.ID != tt.want {
				t.Errorf("Selected() = %q, want %q", got.ID, tt.want)
			}
		})
	}
}

func TestConstraintListBlockingFilter(t *testing.T) {
	m := press(NewConstraintListModel("Constraints", sampleConstraints()), "down", "b").(ConstraintListModel)

	if len(m.Constraints) != 1 || m.Constraints[0].ID != "clearance-bay" {
		t.Fatalf("blocking filter kept %v", m.Constraints)
	}
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after filtering, want 0", m.Cursor)
	}

	m = press(m, "b").(ConstraintListModel)
	if len(m.Constraints) != 3 {
		t.Errorf("toggling the filter off shows %d constraints, want 3", len(m.Constraints))
	}
}

func TestConstraintListView(t *testing.T) {
	m := press(NewConstraintListModel("Constraints", sampleConstraints()), "down", "down", "enter").(ConstraintListModel)

	view := m.View()
	for _, want := range []string{"Constraints", "structural-bay", "bay weakens the front wall", "structural engineering review", "[3/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestConstraintListEmpty(t *testing.T) {
	m := NewConstraintListModel("Constraints", nil)

	if !strings.Contains(m.View(), "no constraints") {
		t.Error("empty list should say so")
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on an empty list should report false")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}
