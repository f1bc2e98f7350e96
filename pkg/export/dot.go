package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/space"
)

// Options configures access-graph generation.
type Options struct {
	// Detailed adds clearance and structural figures to node labels and
	// restrictions to edge labels.
	Detailed bool
}

// ToDOT converts a snapshot's openings and access paths to Graphviz DOT.
// Output is deterministic: walls appear in front, back, left, right order
// and openings and paths in snapshot order.
func ToDOT(s space.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph access {\n")
	buf.WriteString("  layout=dot;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, w := range building.Walls {
		var members []space.DetectedOpening
		for _, d := range s.DetectedOpenings {
			if d.Wall == w {
				members = append(members, d)
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+string(w))
		fmt.Fprintf(&buf, "    label=%q;\n", string(w)+" wall")
		buf.WriteString("    style=dashed;\n")
		for _, d := range members {
			fmt.Fprintf(&buf, "    %q [%s];\n", d.Ref, strings.Join(nodeAttrs(d, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, p := range s.AccessPaths {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", p.FromOpening, p.ToOpening, strings.Join(edgeAttrs(p, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(d space.DetectedOpening, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(d, detailed))}
	if !d.Kind.IsEntry() {
		attrs = append(attrs, "shape=ellipse")
	}
	if d.Access.EmergencyAccess {
		attrs = append(attrs, "penwidth=2")
	}
	if d.Impact.EngineeringRequired {
		attrs = append(attrs, "fillcolor=mistyrose")
	} else if d.Impact.AffectsWallIntegrity {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

func nodeLabel(d space.DetectedOpening, detailed bool) string {
	label := fmt.Sprintf("%s\n%s %.1f×%.1f", d.Ref, d.Kind, d.Width, d.Height)
	if !detailed {
		return label
	}
	parts := []string{
		label,
		fmt.Sprintf("clearance: front %.1f, sides %.1f", d.Clearance.Front, d.Clearance.Sides),
		fmt.Sprintf("wall share: %.0f%%", d.Impact.Ratio*100),
	}
	if d.Access.EmergencyAccess {
		parts = append(parts, "emergency egress")
	}
	return strings.Join(parts, "\n")
}

func edgeAttrs(p space.AccessPath, detailed bool) []string {
	label := fmt.Sprintf("%s\n%.1f / %.1f ft", p.PathType, p.CurrentWidth, p.MinimumWidth)
	if detailed && len(p.Restrictions) > 0 {
		label += "\n" + strings.Join(p.Restrictions, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.IsBlocked {
		attrs = append(attrs, "style=dashed", "color=red", "fontcolor=red")
	}
	if p.PathType == space.PathEmergency {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}
