// Package export renders the access-path graph of a space snapshot.
//
// # Overview
//
// Openings become nodes, grouped into one cluster per wall, and access
// paths become edges between them. Blocked paths are drawn dashed red so a
// layout problem is visible at a glance. This is a diagnostic view of the
// logical path graph, not a drawing of the building.
//
// # Usage
//
//	dot := export.ToDOT(snapshot, export.Options{})
//	svg, err := export.RenderSVG(ctx, dot)
//
// Or in one step, by format name:
//
//	data, err := export.Render(ctx, snapshot, export.FormatSVG, export.Options{Detailed: true})
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process, so no external binaries are needed.
package export
