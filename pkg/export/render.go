package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/space"
)

// Format is an access-graph output format.
type Format string

// Supported formats.
const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatSVG, FormatJSON}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatDOT, FormatSVG, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (must be one of: dot, svg, json)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}

// Graph is the JSON form of the access graph.
type Graph struct {
	Nodes []space.DetectedOpening `json:"nodes"`
	Edges []space.AccessPath      `json:"edges"`
}

// Render produces the access graph of s in format f.
func Render(ctx context.Context, s space.Snapshot, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatDOT:
		return []byte(ToDOT(s, opts)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(s, opts))
	case FormatJSON:
		return json.MarshalIndent(Graph{Nodes: s.DetectedOpenings, Edges: s.AccessPaths}, "", "  ")
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q", f)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg element with one
// that scales from a zero-origin viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
