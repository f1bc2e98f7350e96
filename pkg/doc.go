// Package pkg provides the core libraries for Barnframe wall framing and
// opening space analysis.
//
// # Overview
//
// Barnframe works on rectangular post-frame buildings: a width, length and
// wall height plus doors and windows placed on the four walls. For such a
// design it plans where posts and girts go, cutting them around openings,
// and derives the space every opening needs so that later changes to the
// building can be checked against it.
//
// # Architecture
//
// The typical data flow:
//
//	Design file (JSON, TOML, YAML)
//	         ↓
//	    [design] package (decode, normalize, validate)
//	         ↓
//	    [beams] package (posts and girts per wall)   [space] package (snapshot)
//	         ↓                                             ↓
//	    [pipeline] package (caching, concurrency, hooks)
//	         ↓
//	    CLI, [api] HTTP server, [export] access graph (DOT/SVG/JSON)
//
// # Quick Start
//
// Plan framing and analyze space for a design:
//
//	import (
//	    "github.com/matzehuels/barnframe/pkg/beams"
//	    "github.com/matzehuels/barnframe/pkg/design"
//	    "github.com/matzehuels/barnframe/pkg/space"
//	)
//
//	d, _ := design.ReadFile("shop.toml")
//	d.Normalize()
//
//	walls := beams.PlanBuilding(d.Dimensions, d.Openings)
//	snap := space.Analyze(d.Dimensions, d.Openings)
//
//	width := 30.0
//	res := space.ValidateModification(snap, d.Dimensions, space.DimensionChange{Width: &width})
//	fmt.Println(res.CanModify, res.Violations)
//
// # Main Packages
//
// ## Domain
//
// [geom] - Rectangles in wall coordinates and areas projected into the room.
//
// [building] - Dimensions, walls, openings and where an opening sits on its wall.
//
// [beams] - Evenly spaced vertical and horizontal members, cut around openings,
// with emergency segments and coverage warnings.
//
// [space] - Opening detection, clearance zones, access paths, ventilation,
// structural elements, layout constraints, wall protection and validation of
// proposed dimension changes.
//
// [design] - The on-disk design document.
//
// ## Infrastructure
//
// [pipeline] - Runs beams and space analysis with result caching, used by
// both the CLI and the API.
//
// [cache] - Cache backends: file (CLI), in-memory LRU, Redis and MongoDB.
//
// [config] - TOML configuration with environment overrides.
//
// [export] - Access graph as Graphviz DOT, rendered SVG or JSON.
//
// [api] - HTTP API over the pipeline.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [errors] - Coded errors and validation helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/space/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/geom
// [building]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/building
// [beams]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/beams
// [space]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/space
// [design]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/design
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/config
// [export]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/export
// [api]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/barnframe/pkg/errors
package pkg
