// Package beams lays out structural framing members across a wall and cuts
// them around openings.
//
// # Overview
//
// A wall is framed by two passes:
//
//   - Vertical pass: evenly spaced posts across the wall span. Each post is
//     cut along Y wherever an opening crosses it.
//   - Horizontal pass: girts at fixed height ratios (default 25%, 50%, 75%).
//     Each girt is cut along X wherever an opening crosses it.
//
// Both passes share one interval sweep. Opening intervals are widened by a
// structural gap (0.1 ft) for installation clearance, the remaining pieces are
// kept only if they exceed the minimum segment size, and a beam left with no
// pieces at all receives up to two short emergency segments anchored at its
// ends.
//
// # Coverage
//
// Each pass reports a coverage ratio in [0, 1]: realized segment length over
// the theoretical full span of every beam. Coverage below the pass threshold
// (0.4 vertical, 0.5 horizontal) is logged and recorded as a warning on the
// result. It is advisory only and never blocks a layout.
//
// # Usage
//
//	l := beams.PlanWall(dims, building.WallFront, openings,
//	    beams.WithLogger(logger),
//	)
//	for _, seg := range l.Segments() {
//	    // hand to the renderer
//	}
//
// # Determinism
//
// Every function is pure: same inputs, same segments, same order. No state is
// kept between calls, so callers may plan walls in parallel.
package beams
