// Package geom provides the axis-aligned rectangles shared by the beam and
// space-layout engines.
//
// All coordinates live in a wall's local plane with the origin at the wall
// center: x grows to the right, y grows upward, and a wall of span w and
// height h covers [-w/2, w/2] × [-h/2, h/2]. Units are feet.
//
//   - [Bounds]: a rectangle on the wall plane (an opening, a zone footprint)
//   - [Area]: a [Bounds] plus a forward projection into the building, used for
//     clearance and airflow zones
//   - [Point], [Size]: positions and extents of 3D structural elements
package geom
