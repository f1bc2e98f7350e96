// Package design reads and writes building designs: the overall
// dimensions plus the list of wall openings.
//
// # Formats
//
// Designs can be stored as JSON, TOML or YAML. The format is chosen from
// the file extension by [ReadFile] and [WriteFile], or passed explicitly to
// [Read] and [Write]:
//
//	{
//	  "name": "hay barn",
//	  "dimensions": {"width": 36, "length": 48, "height": 14},
//	  "openings": [
//	    {"kind": "rollupDoor", "wall": "front", "align": "center", "width": 12, "height": 10}
//	  ]
//	}
//
// The same design in TOML:
//
//	name = "hay barn"
//
//	[dimensions]
//	width = 36.0
//	length = 48.0
//	height = 14.0
//
//	[[openings]]
//	kind = "rollupDoor"
//	wall = "front"
//	align = "center"
//	width = 12.0
//	height = 10.0
//
// # Normalization
//
// Decoded designs are normalized before validation: a missing alignment
// becomes "center" and openings without an ID receive a deterministic one
// derived from their position in the list and their geometry. The same
// input always yields the same IDs, so downstream results stay stable.
//
// # Hashing
//
// [Marshal] produces compact JSON with a fixed field order. It is the input
// to cache keys.
package design
