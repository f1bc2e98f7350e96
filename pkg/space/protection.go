package space

import (
	"fmt"
	"math"

	"github.com/matzehuels/barnframe/pkg/building"
)

// Protection summarizes what a wall's openings allow.
type Protection struct {
	Wall building.Wall `json:"wall" bson:"wall"`
	// Locked is set when the wall hosts at least one opening.
	Locked     bool     `json:"locked" bson:"locked"`
	OpeningIDs []string `json:"opening_ids,omitempty" bson:"opening_ids,omitempty"`
	// MinSpan and MinHeight are the smallest wall span and height that keep
	// every hosted opening inside the wall, with each opening held at its
	// alignment anchor and offsets.
	MinSpan   float64  `json:"min_span" bson:"min_span"`
	MinHeight float64  `json:"min_height" bson:"min_height"`
	Reasons   []string `json:"reasons,omitempty" bson:"reasons,omitempty"`
}

// ComputeProtection derives per-wall protection from the opening list.
// Every wall has an entry; walls without openings are unlocked with zero
// minimums.
func ComputeProtection(openings []building.Opening, d building.Dimensions) map[building.Wall]Protection {
	out := make(map[building.Wall]Protection, len(building.Walls))
	for _, w := range building.Walls {
		out[w] = Protection{Wall: w}
	}

	for i, o := range openings {
		p, ok := out[o.Wall]
		if !ok {
			continue
		}
		ref := openingRef(i, o)
		p.Locked = true
		p.OpeningIDs = append(p.OpeningIDs, ref)
		p.MinSpan = max(p.MinSpan, requiredSpan(o))
		p.MinHeight = max(p.MinHeight, o.YOffset+o.Height)
		p.Reasons = append(p.Reasons, fmt.Sprintf("%s is placed on this wall", o.Label()))
		out[o.Wall] = p
	}

	for w, p := range out {
		if !p.Locked {
			continue
		}
		if span := w.Span(d); span < p.MinSpan {
			p.Reasons = append(p.Reasons, fmt.Sprintf("openings already exceed the %.1f ft wall span", span))
		}
		if d.Height < p.MinHeight {
			p.Reasons = append(p.Reasons, fmt.Sprintf("openings already exceed the %.1f ft wall height", d.Height))
		}
		out[w] = p
	}
	return out
}

// requiredSpan is the narrowest wall that still contains o at its offsets.
func requiredSpan(o building.Opening) float64 {
	switch o.Align {
	case building.AlignLeft, building.AlignRight:
		return o.XOffset + o.Width
	default:
		return 2 * (math.Abs(o.XOffset) + o.Width/2)
	}
}
