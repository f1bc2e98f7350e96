package space

import (
	"fmt"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/geom"
)

// DimensionChange is a partial proposal; nil fields keep the current value.
type DimensionChange struct {
	Width  *float64 `json:"width,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Apply merges the change into d.
func (c DimensionChange) Apply(d building.Dimensions) building.Dimensions {
	if c.Width != nil {
		d.Width = *c.Width
	}
	if c.Length != nil {
		d.Length = *c.Length
	}
	if c.Height != nil {
		d.Height = *c.Height
	}
	return d
}

// Empty reports whether the change proposes nothing.
func (c DimensionChange) Empty() bool {
	return c.Width == nil && c.Length == nil && c.Height == nil
}

// Validate rejects proposed values that are not positive finite numbers.
func (c DimensionChange) Validate() error {
	code := errors.ErrCodeInvalidDimensions
	var errs []error
	for _, f := range []struct {
		name string
		v    *float64
	}{{"width", c.Width}, {"length", c.Length}, {"height", c.Height}} {
		if f.v != nil {
			errs = append(errs, errors.ValidatePositive(code, "proposed "+f.name, *f.v))
		}
	}
	return errors.Join(errs...)
}

// ModificationResult is the verdict on a proposed dimension change.
type ModificationResult struct {
	CanModify   bool                `json:"can_modify"`
	Proposed    building.Dimensions `json:"proposed"`
	Violations  []string            `json:"violations"`
	Suggestions []string            `json:"suggestions"`
}

// Suggestions returned by ValidateModification.
const (
	SuggestNoConflicts    = "proposed dimensions keep every protected zone clear"
	SuggestRecheck        = "re-run the analysis after adding or moving openings"
	SuggestRelocate       = "relocate or resize openings before reducing the building"
	SuggestKeepClear      = "keep dimensions large enough for the protected clearance zones"
	SuggestStructural     = "consult a structural engineer before shrinking walls with large openings"
	SuggestWidenPaths     = "keep the building wide enough for the access paths between doors"
	SuggestRemoveOpenings = "remove openings that no longer fit the proposed dimensions"
)

// ValidateModification checks a proposed dimension change against a
// snapshot computed for the current dimensions.
//
// Every blocking constraint and every protected clearance zone is checked
// edge by edge: a violation is recorded when the area's right edge exceeds
// the new width, its front projection exceeds the new length, or its top
// edge exceeds the new height. Every primary and emergency access path is
// checked against the approximated path width of the new footprint.
//
// Structural constraints on openings over the integrity ratio only block on
// their own when they cannot be overridden. Any other violation involving
// such an opening names its structural impact, so a rejected change always
// reports it.
//
// It never fails. CanModify is false exactly when Violations is non-empty
// and Suggestions is always populated.
func ValidateModification(s Snapshot, current building.Dimensions, proposed DimensionChange, opts ...Option) ModificationResult {
	c := newConfig(opts)
	next := proposed.Apply(current)

	var (
		violations []string
		structural bool
		clearance  bool
		paths      bool
	)

	integrity := integrityNotes(s.DetectedOpenings)
	// withIntegrity appends the structural impact of the openings a
	// violation touches.
	withIntegrity := func(msg string, refs ...string) string {
		for _, ref := range refs {
			if note, ok := integrity[ref]; ok {
				msg += "; structural: " + note
				structural = true
			}
		}
		return msg
	}

	for _, lc := range s.LayoutConstraints {
		if !lc.Blocking() {
			continue
		}
		for _, msg := range exceeds(lc.AffectedArea, next) {
			msg = fmt.Sprintf("critical %s constraint %s: %s; %s", lc.Kind, lc.ID, lc.Description, msg)
			if lc.Kind == ConstraintStructural {
				structural = true
			} else {
				clearance = true
				msg = withIntegrity(msg, lc.OpeningID)
			}
			violations = append(violations, msg)
		}
	}

	for _, z := range s.ClearanceZones {
		if !z.IsProtected {
			continue
		}
		for _, msg := range exceeds(z.Area, next) {
			msg = fmt.Sprintf("protected %s zone %s: %s", z.Kind, z.ID, msg)
			violations = append(violations, withIntegrity(msg, z.OpeningID))
			clearance = true
		}
	}

	width := pathWidth(c.policy, next)
	for _, p := range s.AccessPaths {
		if p.PathType != PathPrimary && p.PathType != PathEmergency {
			continue
		}
		if width < p.MinimumWidth {
			msg := fmt.Sprintf("%s access path %s: width %.2f ft is below the required %.2f ft",
				p.PathType, p.ID, width, p.MinimumWidth)
			violations = append(violations, withIntegrity(msg, p.FromOpening, p.ToOpening))
			paths = true
		}
	}

	var suggestions []string
	switch {
	case len(violations) == 0:
		suggestions = []string{SuggestNoConflicts, SuggestRecheck}
	default:
		suggestions = append(suggestions, SuggestRelocate)
		if clearance {
			suggestions = append(suggestions, SuggestKeepClear)
		}
		if structural {
			suggestions = append(suggestions, SuggestStructural)
		}
		if paths {
			suggestions = append(suggestions, SuggestWidenPaths)
		}
		suggestions = append(suggestions, SuggestRemoveOpenings)
	}

	if len(violations) > 0 {
		c.logger.Debug("dimension change rejected", "violations", len(violations),
			"width", next.Width, "length", next.Length, "height", next.Height)
	}

	return ModificationResult{
		CanModify:   len(violations) == 0,
		Proposed:    next,
		Violations:  violations,
		Suggestions: suggestions,
	}
}

// integrityNotes describes, by Ref, every opening that affects the
// integrity of its wall.
func integrityNotes(detected []DetectedOpening) map[string]string {
	notes := make(map[string]string)
	for _, d := range detected {
		if d.Impact.AffectsWallIntegrity {
			notes[d.Ref] = fmt.Sprintf("%s affects wall integrity (%.0f%% of the %s wall)",
				d.Label(), d.Impact.Ratio*100, d.Wall)
		}
	}
	return notes
}

// exceeds compares an area's edges with the new dimensions literally: the
// right edge against the width, the front projection against the length
// and the top edge against the height.
func exceeds(a geom.Area, d building.Dimensions) []string {
	var out []string
	if a.Right > d.Width {
		out = append(out, fmt.Sprintf("right edge %.2f ft exceeds width %.2f ft", a.Right, d.Width))
	}
	if a.Front > d.Length {
		out = append(out, fmt.Sprintf("front projection %.2f ft exceeds length %.2f ft", a.Front, d.Length))
	}
	if a.Top > d.Height {
		out = append(out, fmt.Sprintf("top edge %.2f ft exceeds height %.2f ft", a.Top, d.Height))
	}
	return out
}
