package beams

import (
	"fmt"

	"github.com/matzehuels/barnframe/pkg/errors"
)

// Default framing policy. These are tuning values, not engineering constants.
const (
	DefaultMargin           = 0.5
	DefaultMinSpacing       = 4.0
	DefaultMaxSpacing       = 8.0
	DefaultMinBeams         = 2
	DefaultBeamWidth        = 0.33
	DefaultStructuralGap    = 0.1
	DefaultMinSegmentHeight = 0.5
	DefaultOverlapBuffer    = 0.05
	DefaultEmergencyMaxSize = 1.5
	DefaultEmergencyRatio   = 0.12
	DefaultVerticalWarning  = 0.4

	DefaultBeamHeight        = 0.5
	DefaultHorizontalMargin  = 0.5
	DefaultMinSegmentWidth   = 1.0
	DefaultHorizontalWarning = 0.5
)

// DefaultHeightRatios are the girt heights as fractions of wall height.
var DefaultHeightRatios = []float64{0.25, 0.5, 0.75}

// Policy controls beam spacing and cutting.
type Policy struct {
	// Margin keeps the outermost posts this far from the wall edges.
	Margin float64 `json:"margin" toml:"margin"`
	// MinSpacing and MaxSpacing bound the distance between adjacent posts.
	MinSpacing float64 `json:"min_spacing" toml:"min_spacing"`
	MaxSpacing float64 `json:"max_spacing" toml:"max_spacing"`
	// MinBeams is the fewest posts a wall receives.
	MinBeams int `json:"min_beams" toml:"min_beams"`
	// BeamWidth is the post thickness along X.
	BeamWidth float64 `json:"beam_width" toml:"beam_width"`
	// StructuralGap is the installation clearance kept on each side of an opening.
	StructuralGap float64 `json:"structural_gap" toml:"structural_gap"`
	// MinSegmentHeight drops post pieces that are not strictly longer than this.
	MinSegmentHeight float64 `json:"min_segment_height" toml:"min_segment_height"`
	// OverlapBuffer widens the beam band when selecting openings.
	OverlapBuffer float64 `json:"overlap_buffer" toml:"overlap_buffer"`
	// EmergencyMaxSize and EmergencyRatio size fallback segments:
	// min(EmergencyMaxSize, EmergencyRatio × span).
	EmergencyMaxSize float64 `json:"emergency_max_size" toml:"emergency_max_size"`
	EmergencyRatio   float64 `json:"emergency_ratio" toml:"emergency_ratio"`
	// CoverageWarning is the vertical coverage below which a warning is raised.
	CoverageWarning float64 `json:"coverage_warning" toml:"coverage_warning"`

	Horizontal HorizontalPolicy `json:"horizontal" toml:"horizontal"`
}

// HorizontalPolicy controls the girt pass.
type HorizontalPolicy struct {
	HeightRatios    []float64 `json:"height_ratios" toml:"height_ratios"`
	BeamHeight      float64   `json:"beam_height" toml:"beam_height"`
	Margin          float64   `json:"margin" toml:"margin"`
	MinSegmentWidth float64   `json:"min_segment_width" toml:"min_segment_width"`
	CoverageWarning float64   `json:"coverage_warning" toml:"coverage_warning"`
}

// DefaultPolicy returns the stock framing policy.
func DefaultPolicy() Policy {
	return Policy{
		Margin:           DefaultMargin,
		MinSpacing:       DefaultMinSpacing,
		MaxSpacing:       DefaultMaxSpacing,
		MinBeams:         DefaultMinBeams,
		BeamWidth:        DefaultBeamWidth,
		StructuralGap:    DefaultStructuralGap,
		MinSegmentHeight: DefaultMinSegmentHeight,
		OverlapBuffer:    DefaultOverlapBuffer,
		EmergencyMaxSize: DefaultEmergencyMaxSize,
		EmergencyRatio:   DefaultEmergencyRatio,
		CoverageWarning:  DefaultVerticalWarning,
		Horizontal: HorizontalPolicy{
			HeightRatios:    append([]float64(nil), DefaultHeightRatios...),
			BeamHeight:      DefaultBeamHeight,
			Margin:          DefaultHorizontalMargin,
			MinSegmentWidth: DefaultMinSegmentWidth,
			CoverageWarning: DefaultHorizontalWarning,
		},
	}
}

// Validate checks the policy for values the planner cannot work with.
func (p Policy) Validate() error {
	code := errors.ErrCodeInvalidConfig
	errs := []error{
		errors.ValidateNonNegative(code, "beams.margin", p.Margin),
		errors.ValidatePositive(code, "beams.min_spacing", p.MinSpacing),
		errors.ValidatePositive(code, "beams.max_spacing", p.MaxSpacing),
		errors.ValidatePositive(code, "beams.beam_width", p.BeamWidth),
		errors.ValidateNonNegative(code, "beams.structural_gap", p.StructuralGap),
		errors.ValidateNonNegative(code, "beams.min_segment_height", p.MinSegmentHeight),
		errors.ValidateNonNegative(code, "beams.overlap_buffer", p.OverlapBuffer),
		errors.ValidateNonNegative(code, "beams.emergency_max_size", p.EmergencyMaxSize),
		errors.ValidateRatio(code, "beams.emergency_ratio", p.EmergencyRatio),
		errors.ValidateRatio(code, "beams.coverage_warning", p.CoverageWarning),
		errors.ValidatePositive(code, "beams.horizontal.beam_height", p.Horizontal.BeamHeight),
		errors.ValidateNonNegative(code, "beams.horizontal.margin", p.Horizontal.Margin),
		errors.ValidateNonNegative(code, "beams.horizontal.min_segment_width", p.Horizontal.MinSegmentWidth),
		errors.ValidateRatio(code, "beams.horizontal.coverage_warning", p.Horizontal.CoverageWarning),
	}
	if p.MinBeams < 1 {
		errs = append(errs, errors.New(code, "beams.min_beams must be at least 1 (got %d)", p.MinBeams))
	}
	if p.MinSpacing > p.MaxSpacing {
		errs = append(errs, errors.New(code, "beams.min_spacing (%g) exceeds beams.max_spacing (%g)", p.MinSpacing, p.MaxSpacing))
	}
	for i, r := range p.Horizontal.HeightRatios {
		errs = append(errs, errors.ValidateRatio(code, fmt.Sprintf("beams.horizontal.height_ratios[%d]", i), r))
	}
	return errors.Join(errs...)
}
