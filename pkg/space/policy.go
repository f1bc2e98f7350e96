package space

import (
	"github.com/matzehuels/barnframe/pkg/errors"
)

// Default space policy.
const (
	DefaultLoadBearingRatio   = 0.15
	DefaultIntegrityRatio     = 0.25
	DefaultReinforcementRatio = 0.35
	DefaultEngineeringRatio   = 0.50

	DefaultEgressMinWidth  = 2.0
	DefaultEgressMinHeight = 5.0
	DefaultEgressLateral   = 1.0

	DefaultPathWidthFactor = 0.75
	DefaultPathAllowance   = 4.0

	DefaultAirflowDepth      = 6.0
	DefaultVentilationFactor = 50.0

	DefaultHeaderMinWidth = 4.0
	DefaultHeaderOverhang = 2.0
	DefaultHeaderHeight   = 1.0
	DefaultMemberDepth    = 0.5
)

// Policy holds the thresholds used by the space analysis.
type Policy struct {
	// Opening area over host wall area above which each impact flag is set.
	LoadBearingRatio   float64 `json:"load_bearing_ratio" toml:"load_bearing_ratio"`
	IntegrityRatio     float64 `json:"integrity_ratio" toml:"integrity_ratio"`
	ReinforcementRatio float64 `json:"reinforcement_ratio" toml:"reinforcement_ratio"`
	EngineeringRatio   float64 `json:"engineering_ratio" toml:"engineering_ratio"`

	// A window is an egress window when it is at least this wide and tall.
	EgressMinWidth  float64 `json:"egress_min_width" toml:"egress_min_width"`
	EgressMinHeight float64 `json:"egress_min_height" toml:"egress_min_height"`
	// EgressLateral widens emergency egress zones on each side.
	EgressLateral float64 `json:"egress_lateral" toml:"egress_lateral"`

	// PathWidthFactor scales the wider opening's minimum width into the
	// path's minimum width. PathAllowance is subtracted from the smaller
	// footprint dimension to approximate the usable path width.
	PathWidthFactor float64 `json:"path_width_factor" toml:"path_width_factor"`
	PathAllowance   float64 `json:"path_allowance" toml:"path_allowance"`

	AirflowDepth      float64 `json:"airflow_depth" toml:"airflow_depth"`
	VentilationFactor float64 `json:"ventilation_factor" toml:"ventilation_factor"`

	// Openings wider than HeaderMinWidth get a header HeaderOverhang wider
	// than the opening.
	HeaderMinWidth float64 `json:"header_min_width" toml:"header_min_width"`
	HeaderOverhang float64 `json:"header_overhang" toml:"header_overhang"`
	HeaderHeight   float64 `json:"header_height" toml:"header_height"`
	// MemberDepth is the header depth and the column cross-section.
	MemberDepth float64 `json:"member_depth" toml:"member_depth"`
}

// DefaultPolicy returns the stock space policy.
func DefaultPolicy() Policy {
	return Policy{
		LoadBearingRatio:   DefaultLoadBearingRatio,
		IntegrityRatio:     DefaultIntegrityRatio,
		ReinforcementRatio: DefaultReinforcementRatio,
		EngineeringRatio:   DefaultEngineeringRatio,
		EgressMinWidth:     DefaultEgressMinWidth,
		EgressMinHeight:    DefaultEgressMinHeight,
		EgressLateral:      DefaultEgressLateral,
		PathWidthFactor:    DefaultPathWidthFactor,
		PathAllowance:      DefaultPathAllowance,
		AirflowDepth:       DefaultAirflowDepth,
		VentilationFactor:  DefaultVentilationFactor,
		HeaderMinWidth:     DefaultHeaderMinWidth,
		HeaderOverhang:     DefaultHeaderOverhang,
		HeaderHeight:       DefaultHeaderHeight,
		MemberDepth:        DefaultMemberDepth,
	}
}

// Validate checks the policy for values the analysis cannot work with.
func (p Policy) Validate() error {
	code := errors.ErrCodeInvalidConfig
	errs := []error{
		errors.ValidateRatio(code, "space.load_bearing_ratio", p.LoadBearingRatio),
		errors.ValidateRatio(code, "space.integrity_ratio", p.IntegrityRatio),
		errors.ValidateRatio(code, "space.reinforcement_ratio", p.ReinforcementRatio),
		errors.ValidateRatio(code, "space.engineering_ratio", p.EngineeringRatio),
		errors.ValidateNonNegative(code, "space.egress_min_width", p.EgressMinWidth),
		errors.ValidateNonNegative(code, "space.egress_min_height", p.EgressMinHeight),
		errors.ValidateNonNegative(code, "space.egress_lateral", p.EgressLateral),
		errors.ValidatePositive(code, "space.path_width_factor", p.PathWidthFactor),
		errors.ValidateNonNegative(code, "space.path_allowance", p.PathAllowance),
		errors.ValidateNonNegative(code, "space.airflow_depth", p.AirflowDepth),
		errors.ValidateNonNegative(code, "space.ventilation_factor", p.VentilationFactor),
		errors.ValidateNonNegative(code, "space.header_min_width", p.HeaderMinWidth),
		errors.ValidateNonNegative(code, "space.header_overhang", p.HeaderOverhang),
		errors.ValidatePositive(code, "space.header_height", p.HeaderHeight),
		errors.ValidatePositive(code, "space.member_depth", p.MemberDepth),
	}
	if p.LoadBearingRatio > p.IntegrityRatio ||
		p.IntegrityRatio > p.ReinforcementRatio ||
		p.ReinforcementRatio > p.EngineeringRatio {
		errs = append(errs, errors.New(code, "space impact ratios must be ascending (load bearing ≤ integrity ≤ reinforcement ≤ engineering)"))
	}
	return errors.Join(errs...)
}
