package errors

import (
	"math"
	"strings"
)

// ValidateFinite rejects NaN and infinite values.
// The field name is used verbatim in the error message.
func ValidateFinite(code Code, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number", field)
	}
	return nil
}

// ValidatePositive rejects non-finite, zero and negative values.
func ValidatePositive(code Code, field string, v float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(code, "%s must be positive (got %g)", field, v)
	}
	return nil
}

// ValidateNonNegative rejects non-finite and negative values.
func ValidateNonNegative(code Code, field string, v float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(code, "%s cannot be negative (got %g)", field, v)
	}
	return nil
}

// ValidateRatio checks that v lies in the open interval (0, 1).
func ValidateRatio(code Code, field string, v float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v <= 0 || v >= 1 {
		return New(code, "%s must be between 0 and 1 exclusive (got %g)", field, v)
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed strings.
func ValidateOneOf(code Code, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
