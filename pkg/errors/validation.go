package errors

import "math"

// The validators below report ErrCodeInvalidConfig with the field name both
// in the message and in Error.Field.

// ValidateFinite rejects NaN and infinities.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(ErrCodeInvalidConfig, name, "must be a finite number, got %g", v)
	}
	return nil
}

// ValidatePositive requires a finite v > 0.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(ErrCodeInvalidConfig, name, "must be positive, got %g", v)
	}
	return nil
}

// ValidateNonNegative requires a finite v >= 0.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(ErrCodeInvalidConfig, name, "must not be negative, got %g", v)
	}
	return nil
}

// ValidateRange requires a finite v in [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return Invalid(ErrCodeInvalidConfig, name, "must be in [%g, %g], got %g", lo, hi, v)
	}
	return nil
}

// ValidateAbove requires a finite v strictly greater than lo.
func ValidateAbove(name string, v, lo float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= lo {
		return Invalid(ErrCodeInvalidConfig, name, "must be greater than %g, got %g", lo, v)
	}
	return nil
}

// ValidateCount requires an integer count of at least min.
func ValidateCount(name string, n, min int) error {
	if n < min {
		return Invalid(ErrCodeInvalidConfig, name, "must be at least %d, got %d", min, n)
	}
	return nil
}
