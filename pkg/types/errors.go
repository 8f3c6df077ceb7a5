package types

import (
	"errors"
	"fmt"
)

// Trial validation failures, one per check in FrozenTrial.Validate and in the
// order the checks run. Each is the Reason of the ValidationError returned by
// Validate, so callers can branch with errors.Is.
var (
	ErrInvalidTrial = errors.New("invalid trial")

	ErrStartNotSet              = errors.New("start time not set")
	ErrCompleteSetForRunning    = errors.New("completion time is set for a running trial")
	ErrCompleteNotSet           = errors.New("completion time not set for a finished trial")
	ErrValueNotSet              = errors.New("value not set for a completed trial")
	ErrParamWithoutDistribution = errors.New("param has no distribution")
	ErrDistributionWithoutParam = errors.New("distribution has no param")
	ErrParamOutOfRange          = errors.New("param value is not contained in its distribution")
)

// Parsing and comparison errors.
var (
	ErrInvalidState        = errors.New("invalid trial state")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidDirection    = errors.New("invalid study direction")
	ErrUnknownDistribution = errors.New("unknown distribution")
	ErrTypeMismatch        = errors.New("type mismatch")
)

// ValidationError reports the first broken invariant of a trial snapshot.
// Reason is ErrInvalidState or one of the ErrStartNotSet .. ErrParamOutOfRange
// sentinels; for ErrInvalidState, Value holds the unknown state. Key and
// Value identify the offending param for the key-set and containment checks.
type ValidationError struct {
	Reason error
	Key    string
	Value  any
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ErrParamWithoutDistribution, ErrDistributionWithoutParam:
		return fmt.Sprintf("invalid trial: %s: %q", e.Reason, e.Key)
	case ErrInvalidState:
		return fmt.Sprintf("invalid trial: %s: %q", e.Reason, e.Value)
	case ErrParamOutOfRange:
		return fmt.Sprintf("invalid trial: %s: %q = %v", e.Reason, e.Key, e.Value)
	default:
		return fmt.Sprintf("invalid trial: %s", e.Reason)
	}
}

// Unwrap exposes the reason sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Is matches ErrInvalidTrial for any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTrial
}

// ComparisonTypeError is returned when a trial is ordered against a value
// that is not a trial.
type ComparisonTypeError struct {
	Op    string
	Other any
}

func (e *ComparisonTypeError) Error() string {
	return fmt.Sprintf("'%s' not supported between FrozenTrial and %T", e.Op, e.Other)
}

// Unwrap returns ErrTypeMismatch.
func (e *ComparisonTypeError) Unwrap() error {
	return ErrTypeMismatch
}
