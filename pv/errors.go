package pv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is matched by InvalidPeriodError.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrDomain is matched by DomainError.
	ErrDomain = errors.New("domain error")
	// ErrInvalidInput reports non-finite or out of range inputs.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidPeriodError is returned when period * duration does not give a
// whole number of payment periods.
type InvalidPeriodError struct {
	Period   float64
	Duration float64
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("multiplication of period (%g) and duration (%g) should be an integer", e.Period, e.Duration)
}

func (e *InvalidPeriodError) Is(target error) bool { return target == ErrInvalidPeriod }

// DomainError is returned when the discount factor is zero or the result
// is not a finite number.
type DomainError struct {
	DiscountRate float64
	Period       float64
	Reason       string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("discount rate %g%% with %g periods per year: %s", e.DiscountRate, e.Period, e.Reason)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }
