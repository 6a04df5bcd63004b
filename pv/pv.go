// Package pv prices the cash flows of a fixed-coupon bond.
package pv

import (
	"fmt"
	"math"
)

// Method selects how the discounted coupons are summed.
type Method string

const (
	// Iterative discounts each coupon separately, t = 1..n.
	Iterative Method = "iterative"
	// ClosedForm uses the annuity factor (1 - (1+r)^-n) / r.
	ClosedForm Method = "closed-form"
)

// ParseMethod maps a name to a Method. An empty name selects Iterative.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", Iterative:
		return Iterative, nil
	case ClosedForm:
		return ClosedForm, nil
	}
	return "", fmt.Errorf("unknown method %q (want %q or %q)", s, Iterative, ClosedForm)
}

// MaxPeriods bounds period * duration.
const MaxPeriods = 100000

// Inputs are the bond terms. Rates are annual percentages (4.5 for 4.5%).
type Inputs struct {
	NominalPrice float64
	CouponRate   float64
	DiscountRate float64
	Duration     float64 // years, 0.5 for six months
	Period       float64 // payments per year
	Method       Method
}

// DefaultInputs returns the terms used when nothing else is given.
func DefaultInputs() Inputs {
	return Inputs{
		NominalPrice: 1000000.0,
		CouponRate:   4.5,
		DiscountRate: 5.0,
		Duration:     5,
		Period:       1,
		Method:       Iterative,
	}
}

// Result splits the present value into its parts. CouponPV and
// PrincipalPV are unrounded; PresentValue is their rounded sum.
type Result struct {
	Periods      int
	CouponRate   float64 // per period, as a fraction
	DiscountRate float64 // per period, as a fraction
	CouponPV     float64
	PrincipalPV  float64
	PresentValue float64
}

// PresentValue computes the present value of the bond's cash flows
// with the iterative method.
func PresentValue(nominal, couponRate, discountRate, duration, period float64) (float64, error) {
	return Compute(Inputs{
		NominalPrice: nominal,
		CouponRate:   couponRate,
		DiscountRate: discountRate,
		Duration:     duration,
		Period:       period,
	})
}

// Compute returns the present value of in rounded to Places decimals.
func Compute(in Inputs) (float64, error) {
	r, err := Breakdown(in)
	if err != nil {
		return 0, err
	}
	return r.PresentValue, nil
}

// Breakdown prices in and reports the coupon and principal components.
func Breakdown(in Inputs) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	n := in.Period * in.Duration
	if n != math.Trunc(n) {
		return Result{}, &InvalidPeriodError{Period: in.Period, Duration: in.Duration}
	}
	if n > MaxPeriods {
		return Result{}, fmt.Errorf("%w: %g periods exceeds limit of %d", ErrInvalidInput, n, MaxPeriods)
	}
	periods := int(n)

	cpr := in.CouponRate / (in.Period * 100)
	dpr := in.DiscountRate / (in.Period * 100)
	base := 1 + dpr
	if base == 0 {
		return Result{}, &DomainError{DiscountRate: in.DiscountRate, Period: in.Period, Reason: "discount factor is zero"}
	}

	coupon := in.NominalPrice * cpr
	var couponPV float64
	switch in.Method {
	case "", Iterative:
		couponPV = sumIterative(coupon, base, periods)
	case ClosedForm:
		couponPV = sumClosedForm(coupon, dpr, base, periods)
	default:
		return Result{}, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, in.Method)
	}
	principalPV := in.NominalPrice / math.Pow(base, float64(periods))

	total := couponPV + principalPV
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return Result{}, &DomainError{DiscountRate: in.DiscountRate, Period: in.Period, Reason: "result is not finite"}
	}

	return Result{
		Periods:      periods,
		CouponRate:   cpr,
		DiscountRate: dpr,
		CouponPV:     couponPV,
		PrincipalPV:  principalPV,
		PresentValue: RoundHalfEven(total, Places),
	}, nil
}

func (in Inputs) validate() error {
	for _, v := range []struct {
		name string
		x    float64
	}{
		{"nominal price", in.NominalPrice},
		{"coupon rate", in.CouponRate},
		{"discount rate", in.DiscountRate},
		{"duration", in.Duration},
		{"period", in.Period},
	} {
		if math.IsNaN(v.x) || math.IsInf(v.x, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, v.name)
		}
	}
	if in.NominalPrice < 0 {
		return fmt.Errorf("%w: nominal price must not be negative", ErrInvalidInput)
	}
	if in.Period <= 0 {
		return fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}
	if in.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	return nil
}

func sumIterative(coupon, base float64, periods int) float64 {
	var sum float64
	for t := 1; t <= periods; t++ {
		sum += coupon / math.Pow(base, float64(t))
	}
	return sum
}

// sumClosedForm is coupon * (1 - base^-n) / r, or coupon * n when r is 0.
func sumClosedForm(coupon, rate, base float64, periods int) float64 {
	if rate == 0 {
		return coupon * float64(periods)
	}
	return coupon * (1 - math.Pow(base, -float64(periods))) / rate
}
