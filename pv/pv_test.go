package pv

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentValue_KnownScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		nominal  float64
		coupon   float64
		discount float64
		duration float64
		period   float64
		want     float64
	}{
		{"defaults", 1000000, 4.5, 5.0, 5, 1, 978352.62},
		{"semiannual par bond", 1000, 6, 6, 2, 2, 1000.00},
		{"zero coupon", 1000, 0, 5, 5, 1, 783.53},
		{"zero discount", 1000, 5, 0, 3, 1, 1150.00},
		{"premium semiannual", 100, 5, 4, 10, 2, 108.18},
		{"fractional years", 1000, 8, 10, 1.5, 2, 972.77},
		{"zero duration", 1000, 5, 5, 0, 1, 1000.00},
		{"zero nominal", 0, 5, 5, 5, 1, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := PresentValue(tt.nominal, tt.coupon, tt.discount, tt.duration, tt.period)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	in := DefaultInputs()
	a, err := Compute(in)
	require.NoError(t, err)
	b, err := Compute(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()

	want, err := Compute(DefaultInputs())
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]float64, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = Compute(DefaultInputs())
		}(i)
	}
	wg.Wait()

	for _, g := range got {
		assert.Equal(t, want, g)
	}
}

func TestCompute_ZeroCouponMatchesDiscountedPrincipal(t *testing.T) {
	t.Parallel()

	for _, period := range []float64{1, 2, 4, 12} {
		in := Inputs{NominalPrice: 250000, CouponRate: 0, DiscountRate: 3.75, Duration: 7, Period: period}
		got, err := Compute(in)
		require.NoError(t, err)

		r := in.DiscountRate / (period * 100)
		want := RoundHalfEven(in.NominalPrice/math.Pow(1+r, period*in.Duration), Places)
		assert.InDelta(t, want, got, 1e-9, "period %v", period)
	}
}

func TestCompute_ZeroDiscountIsUndiscountedSum(t *testing.T) {
	t.Parallel()

	for _, period := range []float64{1, 2, 4} {
		in := Inputs{NominalPrice: 5000, CouponRate: 6.25, DiscountRate: 0, Duration: 4, Period: period}
		got, err := Compute(in)
		require.NoError(t, err)

		want := in.NominalPrice + in.NominalPrice*in.CouponRate/100*in.Duration
		assert.InDelta(t, want, got, 0.01, "period %v", period)
	}
}

func TestCompute_ParBondIsNominal(t *testing.T) {
	t.Parallel()

	for _, period := range []float64{1, 2, 4, 12} {
		in := Inputs{NominalPrice: 1000, CouponRate: 7, DiscountRate: 7, Duration: 10, Period: period}
		got, err := Compute(in)
		require.NoError(t, err)
		assert.InDelta(t, 1000.0, got, 1e-9, "period %v", period)
	}
}

func TestCompute_InvalidPeriod(t *testing.T) {
	t.Parallel()

	_, err := PresentValue(1000000, 4.5, 5, 0.3, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	var ipe *InvalidPeriodError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 1.0, ipe.Period)
	assert.Equal(t, 0.3, ipe.Duration)
	assert.Contains(t, err.Error(), "should be an integer")
}

func TestCompute_DomainErrorOnZeroDiscountFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		discount float64
		period   float64
	}{
		{"annual", -100, 1},
		{"semiannual", -200, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := PresentValue(1000, 5, tt.discount, 2, tt.period)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomain))
			assert.False(t, errors.Is(err, ErrInvalidPeriod))

			var de *DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.discount, de.DiscountRate)
		})
	}
}

func TestCompute_InvalidInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
	}{
		{"nan nominal", Inputs{NominalPrice: math.NaN(), Duration: 1, Period: 1}},
		{"inf coupon", Inputs{NominalPrice: 1, CouponRate: math.Inf(1), Duration: 1, Period: 1}},
		{"negative nominal", Inputs{NominalPrice: -1000, Duration: 1, Period: 1}},
		{"zero period", Inputs{NominalPrice: 1, Duration: 1, Period: 0}},
		{"negative period", Inputs{NominalPrice: 1, Duration: 1, Period: -2}},
		{"negative duration", Inputs{NominalPrice: 1, Duration: -1, Period: 1}},
		{"too many periods", Inputs{NominalPrice: 1, Duration: 1e9, Period: 1}},
		{"unknown method", Inputs{NominalPrice: 1, Duration: 1, Period: 1, Method: "monte-carlo"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compute(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestBreakdown_MethodsAgree(t *testing.T) {
	t.Parallel()

	cases := []Inputs{
		DefaultInputs(),
		{NominalPrice: 1000, CouponRate: 6, DiscountRate: 6, Duration: 2, Period: 2},
		{NominalPrice: 100, CouponRate: 5, DiscountRate: 4, Duration: 10, Period: 2},
		{NominalPrice: 1000, CouponRate: 5, DiscountRate: 0, Duration: 3, Period: 1},
		{NominalPrice: 750000, CouponRate: 3.1, DiscountRate: 8.4, Duration: 30, Period: 12},
		{NominalPrice: 1000, CouponRate: 5, DiscountRate: -2, Duration: 5, Period: 1},
	}

	for _, in := range cases {
		in.Method = Iterative
		it, err := Breakdown(in)
		require.NoError(t, err)

		in.Method = ClosedForm
		cf, err := Breakdown(in)
		require.NoError(t, err)

		assert.Equal(t, it.Periods, cf.Periods)
		assert.InDelta(t, it.CouponPV, cf.CouponPV, 1e-6)
		assert.InDelta(t, it.PrincipalPV, cf.PrincipalPV, 1e-9)
		assert.InDelta(t, it.PresentValue, cf.PresentValue, 0.01)
	}
}

func TestBreakdown_Components(t *testing.T) {
	t.Parallel()

	r, err := Breakdown(Inputs{NominalPrice: 1000, CouponRate: 6, DiscountRate: 6, Duration: 2, Period: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, r.Periods)
	assert.InDelta(t, 0.03, r.CouponRate, 1e-12)
	assert.InDelta(t, 0.03, r.DiscountRate, 1e-12)
	assert.InDelta(t, 1000/math.Pow(1.03, 4), r.PrincipalPV, 1e-9)
	assert.InDelta(t, 1000-r.PrincipalPV, r.CouponPV, 1e-9)
	assert.InDelta(t, 1000.0, r.PresentValue, 1e-9)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, Iterative, m)

	m, err = ParseMethod("closed-form")
	require.NoError(t, err)
	assert.Equal(t, ClosedForm, m)

	_, err = ParseMethod("nope")
	assert.Error(t, err)
}

func TestRoundHalfEven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.12},
		{0.375, 0.38},
		{0.135, 0.14},
		{2.675, 2.67},
		{-2.675, -2.67},
		{1000.015, 1000.01},
		{1.005, 1.00},
		{-1.005, -1.00},
		{978352.6249, 978352.62},
		{10, 10},
		{0, 0},
		{1e20, 1e20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfEven(tt.in, 2), "round(%v)", tt.in)
	}
}

func TestPresentValue_RoundsStoredValueNotDecimalLiteral(t *testing.T) {
	t.Parallel()

	// with no coupon and no discount the result is the nominal itself
	tests := []struct {
		nominal float64
		want    float64
	}{
		{1000.015, 1000.01},
		{2.675, 2.67},
		{0.125, 0.12},
	}

	for _, tt := range tests {
		got, err := PresentValue(tt.nominal, 0, 0, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "nominal %v", tt.nominal)
	}
}
