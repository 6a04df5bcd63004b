package pv

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Places is the number of decimals the present value is rounded to.
const Places = 2

// RoundHalfEven rounds the exact binary value of x to the given decimals
// using banker's rounding. Only true ties go to even: 2.675 is stored as
// 2.67499... and rounds to 2.67, while 0.125 is exact and rounds to 0.12.
func RoundHalfEven(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f, _ := exactDecimal(x).RoundBank(places).Float64()
	return f
}

// exactDecimal returns x without any decimal approximation.
// x = mant * 2^exp, and for exp < 0 that equals mant * 5^-exp * 10^exp.
func exactDecimal(x float64) decimal.Decimal {
	frac, exp := math.Frexp(x)
	mant := int64(math.Ldexp(frac, 53))
	exp -= 53

	if exp >= 0 {
		coef := new(big.Int).Lsh(big.NewInt(mant), uint(exp))
		return decimal.NewFromBigInt(coef, 0)
	}
	coef := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	coef.Mul(coef, big.NewInt(mant))
	return decimal.NewFromBigInt(coef, int32(exp))
}
