package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/bondpv/pv"
)

// Valuation is one present-value computation as recorded in a journal.
type Valuation struct {
	ID           string
	Time         time.Time
	NominalPrice float64
	CouponRate   float64
	DiscountRate float64
	Duration     float64
	Period       float64
	Method       pv.Method
	CouponPV     float64
	PrincipalPV  float64
	PresentValue float64
}

// NewValuation builds a record from the inputs and result of a computation.
// ID and Time are left for the caller.
func NewValuation(in pv.Inputs, r pv.Result) Valuation {
	method := in.Method
	if method == "" {
		method = pv.Iterative
	}
	return Valuation{
		NominalPrice: in.NominalPrice,
		CouponRate:   in.CouponRate,
		DiscountRate: in.DiscountRate,
		Duration:     in.Duration,
		Period:       in.Period,
		Method:       method,
		CouponPV:     r.CouponPV,
		PrincipalPV:  r.PrincipalPV,
		PresentValue: r.PresentValue,
	}
}

type Journal interface {
	RecordValuation(Valuation) error
	Close() error
}

// Journal types accepted by Open.
const (
	TypeNone   = "none"
	TypeCSV    = "csv"
	TypeSQLite = "sqlite"
)

// Open returns the journal backend named by kind, writing to path.
func Open(kind, path string) (Journal, error) {
	switch kind {
	case "", TypeNone:
		return Nop{}, nil
	case TypeCSV:
		return NewCSV(path)
	case TypeSQLite:
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown journal type %q", kind)
}

// Nop discards every record.
type Nop struct{}

func (Nop) RecordValuation(Valuation) error { return nil }
func (Nop) Close() error                    { return nil }
