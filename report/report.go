// Package report formats valuations for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/bondpv/journal"
	"github.com/rustyeddy/bondpv/pv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Amount formats a rounded result with thousands separators and two
// decimals, e.g. 978,352.62.
func Amount(x float64) string {
	return printer.Sprintf("%v", number.Decimal(x, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Nominal formats a face value with thousands separators, at least one
// decimal and no cap on the fraction digits, e.g. 1,000,000.0.
func Nominal(x float64) string {
	return printer.Sprintf("%v", number.Decimal(x, number.MinFractionDigits(1), number.MaxFractionDigits(-1)))
}

// Years formats a duration in its shortest form: 5, 0.5, 2.25.
func Years(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Line is the one-line summary printed by the command.
func Line(result, nominal, duration float64) string {
	return fmt.Sprintf("Present Value of Cash Flow is %s for nominal value of %s after %s Years",
		Amount(result), Nominal(nominal), Years(duration))
}

// Breakdown writes the coupon and principal components of r.
func Breakdown(w io.Writer, r pv.Result) error {
	_, err := fmt.Fprintf(w, "  Periods: %d (coupon %s%%, discount %s%% per period)\n  Coupons PV: %s\n  Principal PV: %s\n",
		r.Periods,
		strconv.FormatFloat(pv.RoundHalfEven(r.CouponRate*100, 6), 'f', -1, 64),
		strconv.FormatFloat(pv.RoundHalfEven(r.DiscountRate*100, 6), 'f', -1, 64),
		Amount(pv.RoundHalfEven(r.CouponPV, pv.Places)),
		Amount(pv.RoundHalfEven(r.PrincipalPV, pv.Places)),
	)
	return err
}

// Valuations writes recs as an aligned table.
func Valuations(w io.Writer, recs []journal.Valuation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "no valuations recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tNOMINAL\tCOUPON%\tDISCOUNT%\tYEARS\tPERIOD\tMETHOD\tPV")
	for _, v := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%s\t%g\t%s\t%s\n",
			v.ID,
			v.Time.UTC().Format(time.RFC3339),
			Nominal(v.NominalPrice),
			v.CouponRate,
			v.DiscountRate,
			Years(v.Duration),
			v.Period,
			v.Method,
			Amount(v.PresentValue),
		)
	}
	return tw.Flush()
}

// Valuation writes the details of a single record.
func Valuation(w io.Writer, v journal.Valuation) error {
	_, err := fmt.Fprintf(w, `ID:            %s
Time:          %s
Nominal:       %s
Coupon rate:   %g%%
Discount rate: %g%%
Duration:      %s years
Period:        %g per year
Method:        %s
Coupons PV:    %s
Principal PV:  %s
Present value: %s
`,
		v.ID,
		v.Time.UTC().Format(time.RFC3339),
		Nominal(v.NominalPrice),
		v.CouponRate,
		v.DiscountRate,
		Years(v.Duration),
		v.Period,
		v.Method,
		Amount(pv.RoundHalfEven(v.CouponPV, pv.Places)),
		Amount(pv.RoundHalfEven(v.PrincipalPV, pv.Places)),
		Amount(v.PresentValue),
	)
	return err
}
