package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens path for appending, writing the header if the file is new
// or empty.
func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(columns); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordValuation(v Valuation) error {
	err := j.w.Write([]string{
		v.ID,
		v.Time.UTC().Format(time.RFC3339Nano),
		formatFloat(v.NominalPrice),
		formatFloat(v.CouponRate),
		formatFloat(v.DiscountRate),
		formatFloat(v.Duration),
		formatFloat(v.Period),
		string(v.Method),
		formatFloat(v.CouponPV),
		formatFloat(v.PrincipalPV),
		strconv.FormatFloat(v.PresentValue, 'f', 2, 64),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

// formatFloat writes the shortest decimal that parses back to x.
func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
