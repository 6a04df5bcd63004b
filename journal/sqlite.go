package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordValuation(v Valuation) error {
	_, err := j.db.Exec(`
		INSERT INTO valuations
		(id, time, nominal_price, coupon_rate, discount_rate, duration, period, method, coupon_pv, principal_pv, present_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Time.UTC(), v.NominalPrice, v.CouponRate, v.DiscountRate,
		v.Duration, v.Period, string(v.Method), v.CouponPV, v.PrincipalPV, v.PresentValue,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
