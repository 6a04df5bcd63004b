package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/bondpv/pv"
)

const selectValuations = `
	SELECT id, time, nominal_price, coupon_rate, discount_rate, duration, period, method, coupon_pv, principal_pv, present_value
	FROM valuations`

type scanner interface {
	Scan(dest ...any) error
}

func scanValuation(s scanner) (Valuation, error) {
	var (
		v      Valuation
		method string
	)
	err := s.Scan(
		&v.ID,
		&v.Time,
		&v.NominalPrice,
		&v.CouponRate,
		&v.DiscountRate,
		&v.Duration,
		&v.Period,
		&method,
		&v.CouponPV,
		&v.PrincipalPV,
		&v.PresentValue,
	)
	v.Method = pv.Method(method)
	return v, err
}

// GetValuation returns a single valuation by ID.
func (j *SQLite) GetValuation(id string) (Valuation, error) {
	row := j.db.QueryRow(selectValuations+` WHERE id = ?`, id)
	v, err := scanValuation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Valuation{}, fmt.Errorf("valuation %q not found", id)
		}
		return Valuation{}, err
	}
	return v, nil
}

// ListValuations returns the most recent valuations, newest first.
// A limit <= 0 returns all of them.
func (j *SQLite) ListValuations(limit int) ([]Valuation, error) {
	q := selectValuations + ` ORDER BY time DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return j.list(q, args...)
}

// ListValuationsBetween returns valuations whose time is within [start, end).
func (j *SQLite) ListValuationsBetween(start, end time.Time) ([]Valuation, error) {
	return j.list(selectValuations+`
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start.UTC(), end.UTC())
}

func (j *SQLite) list(q string, args ...any) ([]Valuation, error) {
	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Valuation
	for rows.Next() {
		v, err := scanValuation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
