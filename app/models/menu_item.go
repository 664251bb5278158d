package models

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

// MenuItem is a single priced dish on the menu. Items are never edited once
// stored; they are only added or removed.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Course      CourseID  `json:"course"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayPrice is the price in Rand, e.g. "R285.00".
func (m MenuItem) DisplayPrice() string { return FormatRand(m.Price) }

// FormatAmount renders v with exactly two decimals. Rounding works on the
// exact binary value, so 2.675 (stored as 2.67499...) gives "2.67". A value
// sitting exactly on a half cent, such as 0.125, rounds away from zero.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	if cents, ok := halfCent(v); ok {
		q, r := new(big.Int).QuoRem(cents, big.NewInt(100), new(big.Int))
		sign := ""
		if v < 0 {
			sign = "-"
		}
		return fmt.Sprintf("%s%s.%02d", sign, q.String(), r.Int64())
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// halfCent reports whether |v| lies exactly halfway between two cents and,
// if so, returns the larger cent count.
func halfCent(v float64) (*big.Int, bool) {
	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(200))
	if !x.IsInt() {
		return nil, false
	}
	n, _ := x.Int(nil)
	if n.Bit(0) == 0 {
		return nil, false
	}
	return n.Rsh(n.Add(n, big.NewInt(1)), 1), true
}

// FormatRand prefixes FormatAmount with the Rand symbol.
func FormatRand(v float64) string { return "R" + FormatAmount(v) }
