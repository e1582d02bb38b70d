// Package amount converts between user-facing decimal amounts and the
// integer smallest unit used on-chain (1 SUI = 1 TKT = 10^9 units).
package amount

import (
	"math"
	"math/big"
	"strings"

	"tokentrip-marketplace/apperr"

	"github.com/shopspring/decimal"
)

const Decimals = 9

var (
	scale   = decimal.New(1, Decimals)
	maxUnit = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
)

// ToSmallestUnit parses a positive decimal string and returns round(d * 10^9).
func ToSmallestUnit(field, s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperr.InvalidAmount(field, "amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperr.InvalidAmount(field, "%q is not a number", s)
	}
	if !d.IsPositive() {
		return 0, apperr.InvalidAmount(field, "amount must be greater than zero")
	}
	units := d.Mul(scale).Round(0)
	if !units.IsPositive() {
		return 0, apperr.InvalidAmount(field, "%s is below the smallest unit", s)
	}
	if units.GreaterThan(maxUnit) {
		return 0, apperr.InvalidAmount(field, "%s is too large", s)
	}
	return units.BigInt().Uint64(), nil
}

// FromSmallestUnit is the decimal display value of units.
func FromSmallestUnit(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -Decimals)
}

// Display converts units to a float for rendering; 5000000000 -> 5.0.
func Display(units uint64) float64 {
	f, _ := FromSmallestUnit(units).Float64()
	return f
}

// DisplayString parses an on-chain u64 string ("5000000000") and returns its
// display value. Malformed input displays as zero.
func DisplayString(raw string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	f, _ := d.Shift(-Decimals).Float64()
	return f
}

// Format renders units with a fixed number of decimals, e.g. "5.0".
func Format(units uint64, places int32) string {
	return FromSmallestUnit(units).StringFixed(places)
}
