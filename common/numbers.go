package common

import (
	"math"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places amounts are rounded to.
const MoneyPlaces = 2

// Round rounds to two decimal places
func Round(float float64) float64 {
	return math.Round(float*100) / 100
}

// RoundMoney rounds a decimal amount to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ToCents converts a major-unit amount to minor units.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(MoneyPlaces).Round(0).IntPart()
}

// FromCents converts minor units to a major-unit amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// MoneyToFloat is used when persisting an amount into a document store field.
func MoneyToFloat(d decimal.Decimal) float64 {
	return RoundMoney(d).InexactFloat64()
}

// MoneyFromFloat reads a persisted amount back, discarding float noise below a cent.
func MoneyFromFloat(f float64) decimal.Decimal {
	return RoundMoney(decimal.NewFromFloat(f))
}
