package common

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Placeholder is shown wherever a value is unavailable.
const Placeholder = "—"

// FormatFixed formats v with the given number of decimals, rounding half away
// from zero on the decimal representation of v. Non-finite values render as
// the placeholder.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatPercent formats v as a percentage with the given number of decimals.
func FormatPercent(v float64, places int32) string {
	s := FormatFixed(v, places)
	if s == Placeholder {
		return s
	}
	return s + "%"
}

// FormatMoney formats v in the given currency, e.g. "₹1,234.50". Rupee
// amounts use Indian digit grouping ("₹12,34,567.00").
func FormatMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if money.GetCurrency(currency) == nil {
		currency = money.INR
	}
	m := money.NewFromFloat(v, currency)
	if currency != money.INR {
		return m.Display()
	}

	c := m.Currency()
	minor := m.Amount()
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	unit := int64(math.Pow10(c.Fraction))
	s := groupIndian(strconv.FormatInt(minor/unit, 10))
	if c.Fraction > 0 {
		s += fmt.Sprintf(".%0*d", c.Fraction, minor%unit)
	}
	return sign + c.Grapheme + s
}

// FormatNumber formats a plain quantity or price: values of 1000 or more get
// Indian digit grouping and up to two decimals, smaller ones exactly two
// decimals.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if math.Abs(v) < 1000 {
		return FormatFixed(v, 2)
	}
	d := decimal.NewFromFloat(v).Round(2)
	intPart := d.Truncate(0)
	frac := d.Sub(intPart).Abs()

	s := groupIndian(intPart.Abs().String())
	if !frac.IsZero() {
		fs := frac.String() // "0.5", "0.25"
		s += fs[1:]
	}
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}

// groupIndian inserts separators in the en-IN pattern: the last three digits,
// then pairs ("1234567" -> "12,34,567").
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var out []byte
	for i := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, head[i])
	}
	return string(out) + "," + tail
}
