package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "20.00", FormatFixed(20, 2))
	assert.Equal(t, "70.0", FormatFixed(70, 1))
	assert.Equal(t, "0.3", FormatFixed(0.25, 1))
	assert.Equal(t, "-3.33", FormatFixed(-10.0/3, 2))
	assert.Equal(t, Placeholder, FormatFixed(math.NaN(), 2))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "20.00%", FormatPercent(20, 2))
	assert.Equal(t, "33.3%", FormatPercent(100.0/3, 1))
	assert.Equal(t, Placeholder, FormatPercent(math.Inf(1), 1))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999.50", FormatNumber(999.5))
	assert.Equal(t, "1,234.5", FormatNumber(1234.5))
	assert.Equal(t, "1,200", FormatNumber(1200))
	assert.Equal(t, "-12,345.68", FormatNumber(-12345.678))
	assert.Equal(t, "10,00,000", FormatNumber(1e6))
	assert.Equal(t, "1,23,456.7", FormatNumber(123456.7))
	assert.Equal(t, "-12,34,56,789", FormatNumber(-123456789))
}

func TestGroupIndian(t *testing.T) {
	assert.Equal(t, "999", groupIndian("999"))
	assert.Equal(t, "1,000", groupIndian("1000"))
	assert.Equal(t, "12,345", groupIndian("12345"))
	assert.Equal(t, "1,23,456", groupIndian("123456"))
	assert.Equal(t, "12,34,567", groupIndian("1234567"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹1,234.50", FormatMoney(1234.5, "INR"))
	assert.Equal(t, "₹12,34,567.00", FormatMoney(1234567, "INR"))
	assert.Equal(t, "-₹1,50,000.25", FormatMoney(-150000.25, "INR"))
	assert.Equal(t, "$10.00", FormatMoney(10, "USD"))
	assert.Equal(t, "$1,234,567.00", FormatMoney(1234567, "USD"))
	assert.Equal(t, Placeholder, FormatMoney(math.NaN(), "INR"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "ABC", Sanitize("  ABC \n"))
	assert.Equal(t, "Reduce exposure", Sanitize("Reduce� exposure ✓"))
	assert.Equal(t, "<b>x</b>", Sanitize("<b>x</b>"))
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "AB", Sanitize("A\x00\x7fB"))
}
