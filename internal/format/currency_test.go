package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberGroupsByLocale(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber("en-US", 1234567))
	// Indian grouping: last three digits, then pairs.
	assert.Equal(t, "12,34,567", FormatNumber("en-IN", 1234567))
}

func TestFormatNumberDefaultsToIndianLocale(t *testing.T) {
	assert.Equal(t, "1,00,000", FormatNumber("", 100000))
	assert.Equal(t, FormatNumber("en-IN", 100000), FormatNumber("!!", 100000))
}

func TestFormatCurrencyPrefixesSymbol(t *testing.T) {
	assert.Equal(t, "₹1,00,000", FormatCurrency("", "INR", 100000))
	assert.Equal(t, "$1,234,567", FormatCurrency("en-US", "usd", 1234567))
}

func TestFormatCurrencyUnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "XYZ 500", FormatCurrency("en-US", "xyz", 500))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "1.25 Cr", FormatCompact("en-US", 12500000))
	assert.Equal(t, "5 L", FormatCompact("en-US", 500000))
	assert.Equal(t, "75 K", FormatCompact("en-US", 75000))
	assert.Equal(t, "950", FormatCompact("en-US", 950))
}
