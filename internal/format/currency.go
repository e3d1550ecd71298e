package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbols for the currencies the panel actually trades in. Anything else
// falls back to the ISO code as a prefix.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AED": "د.إ",
}

var defaultLang = language.Make("en-IN")

// FormatNumber renders v with locale-aware digit grouping. An empty lang
// falls back to en-IN, the panel's primary market.
func FormatNumber(lang string, v float64) string {
	p := message.NewPrinter(langOrDefault(lang))
	if v == float64(int64(v)) {
		return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
	}
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatCurrency prefixes the grouped value with the currency's symbol.
func FormatCurrency(lang, code string, v float64) string {
	sym, ok := currencySymbols[strings.ToUpper(code)]
	if !ok {
		sym = strings.ToUpper(code) + " "
	}
	return sym + FormatNumber(lang, v)
}

// FormatCompact shortens large rupee-style amounts using the Indian
// lakh/crore convention, e.g. 12500000 -> "1.25 Cr".
func FormatCompact(lang string, v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e7:
		return trimZeros(FormatNumber(lang, round2(v/1e7))) + " Cr"
	case abs >= 1e5:
		return trimZeros(FormatNumber(lang, round2(v/1e5))) + " L"
	case abs >= 1e3:
		return trimZeros(FormatNumber(lang, round2(v/1e3))) + " K"
	default:
		return FormatNumber(lang, v)
	}
}

func langOrDefault(lang string) language.Tag {
	if lang == "" {
		return defaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return defaultLang
	}
	return tag
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
