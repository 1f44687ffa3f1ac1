// Package format renders prices the way the results table expects:
// currency symbols for known codes, locale-aware digit grouping, zero
// fraction digits.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"INR": "₹",
	"EUR": "€",
	"GBP": "£",
}

var (
	localeIN = language.MustParse("en-IN")
	localeUS = language.AmericanEnglish
)

// FormatPrice formats a price for display. "$" maps to USD, "₹" to INR,
// anything else is uppercased as a code. INR uses en-IN grouping, all
// other currencies en-US, with zero fraction digits. An unrecognizable
// currency falls back to "<currency> <price>".
func FormatPrice(price float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	switch currency {
	case "$":
		code = "USD"
	case "₹":
		code = "INR"
	}

	locale := localeUS
	if code == "INR" {
		locale = localeIN
	}
	formatted := message.NewPrinter(locale).Sprint(number.Decimal(price, number.MaxFractionDigits(0)))

	if symbol, ok := symbols[code]; ok {
		return symbol + formatted
	}

	if isCurrencyCode(code) {
		return fmt.Sprintf("%s %s", code, formatted)
	}

	return fmt.Sprintf("%s %s", currency, strconv.FormatFloat(price, 'f', -1, 64))
}

// isCurrencyCode reports whether s looks like an ISO 4217 code
func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
