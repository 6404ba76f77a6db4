// Package money formats, parses and spells out statement amounts.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrEmptyAmount is returned when an amount string has no digits to parse.
var ErrEmptyAmount = errors.New("empty amount")

// ErrNotFinite is returned for NaN and infinite amounts.
var ErrNotFinite = errors.New("amount is not a finite number")

// moneyPrinter groups thousands. Printers are safe for concurrent use.
var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with two decimals and thousands separators,
// e.g. 1234.5 -> "1,234.50". NaN and infinities render as "".
func FormatMoney(amount float64) string {
	if !isFinite(amount) {
		return ""
	}
	return moneyPrinter.Sprintf("%.2f", amount)
}

// FormatOptional renders an optional amount; a missing amount renders as "".
func FormatOptional(amount *float64) string {
	if amount == nil {
		return ""
	}
	return FormatMoney(*amount)
}

// FormatMoneyString renders a numeric string. Strings that do not parse
// render as "".
func FormatMoneyString(s string) string {
	amount, err := ParseAmount(s)
	if err != nil {
		return ""
	}
	return FormatMoney(amount)
}

// FormatMoneyNoSeparator renders an amount with two decimals and no grouping,
// e.g. 1234.5 -> "1234.50".
func FormatMoneyNoSeparator(amount float64) string {
	if !isFinite(amount) {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// currencyMarks are stripped before parsing.
var currencyMarks = []string{
	"NPR", "INR", "Rs.", "Rs", "रू", "₹", "$", "£", "€",
	",", " ", " ",
}

// ParseAmount converts a string like "1,25,000.50" or "Rs. 1,234" to a float64.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	for _, mark := range currencyMarks {
		cleaned = strings.ReplaceAll(cleaned, mark, "")
	}

	if cleaned == "" || cleaned == "-" {
		return 0, ErrEmptyAmount
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if !isFinite(amount) {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrNotFinite)
	}
	return amount, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
