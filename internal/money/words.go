package money

import (
	"math"
	"strings"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000

	// Amounts at or above this are beyond float64's exact integer range
	// for our purposes and are not spelled out.
	maxWordsAmount = 1e15
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells an amount on the South Asian scale, e.g.
// 12345678.9 -> "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred
// Seventy Eight And Ninety Paisa". Negative and non-finite amounts return "".
func NumberToWords(amount float64) string {
	if !isFinite(amount) || amount < 0 || amount >= maxWordsAmount {
		return ""
	}

	whole := math.Floor(amount)
	paisa := math.Round((amount - whole) * 100)
	if paisa >= 100 {
		whole++
		paisa = 0
	}

	words := integerToWords(uint64(whole))
	if paisa > 0 {
		words += " And " + lessThanThousand(uint64(paisa)) + " Paisa"
	}
	return words
}

func integerToWords(n uint64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, integerToWords(c), "Crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, lessThanThousand(l), "Lakh")
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, lessThanThousand(t), "Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, lessThanThousand(n))
	}
	return strings.Join(parts, " ")
}

// lessThanThousand spells 1..999.
func lessThanThousand(n uint64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
