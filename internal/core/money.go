// Package core holds the pure budget domain: money parsing, month keys,
// input validation and the 50/30/20 calculation engine. Nothing in this
// package performs I/O.
package core

import (
	"fmt"
	"strings"
)

// ParseAmountToCents converts user-typed decimal input to integer cents.
//
// Every character that is not an ASCII digit or a dot is stripped (digits
// from other scripts included), only the first dot is treated as the
// decimal separator, at most two fractional digits are kept (half-up
// rounding on the third), and the result is digits*100. Empty or unusable
// input yields 0 rather than an error; the caller is expected to reject a
// zero amount through ValidateExpense.
//
// Examples:
//
//	ParseAmountToCents("12.34")   -> 1234
//	ParseAmountToCents("$1,200")  -> 120000
//	ParseAmountToCents("7.005")   -> 701 (rounds up)
//	ParseAmountToCents("abc")     -> 0
func ParseAmountToCents(s string) int64 {
	var b strings.Builder
	sawDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !sawDot:
			sawDot = true
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return 0
	}

	intPart := cleaned
	fracPart := ""
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		intPart, fracPart = cleaned[:i], cleaned[i+1:]
	}

	// Overflow guard: anything past this many integer digits cannot fit in
	// int64 cents and is treated as unusable input.
	const maxIntDigits = 16
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > maxIntDigits {
		return 0
	}

	var cents int64
	for _, r := range intPart {
		cents = cents*10 + int64(r-'0')
	}
	cents *= 100

	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			cents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				cents++
			}
		}
	}
	return cents
}

// FormatCents renders integer cents as a plain decimal string such as
// "1234.56". Negative amounts keep their sign.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
