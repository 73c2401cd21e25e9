package decode

import (
	"strconv"
	"strings"
)

// NumberStrategy controls how a field string is parsed into a number.
type NumberStrategy int

const (
	// NumberStandard parses C-locale numbers (period decimal, no
	// thousands separator, no currency symbols).
	NumberStandard NumberStrategy = iota
	// NumberFlexible auto-detects US (1,234.56) vs EU (1.234,56)
	// formatting and strips currency symbols/unit suffixes.
	NumberFlexible
)

// currencySymbols and unitSuffixes are stripped by the flexible strategy.
// Grounded structurally on pkg/csv/converters.go's FloatConverter; the
// symbol/suffix lists are new, per spec.md §4.4's flexible-number
// algorithm description.
var currencySymbols = []string{"$", "€", "£", "¥", "₹"}
var unitSuffixes = []string{"kg", "km", "lb", "mi", "%"}

// NumberDecoder applies a NumberStrategy to a field value, producing a
// float64.
type NumberDecoder struct {
	Strategy NumberStrategy
}

// StandardNumberDecoder returns the default NumberDecoder.
func StandardNumberDecoder() NumberDecoder {
	return NumberDecoder{Strategy: NumberStandard}
}

// FlexibleNumberDecoder returns a NumberDecoder using the flexible
// locale-detecting algorithm.
func FlexibleNumberDecoder() NumberDecoder {
	return NumberDecoder{Strategy: NumberFlexible}
}

// Decode converts value to float64.
func (d NumberDecoder) Decode(value string, loc Location) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, &TypeMismatch{Expected: "number", Actual: value, Location: loc}
	}

	if d.Strategy == NumberFlexible {
		v = canonicalizeFlexibleNumber(v)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		hint := ""
		if d.Strategy == NumberStandard && containsAny(value, currencySymbols) {
			hint = "value contains currency symbol — use numberDecodingStrategy: flexible"
		}
		return 0, &TypeMismatch{Expected: "number", Actual: value, Location: loc, Hint: hint}
	}
	return f, nil
}

// canonicalizeFlexibleNumber implements spec.md §4.4's flexible-number
// algorithm: strip currency/unit tokens, detect the decimal separator
// from whichever of '.'/',' appears last, then drop the thousands
// separator, yielding a canonical C-locale string.
func canonicalizeFlexibleNumber(v string) string {
	for _, sym := range currencySymbols {
		v = strings.ReplaceAll(v, sym, "")
	}
	for _, suf := range unitSuffixes {
		v = strings.TrimSuffix(strings.TrimSpace(v), suf)
	}
	v = strings.TrimSpace(v)

	lastDot := strings.LastIndexByte(v, '.')
	lastComma := strings.LastIndexByte(v, ',')

	switch {
	case lastDot == -1 && lastComma == -1:
		return v
	case lastDot != -1 && lastComma == -1:
		return v
	case lastComma != -1 && lastDot == -1:
		return strings.Replace(v, ",", ".", 1)
	case lastComma > lastDot:
		// EU style: '.' is thousands, ',' is decimal.
		v = strings.ReplaceAll(v[:lastComma], ".", "") + "." + v[lastComma+1:]
		return v
	default:
		// US style: ',' is thousands, '.' is decimal.
		return strings.ReplaceAll(v, ",", "")
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
