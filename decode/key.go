package decode

import (
	"strings"
	"unicode"
)

// KeyStrategy controls how a CSV header is mapped to a target field name.
type KeyStrategy int

const (
	// KeyIdentity leaves the header unchanged.
	KeyIdentity KeyStrategy = iota
	// KeyFromSnakeCase converts "first_name" style headers.
	KeyFromSnakeCase
	// KeyFromKebabCase converts "first-name" style headers.
	KeyFromKebabCase
	// KeyFromScreamingSnake converts "FIRST_NAME" style headers.
	KeyFromScreamingSnake
	// KeyFromPascalCase converts "FirstName" style headers.
	KeyFromPascalCase
	// KeyCustom applies a caller-supplied function.
	KeyCustom
)

// KeyDecoder maps a header string to a target field name. Grounded on
// pkg/csv/sniffer.go's HeaderConverter/SnakeCaseHeader/LowercaseHeader,
// extended with kebab/screaming-snake/pascal-case variants in the same
// style.
type KeyDecoder struct {
	Strategy KeyStrategy
	Custom   func(string) string
}

// Map converts header into the target field-name spelling under d's
// strategy. All strategies produce a camelCase result (matching
// pkg/csv/advanced.go's struct-field convention), except KeyIdentity and
// KeyCustom.
func (d KeyDecoder) Map(header string) string {
	switch d.Strategy {
	case KeyFromSnakeCase:
		return fromDelimited(header, '_')
	case KeyFromKebabCase:
		return fromDelimited(header, '-')
	case KeyFromScreamingSnake:
		return fromDelimited(strings.ToLower(header), '_')
	case KeyFromPascalCase:
		return fromPascal(header)
	case KeyCustom:
		if d.Custom != nil {
			return d.Custom(header)
		}
		return header
	default:
		return header
	}
}

// fromDelimited converts "first_name"/"first-name" to "firstName".
func fromDelimited(s string, sep rune) string {
	var b strings.Builder
	upperNext := false
	for i, r := range s {
		if r == sep {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fromPascal converts "FirstName" to "firstName".
func fromPascal(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
