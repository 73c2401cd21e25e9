package decode

// NilStrategy determines which raw string values are treated as nil/null.
type NilStrategy int

const (
	// NilEmptyString treats only the empty string as nil.
	NilEmptyString NilStrategy = iota
	// NilNullLiteral treats the empty string or a case-sensitive
	// "null"/"NULL" literal as nil.
	NilNullLiteral
	// NilCustom treats the empty string or any value in a caller-supplied set as nil.
	NilCustom
)

// NilDecoder applies a NilStrategy to field values. Grounded on
// pkg/csv/converters.go's DefaultNullValues/IsNullValue.
type NilDecoder struct {
	Strategy NilStrategy
	// Custom is the value set used when Strategy is NilCustom.
	Custom map[string]struct{}
}

// StandardNilDecoder returns a NilDecoder using the empty-string strategy.
func StandardNilDecoder() NilDecoder {
	return NilDecoder{Strategy: NilEmptyString}
}

// NullLiteralNilDecoder returns a NilDecoder that also treats "null"/"NULL"
// as nil.
func NullLiteralNilDecoder() NilDecoder {
	return NilDecoder{Strategy: NilNullLiteral}
}

// CustomNilDecoder returns a NilDecoder treating the given values, and
// the empty string, as nil.
func CustomNilDecoder(values ...string) NilDecoder {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return NilDecoder{Strategy: NilCustom, Custom: set}
}

// IsNil reports whether value should be treated as nil under d's strategy.
func (d NilDecoder) IsNil(value string) bool {
	switch d.Strategy {
	case NilNullLiteral:
		return value == "" || value == "null" || value == "NULL"
	case NilCustom:
		_, ok := d.Custom[value]
		return ok || value == ""
	default:
		return value == ""
	}
}
