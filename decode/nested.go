package decode

import "strings"

// NestedStrategy controls how headers like "addr.street" map onto
// nested sub-records.
type NestedStrategy int

const (
	// NestedError rejects any header containing the separator.
	NestedError NestedStrategy = iota
	// NestedFlatten routes "outer<sep>inner" headers into a sub-record
	// keyed by outer, with inner as the sub-record's key.
	NestedFlatten
	// NestedJSON treats the field's raw value as an embedded JSON
	// document (decoding itself is external, per spec.md's scope note;
	// this strategy only marks the field as opaque JSON).
	NestedJSON
)

// NestedDecoder applies flatten-style routing to a row of header/value
// pairs. Grounded on pkg/csv/advanced.go's FlattenStruct/flattenValue,
// which performs the inverse operation (struct -> dotted headers) using
// the same separator convention.
type NestedDecoder struct {
	Strategy  NestedStrategy
	Separator string
}

// FlattenDecoder returns a NestedDecoder using the given separator
// (conventionally ".").
func FlattenDecoder(separator string) NestedDecoder {
	return NestedDecoder{Strategy: NestedFlatten, Separator: separator}
}

// Flatten splits a flat header/value map into a tree of nested
// sub-records keyed by the path segments before each separator. Top-level
// keys containing no separator are returned unchanged at the root.
func (d NestedDecoder) Flatten(row map[string]string) (map[string]interface{}, error) {
	if d.Strategy == NestedError {
		for k := range row {
			if strings.Contains(k, d.Separator) {
				return nil, &TypeMismatch{
					Expected: "flat field",
					Actual:   k,
					Location: Location{Column: k},
					Hint:     "nested headers are rejected under the error strategy",
				}
			}
		}
	}

	result := make(map[string]interface{}, len(row))
	if d.Separator == "" || d.Strategy != NestedFlatten {
		for k, v := range row {
			result[k] = v
		}
		return result, nil
	}

	for k, v := range row {
		parts := strings.SplitN(k, d.Separator, 2)
		if len(parts) == 1 {
			result[k] = v
			continue
		}
		outer, inner := parts[0], parts[1]
		sub, ok := result[outer].(map[string]interface{})
		if !ok {
			sub = make(map[string]interface{})
			result[outer] = sub
		}
		if strings.Contains(inner, d.Separator) {
			nested, err := d.Flatten(map[string]string{inner: v})
			if err != nil {
				return nil, err
			}
			for nk, nv := range nested {
				sub[nk] = nv
			}
			continue
		}
		sub[inner] = v
	}
	return result, nil
}
