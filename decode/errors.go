// Package decode applies pluggable field-decoding strategies (date,
// number, bool, key, nil, nested) to CSV field values, converting raw
// strings into typed Go values with positional error reporting.
//
// Grounded on pkg/csv/converters.go's Converter interface and built-in
// converters (the "standard" strategy variants), pkg/csv/sniffer.go's
// header-case converters (the Key strategy), and pkg/csv/advanced.go's
// FlattenStruct (the Nested flatten strategy). The flexible number/bool/
// date variants have no analogue in any example repo and are built fresh
// from first principles, following the Converter interface shape.
// Error kinds (TypeMismatch, KeyNotFound, Location) live in
// fastcsverr so decode, encode, and recordmap share one error model.
package decode

import "github.com/csvcore/fastcsv/fastcsverr"

// Location is an alias so decode call sites don't need to import
// fastcsverr directly for the common case.
type Location = fastcsverr.Location

// TypeMismatch and KeyNotFound are aliased from fastcsverr so existing
// call sites that type-assert *decode.TypeMismatch keep working.
type TypeMismatch = fastcsverr.TypeMismatch
type KeyNotFound = fastcsverr.KeyNotFound
