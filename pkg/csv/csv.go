// Package csv provides CSV format parsing and a fluent Document/Record API.
//
// This package implements a complete CSV parser following RFC 4180. It
// parses CSV data into a Document, a lightweight in-memory representation
// of a CSV file (optional headers plus data records).
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each function call creates its own parser instance with no
// shared mutable state.
//
//	// Safe: Concurrent parsing
//	go func() { csv.Parse(input1) }()
//	go func() { csv.Parse(input2) }()
//	go func() { csv.Unmarshal(data, &v) }()
//
// # Parsing APIs
//
// The package provides two parsing functions:
//
//   - Parse(string) - Parses CSV from a string in memory
//   - ParseReader(io.Reader) - Parses CSV from any io.Reader
//
// Use Parse() for small CSV documents that are already in memory as strings.
// Use ParseReader() for large files or any io.Reader source; for files large
// enough to need bounded memory and backpressure, use the stream package
// instead.
//
// # Example usage with Parse:
//
//	csvStr := "name,age\nAlice,30\nBob,25"
//	doc, err := csv.Parse(csvStr)
//	if err != nil {
//	    // handle error
//	}
package csv

import (
	"io"

	"github.com/csvcore/fastcsv/internal/fastparser"
)

// Parse parses a CSV document from a string.
//
// The input is a complete CSV document with optional header and data rows.
// All rows are returned as data records; call SetHeaders on the result to
// designate the first record as a header row if needed.
func Parse(input string) (*Document, error) {
	return ParseDocument(input)
}

// ParseReader parses a CSV document from an io.Reader.
//
// This reads the entire reader into memory before parsing. For large files
// that must be processed under a bounded memory budget, use
// github.com/csvcore/fastcsv/stream instead.
func ParseReader(reader io.Reader) (*Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	records, err := fastparser.Parse(data)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for _, record := range records {
		doc.AddRecord(record)
	}
	return doc, nil
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is valid CSV.
//
// This function uses a high-performance fast path that bypasses Document
// construction.
//
// Returns nil if the input is valid CSV.
// Returns an error with details about why the CSV is invalid.
func Validate(input string) error {
	_, err := fastparser.Parse([]byte(input))
	return err
}

// ValidateReader checks if the input from an io.Reader is valid CSV.
//
// This function uses a high-performance fast path that bypasses Document
// construction. This reads the entire input from the reader.
func ValidateReader(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	_, err = fastparser.Parse(data)
	return err
}
