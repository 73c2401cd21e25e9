// Package bom detects and strips byte-order marks, and transcodes
// UTF-16 CSV input to UTF-8 before it reaches the parser.
//
// No example repo in this corpus handles non-UTF-8 CSV input, so this is
// new code; golang.org/x/text/encoding is the natural ecosystem choice
// for this concern (the same library the wider Go ecosystem reaches for
// whenever encoding/csv-style code needs to accept legacy file encodings),
// rather than hand-rolling UTF-16 decoding on the standard library.
package bom

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	utf8BOM       = "\xEF\xBB\xBF"
	utf16LEBOMLen = 2
	utf16BEBOMLen = 2
)

// Kind identifies the detected byte-order mark, if any.
type Kind int

const (
	None Kind = iota
	UTF8
	UTF16LE
	UTF16BE
)

// Detect inspects the first few bytes of data and reports which BOM, if
// any, is present.
func Detect(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, []byte(utf8BOM)):
		return UTF8
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return None
	}
}

// Strip removes a leading BOM from data and transcodes UTF-16 input to
// UTF-8. UTF-8 input with no BOM, or no BOM at all, is returned unchanged.
func Strip(data []byte) ([]byte, error) {
	switch Detect(data) {
	case UTF8:
		return data[len(utf8BOM):], nil
	case UTF16LE, UTF16BE:
		return decodeUTF16(data)
	default:
		return data, nil
	}
}

// decodeUTF16 transcodes BOM-prefixed UTF-16 data to UTF-8 using
// golang.org/x/text/encoding/unicode's BOM-aware decoder, which also
// consumes the BOM itself.
func decodeUTF16(data []byte) ([]byte, error) {
	e := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	decoder := e.NewDecoder()
	reader := transform.NewReader(bytes.NewReader(data), decoder)
	return io.ReadAll(reader)
}

// StripReader wraps r so that a leading BOM is stripped and UTF-16
// content is transcoded to UTF-8 as it is read. It peeks at the first
// few bytes of r to detect the encoding.
func StripReader(r io.Reader) (io.Reader, error) {
	var peek [4]byte
	n, err := io.ReadFull(r, peek[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	head := peek[:n]
	rest := io.MultiReader(bytes.NewReader(head), r)

	switch Detect(head) {
	case UTF8:
		return io.MultiReader(bytes.NewReader(head[len(utf8BOM):]), r), nil
	case UTF16LE:
		e := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
		return transform.NewReader(rest, e.NewDecoder()), nil
	case UTF16BE:
		e := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
		return transform.NewReader(rest, e.NewDecoder()), nil
	default:
		return rest, nil
	}
}
