package csv

import (
	"io"

	"github.com/csvcore/fastcsv/internal/bom"
)

// ParseAutoDetect parses CSV data after stripping a leading byte-order
// mark and transcoding UTF-16 input to UTF-8. Plain UTF-8 input without a
// BOM is parsed exactly as Parse would.
//
// This is opt-in: Parse and ParseReader do not sniff encodings on their
// own, since most CSV input is already UTF-8 and the detection has a
// cost. Use this entry point when ingesting files of unknown origin.
func ParseAutoDetect(data []byte) (*Document, error) {
	stripped, err := bom.Strip(data)
	if err != nil {
		return nil, err
	}
	return ParseDocument(string(stripped))
}

// ParseReaderAutoDetect parses CSV from reader after stripping a leading
// byte-order mark and transcoding UTF-16 input to UTF-8.
func ParseReaderAutoDetect(reader io.Reader) (*Document, error) {
	stripped, err := bom.StripReader(reader)
	if err != nil {
		return nil, err
	}
	return ParseReader(stripped)
}
