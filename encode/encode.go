// Package encode serializes ordered field records to CSV bytes, with a
// SIMD-backed needs-quoting check, configurable nil/line-ending
// handling, and a parallel chunked-encode mode.
//
// Grounded on pkg/csv/marshal.go's writeField (buffer pooling,
// quote-doubling escape), generalized here to use internal/scan's
// structural scanner instead of strings.ContainsAny for the
// needs-quoting check, per spec.md §4.6.
package encode

import (
	"bytes"
	"math"
	"strconv"
	"sync"

	"github.com/csvcore/fastcsv/fastcsverr"
	"github.com/csvcore/fastcsv/internal/scan"
)

// NilStrategy controls how a nil field value is rendered.
type NilStrategy int

const (
	// NilEmpty renders nil fields as an empty string.
	NilEmpty NilStrategy = iota
	// NilNullLiteral renders nil fields as the literal "null".
	NilNullLiteral
	// NilCustomLiteral renders nil fields as Options.NilCustom.
	NilCustomLiteral
)

// Options configures encoding output.
type Options struct {
	Comma     byte
	UseCRLF   bool
	Nil       NilStrategy
	NilCustom string
}

// DefaultOptions returns comma-delimited, LF-terminated, empty-nil options.
func DefaultOptions() Options {
	return Options{Comma: ',', UseCRLF: false, Nil: NilEmpty}
}

var bufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() < 64*1024 {
		bufferPool.Put(buf)
	}
}

// Record is an ordered key-preserving field map: Keys fixes the
// iteration/header order, Values holds one *string per key — a nil
// pointer means the field is nil and renders per Options.Nil.
type Record struct {
	Keys   []string
	Values map[string]*string
}

// NewRecord returns an empty Record ready for Set/SetNil calls.
func NewRecord() *Record {
	return &Record{Values: make(map[string]*string)}
}

// Set assigns value to key, appending key to Keys on first use.
func (r *Record) Set(key, value string) {
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	v := value
	r.Values[key] = &v
}

// SetNumber assigns the formatted float64 to key, returning an
// *fastcsverr.InvalidValue for NaN/Infinity, per spec.md §4.6's failure
// semantics.
func (r *Record) SetNumber(key string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &fastcsverr.InvalidValue{
			Value:    strconv.FormatFloat(f, 'g', -1, 64),
			Reason:   "NaN or Infinity is not a valid CSV value",
			Location: fastcsverr.Location{Column: key},
		}
	}
	r.Set(key, strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// SetNil marks key as an explicit nil field.
func (r *Record) SetNil(key string) {
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = nil
}

// Encode serializes records to CSV bytes. The header row is derived
// from the first record's key order; subsequent records are indexed by
// that same header, with any header key they lack emitting an empty
// field (per spec.md §4.6).
func Encode(records []*Record, opts Options) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := writeAll(buf, records, opts); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// EncodeToString is Encode returning a string instead of []byte.
func EncodeToString(records []*Record, opts Options) (string, error) {
	b, err := Encode(records, opts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeAll(buf *bytes.Buffer, records []*Record, opts Options) error {
	if len(records) == 0 {
		return nil
	}

	terminator := "\n"
	if opts.UseCRLF {
		terminator = "\r\n"
	}
	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}

	header := records[0].Keys
	writeRow(buf, header, comma)
	buf.WriteString(terminator)

	for _, rec := range records {
		row := make([]string, len(header))
		for i, key := range header {
			v, ok := rec.Values[key]
			switch {
			case !ok:
				row[i] = ""
			case v == nil:
				row[i] = nilLiteral(opts)
			default:
				row[i] = *v
			}
		}
		writeRow(buf, row, comma)
		buf.WriteString(terminator)
	}
	return nil
}

func nilLiteral(opts Options) string {
	switch opts.Nil {
	case NilNullLiteral:
		return "null"
	case NilCustomLiteral:
		return opts.NilCustom
	default:
		return ""
	}
}

func writeRow(buf *bytes.Buffer, fields []string, comma byte) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(comma)
		}
		writeField(buf, f, comma)
	}
}

// writeField writes a single CSV field, quoting and doubling embedded
// quotes only when scan.NeedsQuoting reports a structural byte present.
func writeField(buf *bytes.Buffer, value string, comma byte) {
	if !scan.NeedsQuoting([]byte(value), comma) {
		buf.WriteString(value)
		return
	}

	buf.WriteByte('"')
	for _, ch := range value {
		if ch == '"' {
			buf.WriteString(`""`)
		} else {
			buf.WriteRune(ch)
		}
	}
	buf.WriteByte('"')
}
