package fastparser

import (
	"fmt"
	"strings"
)

// Options configures the byte-level parser beyond the RFC 4180 defaults
// used by Parse. It mirrors encoding/csv.Reader's configuration knobs.
type Options struct {
	Comma            rune
	Comment          rune
	FieldsPerRecord  int
	LazyQuotes       bool
	TrimLeadingSpace bool
}

// DefaultOptions returns RFC 4180 defaults: comma-delimited, no comment
// character, no fixed field count, strict quoting.
func DefaultOptions() Options {
	return Options{
		Comma:           ',',
		FieldsPerRecord: -1,
	}
}

// ParseWithOptions parses data the way Parse does, but honoring a custom
// delimiter, comment character, lazy-quote tolerance, leading-space
// trimming, and a fixed expected field count.
func ParseWithOptions(data []byte, opts Options) ([][]string, error) {
	if len(data) == 0 {
		return [][]string{}, nil
	}

	p := &optParser{
		data:   data,
		pos:    0,
		length: len(data),
		opts:   opts,
	}
	return p.parse()
}

type optParser struct {
	data   []byte
	pos    int
	length int
	opts   Options
}

func (p *optParser) parse() ([][]string, error) {
	records := make([][]string, 0, 16)
	expected := p.opts.FieldsPerRecord

	for p.pos < p.length {
		if p.isNewline() {
			p.skipNewline()
			continue
		}

		if p.opts.Comment != 0 && p.atCommentStart() {
			p.skipLine()
			continue
		}

		record, err := p.parseRecord()
		if err != nil {
			return nil, err
		}

		if expected > 0 && len(record) != expected {
			return nil, fmt.Errorf("record has %d fields, expected %d", len(record), expected)
		}
		if expected == 0 {
			expected = len(record)
		}

		records = append(records, record)
	}

	return records, nil
}

func (p *optParser) atCommentStart() bool {
	return p.pos < p.length && rune(p.data[p.pos]) == p.opts.Comment
}

func (p *optParser) skipLine() {
	for p.pos < p.length && p.data[p.pos] != '\n' {
		p.pos++
	}
	if p.pos < p.length {
		p.pos++
	}
}

func (p *optParser) parseRecord() ([]string, error) {
	var fields []string
	for {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)

		if p.pos >= p.length {
			break
		}

		c := rune(p.data[p.pos])
		if c == p.opts.Comma {
			p.pos++
			continue
		}
		if c == '\r' || c == '\n' {
			p.skipNewline()
			break
		}
		return nil, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
	}
	return fields, nil
}

func (p *optParser) parseField() (string, error) {
	if p.opts.TrimLeadingSpace {
		for p.pos < p.length && (p.data[p.pos] == ' ' || p.data[p.pos] == '\t') {
			p.pos++
		}
	}

	if p.pos < p.length && p.data[p.pos] == '"' {
		return p.parseQuotedField()
	}
	return p.parseUnquotedField()
}

func (p *optParser) parseQuotedField() (string, error) {
	p.pos++ // skip opening quote
	var sb strings.Builder

	for p.pos < p.length {
		c := p.data[p.pos]
		if c == '"' {
			if p.pos+1 < p.length && p.data[p.pos+1] == '"' {
				sb.WriteByte('"')
				p.pos += 2
				continue
			}
			if p.opts.LazyQuotes && p.pos+1 < p.length {
				next := rune(p.data[p.pos+1])
				if next != p.opts.Comma && next != '\r' && next != '\n' {
					sb.WriteByte('"')
					p.pos++
					continue
				}
			}
			p.pos++
			return sb.String(), nil
		}
		sb.WriteByte(c)
		p.pos++
	}

	if p.opts.LazyQuotes {
		return sb.String(), nil
	}
	return "", fmt.Errorf("unclosed quoted field")
}

func (p *optParser) parseUnquotedField() (string, error) {
	start := p.pos
	for p.pos < p.length {
		c := rune(p.data[p.pos])
		if c == p.opts.Comma || c == '\r' || c == '\n' {
			break
		}
		if c == '"' && !p.opts.LazyQuotes {
			return "", fmt.Errorf("quote character in unquoted field at position %d", p.pos)
		}
		p.pos++
	}
	return unsafeString(p.data[start:p.pos]), nil
}

func (p *optParser) isNewline() bool {
	if p.pos >= p.length {
		return false
	}
	c := p.data[p.pos]
	return c == '\r' || c == '\n'
}

func (p *optParser) skipNewline() {
	if p.pos >= p.length {
		return
	}
	if p.data[p.pos] == '\r' {
		p.pos++
		if p.pos < p.length && p.data[p.pos] == '\n' {
			p.pos++
		}
		return
	}
	if p.data[p.pos] == '\n' {
		p.pos++
	}
}
