package decode

// Row is an ordered key-preserving mapping from header name to raw field
// string for one record, matching spec.md §3's "Record map" data model.
type Row struct {
	Headers []string
	Values  []string
}

// Get returns the raw value for a header, and whether it was present.
func (r Row) Get(header string) (string, bool) {
	for i, h := range r.Headers {
		if h == header {
			return r.Values[i], true
		}
	}
	return "", false
}

// Decoder bundles one strategy per field kind, applied uniformly across
// a row. Each Decode* method looks up the named column, reports
// KeyNotFound if absent, and otherwise delegates to the corresponding
// strategy decoder.
type Decoder struct {
	RowIndex int
	Date     DateDecoder
	Number   NumberDecoder
	Bool     BoolDecoder
	Key      KeyDecoder
	Nil      NilDecoder
	Nested   NestedDecoder
}

// NewDecoder returns a Decoder with the standard (non-flexible) strategy
// for every kind, matching the teacher's converters.go defaults.
func NewDecoder(rowIndex int) Decoder {
	return Decoder{
		RowIndex: rowIndex,
		Date:     StandardISO8601Decoder(),
		Number:   StandardNumberDecoder(),
		Bool:     StandardBoolDecoder(),
		Key:      KeyDecoder{Strategy: KeyIdentity},
		Nil:      StandardNilDecoder(),
		Nested:   NestedDecoder{Strategy: NestedError},
	}
}

func (d Decoder) locate(row Row, column string) (string, Location, error) {
	loc := Location{Row: d.RowIndex, Column: column}
	v, ok := row.Get(column)
	if !ok {
		return "", loc, &KeyNotFound{Key: column, Location: loc, AvailableKeys: row.Headers}
	}
	return v, loc, nil
}

// DecodeNumber decodes the named column as a float64.
func (d Decoder) DecodeNumber(row Row, column string) (float64, error) {
	v, loc, err := d.locate(row, column)
	if err != nil {
		return 0, err
	}
	if d.Nil.IsNil(v) {
		return 0, nil
	}
	return d.Number.Decode(v, loc)
}

// DecodeBool decodes the named column as a bool.
func (d Decoder) DecodeBool(row Row, column string) (bool, error) {
	v, loc, err := d.locate(row, column)
	if err != nil {
		return false, err
	}
	if d.Nil.IsNil(v) {
		return false, nil
	}
	return d.Bool.Decode(v, loc)
}

// DecodeDate decodes the named column as a time.Time.
func (d Decoder) DecodeDate(row Row, column string) (t interface{}, err error) {
	v, loc, err := d.locate(row, column)
	if err != nil {
		return nil, err
	}
	if d.Nil.IsNil(v) {
		return nil, nil
	}
	return d.Date.Decode(v, loc)
}

// MappedKeys returns row's headers run through d.Key's strategy, in
// order, used when a caller wants struct-field-style names instead of
// raw header spellings.
func (d Decoder) MappedKeys(row Row) []string {
	mapped := make([]string, len(row.Headers))
	for i, h := range row.Headers {
		mapped[i] = d.Key.Map(h)
	}
	return mapped
}

// FlattenRow routes row's header/value pairs through d.Nested.
func (d Decoder) FlattenRow(row Row) (map[string]interface{}, error) {
	flat := make(map[string]string, len(row.Headers))
	for i, h := range row.Headers {
		flat[h] = row.Values[i]
	}
	return d.Nested.Flatten(flat)
}
