// Package recordmap provides the generic serialization reflection layer
// for mapping decoded CSV rows onto user-defined struct slices, and
// back. It is the Go realization of spec.md §6's "user-type interface"
// external collaborator: callers that implement Marshaler/Unmarshaler
// bypass reflection entirely; everyone else falls through to the cached
// reflection path here.
//
// Grounded directly on internal/fastparser/typecache.go's
// cacheKey/structInfo/createSetter per-Kind setter-closure design and
// internal/fastparser/unmarshal.go's struct/[][]string dual fast paths.
// Since that package's cache is unexported internal machinery (and this
// is a standalone public package, not a sibling file in the same
// package), the cache is rebuilt here rather than imported — same
// shape, same caching strategy, exposed as public API.
package recordmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/csvcore/fastcsv/fastcsverr"
)

// Marshaler is implemented by types that serialize themselves to a CSV
// field-name -> value map, bypassing reflection.
type Marshaler interface {
	MarshalRecord() (map[string]string, error)
}

// Unmarshaler is implemented by types that populate themselves from a
// CSV field-name -> value map, bypassing reflection.
type Unmarshaler interface {
	UnmarshalRecord(map[string]string) error
}

type fieldSetter func(field reflect.Value, value string, rowIdx, colIdx int) error

type structInfo struct {
	fieldMap map[int]int
	setters  map[int]fieldSetter
}

type cacheKey struct {
	typ        reflect.Type
	headerHash string
}

var typeCache sync.Map // map[cacheKey]*structInfo

func getStructInfo(t reflect.Type, headers []string) *structInfo {
	key := cacheKey{typ: t, headerHash: strings.Join(headers, "\x00")}
	if cached, ok := typeCache.Load(key); ok {
		return cached.(*structInfo)
	}
	info := computeStructInfo(t, headers)
	typeCache.Store(key, info)
	return info
}

func computeStructInfo(t reflect.Type, headers []string) *structInfo {
	info := &structInfo{fieldMap: make(map[int]int), setters: make(map[int]fieldSetter)}

	nameToField := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("csv"); tag != "" && tag != "-" {
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				name = tag[:idx]
			} else {
				name = tag
			}
		}
		nameToField[strings.ToLower(name)] = i
	}

	for col, header := range headers {
		if fieldIdx, ok := nameToField[strings.ToLower(header)]; ok {
			info.fieldMap[col] = fieldIdx
			info.setters[col] = createSetter(t.Field(fieldIdx).Type)
		}
	}
	return info
}

func createSetter(fieldType reflect.Type) fieldSetter {
	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string, _, _ int) error {
			field.SetString(value)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return &fastcsverr.TypeMismatch{
					Expected: "int", Actual: value,
					Location: fastcsverr.Location{Row: rowIdx + 1, Column: strconv.Itoa(colIdx)},
				}
			}
			if field.OverflowInt(i) {
				return &fastcsverr.TypeMismatch{
					Expected: fieldType.String(), Actual: value,
					Location: fastcsverr.Location{Row: rowIdx + 1, Column: strconv.Itoa(colIdx)},
					Hint:     "value overflows destination type",
				}
			}
			field.SetInt(i)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return &fastcsverr.TypeMismatch{
					Expected: "float", Actual: value,
					Location: fastcsverr.Location{Row: rowIdx + 1, Column: strconv.Itoa(colIdx)},
				}
			}
			field.SetFloat(f)
			return nil
		}

	case reflect.Bool:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetBool(false)
				return nil
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return &fastcsverr.TypeMismatch{
					Expected: "bool", Actual: value,
					Location: fastcsverr.Location{Row: rowIdx + 1, Column: strconv.Itoa(colIdx)},
				}
			}
			field.SetBool(b)
			return nil
		}

	default:
		return func(field reflect.Value, _ string, rowIdx, colIdx int) error {
			return &fastcsverr.UnsupportedType{
				Type:     fieldType.String(),
				Location: fastcsverr.Location{Row: rowIdx + 1, Column: strconv.Itoa(colIdx)},
			}
		}
	}
}

// Decode populates dest, a pointer to a slice of structs, from rows
// using headers for column-to-field matching. Each struct type's field
// map is computed once per (type, header-set) pair and cached.
func Decode(headers []string, rows [][]string, dest interface{}) error {
	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Ptr || destVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("recordmap: dest must be a pointer to a slice, got %T", dest)
	}
	sliceVal := destVal.Elem()
	elemType := sliceVal.Type().Elem()

	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("recordmap: slice element must be a struct, got %s", elemType)
	}

	info := getStructInfo(elemType, headers)
	out := reflect.MakeSlice(sliceVal.Type(), 0, len(rows))

	for rowIdx, row := range rows {
		elem := reflect.New(elemType).Elem()
		if u, ok := elem.Addr().Interface().(Unmarshaler); ok {
			m := make(map[string]string, len(headers))
			for i, h := range headers {
				if i < len(row) {
					m[h] = row[i]
				}
			}
			if err := u.UnmarshalRecord(m); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
			continue
		}

		for col, value := range row {
			setter, ok := info.setters[col]
			if !ok {
				continue
			}
			fieldIdx := info.fieldMap[col]
			if err := setter(elem.Field(fieldIdx), value, rowIdx, col); err != nil {
				return err
			}
		}
		out = reflect.Append(out, elem)
	}

	sliceVal.Set(out)
	return nil
}

// Encode converts src, a slice of structs (or values implementing
// Marshaler), into a header row and [][]string rows, in struct-field
// declaration order (Marshaler values instead follow their own map's
// iteration, so callers needing stable order should return an
// explicitly ordered type or rely on the reflection path).
func Encode(src interface{}) (headers []string, rows [][]string, err error) {
	srcVal := reflect.ValueOf(src)
	if srcVal.Kind() != reflect.Slice {
		return nil, nil, fmt.Errorf("recordmap: src must be a slice, got %T", src)
	}
	if srcVal.Len() == 0 {
		return nil, nil, nil
	}

	elemType := srcVal.Index(0).Type()
	var fieldIndices []int
	if elemType.Kind() == reflect.Struct {
		headers, fieldIndices = structFieldNames(elemType)
	}

	rows = make([][]string, 0, srcVal.Len())
	for i := 0; i < srcVal.Len(); i++ {
		elem := srcVal.Index(i)
		if m, ok := elem.Interface().(Marshaler); ok {
			fields, mErr := m.MarshalRecord()
			if mErr != nil {
				return nil, nil, mErr
			}
			if headers == nil {
				headers = mapKeysInOrder(fields)
			}
			row := make([]string, len(headers))
			for j, h := range headers {
				row[j] = fields[h]
			}
			rows = append(rows, row)
			continue
		}

		row := make([]string, len(headers))
		for j, fieldIdx := range fieldIndices {
			row[j] = valueToString(elem.Field(fieldIdx))
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// structFieldNames returns the exported field names (respecting the
// csv tag) alongside their struct field indices, in declaration order.
func structFieldNames(t reflect.Type) (names []string, indices []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("csv"); tag != "" && tag != "-" {
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				name = tag[:idx]
			} else {
				name = tag
			}
		}
		names = append(names, name)
		indices = append(indices, i)
	}
	return names, indices
}

func mapKeysInOrder(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func valueToString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
