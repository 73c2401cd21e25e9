package decode

import "strings"

// BoolStrategy controls which tokens a field decodes to true/false.
type BoolStrategy int

const (
	// BoolStandard recognizes true/false, yes/no, 1/0, t/f, on/off.
	BoolStandard BoolStrategy = iota
	// BoolFlexible additionally recognizes common non-English words.
	BoolFlexible
	// BoolCustom uses caller-supplied true/false token sets.
	BoolCustom
)

var standardTrue = map[string]struct{}{
	"true": {}, "1": {}, "yes": {}, "y": {}, "on": {}, "t": {},
}
var standardFalse = map[string]struct{}{
	"false": {}, "0": {}, "no": {}, "n": {}, "off": {}, "f": {},
}

// flexibleTrue/flexibleFalse extend the standard sets with words from
// several languages, per spec.md §4.4's "oui/non, ja/nein, si/no,
// да/нет, 是/否" enumeration. Grounded structurally on
// pkg/csv/converters.go's BoolConverter; the word lists themselves are
// new since no example repo has locale-aware boolean parsing.
var flexibleTrue = map[string]struct{}{
	"oui": {}, "ja": {}, "si": {}, "да": {}, "是": {}, "sí": {},
}
var flexibleFalse = map[string]struct{}{
	"non": {}, "nein": {}, "нет": {}, "否": {},
}

// BoolDecoder applies a BoolStrategy to a field value.
type BoolDecoder struct {
	Strategy BoolStrategy
	TrueSet  map[string]struct{}
	FalseSet map[string]struct{}
}

// StandardBoolDecoder returns the default BoolDecoder.
func StandardBoolDecoder() BoolDecoder {
	return BoolDecoder{Strategy: BoolStandard}
}

// FlexibleBoolDecoder returns a BoolDecoder with the extended word lists.
func FlexibleBoolDecoder() BoolDecoder {
	return BoolDecoder{Strategy: BoolFlexible}
}

// CustomBoolDecoder returns a BoolDecoder using exactly the given sets.
func CustomBoolDecoder(trueWords, falseWords []string) BoolDecoder {
	return BoolDecoder{
		Strategy: BoolCustom,
		TrueSet:  toSet(trueWords),
		FalseSet: toSet(falseWords),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Decode converts value to bool, or returns a *TypeMismatch at loc.
func (d BoolDecoder) Decode(value string, loc Location) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))

	switch d.Strategy {
	case BoolCustom:
		if _, ok := d.TrueSet[v]; ok {
			return true, nil
		}
		if _, ok := d.FalseSet[v]; ok {
			return false, nil
		}
	case BoolFlexible:
		if _, ok := standardTrue[v]; ok {
			return true, nil
		}
		if _, ok := flexibleTrue[v]; ok {
			return true, nil
		}
		if _, ok := standardFalse[v]; ok {
			return false, nil
		}
		if _, ok := flexibleFalse[v]; ok {
			return false, nil
		}
	default:
		if _, ok := standardTrue[v]; ok {
			return true, nil
		}
		if _, ok := standardFalse[v]; ok {
			return false, nil
		}
	}

	return false, &TypeMismatch{Expected: "bool", Actual: value, Location: loc}
}
