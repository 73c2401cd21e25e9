package decode

import "testing"

func TestDecoderDecodeNumber(t *testing.T) {
	row := Row{Headers: []string{"amount"}, Values: []string{"42.5"}}
	d := NewDecoder(1)
	got, err := d.DecodeNumber(row, "amount")
	if err != nil {
		t.Fatalf("DecodeNumber() error = %v", err)
	}
	if got != 42.5 {
		t.Errorf("DecodeNumber() = %v, want 42.5", got)
	}
}

func TestDecoderDecodeNumberMissingKey(t *testing.T) {
	row := Row{Headers: []string{"amount"}, Values: []string{"42.5"}}
	d := NewDecoder(1)
	_, err := d.DecodeNumber(row, "amnt")
	if err == nil {
		t.Fatal("expected KeyNotFound error")
	}
	var knf *KeyNotFound
	if kn, ok := err.(*KeyNotFound); ok {
		knf = kn
	} else {
		t.Fatalf("error is %T, want *KeyNotFound", err)
	}
	if knf.Key != "amnt" {
		t.Errorf("Key = %q, want amnt", knf.Key)
	}
}

func TestDecoderDecodeBool(t *testing.T) {
	row := Row{Headers: []string{"active"}, Values: []string{"yes"}}
	d := NewDecoder(1)
	got, err := d.DecodeBool(row, "active")
	if err != nil {
		t.Fatalf("DecodeBool() error = %v", err)
	}
	if !got {
		t.Error("DecodeBool() = false, want true")
	}
}

func TestDecoderNilHandling(t *testing.T) {
	row := Row{Headers: []string{"amount"}, Values: []string{""}}
	d := NewDecoder(1)
	got, err := d.DecodeNumber(row, "amount")
	if err != nil {
		t.Fatalf("DecodeNumber() error = %v", err)
	}
	if got != 0 {
		t.Errorf("DecodeNumber() = %v, want 0 for nil field", got)
	}
}

func TestNumberFlexibleUSFormat(t *testing.T) {
	d := FlexibleNumberDecoder()
	got, err := d.Decode("$1,234.56", Location{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != 1234.56 {
		t.Errorf("Decode() = %v, want 1234.56", got)
	}
}

func TestNumberFlexibleEUFormat(t *testing.T) {
	d := FlexibleNumberDecoder()
	got, err := d.Decode("1.234,56", Location{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != 1234.56 {
		t.Errorf("Decode() = %v, want 1234.56", got)
	}
}

func TestBoolFlexibleForeignWords(t *testing.T) {
	d := FlexibleBoolDecoder()
	for _, word := range []string{"oui", "ja", "是"} {
		got, err := d.Decode(word, Location{})
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", word, err)
		}
		if !got {
			t.Errorf("Decode(%q) = false, want true", word)
		}
	}
	got, err := d.Decode("non", Location{})
	if err != nil {
		t.Fatalf("Decode(non) error = %v", err)
	}
	if got {
		t.Error("Decode(non) = true, want false")
	}
}

func TestDateFlexibleTable(t *testing.T) {
	d := FlexibleDateDecoder()
	tt, err := d.Decode("2024-03-15", Location{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tt.Year() != 2024 || tt.Month() != 3 || tt.Day() != 15 {
		t.Errorf("Decode() = %v, want 2024-03-15", tt)
	}
}

func TestDateFlexibleWithHint(t *testing.T) {
	d := FlexibleWithHintDecoder("02-Jan-2006")
	tt, err := d.Decode("15-Mar-2024", Location{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tt.Year() != 2024 {
		t.Errorf("Decode() = %v, want year 2024", tt)
	}
}

func TestKeyDecoderFromSnakeCase(t *testing.T) {
	d := KeyDecoder{Strategy: KeyFromSnakeCase}
	if got := d.Map("first_name"); got != "firstName" {
		t.Errorf("Map() = %q, want firstName", got)
	}
}

func TestKeyDecoderFromKebabCase(t *testing.T) {
	d := KeyDecoder{Strategy: KeyFromKebabCase}
	if got := d.Map("first-name"); got != "firstName" {
		t.Errorf("Map() = %q, want firstName", got)
	}
}

func TestKeyDecoderFromPascalCase(t *testing.T) {
	d := KeyDecoder{Strategy: KeyFromPascalCase}
	if got := d.Map("FirstName"); got != "firstName" {
		t.Errorf("Map() = %q, want firstName", got)
	}
}

func TestNestedFlatten(t *testing.T) {
	d := FlattenDecoder(".")
	row := map[string]string{
		"name":        "Ada",
		"addr.street": "Main St",
		"addr.city":   "London",
	}
	flat, err := d.Flatten(row)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if flat["name"] != "Ada" {
		t.Errorf("name = %v, want Ada", flat["name"])
	}
	addr, ok := flat["addr"].(map[string]interface{})
	if !ok {
		t.Fatalf("addr is %T, want map[string]interface{}", flat["addr"])
	}
	if addr["street"] != "Main St" || addr["city"] != "London" {
		t.Errorf("addr = %+v, want street/city populated", addr)
	}
}

func TestNestedErrorStrategyRejectsDottedHeaders(t *testing.T) {
	d := NestedDecoder{Strategy: NestedError, Separator: "."}
	_, err := d.Flatten(map[string]string{"addr.street": "Main St"})
	if err == nil {
		t.Fatal("expected error for dotted header under NestedError strategy")
	}
}

func TestKeyNotFoundSuggestion(t *testing.T) {
	err := &KeyNotFound{Key: "Name", Location: Location{Row: 1}, AvailableKeys: []string{"name", "age"}}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
	if want := `case differs: "name"`; !contains(msg, want) {
		t.Errorf("Error() = %q, want it to contain %q", msg, want)
	}
}

func TestLevenshteinSuggestsCloseKey(t *testing.T) {
	err := &KeyNotFound{Key: "naem", Location: Location{Row: 1}, AvailableKeys: []string{"name", "age"}}
	got := err.Error()
	want := "did you mean \"name\"?"
	if !contains(got, want) {
		t.Errorf("Error() = %q, want it to contain %q", got, want)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
