package bom

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"none", []byte("a,b\n1,2"), None},
		{"utf8", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...), UTF8},
		{"utf16le", append([]byte{0xFF, 0xFE}, []byte("a\x00,\x00")...), UTF16LE},
		{"utf16be", append([]byte{0xFE, 0xFF}, []byte("\x00a\x00,")...), UTF16BE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStripUTF8(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2")...)
	out, err := Strip(data)
	if err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	if string(out) != "a,b\n1,2" {
		t.Errorf("Strip() = %q, want %q", out, "a,b\n1,2")
	}
}

func TestStripNoBOM(t *testing.T) {
	data := []byte("a,b\n1,2")
	out, err := Strip(data)
	if err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	if string(out) != "a,b\n1,2" {
		t.Errorf("Strip() = %q, want unchanged", out)
	}
}
