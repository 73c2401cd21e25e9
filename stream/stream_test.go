package stream

import (
	"context"
	"strings"
	"testing"
)

func TestProcessBasic(t *testing.T) {
	data := "a,b\nc,d\ne,f\n"
	p := New(Config{BatchSize: 2, ReadSize: 4})

	var got [][]string
	err := p.Process(context.Background(), strings.NewReader(data), func(batch [][]string) error {
		got = append(got, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(got), got)
	}
	if got[0][0] != "a" || got[2][1] != "f" {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestProcessQuotedFieldSpanningReads(t *testing.T) {
	data := "a,\"multi\nline\nvalue\"\nc,d\n"
	p := New(Config{BatchSize: 10, ReadSize: 3})

	var got [][]string
	err := p.Process(context.Background(), strings.NewReader(data), func(batch [][]string) error {
		got = append(got, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(got), got)
	}
	if got[0][1] != "multi\nline\nvalue" {
		t.Errorf("quoted multiline field mangled: %q", got[0][1])
	}
}

func TestProcessHandlerError(t *testing.T) {
	data := "a,b\nc,d\n"
	p := New(Config{BatchSize: 1})

	wantErr := errTest{}
	err := p.Process(context.Background(), strings.NewReader(data), func(batch [][]string) error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("Process() error = %v, want %v", err, wantErr)
	}
}

type errTest struct{}

func (errTest) Error() string { return "handler failed" }

func TestFindSafeBoundary(t *testing.T) {
	boundary, parity := findSafeBoundary([]byte("a,b\nc,d\n"), false)
	if boundary != 8 {
		t.Errorf("boundary = %d, want 8", boundary)
	}
	if parity {
		t.Error("parity should be false (even) at a full-record boundary")
	}

	boundary, _ = findSafeBoundary([]byte("a,\"unterminated\nstill going"), false)
	if boundary != -1 {
		t.Errorf("boundary = %d, want -1 for unterminated quote", boundary)
	}
}
