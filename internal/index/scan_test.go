package index

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func collect(t *testing.T, r io.Reader) []string {
	t.Helper()
	var lines []string
	if err := Scan(r, func(line []byte) error {
		lines = append(lines, string(line))
		return nil
	}); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return lines
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single newline", "\n", []string{""}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines", "a\n\n\nb\n", []string{"a", "", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, strings.NewReader(tt.input))
			if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", tt.want) {
				t.Fatalf("Scan() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScan_LinesSpanningChunks(t *testing.T) {
	long := strings.Repeat("x", chunkSize+10)
	input := "short\n" + long + "\n" + long + "tail"

	got := collect(t, strings.NewReader(input))
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	if got[1] != long || got[2] != long+"tail" {
		t.Fatal("lines crossing chunk boundaries were not reassembled")
	}
}

func TestScan_OneByteReads(t *testing.T) {
	got := collect(t, iotest.OneByteReader(strings.NewReader("ab\ncd\n")))
	if len(got) != 2 || got[0] != "ab" || got[1] != "cd" {
		t.Fatalf("Scan() = %q, want [ab cd]", got)
	}
}

func TestScan_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Scan(strings.NewReader("a\nb\nc\n"), func([]byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("err = %v after %d calls, want stop after 1", err, calls)
	}
}

func TestScan_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	err := Scan(iotest.ErrReader(boom), func([]byte) error { return nil })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
