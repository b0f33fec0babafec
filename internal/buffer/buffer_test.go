package buffer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const sample = "1 delete me\n2 keep me\n\n3 delete me\n4 keep me\n"

// expectedLen recomputes the length invariant from scratch
func expectedLen(t *testing.T, b *Buffer) int {
	t.Helper()
	n, count := 0, 0
	if err := b.Each(func(_ int, l *Line) bool {
		n += l.Len()
		count++
		return true
	}); err != nil {
		t.Fatalf("Each: %v", err)
	}
	if count > 0 {
		n += count - 1
	}
	return n
}

func texts(t *testing.T, b *Buffer) []string {
	t.Helper()
	var out []string
	for i := 0; i < b.LineCount(); i++ {
		out = append(out, b.LineText(i))
	}
	return out
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines []string
		wantLen   int
	}{
		{"empty", "", nil, 0},
		{"single newline", "\n", []string{""}, 0},
		{"no trailing newline", "a\nbb", []string{"a", "bb"}, 4},
		{"trailing newline", "a\nbb\n", []string{"a", "bb"}, 4},
		{"crlf", "a\r\nbb\r\n", []string{"a", "bb"}, 4},
		{"sample", sample, []string{"1 delete me", "2 keep me", "", "3 delete me", "4 keep me"}, 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromText(tt.input)
			if got := texts(t, b); fmt.Sprint(got) != fmt.Sprint(tt.wantLines) || len(got) != len(tt.wantLines) {
				t.Fatalf("lines = %q, want %q", got, tt.wantLines)
			}
			if b.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", b.Len(), tt.wantLen)
			}
			if b.Dirty() {
				t.Fatal("fresh buffer should not be dirty")
			}
		})
	}
}

func TestAppend_StartsNewGroupWhenFull(t *testing.T) {
	b := New()
	for i := 0; i < GroupCapacity*2+5; i++ {
		b.Append(NewLine([]byte(fmt.Sprintf("line %d", i)), StatusUnmodified))
	}
	if b.Groups() != 3 {
		t.Fatalf("Groups() = %d, want 3", b.Groups())
	}
	if b.LineCount() != GroupCapacity*2+5 {
		t.Fatalf("LineCount() = %d, want %d", b.LineCount(), GroupCapacity*2+5)
	}
	if got := b.LineText(GroupCapacity + 1); got != fmt.Sprintf("line %d", GroupCapacity+1) {
		t.Fatalf("LineText = %q", got)
	}
	if b.Len() != expectedLen(t, b) {
		t.Fatalf("Len() = %d, want %d", b.Len(), expectedLen(t, b))
	}
}

func TestAppend_CompressesFullGroups(t *testing.T) {
	b := New()
	b.SetCompression(true)
	for i := 0; i < GroupCapacity+1; i++ {
		b.Append(NewLine([]byte(fmt.Sprintf("entry %d", i)), StatusUnmodified))
	}
	if !b.groups[0].IsCompressed() {
		t.Fatal("first full group should be compressed")
	}
	if b.groups[1].IsCompressed() {
		t.Fatal("group being filled should stay decompressed")
	}
	wantLen := b.Len()

	// reading a line from a compressed group decodes it on demand
	if got := b.LineText(3); got != "entry 3" {
		t.Fatalf("LineText(3) = %q, want %q", got, "entry 3")
	}
	if b.Len() != wantLen || expectedLen(t, b) != wantLen {
		t.Fatalf("Len() = %d, recomputed %d, want %d", b.Len(), expectedLen(t, b), wantLen)
	}
}

func TestMutations_KeepLengthInvariant(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *Buffer) int
		wantLines []string
	}{
		{
			name:      "drain head",
			mutate:    func(b *Buffer) int { return b.DrainLines(0, 2) },
			wantLines: []string{"", "3 delete me", "4 keep me"},
		},
		{
			name:      "drain everything",
			mutate:    func(b *Buffer) int { return b.DrainLines(0, 5) },
			wantLines: nil,
		},
		{
			name:      "drain empty range",
			mutate:    func(b *Buffer) int { return b.DrainLines(2, 2) },
			wantLines: []string{"1 delete me", "2 keep me", "", "3 delete me", "4 keep me"},
		},
		{
			name: "filter truncates",
			mutate: func(b *Buffer) int {
				return b.FilterLines(func(l *Line) { l.Truncate(1) })
			},
			wantLines: []string{"1", "2", "", "3", "4"},
		},
		{
			name: "retain",
			mutate: func(b *Buffer) int {
				return b.RetainLines(func(l *Line) bool { return bytes.Contains(l.Content, []byte("keep")) })
			},
			wantLines: []string{"2 keep me", "4 keep me"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromText(sample)
			got := tt.mutate(b)
			if got != b.Len() {
				t.Fatalf("returned length %d, Len() = %d", got, b.Len())
			}
			if b.Len() != expectedLen(t, b) {
				t.Fatalf("Len() = %d, recomputed %d", b.Len(), expectedLen(t, b))
			}
			if !b.Dirty() {
				t.Fatal("mutation should mark buffer dirty")
			}
			if lines := texts(t, b); fmt.Sprint(lines) != fmt.Sprint(tt.wantLines) || len(lines) != len(tt.wantLines) {
				t.Fatalf("lines = %q, want %q", lines, tt.wantLines)
			}
		})
	}
}

func TestMutations_AcrossCompressedGroups(t *testing.T) {
	b := New()
	b.SetCompression(true)
	for i := 0; i < GroupCapacity*3; i++ {
		b.Append(NewLine([]byte(fmt.Sprintf("%d", i)), StatusUnmodified))
	}
	b.Compress()

	b.RetainLines(func(l *Line) bool { return strings.HasSuffix(string(l.Content), "0") })
	if b.LineCount() != GroupCapacity*3/10 {
		t.Fatalf("LineCount() = %d, want %d", b.LineCount(), GroupCapacity*3/10)
	}
	if b.Len() != expectedLen(t, b) {
		t.Fatalf("Len() = %d, recomputed %d", b.Len(), expectedLen(t, b))
	}
	if got := b.LineText(1); got != "10" {
		t.Fatalf("LineText(1) = %q, want %q", got, "10")
	}
}

func TestMutations_UndecodableGroupIsKept(t *testing.T) {
	b := New()
	b.SetCompression(true)
	for i := 0; i < GroupCapacity+2; i++ {
		b.Append(NewLine([]byte("x"), StatusUnmodified))
	}
	b.SetCodec(failingCodec{failDecompress: true})

	b.RetainLines(func(*Line) bool { return false })
	if b.LineCount() != GroupCapacity {
		t.Fatalf("LineCount() = %d, want %d (compressed group untouched)", b.LineCount(), GroupCapacity)
	}
	if b.Len() != GroupCapacity*2-1 {
		t.Fatalf("Len() = %d, want %d", b.Len(), GroupCapacity*2-1)
	}
}

func TestLineText_OutOfRangePanics(t *testing.T) {
	b := FromText("a\nb")
	defer func() {
		if recover() == nil {
			t.Fatal("LineText(2) should panic")
		}
	}()
	b.LineText(2)
}

func TestEach_StopsEarly(t *testing.T) {
	b := FromText(sample)
	visited := 0
	if err := b.Each(func(i int, _ *Line) bool {
		visited++
		return i < 1
	}); err != nil {
		t.Fatalf("Each: %v", err)
	}
	if visited != 2 {
		t.Fatalf("visited %d lines, want 2", visited)
	}
}

func TestLine_MutationMarksDirty(t *testing.T) {
	l := NewLine([]byte("hello"), StatusUnmodified)
	l.Remove(0, 2)
	if l.Text() != "llo" || l.Status != StatusDirty {
		t.Fatalf("line = %q/%v, want llo/dirty", l.Text(), l.Status)
	}

	bare := NewLine([]byte("hello"), StatusNone)
	bare.Truncate(1)
	if bare.Status != StatusNone {
		t.Fatalf("Status = %v, want none", bare.Status)
	}
}

func TestSlot_TakeAndInstall(t *testing.T) {
	live := FromText(sample)
	live.SetPath("/tmp/app.log")
	s := NewSlot(live)

	taken := s.Take()
	if taken != live {
		t.Fatal("Take should return the live buffer")
	}
	if !s.Busy() {
		t.Fatal("slot should be busy after Take")
	}
	if s.Buffer() == live || s.Buffer().LineCount() != 0 {
		t.Fatal("slot should hold an empty placeholder while busy")
	}
	if s.Buffer().Path() != "/tmp/app.log" {
		t.Fatalf("placeholder path = %q", s.Buffer().Path())
	}
	if again := s.Take(); again != nil {
		t.Fatal("second Take should return nil while busy")
	}

	s.Install(taken)
	if s.Busy() || s.Buffer() != live {
		t.Fatal("Install should restore the buffer and clear busy")
	}
}
