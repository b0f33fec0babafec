package render

import (
	"regexp"
	"testing"

	"github.com/TimelordUK/lview/internal/command"
	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/tokenize"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestRender_Text(t *testing.T) {
	r := NewTokenRenderer(config.DefaultConfig())

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "INFO ready 42", 80, "INFO ready 42"},
		{"truncated", "INFO ready 42", 7, "INFO re"},
		{"tabs expanded", "a\tb", 80, "a   b"},
		{"tab cut", "ab\tcd", 3, "ab "},
		{"wide runes", "日本語", 4, "日本"},
		{"zero width", "abc", 0, ""},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plain(r.Render(tt.text, nil, MarkPreview, tt.width)); got != tt.want {
				t.Fatalf("Render(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestRender_RegionsKeepText(t *testing.T) {
	r := NewTokenRenderer(config.DefaultConfig())
	text := `level=ERROR msg="disk full" n=3`
	regions := []command.Region{{Start: 2, End: 9}, {Start: 20, End: 200}}

	if got := plain(r.Render(text, regions, MarkMatch, 100)); got != text {
		t.Fatalf("Render = %q, want %q", got, text)
	}
}

func TestSegments(t *testing.T) {
	text := "héllo world"
	spans := []tokenize.Span{{Start: 0, End: len(text), Tag: tokenize.TagNone}}
	// 2 is inside the two-byte 'é' and is moved to the next rune
	segs := segments(text, spans, []command.Region{{Start: 2, End: 6}})

	var got []string
	var marked []bool
	for _, s := range segs {
		got = append(got, text[s.start:s.end])
		marked = append(marked, s.marked)
	}
	want := []string{"hé", "llo", " world"}
	wantMarked := []bool{false, true, false}
	if len(got) != len(want) {
		t.Fatalf("segments = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] || marked[i] != wantMarked[i] {
			t.Fatalf("segment %d = %q marked %v, want %q marked %v", i, got[i], marked[i], want[i], wantMarked[i])
		}
	}
}

func TestRuneStart(t *testing.T) {
	text := "aé"
	tests := map[int]int{-1: 0, 0: 0, 1: 1, 2: 3, 3: 3, 10: 3}
	for in, want := range tests {
		if got := runeStart(text, in); got != want {
			t.Errorf("runeStart(%d) = %d, want %d", in, got, want)
		}
	}
}
