package command

import (
	"errors"
	"testing"
)

func intp(n int) *int { return &n }

func TestParseRange(t *testing.T) {
	tests := []struct {
		in        string
		wantStart int
		wantEnd   *int
		wantErr   bool
	}{
		{"..", 0, nil, true},
		{"..2", 0, intp(2), false},
		{"3..", 3, nil, false},
		{"3..7", 3, intp(7), false},
		{"4..4", 4, intp(4), false},
		{"7..3", 0, nil, true},
		{"3", 0, nil, true},
		{"a..3", 0, nil, true},
		{"-1..3", 0, nil, true},
		{"1..+3", 0, nil, true},
		{"", 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRange(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("ParseRange(%q) error = %v, want ErrParse", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.in, err)
			}
			if r.Start != tt.wantStart {
				t.Errorf("Start = %d, want %d", r.Start, tt.wantStart)
			}
			switch {
			case tt.wantEnd == nil && r.End != nil:
				t.Errorf("End = %d, want unbounded", *r.End)
			case tt.wantEnd != nil && (r.End == nil || *r.End != *tt.wantEnd):
				t.Errorf("End = %v, want %d", r.End, *tt.wantEnd)
			}
			if r.String() != tt.in {
				t.Errorf("String() = %q, want %q", r.String(), tt.in)
			}
		})
	}
}

func TestNewRange(t *testing.T) {
	if _, err := NewRange(5, intp(2)); !errors.Is(err, ErrParse) {
		t.Fatalf("NewRange(5, 2) error = %v, want ErrParse", err)
	}
	if _, err := NewRange(-1, nil); err == nil {
		t.Fatal("NewRange(-1) should fail")
	}
	if _, err := NewRange(2, nil); err != nil {
		t.Fatalf("NewRange(2, nil): %v", err)
	}
}

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		n         int
		wantStart int
		wantEnd   int
	}{
		{"inside", Range{1, intp(3)}, 10, 1, 3},
		{"end past n", Range{1, intp(30)}, 10, 1, 10},
		{"unbounded", Range{4, nil}, 10, 4, 10},
		{"start past n", Range{12, nil}, 10, 10, 10},
		{"empty sequence", Range{0, intp(2)}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.r.Clamp(tt.n)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("Clamp(%d) = [%d,%d), want [%d,%d)", tt.n, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
