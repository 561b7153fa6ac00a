package review

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single line no newline", "a", []string{"a"}},
		{"trailing newline dropped", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf normalized", "a\r\nb\r\n", []string{"a", "b"}},
		{"mixed endings", "a\r\nb\nc", []string{"a", "b", "c"}},
		{"interior blank kept", "a\n\nb", []string{"a", "", "b"}},
		{"lone newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLinesSymmetry(t *testing.T) {
	// CRLF and LF encodings of the same document must split identically,
	// otherwise every line would show as changed.
	lf := "one\ntwo\nthree\n"
	crlf := "one\r\ntwo\r\nthree\r\n"
	if hunks := ComputeHunks(SplitLines(lf), SplitLines(crlf)); len(hunks) != 0 {
		t.Errorf("CRLF vs LF produced %d hunks, want 0", len(hunks))
	}
}

func TestJoinLines(t *testing.T) {
	if got := JoinLines([]string{"a", "b"}); got != "a\nb" {
		t.Errorf("JoinLines = %q, want %q", got, "a\nb")
	}
	if got := JoinLines(nil); got != "" {
		t.Errorf("JoinLines(nil) = %q, want empty", got)
	}
}
