package recognize

import (
	"reflect"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs", "a\t\tb   c", "a b c"},
		{"box noise line", "a\n-----\nb", "a\n\nb"},
		{"trim", "  a  ", "a"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildRawLines(t *testing.T) {
	got := BuildRawLines([]string{"ACME", "  ", "", "TOTAL $8.70"})
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	want0 := got[0]
	if want0.Text != "ACME" || want0.Index != 0 || want0.TotalLines != 2 {
		t.Fatalf("line 0 = %+v", want0)
	}
	want1 := got[1]
	if want1.Text != "TOTAL $8.70" || want1.Index != 1 || want1.TotalLines != 2 {
		t.Fatalf("line 1 = %+v", want1)
	}
	if got[0].Position() != 0 || got[1].Position() != 0.5 {
		t.Fatalf("positions = %v, %v", got[0].Position(), got[1].Position())
	}
}

func TestBuildRawLinesEmpty(t *testing.T) {
	if got := BuildRawLines([]string{" ", ""}); got != nil && len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}

func TestJoinLines(t *testing.T) {
	lines := BuildRawLines([]string{"a", "b"})
	if got := JoinLines(lines); got != "a\nb" {
		t.Fatalf("JoinLines = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\n\n b \nc")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines = %v, want %v", got, want)
	}
}
