package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	if err := WriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("unexpected file contents: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "hello", width: 10, want: "hello"},
		{name: "cut", in: "hello world", width: 6, want: "hello…"},
		{name: "wide runes", in: "中文标题", width: 5, want: "中文…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "words", in: "one two three four", width: 9, want: "one two\nthree\nfour"},
		{name: "long word split", in: "abcdefghij", width: 4, want: "abcd\nefgh\nij"},
		{name: "keeps blank lines", in: "a\n\nb", width: 5, want: "a\n\nb"},
		{name: "no width", in: "as is", width: 0, want: "as is"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Wrap(tt.in, tt.width); got != tt.want {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	if got := FirstLine("  first line\nsecond"); got != "first line" {
		t.Fatalf("FirstLine = %q", got)
	}
}
