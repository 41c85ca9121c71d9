package source

import (
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.slice", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // offsets of the \n bytes
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if !file.IsSource() {
		t.Error("expected virtual file to count as a source file")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.slice", []byte("module A\nstruct B\n"))

	cases := []struct {
		name string
		span Span
		line uint32
		col  uint32
	}{
		{"first char", Span{File: id, Start: 0, End: 1}, 1, 1},
		{"mid first line", Span{File: id, Start: 7, End: 8}, 1, 8},
		{"start of second line", Span{File: id, Start: 9, End: 15}, 2, 1},
		{"end of second line", Span{File: id, Start: 16, End: 17}, 2, 8},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(tc.span)
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("%s: expected %d:%d, got %d:%d", tc.name, tc.line, tc.col, start.Line, start.Col)
		}
	}
}

func TestResolveCountsScalarValues(t *testing.T) {
	fs := NewFileSet()
	// "é" is two bytes but one scalar value; the column after it must be 2.
	content := []byte("é x")
	id := fs.AddVirtual("u.slice", content)

	start, _ := fs.Resolve(Span{File: id, Start: 3, End: 4}) // the 'x'
	if start.Line != 1 || start.Col != 3 {
		t.Errorf("expected 1:3, got %d:%d", start.Line, start.Col)
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.slice", []byte("\xEF\xBB\xBFmodule A\r\nstruct B\r\n"))
	file := fs.Get(id)

	if string(file.Content) != "module A\nstruct B\n" {
		t.Errorf("expected normalized content, got %q", string(file.Content))
	}
}

func TestSnippetAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.slice", []byte("module A\nstruct B {}\n"))

	if got := fs.Snippet(Span{File: id, Start: 9, End: 15}); got != "struct" {
		t.Errorf("Snippet: expected %q, got %q", "struct", got)
	}
	file := fs.Get(id)
	if got := file.GetLine(2); got != "struct B {}" {
		t.Errorf("GetLine(2): expected %q, got %q", "struct B {}", got)
	}
	if got := file.GetLine(5); got != "" {
		t.Errorf("GetLine(5): expected empty, got %q", got)
	}
}

func TestIsWithin(t *testing.T) {
	start := LineCol{Line: 2, Col: 3}
	end := LineCol{Line: 4, Col: 1}

	if !IsWithin(LineCol{Line: 3, Col: 1}, start, end) {
		t.Error("expected interior location to be within span")
	}
	if !IsWithin(start, start, end) || !IsWithin(end, start, end) {
		t.Error("expected boundary locations to be within span")
	}
	if IsWithin(LineCol{Line: 2, Col: 2}, start, end) {
		t.Error("expected location before start to be outside span")
	}
	if IsWithin(LineCol{Line: 4, Col: 2}, start, end) {
		t.Error("expected location after end to be outside span")
	}
}
