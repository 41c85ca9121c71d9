package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"slicec/internal/diag"
	"slicec/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.slice", []byte("module M {\n    struct S { f: Missing }\n}\n"))
	bag := diag.NewBag(10)
	// the span of "Missing" on line 2
	start := uint32(strings.Index("module M {\n    struct S { f: Missing }\n}\n", "Missing"))
	bag.Add(diag.NewError(diag.DoesNotExist, source.Span{File: id, Start: start, End: start + 7},
		"no definition named 'Missing' exists in this scope"))
	bag.Sort()
	return bag, fs, id
}

func TestJSONShape(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}

	var records []DiagnosticJSON
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Severity != "error" {
		t.Errorf("expected severity 'error', got %q", r.Severity)
	}
	if r.ErrorCode != "DoesNotExist" {
		t.Errorf("expected error_code DoesNotExist, got %q", r.ErrorCode)
	}
	if r.Span == nil {
		t.Fatal("expected a span")
	}
	if r.Span.File != "demo.slice" {
		t.Errorf("unexpected file %q", r.Span.File)
	}
	if r.Span.Start[0] != 2 {
		t.Errorf("expected the span to start on line 2, got %d", r.Span.Start[0])
	}
	if r.Notes == nil {
		t.Error("notes must serialize as an array, not null")
	}
}

func TestJSONSkipsAllowed(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.slice", []byte("module m {}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevAllowed, diag.StyleWarning,
		source.Span{File: id, Start: 7, End: 8}, "demoted"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected an empty array, got %q", buf.String())
	}
}

func TestPrettyOutput(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"error [DoesNotExist]",
		"demo.slice:2:19",
		"struct S { f: Missing }",
		"^~~~~~",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrettySuppressesAllowed(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.slice", []byte("module m {}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevAllowed, diag.StyleWarning,
		source.Span{File: id, Start: 7, End: 8}, "demoted"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.slice", []byte("module M { struct A {} struct A {} }\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.Redefinition, source.Span{File: id, Start: 30, End: 31},
		"redefinition of 'M::A'").
		WithNote(source.Span{File: id, Start: 18, End: 19}, "'M::A' was previously defined here"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "= note: 'M::A' was previously defined here") {
		t.Errorf("expected the note to be rendered, got:\n%s", buf.String())
	}
}
