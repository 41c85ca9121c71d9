package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"slicec/internal/diag"
	"slicec/internal/diagfmt"
)

func TestCompileFromStringsHappyPath(t *testing.T) {
	state := CompileFromStrings([]string{`
module Greetings {
    struct Greeting { text: string }
    interface Greeter {
        greet(name: string) -> Greeting;
    }
}
`}, Options{})
	if state.Bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", state.Bag.Items())
	}
	if state.HasErrors() {
		t.Error("expected a successful compile")
	}
	if _, ok := state.Table.Lookup("Greetings::Greeting"); !ok {
		t.Error("expected the struct to be in the scope table")
	}
}

// Spec scenario 2: preprocessor selection end to end.
func TestCompilePreprocessorSelectsBranch(t *testing.T) {
	state := CompileFromStrings([]string{
		"#define A\n#if A\nmodule M1;\n#elif B\nmodule M2;\n#else\nmodule M3;\n#endif\n",
	}, Options{})
	if state.Bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", state.Bag.Items())
	}
	if _, ok := state.Table.Lookup("M1"); !ok {
		t.Error("expected module M1 to exist")
	}
	if _, ok := state.Table.Lookup("M2"); ok {
		t.Error("expected module M2 to be compiled out")
	}
	if _, ok := state.Table.Lookup("M3"); ok {
		t.Error("expected module M3 to be compiled out")
	}
}

func TestCompileDefinitionsOption(t *testing.T) {
	src := "#if FEATURE\nmodule WithFeature;\n#else\nmodule WithoutFeature;\n#endif\n"
	state := CompileFromStrings([]string{src}, Options{Definitions: []string{"FEATURE"}})
	if _, ok := state.Table.Lookup("WithFeature"); !ok {
		t.Error("expected the caller-supplied define to select the branch")
	}
}

func TestCompileBoundaryInputs(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty file", ""},
		{"comments only", "// nothing here\n/* at all */\n"},
		{"file-level module only", "module Empty;\n"},
	}
	for _, tc := range cases {
		state := CompileFromStrings([]string{tc.src}, Options{})
		if state.Bag.Len() != 0 {
			t.Errorf("%s: expected zero diagnostics, got %+v", tc.name, state.Bag.Items())
		}
	}
}

func TestCompileCollectsAcrossStages(t *testing.T) {
	// a syntax error in one file must not hide resolution errors in another
	state := CompileFromStrings([]string{
		"module A { struct Broken { ]]] } }\n",
		"module B { struct S { f: Missing } }\n",
	}, Options{})
	if !state.Bag.HasErrors() {
		t.Fatal("expected errors")
	}
	var codes []diag.Code
	for _, d := range state.Bag.Items() {
		codes = append(codes, d.Code)
	}
	hasSyntax, hasResolve := false, false
	for _, code := range codes {
		if code == diag.Syntax {
			hasSyntax = true
		}
		if code == diag.DoesNotExist {
			hasResolve = true
		}
	}
	if !hasSyntax || !hasResolve {
		t.Errorf("expected both Syntax and DoesNotExist, got %v", codes)
	}
}

func TestDiagnosticDeterminism(t *testing.T) {
	sources := []string{
		"module A { struct S { f: Missing, g: AlsoMissing } }\n",
		"module B { struct bad_name { F: int32 } }\n",
	}
	run := func() []byte {
		state := CompileFromStrings(sources, Options{})
		var buf bytes.Buffer
		if err := diagfmt.JSON(&buf, state.Bag, state.FileSet, diagfmt.JSONOpts{}); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	first := run()
	for i := 0; i < 5; i++ {
		if next := run(); !bytes.Equal(first, next) {
			t.Fatalf("diagnostic output differs between runs:\n%s\nvs\n%s", first, next)
		}
	}
}

func TestDiagnosticOrdering(t *testing.T) {
	state := CompileFromStrings([]string{
		"module A { struct S { late: Missing } }\nmodule A2 { struct Z { early: int32 } }\n",
	}, Options{})
	items := state.Bag.Items()
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Primary.File == cur.Primary.File && prev.Primary.Start > cur.Primary.Start {
			t.Errorf("diagnostics out of order: %d before %d", prev.Primary.Start, cur.Primary.Start)
		}
	}
}

func TestWarnAsError(t *testing.T) {
	src := "module M { struct S { BadStyle: int32 } }\n"

	state := CompileFromStrings([]string{src}, Options{})
	if state.HasErrors() {
		t.Fatal("a style warning alone must not fail the compile")
	}

	state = CompileFromStrings([]string{src}, Options{WarnAsError: true})
	if !state.HasErrors() {
		t.Fatal("warn-as-error must fail the compile")
	}
	// the label stays a warning
	for _, d := range state.Bag.Items() {
		if d.Code == diag.StyleWarning && d.Severity != diag.SevWarning {
			t.Error("warn-as-error must not relabel the diagnostic")
		}
	}
}

func TestAllowListDemotes(t *testing.T) {
	src := "module M { struct S { BadStyle: int32 } }\n"
	state := CompileFromStrings([]string{src}, Options{Allow: []string{"StyleWarning"}})
	if state.HasErrors() {
		t.Fatal("expected no errors")
	}

	found := false
	for _, d := range state.Bag.Items() {
		if d.Code == diag.StyleWarning {
			found = true
			if d.Severity != diag.SevAllowed {
				t.Errorf("expected the diagnostic to be demoted, got %s", d.Severity)
			}
		}
	}
	if !found {
		t.Error("expected the demoted diagnostic to be retained in the bag")
	}

	// demoted diagnostics disappear from output
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, state.Bag, state.FileSet, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("[]")) && bytes.Contains(buf.Bytes(), []byte("StyleWarning")) {
		t.Errorf("expected suppressed output, got %s", buf.String())
	}

	// warn-as-error does not resurrect allowed diagnostics
	state = CompileFromStrings([]string{src}, Options{Allow: []string{"StyleWarning"}, WarnAsError: true})
	if state.HasErrors() {
		t.Error("allowed diagnostics must not count for warn-as-error")
	}
}

func TestCompileFromOptionsLoadsFiles(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.slice")
	refPath := filepath.Join(dir, "ref.slice")
	if err := os.WriteFile(mainPath, []byte("module App { struct S { b: Lib::Base } }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(refPath, []byte("module Lib { struct Base { id: int32 } }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	state := CompileFromOptions(Options{Sources: []string{mainPath}, References: []string{refPath}})
	if state.Bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", state.Bag.Items())
	}

	ref, ok := state.FileSet.GetByPath(refPath)
	if !ok {
		t.Fatal("expected the reference file to be loaded")
	}
	if ref.IsSource() {
		t.Error("expected the reference file to be flagged as a reference")
	}
	main, _ := state.FileSet.GetByPath(mainPath)
	if !main.IsSource() {
		t.Error("expected the source file to be flagged as a source")
	}
}

func TestCompileFromOptionsMissingFile(t *testing.T) {
	state := CompileFromOptions(Options{Sources: []string{"/nonexistent/nope.slice"}})
	if !state.HasErrors() {
		t.Fatal("expected an error for the missing file")
	}
	if state.Bag.Len() != 1 || state.Bag.Items()[0].Code != diag.IO {
		t.Errorf("expected a single IO diagnostic, got %+v", state.Bag.Items())
	}
	// compilation terminated before the preprocessor: no AST
	if state.Builder.Modules.Len() != 0 {
		t.Error("expected no parsed modules")
	}
}

func TestTokenizeDebugSurface(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.slice")
	if err := os.WriteFile(path, []byte("#define X\n#if X\nmodule M;\n#endif\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	result, err := Tokenize(path, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Tokens) != 3 { // 'module' 'M' ';'
		t.Errorf("expected 3 tokens, got %d", len(result.Tokens))
	}
}

func TestPreprocessDebugSurface(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.slice")
	if err := os.WriteFile(path, []byte("#if X\ndead\n#endif\nalive\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	result, err := Preprocess(path, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Blocks) != 1 {
		t.Fatalf("expected 1 surviving block, got %d", len(result.Blocks))
	}
	if got := result.FileSet.Snippet(result.Blocks[0].Span); got != "alive\n" {
		t.Errorf("expected %q, got %q", "alive\n", got)
	}
}
