package preproc

import (
	"strings"
	"testing"

	"slicec/internal/diag"
	"slicec/internal/source"
)

// surviving compiles src with the given defines and concatenates the
// surviving block text.
func surviving(t *testing.T, src string, defines []string) (string, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.slice", []byte(src))
	bag := diag.NewBag(50)
	p := New(fs.Get(id), defines, diag.BagReporter{Bag: bag})
	blocks := p.Run()

	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(fs.Snippet(b.Span))
	}
	return sb.String(), bag
}

func TestNoDirectivesPassThrough(t *testing.T) {
	src := "module A\nstruct B {}\n"
	got, bag := surviving(t, src, nil)
	if got != src {
		t.Errorf("expected full text to survive, got %q", got)
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestIfElifElseSelection(t *testing.T) {
	src := "#define A\n#if A\nmodule M1;\n#elif B\nmodule M2;\n#else\nmodule M3;\n#endif\n"
	got, bag := surviving(t, src, nil)
	if got != "module M1;\n" {
		t.Errorf("expected the #if branch, got %q", got)
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestElifBranchSelected(t *testing.T) {
	src := "#if A\nmodule M1;\n#elif B\nmodule M2;\n#else\nmodule M3;\n#endif\n"
	got, _ := surviving(t, src, []string{"B"})
	if got != "module M2;\n" {
		t.Errorf("expected the #elif branch, got %q", got)
	}
}

func TestElseBranchSelected(t *testing.T) {
	src := "#if A\nmodule M1;\n#elif B\nmodule M2;\n#else\nmodule M3;\n#endif\n"
	got, _ := surviving(t, src, nil)
	if got != "module M3;\n" {
		t.Errorf("expected the #else branch, got %q", got)
	}
}

func TestFirstTrueBranchWins(t *testing.T) {
	src := "#if A\nfirst\n#elif B\nsecond\n#endif\n"
	got, _ := surviving(t, src, []string{"A", "B"})
	if got != "first\n" {
		t.Errorf("expected only the first true branch, got %q", got)
	}
}

func TestDefineUndefineIdempotent(t *testing.T) {
	src := "#define X\n#define X\n#undefine X\n#undefine X\n#if X\ndead\n#endif\nalive\n"
	got, bag := surviving(t, src, nil)
	if got != "alive\n" {
		t.Errorf("expected %q, got %q", "alive\n", got)
	}
	if bag.Len() != 0 {
		t.Errorf("expected redefinition and re-removal to be silent, got %d diagnostics", bag.Len())
	}
}

func TestUndefSpelling(t *testing.T) {
	src := "#undef X\n#if X\ndead\n#endif\nalive\n"
	got, bag := surviving(t, src, []string{"X"})
	if got != "alive\n" {
		t.Errorf("expected #undef to remove the symbol, got %q", got)
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestSkippedBranchDoesNotMutate(t *testing.T) {
	src := "#if A\n#define X\n#endif\n#if X\ndead\n#endif\nalive\n"
	got, _ := surviving(t, src, nil)
	if got != "alive\n" {
		t.Errorf("expected #define in a skipped branch to have no effect, got %q", got)
	}
}

func TestNestedConditionals(t *testing.T) {
	src := "#define A\n#if A\nouter\n#if B\ninner-dead\n#else\ninner-else\n#endif\ntail\n#endif\n"
	got, _ := surviving(t, src, nil)
	if got != "outer\ninner-else\ntail\n" {
		t.Errorf("unexpected surviving text %q", got)
	}
}

func TestNestedInsideDeadBranch(t *testing.T) {
	src := "#if A\n#if B\nx\n#else\ny\n#endif\n#endif\nalive\n"
	got, _ := surviving(t, src, []string{"B"})
	if got != "alive\n" {
		t.Errorf("expected nothing from the dead outer branch, got %q", got)
	}
}

func TestExpressionOperators(t *testing.T) {
	cases := []struct {
		expr    string
		defines []string
		want    bool
	}{
		{"A && B", []string{"A", "B"}, true},
		{"A && B", []string{"A"}, false},
		{"A || B", []string{"B"}, true},
		{"!A", nil, true},
		{"!A", []string{"A"}, false},
		{"!(A && B)", []string{"A"}, true},
		{"(A || B) && C", []string{"A", "C"}, true},
		// equal precedence, left associative: A || B && C == (A || B) && C
		{"A || B && C", []string{"A"}, false},
		{"A || B && C", []string{"A", "C"}, true},
	}
	for _, tc := range cases {
		src := "#if " + tc.expr + "\nyes\n#endif\n"
		got, bag := surviving(t, src, tc.defines)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tc.expr)
			continue
		}
		if (got == "yes\n") != tc.want {
			t.Errorf("%q with %v: expected %v, got %q", tc.expr, tc.defines, tc.want, got)
		}
	}
}

func TestMalformedDirectiveRecovery(t *testing.T) {
	src := "#define\nalive\n"
	got, bag := surviving(t, src, nil)
	if got != "alive\n" {
		t.Errorf("expected the failed directive to vanish, got %q", got)
	}
	if !bag.HasErrors() {
		t.Error("expected a Syntax diagnostic")
	}
	if bag.Items()[0].Code != diag.Syntax {
		t.Errorf("expected code Syntax, got %s", bag.Items()[0].Code)
	}
}

func TestUnknownDirective(t *testing.T) {
	_, bag := surviving(t, "#frobnicate\n", nil)
	if !bag.HasErrors() {
		t.Error("expected an error for an unknown directive")
	}
}

func TestBadExpressionSymbol(t *testing.T) {
	_, bag := surviving(t, "#if A & B\nx\n#endif\n", nil)
	if !bag.HasErrors() {
		t.Fatal("expected an error for '&'")
	}
	if !strings.Contains(bag.Items()[0].Message, "&&") {
		t.Errorf("expected a suggestion for '&&', got %q", bag.Items()[0].Message)
	}
}

func TestDanglingEndifAndElse(t *testing.T) {
	_, bag := surviving(t, "#endif\n", nil)
	if !bag.HasErrors() {
		t.Error("expected an error for a dangling #endif")
	}
	_, bag = surviving(t, "#else\n", nil)
	if !bag.HasErrors() {
		t.Error("expected an error for a dangling #else")
	}
}

func TestUnterminatedIf(t *testing.T) {
	_, bag := surviving(t, "#if A\nx\n", nil)
	if !bag.HasErrors() {
		t.Error("expected an error for an unterminated #if")
	}
}

func TestBlockSpansAreOriginal(t *testing.T) {
	src := "#if A\nskipped\n#endif\nkept\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.slice", []byte(src))
	bag := diag.NewBag(10)
	p := New(fs.Get(id), nil, diag.BagReporter{Bag: bag})
	blocks := p.Run()

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	start, _ := fs.Resolve(blocks[0].Span)
	if start.Line != 4 {
		t.Errorf("expected the kept block to start on line 4, got %d", start.Line)
	}
}
