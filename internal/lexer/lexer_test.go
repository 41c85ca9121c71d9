package lexer

import (
	"testing"

	"slicec/internal/diag"
	"slicec/internal/preproc"
	"slicec/internal/source"
	"slicec/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.slice", []byte(src))
	bag := diag.NewBag(50)
	lx := NewWholeFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
		if len(toks) > 1000 {
			t.Fatal("lexer did not terminate")
		}
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, bag := lexAll(t, "module MyModule struct myStruct Sequence sequence")
	want := []token.Kind{token.KwModule, token.Ident, token.KwStruct, token.Ident, token.KwSequence, token.Ident}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v (%q)", i, want[i], got[i], toks[i].Text)
		}
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestPunctuation(t *testing.T) {
	toks, bag := lexAll(t, "( ) [ ] [[ ]] { } < > , ; : :: = ? -> -")
	want := []token.Kind{
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.LLBracket, token.RRBracket, token.LBrace, token.RBrace,
		token.LAngle, token.RAngle, token.Comma, token.Semicolon,
		token.Colon, token.ColonColon, token.Equals, token.Question,
		token.Arrow, token.Minus,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestIntegerLiterals(t *testing.T) {
	toks, bag := lexAll(t, "0 42 2147483647")
	for i, tok := range toks {
		if tok.Kind != token.IntLit {
			t.Errorf("token %d: expected IntLit, got %v", i, tok.Kind)
		}
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}

	toks, bag = lexAll(t, "12ab")
	if len(toks) != 1 || toks[0].Kind != token.Invalid {
		t.Errorf("expected one invalid token for '12ab', got %v", kinds(toks))
	}
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for '12ab'")
	}
}

func TestStringLiterals(t *testing.T) {
	toks, bag := lexAll(t, `"hello" "a\nb" "q\"q" "\x41" "\u{1F600}"`)
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d: %v", bag.Len(), bag.Items())
	}
	for i, tok := range toks {
		if tok.Kind != token.StringLit {
			t.Errorf("token %d: expected StringLit, got %v", i, tok.Kind)
		}
	}

	got, err := DecodeString(toks[1].Text)
	if err != nil || got != "a\nb" {
		t.Errorf("DecodeString: expected %q, got %q (%v)", "a\nb", got, err)
	}
	got, err = DecodeString(toks[3].Text)
	if err != nil || got != "A" {
		t.Errorf("DecodeString \\x41: expected %q, got %q (%v)", "A", got, err)
	}
	got, err = DecodeString(toks[4].Text)
	if err != nil || got != "\U0001F600" {
		t.Errorf("DecodeString \\u{1F600}: got %q (%v)", got, err)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, `"no closing quote`)
	if !bag.HasErrors() {
		t.Error("expected an unterminated string diagnostic")
	}
}

func TestBadEscape(t *testing.T) {
	_, bag := lexAll(t, `"\q"`)
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for an unknown escape")
	}
}

func TestDocCommentTrivia(t *testing.T) {
	toks, _ := lexAll(t, "/// Greets the world.\n/// Second line.\nstruct Greeter {}")
	if toks[0].Kind != token.KwStruct {
		t.Fatalf("expected struct, got %v", toks[0].Kind)
	}
	lines := toks[0].DocText()
	if len(lines) != 2 {
		t.Fatalf("expected 2 doc lines, got %d", len(lines))
	}
	if lines[0] != "Greets the world." || lines[1] != "Second line." {
		t.Errorf("unexpected doc lines %q", lines)
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks, bag := lexAll(t, "// line\n/* block\nstill block */ struct")
	if len(toks) != 1 || toks[0].Kind != token.KwStruct {
		t.Fatalf("expected only 'struct', got %v", kinds(toks))
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	if !bag.HasErrors() {
		t.Error("expected an unterminated block comment diagnostic")
	}
}

func TestLexerOverBlocks(t *testing.T) {
	// Simulates the preprocessor dropping the middle of the file.
	src := "module A\nSKIPPED\nstruct B"
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.slice", []byte(src))
	file := fs.Get(id)

	blocks := []preproc.SourceBlock{
		{Span: source.Span{File: id, Start: 0, End: 9}},
		{Span: source.Span{File: id, Start: 17, End: 25}},
	}
	lx := New(file, blocks, Options{})

	var got []token.Kind
	var texts []string
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		got = append(got, tok.Kind)
		texts = append(texts, tok.Text)
	}
	want := []token.Kind{token.KwModule, token.Ident, token.KwStruct, token.Ident}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v (%v)", want, got, texts)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if texts[3] != "B" {
		t.Errorf("expected last ident 'B', got %q", texts[3])
	}
}
