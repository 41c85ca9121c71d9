package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"module", KwModule, true},
		{"struct", KwStruct, true},
		{"Sequence", KwSequence, true},
		{"AnyClass", KwAnyClass, true},
		{"varuint62", KwVarUInt62, true},
		{"sequence", 0, false}, // keywords are case-sensitive
		{"anyclass", 0, false},
		{"myStruct", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		kind, ok := LookupKeyword(tc.ident)
		if ok != tc.ok {
			t.Errorf("LookupKeyword(%q): expected ok=%v, got %v", tc.ident, tc.ok, ok)
			continue
		}
		if ok && kind != tc.kind {
			t.Errorf("LookupKeyword(%q): expected %v, got %v", tc.ident, tc.kind, kind)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !(Token{Kind: KwModule}).IsKeyword() {
		t.Error("expected 'module' to be a keyword")
	}
	if !(Token{Kind: KwUnchecked}).IsKeyword() {
		t.Error("expected 'unchecked' to be a keyword")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("expected identifier not to be a keyword")
	}
	if !(Token{Kind: KwBool}).IsPrimitive() || !(Token{Kind: KwAnyClass}).IsPrimitive() {
		t.Error("expected bool/AnyClass to be primitives")
	}
	if (Token{Kind: KwSequence}).IsPrimitive() {
		t.Error("expected Sequence not to be a primitive")
	}
}

func TestDocText(t *testing.T) {
	tok := Token{
		Kind: KwStruct,
		Leading: []Trivia{
			{Kind: TriviaDocLine, Text: "/// First line."},
			{Kind: TriviaNewline, Text: "\n"},
			{Kind: TriviaDocLine, Text: "///second"},
			{Kind: TriviaLineComment, Text: "// not doc"},
		},
	}
	lines := tok.DocText()
	if len(lines) != 2 {
		t.Fatalf("expected 2 doc lines, got %d", len(lines))
	}
	if lines[0] != "First line." {
		t.Errorf("expected sentinel and one space stripped, got %q", lines[0])
	}
	if lines[1] != "second" {
		t.Errorf("expected %q, got %q", "second", lines[1])
	}
}
