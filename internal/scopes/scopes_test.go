package scopes

import (
	"testing"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/lexer"
	"slicec/internal/parser"
	"slicec/internal/preproc"
	"slicec/internal/source"
)

// compileSources parses every source, builds the table, and patches.
func compileSources(t *testing.T, sources ...string) (*ast.Builder, *Table, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder()

	for i, src := range sources {
		id := fs.AddVirtual("src"+string(rune('0'+i))+".slice", []byte(src))
		file := fs.Get(id)
		blocks := preproc.New(file, nil, reporter).Run()
		lx := lexer.New(file, blocks, lexer.Options{Reporter: reporter})
		parser.ParseFile(lx, builder, id, parser.Options{Reporter: reporter})
	}

	table := Build(builder, reporter)
	Patch(builder, table, reporter)
	return builder, table, bag
}

// fieldType returns the patched target of the named field's type.
func fieldType(t *testing.T, b *ast.Builder, structFQN, fieldName string) (ast.DefID, *ast.TypeRef) {
	t.Helper()
	for i := range b.Structs.Slice() {
		s := &b.Structs.Slice()[i]
		if s.FQN() != structFQN {
			continue
		}
		for _, fieldID := range s.Fields {
			field := b.Fields.Get(uint32(fieldID))
			if field.Name.Value != fieldName {
				continue
			}
			ref := b.TypeRefs.Get(uint32(field.Type))
			return ref.Target, ref
		}
	}
	t.Fatalf("field %s.%s not found", structFQN, fieldName)
	return ast.NoDef, nil
}

// Spec scenario 1: module merging and relative resolution across files.
func TestModuleMergingAcrossFiles(t *testing.T) {
	file1 := `
module Module1;

struct MyStruct { value: int32 }
struct Time { hours: uint8, minutes: uint8 }
interface Clock {
    time() -> Time;
}
`
	file2 := `
module Module2 {
    struct BaseStruct { id: int32 }
    module Outer {
        struct OuterStruct { id: int32 }
        module Inner {
            struct ScopeTest {
                s1: BaseStruct
                s2: OuterStruct
            }
        }
    }
}
`
	file3 := `
module Module3 {
    struct Foo {
        base: Module2::BaseStruct
        clock: ::Module1::Clock
    }
}
`
	b, table, bag := compileSources(t, file1, file2, file3)
	if bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", bag.Items())
	}

	if got := b.Structs.Len(); got != 6 {
		t.Errorf("expected 6 structs, got %d", got)
	}
	if got := b.Interfaces.Len(); got != 1 {
		t.Errorf("expected 1 interface, got %d", got)
	}

	// Module3::Foo.clock resolves to Module1::Clock through the global ref
	target, _ := fieldType(t, b, "Module3::Foo", "clock")
	if target.Kind != ast.KindInterface {
		t.Fatalf("expected clock to resolve to an interface, got %v", target.Kind)
	}
	if b.DeclOf(target).FQN() != "Module1::Clock" {
		t.Errorf("expected Module1::Clock, got %q", b.DeclOf(target).FQN())
	}

	// ScopeTest.s1 walks outward to Module2::BaseStruct
	target, _ = fieldType(t, b, "Module2::Outer::Inner::ScopeTest", "s1")
	if b.DeclOf(target).FQN() != "Module2::BaseStruct" {
		t.Errorf("expected Module2::BaseStruct, got %q", b.DeclOf(target).FQN())
	}
	target, _ = fieldType(t, b, "Module2::Outer::Inner::ScopeTest", "s2")
	if b.DeclOf(target).FQN() != "Module2::Outer::OuterStruct" {
		t.Errorf("expected Module2::Outer::OuterStruct, got %q", b.DeclOf(target).FQN())
	}

	// cross-file resolution into a merged module namespace
	target, _ = fieldType(t, b, "Module3::Foo", "base")
	if b.DeclOf(target).FQN() != "Module2::BaseStruct" {
		t.Errorf("expected Module2::BaseStruct, got %q", b.DeclOf(target).FQN())
	}

	if _, ok := table.Lookup("Module2::Outer::Inner"); !ok {
		t.Error("expected the nested module itself to be addressable")
	}
}

// Spec scenario 5: a globally qualified reference under a shadowed name.
func TestGlobalReferenceUnderShadowing(t *testing.T) {
	src := `
module A {
    struct B { value: int32 }
    module C {
        struct B { value: int32 }
        struct U {
            x: ::A::B
            y: B
        }
    }
}
`
	b, _, bag := compileSources(t, src)
	if bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", bag.Items())
	}

	target, _ := fieldType(t, b, "A::C::U", "x")
	if b.DeclOf(target).FQN() != "A::B" {
		t.Errorf("expected x to resolve to the outer A::B, got %q", b.DeclOf(target).FQN())
	}
	target, _ = fieldType(t, b, "A::C::U", "y")
	if b.DeclOf(target).FQN() != "A::C::B" {
		t.Errorf("expected y to resolve to the inner A::C::B, got %q", b.DeclOf(target).FQN())
	}
}

func TestDoesNotExist(t *testing.T) {
	_, _, bag := compileSources(t, "module M { struct S { f: Missing } }\n")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the unresolved reference")
	}
	d := bag.Items()[0]
	if d.Code != diag.DoesNotExist {
		t.Errorf("expected DoesNotExist, got %s", d.Code)
	}
}

func TestRedefinitionKeepsFirst(t *testing.T) {
	b, table, bag := compileSources(t,
		"module M { struct Thing { a: int32 } }\n",
		"module M { struct Thing { b: int32 } }\n")
	if !bag.HasErrors() {
		t.Fatal("expected a Redefinition diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.Redefinition {
		t.Errorf("expected Redefinition, got %s", d.Code)
	}
	if len(d.Notes) != 1 {
		t.Errorf("expected a note pointing at the first definition")
	}

	def, ok := table.Lookup("M::Thing")
	if !ok {
		t.Fatal("expected M::Thing to stay resolvable")
	}
	// the first definition wins
	s := b.Structs.Get(def.Index)
	if len(s.Fields) != 1 || b.Fields.Get(uint32(s.Fields[0])).Name.Value != "a" {
		t.Error("expected the first definition to be kept")
	}
}

func TestCaseInsensitiveCollision(t *testing.T) {
	_, _, bag := compileSources(t, "module M { struct Thing { a: int32 } struct thing { b: int32 } }\n")
	foundRedef := false
	for _, d := range bag.Items() {
		if d.Code == diag.Redefinition {
			foundRedef = true
		}
	}
	if !foundRedef {
		t.Error("expected names differing only in case to collide")
	}
}

func TestModuleIsNotAType(t *testing.T) {
	_, _, bag := compileSources(t, "module M { module Sub { } struct S { f: Sub } }\n")
	if !bag.HasErrors() {
		t.Fatal("expected an error for using a module as a type")
	}
	if bag.Items()[0].Code != diag.DoesNotExist {
		t.Errorf("expected DoesNotExist, got %s", bag.Items()[0].Code)
	}
}

func TestAliasResolvesToItself(t *testing.T) {
	b, _, bag := compileSources(t, `
module M {
    struct Real { value: int32 }
    type Alias = Real;
    struct User { f: Alias }
}
`)
	if bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", bag.Items())
	}
	target, _ := fieldType(t, b, "M::User", "f")
	if target.Kind != ast.KindAlias {
		t.Errorf("expected the patcher to keep the alias transparent, got %v", target.Kind)
	}
}

func TestPatchedRefsInvariant(t *testing.T) {
	b, _, bag := compileSources(t, `
module Inventory {
    struct Item { name: string }
    struct Box { items: Sequence<Item> }
}
`)
	if bag.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", bag.Items())
	}
	for i := range b.TypeRefs.Slice() {
		ref := b.TypeRefs.Get(uint32(i + 1))
		if ref.NeedsPatching() {
			t.Errorf("type ref %d left unpatched: %+v", i+1, ref)
		}
	}
}
