package diag

import (
	"testing"

	"slicec/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(StyleWarning, span(1, 5, 6), "second file"))
	bag.Add(NewError(Syntax, span(0, 20, 21), "later in first file"))
	bag.Add(NewError(DoesNotExist, span(0, 3, 4), "early in first file"))
	bag.Sort()

	items := bag.Items()
	if items[0].Code != DoesNotExist {
		t.Errorf("expected DoesNotExist first, got %s", items[0].Code)
	}
	if items[1].Code != Syntax {
		t.Errorf("expected Syntax second, got %s", items[1].Code)
	}
	if items[2].Code != StyleWarning {
		t.Errorf("expected StyleWarning last, got %s", items[2].Code)
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	build := func() *Bag {
		bag := NewBag(10)
		bag.Add(NewError(Syntax, span(0, 3, 4), "a"))
		bag.Add(NewWarning(StyleWarning, span(0, 3, 4), "b"))
		bag.Add(NewError(InvalidTag, span(0, 3, 4), "c"))
		bag.Sort()
		return bag
	}
	first, second := build(), build()
	for i := range first.Items() {
		if first.Items()[i].Code != second.Items()[i].Code {
			t.Fatalf("run mismatch at %d: %s vs %s", i, first.Items()[i].Code, second.Items()[i].Code)
		}
	}
	// same span: severity descends, so errors precede the warning
	if first.Items()[0].Severity != SevError || first.Items()[2].Severity != SevWarning {
		t.Errorf("expected errors before warnings at equal spans")
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(StyleWarning, span(0, 0, 1), "warn"))
	if bag.HasErrors() {
		t.Error("expected no errors with only a warning")
	}
	if !bag.HasWarnings() {
		t.Error("expected HasWarnings to be true")
	}
	bag.Add(NewError(Syntax, span(0, 0, 1), "err"))
	if !bag.HasErrors() {
		t.Error("expected HasErrors after adding an error")
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(Syntax, span(0, 0, 1), "1")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(Syntax, span(0, 1, 2), "2")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(Syntax, span(0, 2, 3), "3")) {
		t.Error("expected add beyond limit to be rejected")
	}
	if bag.Len() != 2 {
		t.Errorf("expected len 2, got %d", bag.Len())
	}
}

func TestAllowReporterDemotes(t *testing.T) {
	bag := NewBag(10)
	r := NewAllowReporter(BagReporter{Bag: bag}, []string{"StyleWarning"})

	r.Report(StyleWarning, SevWarning, span(0, 0, 1), "style", nil)
	r.Report(Syntax, SevError, span(0, 1, 2), "syntax", nil)

	items := bag.Items()
	if items[0].Severity != SevAllowed {
		t.Errorf("expected StyleWarning demoted to Allowed, got %s", items[0].Severity)
	}
	if items[1].Severity != SevError {
		t.Errorf("expected error kept as Error, got %s", items[1].Severity)
	}
	if bag.HasErrors() != true {
		t.Error("expected errors to survive the allow list")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	r.Report(Syntax, SevError, span(0, 0, 1), "dup", nil)
	r.Report(Syntax, SevError, span(0, 0, 1), "dup", nil)
	r.Report(Syntax, SevError, span(0, 0, 1), "different message", nil)

	if bag.Len() != 2 {
		t.Errorf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}
