package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"slicec/internal/diag"
	"slicec/internal/source"
)

// Pretty renders diagnostics for humans. The bag is expected to be sorted.
// Each diagnostic prints as
//
//	error [Code]: message
//	 --> path:line:col
//	  |
//	N | source line
//	  |     ^~~~
//	  = note: ...
//
// Allowed-severity diagnostics are suppressed.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevAllowed {
			continue
		}
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	label := severityLabel(d.Severity, opts.Color)
	fmt.Fprintf(w, "%s [%s]: %s\n", label, d.Code.String(), d.Message)

	printSpan(w, d.Primary, fs, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  = note: %s\n", note.Msg)
			if note.Span.End > 0 {
				printSpan(w, note.Span, fs, opts)
			}
		}
	}
}

func printSpan(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return
	}
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	fmt.Fprintf(w, " --> %s:%d:%d\n", file.Path, start.Line, start.Col)

	line := file.GetLine(start.Line)
	if opts.Width > 0 {
		line = runewidth.Truncate(line, opts.Width, "…")
	}
	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(w, "%s |\n", pad)
	fmt.Fprintf(w, "%s | %s\n", gutter, line)

	underline := buildUnderline(line, start, end)
	fmt.Fprintf(w, "%s | %s\n", pad, underline)
}

// buildUnderline places a caret under the start column and tildes under the
// rest of the span on its first line. Widths follow the rendered glyphs so
// wide characters stay aligned.
func buildUnderline(line string, start, end source.LineCol) string {
	runes := []rune(line)
	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}

	prefixEnd := startCol - 1
	if prefixEnd > len(runes) {
		prefixEnd = len(runes)
	}
	prefixWidth := runewidth.StringWidth(string(runes[:prefixEnd]))

	spanLen := 1
	if end.Line == start.Line && int(end.Col) > startCol {
		spanLen = int(end.Col) - startCol
	} else if end.Line > start.Line {
		spanLen = len(runes) - prefixEnd
	}
	if spanLen < 1 {
		spanLen = 1
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", prefixWidth))
	sb.WriteString("^")
	if spanLen > 1 {
		sb.WriteString(strings.Repeat("~", spanLen-1))
	}
	return sb.String()
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.Label()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return label
	}
}
