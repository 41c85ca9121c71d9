package diagfmt

import (
	"encoding/json"
	"io"

	"slicec/internal/diag"
	"slicec/internal/source"
)

// SpanJSON is the stable wire shape of a source span.
type SpanJSON struct {
	Start [2]uint32 `json:"start"` // [line, col]
	End   [2]uint32 `json:"end"`
	File  string    `json:"file"`
}

// NoteJSON is the stable wire shape of a diagnostic note.
type NoteJSON struct {
	Message string    `json:"message"`
	Span    *SpanJSON `json:"span,omitempty"`
}

// DiagnosticJSON is the stable wire shape of one diagnostic record.
type DiagnosticJSON struct {
	Message   string     `json:"message"`
	Severity  string     `json:"severity"`
	Span      *SpanJSON  `json:"span,omitempty"`
	Notes     []NoteJSON `json:"notes"`
	ErrorCode string     `json:"error_code"`
}

// JSON writes the diagnostics as a JSON array in bag order. The bag is
// expected to be sorted; Allowed-severity diagnostics are suppressed.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	records := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		if d.Severity == diag.SevAllowed {
			continue
		}
		if opts.Max > 0 && len(records) >= opts.Max {
			break
		}

		record := DiagnosticJSON{
			Message:   d.Message,
			Severity:  d.Severity.Label(),
			Span:      makeSpan(d.Primary, fs),
			Notes:     make([]NoteJSON, 0, len(d.Notes)),
			ErrorCode: d.Code.String(),
		}
		for _, note := range d.Notes {
			record.Notes = append(record.Notes, NoteJSON{
				Message: note.Msg,
				Span:    makeSpan(note.Span, fs),
			})
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

func makeSpan(sp source.Span, fs *source.FileSet) *SpanJSON {
	if fs == nil || sp.End == 0 || int(sp.File) >= fs.Len() {
		return nil
	}
	start, end := fs.Resolve(sp)
	return &SpanJSON{
		Start: [2]uint32{start.Line, start.Col},
		End:   [2]uint32{end.Line, end.Col},
		File:  fs.Get(sp.File).Path,
	}
}
