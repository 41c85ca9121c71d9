package preproc

import "slicec/internal/source"

// SourceBlock is a run of verbatim Slice source text that survived
// conditional compilation. Blocks keep their original spans so every later
// phase reports positions in the untouched file.
type SourceBlock struct {
	Span source.Span
}
