package diagfmt

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color     bool
	Width     int // maximum rendered source-line width, 0 = unbounded
	ShowNotes bool
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	Max int // truncate output (not the bag) after this many records, 0 = all
}
