package driver

// DiagnosticFormat selects how the CLI renders diagnostics.
type DiagnosticFormat uint8

const (
	FormatHuman DiagnosticFormat = iota
	FormatJSON
)

// Options are the recognized compilation options. The library ignores
// unknown concerns; rejecting unknown flags is the command line's job.
type Options struct {
	// Sources are the input files to compile and emit.
	Sources []string
	// References are parsed and validated but skipped by generators.
	References []string
	// Definitions seed the preprocessor symbol table.
	Definitions []string
	// WarnAsError promotes warnings to errors for exit-code purposes.
	WarnAsError bool
	// Allow demotes the listed diagnostic codes to Allowed.
	Allow []string
	// DisableColor forces plain output.
	DisableColor bool
	// DiagnosticFormat selects human or JSON output.
	DiagnosticFormat DiagnosticFormat
	// OutputDir is consumed by downstream generators; only its shape is
	// validated here.
	OutputDir string
	// MaxDiagnostics bounds the bag; 0 means the default limit.
	MaxDiagnostics int
}
