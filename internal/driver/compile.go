package driver

import (
	"fmt"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/lexer"
	"slicec/internal/parser"
	"slicec/internal/preproc"
	"slicec/internal/scopes"
	"slicec/internal/sema"
	"slicec/internal/source"
)

// CompilationState is the result of one compilation: the AST, the scope
// table, the files, and every diagnostic collected along the way. A
// best-effort state is returned even when compilation fails.
type CompilationState struct {
	Builder *ast.Builder
	Table   *scopes.Table
	FileSet *source.FileSet
	Bag     *diag.Bag
	Options Options
}

// HasErrors reports whether the compilation failed, honouring WarnAsError.
func (cs *CompilationState) HasErrors() bool {
	if cs.Bag.HasErrors() {
		return true
	}
	if cs.Options.WarnAsError {
		for _, d := range cs.Bag.Items() {
			if d.Severity == diag.SevWarning {
				return true
			}
		}
	}
	return false
}

// CompileFromStrings compiles in-memory sources. Each source becomes a
// virtual file named string-N.slice, in order.
func CompileFromStrings(sources []string, opts Options) *CompilationState {
	fs := source.NewFileSet()
	for i, src := range sources {
		fs.AddVirtual(fmt.Sprintf("string-%d.slice", i), []byte(src))
	}
	return compile(fs, opts)
}

// CompileFromOptions loads the sources and references named by the options
// and compiles them. An I/O failure is fatal: it is surfaced as a single
// diagnostic and the state is returned before the preprocessor runs.
func CompileFromOptions(opts Options) *CompilationState {
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics(opts))

	if err := validateOutputDir(opts.OutputDir); err != nil {
		bag.Add(diag.NewError(diag.IO, source.Span{}, err.Error()))
		return &CompilationState{
			Builder: ast.NewBuilder(),
			Table:   nil,
			FileSet: fs,
			Bag:     bag,
			Options: opts,
		}
	}

	if err := loadAll(fs, opts); err != nil {
		bag.Add(diag.NewError(diag.IO, source.Span{}, err.Error()))
		return &CompilationState{
			Builder: ast.NewBuilder(),
			Table:   nil,
			FileSet: fs,
			Bag:     bag,
			Options: opts,
		}
	}

	return compile(fs, opts)
}

// loadAll reads every source and reference concurrently, then adds them to
// the set in option order so FileIDs and diagnostics stay deterministic.
func loadAll(fs *source.FileSet, opts Options) error {
	type loaded struct {
		path    string
		flags   source.FileFlags
		content []byte
	}
	files := make([]loaded, 0, len(opts.Sources)+len(opts.References))
	for _, path := range opts.Sources {
		files = append(files, loaded{path: path})
	}
	for _, path := range opts.References {
		files = append(files, loaded{path: path, flags: source.FileReference})
	}

	var g errgroup.Group
	for i := range files {
		i := i
		g.Go(func() error {
			content, err := os.ReadFile(files[i].path)
			if err != nil {
				return fmt.Errorf("failed to load '%s': %w", files[i].path, err)
			}
			files[i].content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range files {
		fs.AddNormalized(f.path, f.content, f.flags)
	}
	return nil
}

func validateOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // generators create it
		}
		return fmt.Errorf("cannot use output directory '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path '%s' exists and is not a directory", dir)
	}
	return nil
}

// compile runs the pipeline: preprocess and parse each file, build the
// scope table, patch type references, validate. Every stage keeps going
// after recoverable errors so one compile surfaces as much as possible.
func compile(fs *source.FileSet, opts Options) *CompilationState {
	bag := diag.NewBag(maxDiagnostics(opts))
	var reporter diag.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	if len(opts.Allow) > 0 {
		validateAllowList(opts.Allow, reporter)
		reporter = diag.NewAllowReporter(reporter, opts.Allow)
	}

	builder := ast.NewBuilder()
	for _, file := range fs.Files() {
		f := fs.Get(file.ID)
		blocks := preproc.New(f, opts.Definitions, reporter).Run()
		lx := lexer.New(f, blocks, lexer.Options{Reporter: reporter})
		parser.ParseFile(lx, builder, f.ID, parser.Options{Reporter: reporter})
	}

	table := scopes.Build(builder, reporter)
	scopes.Patch(builder, table, reporter)
	sema.Check(builder, table, reporter)

	bag.Sort()
	return &CompilationState{
		Builder: builder,
		Table:   table,
		FileSet: fs,
		Bag:     bag,
		Options: opts,
	}
}

func validateAllowList(allow []string, r diag.Reporter) {
	known := diag.KnownCodes()
	for _, code := range allow {
		if !slices.Contains(known, diag.Code(code)) {
			diag.ReportWarning(r, diag.InvalidAttribute, source.Span{},
				"'"+code+"' is not a known diagnostic code and cannot be allowed").Emit()
		}
	}
}

func maxDiagnostics(opts Options) int {
	if opts.MaxDiagnostics > 0 {
		return opts.MaxDiagnostics
	}
	return 1000
}
