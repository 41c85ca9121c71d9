package driver

import (
	"slicec/internal/diag"
	"slicec/internal/lexer"
	"slicec/internal/preproc"
	"slicec/internal/source"
	"slicec/internal/token"
)

// TokenizeResult is the output of the tokenize debug surface.
type TokenizeResult struct {
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize preprocesses and lexes a single file, returning every
// significant token. Used by the 'tokenize' command.
func Tokenize(path string, definitions []string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path, 0)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	blocks := preproc.New(file, definitions, reporter).Run()
	lx := lexer.New(file, blocks, lexer.Options{Reporter: reporter})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	bag.Sort()

	return &TokenizeResult{FileSet: fs, Tokens: tokens, Bag: bag}, nil
}

// PreprocessResult is the output of the preprocess debug surface.
type PreprocessResult struct {
	FileSet *source.FileSet
	Blocks  []preproc.SourceBlock
	Bag     *diag.Bag
}

// Preprocess runs only the preprocessor over a single file, returning the
// surviving source blocks. Used by the 'preprocess' command.
func Preprocess(path string, definitions []string, maxDiagnostics int) (*PreprocessResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path, 0)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	blocks := preproc.New(file, definitions, diag.BagReporter{Bag: bag}).Run()
	bag.Sort()

	return &PreprocessResult{FileSet: fs, Blocks: blocks, Bag: bag}, nil
}
