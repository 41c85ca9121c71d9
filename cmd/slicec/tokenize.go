package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slicec/internal/diagfmt"
	"slicec/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:           "tokenize [flags] file.slice",
	Short:         "Tokenize a Slice source file",
	Long:          `Tokenize preprocesses and lexes a Slice file, printing its significant tokens.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runTokenize,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	definitions, err := cmd.Root().PersistentFlags().GetStringArray("define")
	if err != nil {
		return fmt.Errorf("failed to get define flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	result, err := driver.Tokenize(args[0], definitions, maxDiagnostics)
	if err != nil {
		return err
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			ShowNotes: true,
		})
	}

	for _, tok := range result.Tokens {
		start, _ := result.FileSet.Resolve(tok.Span)
		fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}

	if result.Bag.HasErrors() {
		os.Exit(exitCompileError)
	}
	return nil
}
