package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slicec/internal/diagfmt"
	"slicec/internal/driver"
)

var preprocessCmd = &cobra.Command{
	Use:           "preprocess [flags] file.slice",
	Short:         "Run only the preprocessor over a Slice source file",
	Long:          `Preprocess resolves conditional compilation directives and prints the surviving text.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runPreprocess,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runPreprocess(cmd *cobra.Command, args []string) error {
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

	result, err := driver.Preprocess(args[0], definitions, maxDiagnostics)
	if err != nil {
		return err
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			ShowNotes: true,
		})
	}

	for _, block := range result.Blocks {
		os.Stdout.WriteString(result.FileSet.Snippet(block.Span))
	}

	if result.Bag.HasErrors() {
		os.Exit(exitCompileError)
	}
	return nil
}
