package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slicec/internal/diagfmt"
	"slicec/internal/driver"
	"slicec/internal/project"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.slice...",
	Short: "Compile Slice files and report diagnostics",
	Long: `Compile parses, resolves, and validates Slice definition files.
Without arguments, inputs are taken from a slice.toml project manifest.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runCompile,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addCompileFlags(compileCmd)
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("reference", "R", nil, "reference files (resolved but not emitted)")
	cmd.Flags().Bool("warn-as-error", false, "treat warnings as errors")
	cmd.Flags().StringArray("allow", nil, "diagnostic codes to suppress")
	cmd.Flags().String("output-dir", "", "output directory for generated code")
	cmd.Flags().String("diagnostic-format", "human", "diagnostic output format (human|json)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args)
	if err != nil {
		return err
	}

	state := driver.CompileFromOptions(opts)

	switch opts.DiagnosticFormat {
	case driver.FormatJSON:
		if err := diagfmt.JSON(os.Stderr, state.Bag, state.FileSet, diagfmt.JSONOpts{}); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(os.Stderr, state.Bag, state.FileSet, diagfmt.PrettyOpts{
			Color:     !opts.DisableColor && useColor(cmd),
			ShowNotes: true,
		})
	}

	if state.HasErrors() {
		os.Exit(exitCompileError)
	}
	return nil
}

// buildOptions merges the project manifest (if any) under the explicit
// command-line values.
func buildOptions(cmd *cobra.Command, args []string) (driver.Options, error) {
	var opts driver.Options

	if len(args) == 0 {
		manifestPath, ok, err := project.Find(".")
		if err != nil {
			return opts, err
		}
		if !ok {
			return opts, fmt.Errorf("no input files and no slice.toml manifest found")
		}
		manifest, err := project.Load(manifestPath)
		if err != nil {
			return opts, err
		}
		opts = manifest.Options()
	} else {
		opts.Sources = args
	}

	flags := cmd.Flags()
	if refs, err := flags.GetStringArray("reference"); err == nil && len(refs) > 0 {
		opts.References = append(opts.References, refs...)
	}
	if defs, err := cmd.Root().PersistentFlags().GetStringArray("define"); err == nil {
		opts.Definitions = append(opts.Definitions, defs...)
	}
	if warnAsError, err := flags.GetBool("warn-as-error"); err == nil && warnAsError {
		opts.WarnAsError = true
	}
	if allow, err := flags.GetStringArray("allow"); err == nil {
		opts.Allow = append(opts.Allow, allow...)
	}
	if outputDir, err := flags.GetString("output-dir"); err == nil && outputDir != "" {
		opts.OutputDir = outputDir
	}
	if format, err := flags.GetString("diagnostic-format"); err == nil {
		switch format {
		case "human", "":
			opts.DiagnosticFormat = driver.FormatHuman
		case "json":
			opts.DiagnosticFormat = driver.FormatJSON
		default:
			return opts, fmt.Errorf("unknown diagnostic format '%s'", format)
		}
	}
	if maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil {
		opts.MaxDiagnostics = maxDiags
	}
	if colorFlag, err := cmd.Root().PersistentFlags().GetString("color"); err == nil && colorFlag == "off" {
		opts.DisableColor = true
	}
	return opts, nil
}
