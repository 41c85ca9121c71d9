package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"slicec/internal/version"
)

// Exit codes: 0 success, 1 compilation error, 2 argument/usage error.
const (
	exitOK           = 0
	exitCompileError = 1
	exitUsageError   = 2
)

var rootCmd = &cobra.Command{
	Use:           "slicec [flags] file.slice...",
	Short:         "Slice interface definition language compiler",
	Long:          `slicec compiles Slice definition files into a validated AST for code generators.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runCompile,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to report (0 = default)")
	rootCmd.PersistentFlags().StringArrayP("define", "D", nil, "preprocessor definitions")

	addCompileFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(exitUsageError)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal state of stderr.
func useColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func printError(err error) {
	os.Stderr.WriteString("slicec: " + err.Error() + "\n")
}
