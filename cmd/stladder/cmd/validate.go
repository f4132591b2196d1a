package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cerrors "github.com/stladder/stladder/internal/errors"
	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
	"github.com/stladder/stladder/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a Structured Text file's ladder IR",
	Long: `Parse and transform an IEC 61131-3 Structured Text file, then run the
ladder diagram validator and print its diagnostics.

Exits non-zero if any error-severity diagnostic is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	prog, perrs := parser.Parse(string(data))
	if len(perrs) > 0 {
		cerrs := make([]*cerrors.CompilerError, len(perrs))
		for i, e := range perrs {
			cerrs[i] = cerrors.NewCompilerError(e.Pos, e.Message, string(data), args[0])
		}
		fmt.Fprintln(os.Stderr, cerrors.FormatErrors(cerrs, false))
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	ir := transform.Transform(prog)
	result := validate.Validate(prog, ir)

	for _, d := range result.Errors {
		fmt.Printf("error [%s] rung %d %s: %s\n", d.Kind, d.Rung, d.Pos, d.Message)
	}
	for _, d := range result.Warnings {
		fmt.Printf("warning [%s] rung %d %s: %s\n", d.Kind, d.Rung, d.Pos, d.Message)
	}

	if verbose {
		fmt.Printf("---\n%d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
	}

	if !result.Success {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	return nil
}
