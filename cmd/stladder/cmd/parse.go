package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cerrors "github.com/stladder/stladder/internal/errors"
	"github.com/stladder/stladder/internal/parser"
)

var parseDumpVars bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Structured Text file and print its AST",
	Long: `Parse an IEC 61131-3 Structured Text file and print the resulting
abstract syntax tree in its textual form.`,
	Args: cobra.ExactArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpVars, "dump-vars", false, "list declared variable blocks before the statements")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	prog, errs := parser.Parse(string(data))
	if len(errs) > 0 {
		cerrs := make([]*cerrors.CompilerError, len(errs))
		for i, e := range errs {
			cerrs[i] = cerrors.NewCompilerError(e.Pos, e.Message, string(data), args[0])
		}
		fmt.Fprintln(os.Stderr, cerrors.FormatErrors(cerrs, false))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpVars {
		for _, blk := range prog.VarBlocks {
			fmt.Println(blk.String())
		}
	}

	for _, stmt := range prog.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}
