package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stladder/stladder/internal/ladder"
	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
)

var transformCmd = &cobra.Command{
	Use:   "transform <file>",
	Short: "Compile a Structured Text file to ladder diagram IR",
	Long: `Parse an IEC 61131-3 Structured Text file and lower it to the ladder
diagram intermediate representation, printing one line per rung.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	prog, errs := parser.Parse(string(data))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "parse error: %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	ir := transform.Transform(prog)

	if verbose {
		fmt.Printf("Variables: %d, Function blocks: %d, Rungs: %d\n---\n",
			len(ir.Variables), len(ir.FunctionBlocks), len(ir.Rungs))
	}

	for _, rung := range ir.Rungs {
		fmt.Printf("%3d: %s --> %s", rung.Index, formatNetwork(rung.InputNetwork), formatOutput(rung.Output))
		if rung.Comment != "" {
			fmt.Printf("  // %s", rung.Comment)
		}
		fmt.Println()
	}
	return nil
}

func formatNetwork(n ladder.ContactNetwork) string {
	switch net := n.(type) {
	case *ladder.True:
		return "TRUE"
	case *ladder.Contact:
		return fmt.Sprintf("[%s %s]", net.Kind, net.Variable)
	case *ladder.Comparator:
		return fmt.Sprintf("[%s %s %s]", net.LeftText, net.Op, net.RightText)
	case *ladder.Series:
		out := ""
		for i, c := range net.Children {
			if i > 0 {
				out += " & "
			}
			out += formatNetwork(c)
		}
		return out
	case *ladder.Parallel:
		out := "("
		for i, b := range net.Branches {
			if i > 0 {
				out += " | "
			}
			out += formatNetwork(b)
		}
		return out + ")"
	default:
		return "?"
	}
}

func formatOutput(o ladder.RungOutput) string {
	switch out := o.(type) {
	case *ladder.Coil:
		return fmt.Sprintf("COIL(%s %s)", out.Kind, out.Variable)
	case *ladder.Timer:
		return fmt.Sprintf("TIMER(%s %s PT=%s)", out.Kind, out.Instance, out.PresetText)
	case *ladder.Counter:
		return fmt.Sprintf("COUNTER(%s %s PV=%d)", out.Kind, out.Instance, out.PresetValue)
	case *ladder.Multi:
		res := "MULTI("
		for i, o2 := range out.Outputs {
			if i > 0 {
				res += ", "
			}
			res += formatOutput(o2)
		}
		return res + ")"
	default:
		return "?"
	}
}
