package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stladder/stladder/internal/interp"
	"github.com/stladder/stladder/internal/parser"
	"github.com/stladder/stladder/internal/transform"
)

var (
	runScans      int
	runScanTimeMs int64
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Load a Structured Text program and run it under the cyclic interpreter",
	Long: `Parse, transform and run an IEC 61131-3 Structured Text program under
the deterministic cyclic interpreter, executing the requested number of
scans and printing the final boolean, integer, real and time state.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runScans, "scans", 1, "number of scan cycles to execute")
	runCmd.Flags().Int64Var(&runScanTimeMs, "scan-time", 100, "scan period in milliseconds")
}

func runRun(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	prog, perrs := parser.Parse(string(data))
	if len(perrs) > 0 {
		for _, e := range perrs {
			fmt.Fprintf(os.Stderr, "parse error: %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	ir := transform.Transform(prog)
	it := interp.New(prog, ir)
	it.Load()
	it.SetScanTime(runScanTimeMs)
	it.Start()

	for i := 0; i < runScans; i++ {
		for _, rerr := range it.Tick() {
			fmt.Fprintf(os.Stderr, "runtime error: %s\n", rerr.Error())
		}
		if verbose {
			fmt.Printf("scan %d complete\n", i+1)
		}
	}

	store := it.Store()
	fmt.Printf("--- final state after %d scan(s) (status=%s) ---\n", runScans, store.Control.Status)
	store.Bools.Range(func(name string, v bool) {
		fmt.Printf("%s : BOOL = %v\n", name, v)
	})
	store.Ints.Range(func(name string, v int32) {
		fmt.Printf("%s : INT = %d\n", name, v)
	})
	store.Reals.Range(func(name string, v float64) {
		fmt.Printf("%s : REAL = %g\n", name, v)
	})
	store.Times.Range(func(name string, v int64) {
		fmt.Printf("%s : TIME = %dms\n", name, v)
	})
	return nil
}
