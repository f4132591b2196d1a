package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "stladder",
	Short: "Structured Text to ladder diagram compiler",
	Long: `stladder compiles a subset of IEC 61131-3 Structured Text into a
ladder diagram intermediate representation and can run the resulting
program under a deterministic cyclic interpreter.

  - BOOL/INT/DINT/UINT/REAL/TIME scalars and VAR/VAR_INPUT/VAR_OUTPUT/
    VAR_IN_OUT/VAR_TEMP/VAR_GLOBAL declarations
  - TON/TOF/TP/CTU/CTD/CTUD/R_TRIG/F_TRIG/SR/RS function blocks
  - IF/ELSIF/ELSE, CASE/OF/ELSE, FOR/WHILE/REPEAT control flow`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
