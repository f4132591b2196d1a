package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stladder/stladder/internal/lexer"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Structured Text file",
	Long: `Tokenize an IEC 61131-3 Structured Text file and print the resulting
tokens, one per line.

This is primarily useful for debugging the lexer.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func runLex(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	if verbose {
		fmt.Printf("Tokenizing: %s (%d bytes)\n---\n", args[0], len(data))
	}

	l := lexer.New(string(data))
	count := 0
	for {
		tok := l.NextToken()
		count++
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "lex error: %s\n", e.Error())
		}
		return fmt.Errorf("lexing found %d error(s)", len(errs))
	}

	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", count)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-14s]", tok.Type)
	}
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type)
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
