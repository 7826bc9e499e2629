package cmd

import (
	"fmt"
	"os"

	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a C/C++ source file and print the resulting tokens",
	Long: `Tokenize a C/C++ source file and print the resulting token stream.

This command is useful for debugging the lexer and understanding how
cppscan's own tokenizer splits a source file, without running any checks.

Example:
  cppscan lex --show-pos foo.c`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's line number")
}

func lexFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	src, err := lexer.DecodeSource(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	fs := fileset.New()
	fileID := fs.Add(path, src)

	l := lexer.New(src, fileID)
	list := l.Tokenize()

	for _, t := range list.All() {
		if showPos {
			fmt.Printf("%-12s %q @%d\n", t.Kind, t.Lexeme, t.Line)
		} else {
			fmt.Printf("%-12s %q\n", t.Kind, t.Lexeme)
		}
	}
	for _, e := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error: line %d: %s\n", e.Line, e.Message)
	}
	if len(l.Errors()) > 0 {
		return fmt.Errorf("found %d lexer error(s)", len(l.Errors()))
	}
	return nil
}
