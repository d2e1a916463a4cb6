package cmd

import (
	"fmt"
	"os"

	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexEvalExpr string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an autosplit file or expression",
	Long: `Tokenize (lex) an autosplit program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
autosplit source code is tokenized.

Examples:
  # Tokenize a script file
  autosplit lex game.asl

  # Tokenize inline code
  autosplit lex -e "state(\"game\") {}"

  # Show token positions (line:column)
  autosplit lex --show-pos game.asl`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	var src string

	if lexEvalExpr != "" {
		src = lexEvalExpr
	} else {
		s, _, err := readSource(args)
		if err != nil {
			return err
		}
		src = s
	}

	l := lex.New(src)
	tokenCount := 0
	for {
		tok, err := l.Next()
		if err != nil {
			return fmt.Errorf("lexing failed: %w", err)
		}

		tokenCount++
		printToken(tok)

		if tok.Kind == lex.EOF {
			break
		}
	}

	return nil
}

func printToken(tok lex.Token) {
	output := fmt.Sprintf("%-20s", tok.Kind.String())
	if tok.Text != "" {
		output += fmt.Sprintf(" %q", tok.Text)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Fprintln(os.Stdout, output)
}
