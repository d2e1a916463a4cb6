package cmd

import (
	"fmt"

	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
	"github.com/spf13/cobra"
)

var definitionCmd = &cobra.Command{
	Use:   "definition [file] [line:column]",
	Short: "Go to the definition of the name at a source position",
	Args:  cobra.ExactArgs(2),
	RunE:  runDefinition,
}

func init() {
	rootCmd.AddCommand(definitionCmd)
}

func runDefinition(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args[:1])
	if err != nil {
		return err
	}
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	engine, err := autosplit.New()
	if err != nil {
		return err
	}
	program, err := engine.Compile(src, filename)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	span, ok := program.GoToDefinition(pos)
	if !ok {
		return fmt.Errorf("no definition found at %d:%d", pos.Line, pos.Column)
	}

	fmt.Printf("%d:%d..%d:%d\n", span.From.Line, span.From.Column, span.To.Line, span.To.Column)
	return nil
}
