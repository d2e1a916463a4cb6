package cmd

import (
	"fmt"

	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
	"github.com/spf13/cobra"
)

var referencesCmd = &cobra.Command{
	Use:   "references [file] [line:column]",
	Short: "Find all references to the name at a source position",
	Args:  cobra.ExactArgs(2),
	RunE:  runReferences,
}

func init() {
	rootCmd.AddCommand(referencesCmd)
}

func runReferences(_ *cobra.Command, args []string) error {
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

	spans, ok := program.FindAllReferences(pos)
	if !ok {
		return fmt.Errorf("no references found at %d:%d", pos.Line, pos.Column)
	}

	for _, span := range spans {
		fmt.Printf("%d:%d..%d:%d\n", span.From.Line, span.From.Column, span.To.Line, span.To.Column)
	}
	return nil
}
