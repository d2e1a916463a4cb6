package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
	"github.com/spf13/cobra"
)

var hoverCmd = &cobra.Command{
	Use:   "hover [file] [line:column]",
	Short: "Show type information for the entity at a source position",
	Args:  cobra.ExactArgs(2),
	RunE:  runHover,
}

func init() {
	rootCmd.AddCommand(hoverCmd)
}

func parsePosition(s string) (autosplit.Position, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return autosplit.Position{}, fmt.Errorf("expected line:column, got %q", s)
	}
	line, err := strconv.Atoi(parts[0])
	if err != nil {
		return autosplit.Position{}, fmt.Errorf("invalid line %q: %w", parts[0], err)
	}
	column, err := strconv.Atoi(parts[1])
	if err != nil {
		return autosplit.Position{}, fmt.Errorf("invalid column %q: %w", parts[1], err)
	}
	return autosplit.Position{Line: line, Column: column}, nil
}

func runHover(_ *cobra.Command, args []string) error {
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

	info, ok := program.Hover(pos)
	if !ok {
		return fmt.Errorf("nothing found at %d:%d", pos.Line, pos.Column)
	}

	fmt.Printf("type: %s\n", info.Type)
	if len(info.Params) > 0 {
		fmt.Printf("params: %s\n", strings.Join(info.Params, ", "))
	}
	fmt.Printf("span: %d:%d..%d:%d\n", info.Span.From.Line, info.Span.From.Column, info.Span.To.Line, info.Span.To.Column)
	return nil
}
