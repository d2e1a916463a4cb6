package cmd

import (
	"fmt"
	"os"

	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/parse"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an autosplit file and print its structure",
	Long: `Parse autosplit source code and print a summary of the resulting items:
the state block's process name and paths, and each action/function
declaration in source order.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	store, perr := parse.Parse(src, filename)
	if perr != nil {
		fmt.Fprint(os.Stderr, perr.Format(true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed")
	}

	fmt.Printf("state(%q)\n", store.Source.State.ProcessName)
	for _, p := range store.Source.State.Paths {
		fmt.Printf("  path %s: %s offsets=%v\n", p.Name, p.Module, p.Offsets)
	}

	for _, item := range store.Source.Items {
		switch item.Kind {
		case ir.ItemState:
			continue
		case ir.ItemAction:
			fmt.Printf("action %s\n", item.Action)
		case ir.ItemFunction:
			decl := store.FunctionDecl.MustGet(item.Body)
			fmt.Printf("fn #%d/%d\n", item.Body, len(decl.Params))
		}
	}

	return nil
}
