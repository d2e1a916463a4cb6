package cmd

import (
	"fmt"
	"os"

	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check an autosplit file for errors without emitting a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	engine, err := autosplit.New()
	if err != nil {
		return err
	}

	if _, err := engine.Compile(src, filename); err != nil {
		fmt.Fprintln(os.Stderr, autosplit.FormatError(err, true))
		return fmt.Errorf("check failed")
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}
