package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
	"github.com/spf13/cobra"
)

var (
	outputFile     string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an autosplit source file to a WASM module",
	Long: `Compile an autosplit program to a WebAssembly module and save it as a
.wasm file.

Examples:
  # Compile a script
  autosplit compile game.asl

  # Compile with a custom output file
  autosplit compile game.asl -o out.wasm`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.wasm)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	engine, err := autosplit.New()
	if err != nil {
		return err
	}

	program, err := engine.Compile(src, filename)
	if err != nil {
		if cerr, ok := err.(*cerrors.Error); ok {
			fmt.Fprint(os.Stderr, cerr.Format(true))
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("compilation failed: %w", err)
	}

	data := program.Bytes()

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".wasm"
		} else {
			outFile = filename + ".wasm"
		}
	}

	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "WASM module written to %s (%d bytes)\n", outFile, len(data))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
