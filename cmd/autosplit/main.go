// Command autosplit compiles and inspects autosplit source files.
package main

import (
	"fmt"
	"os"

	"github.com/CryZe/livesplit-auto-splitting/cmd/autosplit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
