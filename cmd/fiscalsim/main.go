package main

import (
	"fmt"
	"os"

	"github.com/fiscalsim/consolidated-fiscal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
