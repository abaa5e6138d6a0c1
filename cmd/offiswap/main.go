package main

import (
	"os"

	"github.com/redmonkez12/offiswap/cmd/offiswap/ui"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(rootCmd.ErrOrStderr(), err.Error())
		os.Exit(1)
	}
}
