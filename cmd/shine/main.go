package main

import (
	"os"

	"github.com/arthur-debert/shine/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		cli.ReportError(rootCmd, err)
		os.Exit(1)
	}
}
