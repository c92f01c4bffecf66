// File: cmd/hioload-http/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// hioload-http command line front end.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected during build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "hioload-http",
	Short:         "Minimal HTTP/1.1 server with an exact-match route table",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd(), newRoutesCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
