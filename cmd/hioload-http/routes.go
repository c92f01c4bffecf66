// File: cmd/hioload-http/routes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-http/server"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the routes registered by serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.NewServer(nil)
			if err := registerDemo(srv); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH")
			for _, r := range srv.Routes().Routes() {
				fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
			}
			return w.Flush()
		},
	}
}
