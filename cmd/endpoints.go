package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mailgallery/contextio"
)

// endpointsCmd lists the endpoint catalog
var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the Context.IO endpoints known to the client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ENDPOINT\tMETHOD\tACCOUNT\tPARAMETERS")

		for _, ep := range contextio.Endpoints() {
			d, _ := contextio.Lookup(ep)

			account := "-"
			if d.AccountScoped {
				account = "required"
			}

			allowed := make([]string, 0, len(d.Allowed))
			for _, k := range d.Allowed {
				allowed = append(allowed, string(k))
			}
			params := strings.Join(allowed, ", ")
			if params == "" {
				params = "-"
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep, d.Method, account, params)
		}

		return tw.Flush()
	},
}
