package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/kvesta/keplerscan/internal/report"
	"github.com/kvesta/keplerscan/internal/vulnscan"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <product> <version>",
		Short: "Look up the CVEs of one product version",
		Long: `Examples:
  # List the CVEs known for openssl 3.0.2
  $ keplerscan search openssl 3.0.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintf(cmd.OutOrStdout(), "usage: %s <product> <version>\n", cmd.CommandPath())
				return nil
			}

			product, version := args[0], args[1]

			client := root.client()
			defer client.Close()

			rows, err := vulnscan.Lookup(cmd.Context(), client, product, version)
			if err != nil {
				return xerrors.Errorf("failed to search %s %s: %w", product, version, err)
			}

			return report.ResolveQueryData(cmd.OutOrStdout(), root.painter(), product, version, rows)
		},
	}
}
