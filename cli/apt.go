package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/kvesta/keplerscan/config"
	"github.com/kvesta/keplerscan/internal/report"
	"github.com/kvesta/keplerscan/internal/vulnscan"
	"github.com/kvesta/keplerscan/pkg/packages"
)

type aptOptions struct {
	source     string
	statusFile string
	outfile    string
	unique     bool
	dedup      bool
	stats      bool
}

func newAptCmd(root *rootOptions) *cobra.Command {
	opts := &aptOptions{}

	aptCmd := &cobra.Command{
		Use:   "apt",
		Short: "Audit the installed packages of this host",
		Long: `Examples:
  # Audit packages listed by apt
  $ keplerscan apt

  # Read a dpkg status file instead of running apt
  $ keplerscan apt --source dpkg --status-file /mnt/root/var/lib/dpkg/status

  # Pick the package manager from /etc/os-release and save the findings
  $ keplerscan apt --source auto -o findings.json`,
		Args: NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, root)
		},
	}

	aptCmd.Flags().StringVarP(&opts.source, "source", "s", "", "package source: apt, dpkg, rpm, pacman or auto")
	aptCmd.Flags().StringVar(&opts.statusFile, "status-file", "", "dpkg status file used by the dpkg source")
	aptCmd.Flags().StringVarP(&opts.outfile, "output", "o", "", "also save the findings as json to this file")
	aptCmd.Flags().BoolVar(&opts.unique, "unique", false, "query each package name once, keeping the highest version")
	aptCmd.Flags().BoolVar(&opts.dedup, "dedup", false, "drop CVEs reported under more than one vendor")
	aptCmd.Flags().BoolVar(&opts.stats, "stats", false, "print a summary table after the report")

	return aptCmd
}

func (o *aptOptions) run(cmd *cobra.Command, root *rootOptions) error {
	ctx := cmd.Context()
	settings := root.settings

	source, statusFile := settings.Source, settings.StatusFile
	if o.source != "" {
		source = o.source
	}
	if o.statusFile != "" {
		statusFile = o.statusFile
	}

	lister, err := packages.NewLister(root.fs, source, statusFile)
	if err != nil {
		return err
	}

	packs, err := lister.List(ctx)
	if err != nil {
		return xerrors.Errorf("failed to list %s packages: %w", lister.Name(), err)
	}

	if o.unique {
		packs = packages.Collapse(packs)
	}

	log.Debugf("%s", config.Green("Listed packages: ", len(packs)))

	client := root.client()
	defer client.Close()

	scanner := &vulnscan.Scanner{
		VulnDB:  client,
		Vendors: settings.Vendors,
		Dedup:   o.dedup,
	}

	if err = scanner.Scan(ctx, packs); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err = report.ResolveScanData(out, root.painter(), scanner); err != nil {
		return err
	}

	if o.stats {
		if err = report.ResolveStats(out, scanner); err != nil {
			return err
		}
	}

	if o.outfile != "" {
		return report.ScanToJson(root.fs, o.outfile, scanner)
	}

	return nil
}
