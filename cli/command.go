package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kvesta/keplerscan/config"
	"github.com/kvesta/keplerscan/internal/report"
	"github.com/kvesta/keplerscan/pkg/vulnlib"
)

const versions = "keplerscan version 0.1.0"

type rootOptions struct {
	serviceURL string
	timeout    time.Duration
	configFile string
	noColor    bool
	verbose    bool

	fs       afero.Fs
	settings *config.Settings
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "keplerscan [OPTIONS]",
		Short: "Installed package vulnerability audit",
		Long: `keplerscan lists the packages installed on this host and looks each of them up
in a kepler vulnerability service.

Examples:
  # Audit every installed package
  $ keplerscan apt

  # Audit against a remote service
  $ keplerscan apt --url http://kepler.internal:8000

  # Look up a single product
  $ keplerscan search openssl 3.0.2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete(cmd)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versions)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.serviceURL, "url", vulnlib.DefaultURL, "vulnerability service url (serviceURL)")
	flags.DurationVar(&opts.timeout, "timeout", vulnlib.DefaultTimeout, "timeout of a single lookup request")
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default "+config.DefaultConfigFile()+")")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs")

	rootCmd.AddCommand(newAptCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// complete layers flags over the config file and environment
func (o *rootOptions) complete(cmd *cobra.Command) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}

	if o.noColor {
		color.NoColor = true
	}

	path, explicit := o.configFile, o.configFile != ""
	if !explicit {
		path = config.DefaultConfigFile()
	}

	settings, err := config.Load(o.fs, path, explicit)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		settings.ServiceURL = o.serviceURL
	}
	if flags.Changed("timeout") {
		settings.Timeout = o.timeout
	}

	o.settings = settings
	log.Debugf("Using vulnerability service %s", settings.ServiceURL)

	return nil
}

func (o *rootOptions) painter() report.Painter {
	return report.Painter{NoColor: o.noColor}
}

func (o *rootOptions) client() *vulnlib.Client {
	return vulnlib.NewClient(o.settings.ServiceURL, vulnlib.WithTimeout(o.settings.Timeout))
}

func Execute() error {
	return newRootCmd(afero.NewOsFs()).Execute()
}
