package main

import (
	"fmt"
	"os"

	"postalgeo-api/internal/config"
	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/loader"
	"postalgeo-api/internal/service"
	"postalgeo-api/internal/spatial"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	file     string
	header   bool
	lenient  bool
	index    string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "postalcli",
		Short: "Query distances between postal codes",
		Long: `Load a postal code table and answer distance questions about it.

Available subcommands:
  distance - Distance between two postal codes
  nearby   - Postal codes within a radius of a postal code
  validate - Report data-quality problems in the table`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "data/postalcodes.csv", "Path to the postal code CSV file")
	flags.BoolVar(&opts.header, "header", false, "Skip the first row of the file")
	flags.BoolVar(&opts.lenient, "lenient", false, "Keep rows with out-of-range coordinates")
	flags.StringVar(&opts.index, "index", config.IndexLinear, "Radius search strategy: linear or rtree")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level for load diagnostics")

	rootCmd.AddCommand(
		newDistanceCmd(opts),
		newNearbyCmd(opts),
		newValidateCmd(opts),
	)
	return rootCmd
}

// newService loads the table named by the flags and wraps it in a query service.
func (o *rootOptions) newService(cmd *cobra.Command) (*service.PostalCodeService, error) {
	logger := o.loggerFor(cmd)

	l := loader.New(loader.Options{
		HasHeader:         o.header,
		StrictCoordinates: !o.lenient,
	}, diagnostic.NewLogReporter(logger))

	st, summary, err := l.LoadFile(o.file)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("loaded", summary.Loaded).Int("skipped", summary.Skipped).Msg("postal codes loaded")

	svcOpts := []service.Option{service.WithLogger(logger)}
	switch o.index {
	case config.IndexLinear:
	case config.IndexRTree:
		svcOpts = append(svcOpts, service.WithIndex(spatial.NewIndex(st.All())))
	default:
		return nil, fmt.Errorf("unknown index %q", o.index)
	}

	return service.NewPostalCodeService(st, svcOpts...), nil
}

func (o *rootOptions) loggerFor(cmd *cobra.Command) zerolog.Logger {
	return config.Config{LogLevel: o.logLevel}.NewLogger(cmd.ErrOrStderr())
}
