package main

import (
	"errors"
	"fmt"
	"strings"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/service"

	"github.com/spf13/cobra"
)

func newDistanceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "distance FROM TO",
		Short: "Distance between two postal codes",
		Long: `Print the great-circle distance in kilometers between the centroids of two
postal codes, for example:

  postalcli distance H1E J7C`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])

			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}

			km, err := svc.DistanceBetween(from, to)
			if errors.Is(err, service.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "One or both of the postal codes do not exist in the database.")
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "The distance between %s and %s is %.2f km.\n", from, to, km)
			return nil
		},
	}
}

func newNearbyCmd(opts *rootOptions) *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "nearby CODE",
		Short: "Postal codes within a radius of a postal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.TrimSpace(args[0])

			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}

			neighbors, err := svc.Nearby(code, radius)
			if errors.Is(err, service.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "The postal code does not exist in the database.")
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(neighbors) == 0 {
				fmt.Fprintln(out, "No locations found within the specified radius.")
				return nil
			}
			for _, n := range neighbors {
				fmt.Fprintf(out, "Postal Code: %-3s | Province: %-2s | City: %-10s | Distance: %1.2f km\n",
					n.PostalCode, n.Province, n.City, n.DistanceKm)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 10, "Search radius in kilometers")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report data-quality problems in the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			collector := &diagnostic.Collector{}
			res := svc.Validate(diagnostic.Multi(collector, diagnostic.NewLogReporter(opts.loggerFor(cmd))))

			for _, d := range collector.Diagnostics() {
				fmt.Fprintf(out, "%s: %s (ID: %s) %s\n", d.Reason, d.Code, d.ID, d.Detail)
			}
			if res.Valid {
				fmt.Fprintf(out, "All %d postal codes passed validation.\n", res.Checked)
			} else {
				fmt.Fprintf(out, "%d of %d postal codes failed validation.\n", res.Invalid, res.Checked)
			}
			return nil
		},
	}
}
