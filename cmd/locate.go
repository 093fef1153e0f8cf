package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve the current position and its address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initWorkflow(ctx, cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		res, err := env.Controller.RequestCurrentLocation(ctx)
		printNotice(out, res.Notice)
		if err != nil {
			return err
		}

		d := res.Draft
		if d.Coordinates.IsZero() {
			fmt.Fprintln(out, "no position fix") //nolint:errcheck
			return nil
		}
		fmt.Fprintf(out, "latitude:  %s\nlongitude: %s\n", d.Coordinates.Lat, d.Coordinates.Lng) //nolint:errcheck
		if d.Address != "" {
			fmt.Fprintf(out, "address:   %s\n", d.Address) //nolint:errcheck
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
