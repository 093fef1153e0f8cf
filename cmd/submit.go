package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Mayankdev0923/Energon/internal/submission"
)

var (
	submitValues = map[submission.Field]*string{}
	submitLocate bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one fuel location to the backend",
	Example: `  energon submit --name "Shell Downtown" --email ops@example.com --price 4.59 \
    --availability 12 --rating 4.5 --address "1 Main St" --lat 37.7749 --lng -122.4194`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initWorkflow(ctx, cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		ctrl := env.Controller

		if submitLocate {
			res, err := ctrl.RequestCurrentLocation(ctx)
			printNotice(out, res.Notice)
			if err != nil && !errors.Is(err, submission.ErrCapabilityUnavailable) {
				return err
			}
		}

		// Explicit flags win over anything the location request filled in.
		for f, v := range submitValues {
			if cmd.Flags().Changed(flagName(f)) {
				ctrl.UpdateField(f, *v)
			}
		}

		res, err := ctrl.Submit(ctx)
		printNotice(out, res.Notice)
		if err != nil {
			return err
		}
		if res.Record != nil {
			fmt.Fprintf(out, "id: %s\n", res.Record.ID) //nolint:errcheck
		}
		return nil
	},
}

func flagName(f submission.Field) string {
	switch f {
	case submission.FieldLatitude:
		return "lat"
	case submission.FieldLongitude:
		return "lng"
	}
	return string(f)
}

func printNotice(w io.Writer, n *submission.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message) //nolint:errcheck
	for _, fe := range n.Fields {
		fmt.Fprintf(w, "  - %s\n", fe) //nolint:errcheck
	}
}

func init() {
	for _, f := range submission.Fields {
		v := new(string)
		submitValues[f] = v
		submitCmd.Flags().StringVar(v, flagName(f), "", fmt.Sprintf("%s of the fuel location", f))
	}
	submitCmd.Flags().BoolVar(&submitLocate, "locate", false, "pre-fill coordinates and address from the current position")
	rootCmd.AddCommand(submitCmd)
}
