package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/vb6/cst"
)

func newRoundTripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file>...",
		Short: "Verify that parsing reproduces each file byte for byte",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			out := cmd.OutOrStdout()
			for _, filename := range args {
				data, err := readSource(filename)
				if err != nil {
					result = multierror.Append(result, err)
					continue
				}

				got := cst.ParseSource(filename, data).Value().Text()
				if got == string(data) {
					fmt.Fprintf(out, "[OK] %s\n", filename)
					continue
				}

				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(string(data), got, false)
				fmt.Fprintf(out, "[DIFF] %s\n%s\n", filename, dmp.DiffPrettyText(diffs))
				result = multierror.Append(result, fmt.Errorf("%s: tree text differs from source", filename))
			}
			return result.ErrorOrNil()
		},
	}
}
