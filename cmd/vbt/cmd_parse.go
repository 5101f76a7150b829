package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/format"
	"github.com/dhamidi/vbt/vb6/cst"
	"github.com/dhamidi/vbt/vb6/source"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var fragment bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a VB6 file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			kind, err := format.ParseKind(outputFormat, format.KindText, format.KindJSON)
			if err != nil {
				return err
			}

			data, err := readSource(filename)
			if err != nil {
				return err
			}

			out := cst.ParseSource(filename, data, cst.WithHeader(!fragment))
			tree := out.Value()

			switch kind {
			case format.KindJSON:
				err = format.NewTreeJSONEncoder(cmd.OutOrStdout()).Encode(tree)
			default:
				err = format.NewTreeEncoder(cmd.OutOrStdout(), includePositions).Encode(tree)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			cfg := loadConfig(filepath.Dir(filename))
			return reportDiagnostics(cfg, source.NewLineIndex(filename, data), out.Diagnostics())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include byte spans in text output")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "parse statements outside of a module header")

	return cmd
}
