package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/format"
	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string
	var withoutWhitespace bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a VB6 file and print the tokens",
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

			out := lexer.Tokenize(filename, data)
			stream := out.Value()
			if withoutWhitespace {
				stream = stream.WithoutWhitespace()
			}

			lines := source.NewLineIndex(filename, data)
			switch kind {
			case format.KindJSON:
				err = format.NewTokenJSONEncoder(cmd.OutOrStdout(), lines).Encode(stream)
			default:
				err = format.NewTokenLineEncoder(cmd.OutOrStdout(), lines).Encode(stream)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return reportDiagnostics(loadConfig(filepath.Dir(filename)), lines, out.Diagnostics())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&withoutWhitespace, "no-whitespace", false, "leave out whitespace tokens")

	return cmd
}
