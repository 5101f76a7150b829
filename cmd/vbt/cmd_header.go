package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/format"
	"github.com/dhamidi/vbt/vb6/header"
	"github.com/dhamidi/vbt/vb6/source"
	"github.com/dhamidi/vbt/vb6/vbp"
)

func newHeaderCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Read the header of a class, form or control file, or a .vbp project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			kind, err := format.ParseKind(outputFormat, format.KindJSON, format.KindYAML)
			if err != nil {
				return err
			}

			data, err := readSource(filename)
			if err != nil {
				return err
			}

			lines := source.NewLineIndex(filename, data)
			cfg := loadConfig(filepath.Dir(filename))
			enc := format.NewHeaderEncoder(cmd.OutOrStdout(), kind)

			if strings.EqualFold(filepath.Ext(filename), ".vbp") {
				out := vbp.Parse(source.NewCursor(filename, data))
				if err := reportDiagnostics(cfg, lines, out.Diagnostics()); err != nil {
					return err
				}
				if err := enc.EncodeProject(out.Value()); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				return nil
			}

			fileKind, ok := header.KindForFile(filename)
			if !ok {
				return fmt.Errorf("read header of %s: standard modules have no header", filename)
			}

			if fileKind == header.KindForm {
				out := header.ParseFormHeader(source.NewCursor(filename, data))
				if err := reportDiagnostics(cfg, lines, out.Diagnostics()); err != nil {
					return err
				}
				h, ok := out.Get()
				if !ok {
					return headerError(filename, out.Err(), "no form header")
				}
				if err := enc.EncodeForm(h); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				return nil
			}

			out := header.ParseClassHeader(source.NewCursor(filename, data))
			if err := reportDiagnostics(cfg, lines, out.Diagnostics()); err != nil {
				return err
			}
			h, ok := out.Get()
			if !ok {
				return headerError(filename, out.Err(), "no class header")
			}
			if err := enc.Encode(h); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "output format (json, yaml)")

	return cmd
}

func headerError(filename string, err error, fallback string) error {
	if err != nil {
		return fmt.Errorf("read header of %s: %w", filename, err)
	}
	return fmt.Errorf("read header of %s: %s", filename, fallback)
}
