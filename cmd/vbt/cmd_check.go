package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/format"
	"github.com/dhamidi/vbt/project"
	"github.com/dhamidi/vbt/vb6/codebase"
	"github.com/dhamidi/vbt/vb6/diag"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string
	var colorMode string

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse files or a whole project and report diagnostics",
		Long: "Check parses the given files, or every source file of the project " +
			"found from the current directory, and prints their diagnostics. " +
			"It fails when any file has an error; warnings alone do not fail.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) > 0 {
				start = args[0]
				if info, err := os.Stat(start); err == nil && !info.IsDir() {
					start = filepath.Dir(start)
				}
			}
			p, err := project.LoadFrom(start)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				p.Config.Output.Format = outputFormat
			}
			if cmd.Flags().Changed("color") {
				p.Config.Output.Color = colorMode
			}
			kind, err := format.ParseKind(p.Config.Output.Format, format.KindText, format.KindJSON)
			if err != nil {
				return err
			}

			c := codebase.New(p)
			if err := collect(cmd.Context(), c, args); err != nil {
				return err
			}

			var result *multierror.Error
			var all []diag.Diagnostic
			out := cmd.OutOrStdout()
			writer := format.NewDiagnosticWriter(out, useColor(p.Config.Output.Color))
			for _, f := range c.Files() {
				if kind == format.KindText {
					if err := writer.Write(f.Lines, f.Diagnostics); err != nil {
						return err
					}
				}
				all = append(all, f.Diagnostics...)
				if n := len(diag.Filter(f.Diagnostics, warningCategories()...)); n > 0 {
					result = multierror.Append(result, fmt.Errorf("%s: %d errors", p.Rel(f.Path), n))
				}
			}
			if kind == format.KindJSON {
				if err := format.NewDiagnosticJSONEncoder(out).Encode(nil, all); err != nil {
					return err
				}
			}

			log.Infof("checked %d files, %d diagnostics", len(c.Files()), len(all))
			return result.ErrorOrNil()
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output (auto, always, never)")

	return cmd
}

// collect analyzes the named files and directories, or the whole project
// when none are named.
func collect(ctx context.Context, c *codebase.Codebase, paths []string) error {
	if len(paths) == 0 {
		return c.ScanAll(ctx)
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if _, err := c.ScanFile(path); err != nil {
				return err
			}
			continue
		}
		sub := &project.Project{RootDir: path, Config: c.Project().Config}
		files, err := sub.Sources()
		if err != nil {
			return err
		}
		for _, f := range files {
			if _, err := c.ScanFile(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// warningCategories lists the categories that never fail a check.
func warningCategories() []diag.Category {
	var out []diag.Category
	for _, c := range diag.Categories() {
		if c.Severity() != diag.SeverityError {
			out = append(out, c)
		}
	}
	return out
}
