package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vbt/project"
	"github.com/dhamidi/vbt/vb6/codebase"
	"github.com/dhamidi/vbt/vb6/diag"
)

func newScanCmd() *cobra.Command {
	var timeout time.Duration
	var concurrency int
	var listSymbols bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a project directory and summarize every source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := project.LoadFrom(dir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				p.Config.Scan.Concurrency = concurrency
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c := codebase.New(p)
			if err := c.ScanAll(ctx); err != nil {
				return fmt.Errorf("scan %s: %w", p.RootDir, err)
			}

			out := cmd.OutOrStdout()
			var errors, warnings int
			for _, f := range c.Files() {
				nErrors := 0
				for _, d := range f.Diagnostics {
					if d.IsError() {
						nErrors++
					}
				}
				nWarnings := len(f.Diagnostics) - nErrors
				errors += nErrors
				warnings += nWarnings

				status := "OK"
				if diag.HasErrors(f.Diagnostics) {
					status = "ERROR"
				}
				fmt.Fprintf(out, "[%s] %s (%d symbols, %d errors, %d warnings)\n",
					status, p.Rel(f.Path), len(f.Symbols), nErrors, nWarnings)
				if listSymbols {
					printSymbols(cmd, f, f.Symbols, "  ")
				}
			}

			fmt.Fprintf(out, "\n=== SCAN COMPLETE ===\n")
			fmt.Fprintf(out, "Files: %d\n", len(c.Files()))
			fmt.Fprintf(out, "Errors: %d\n", errors)
			fmt.Fprintf(out, "Warnings: %d\n", warnings)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", time.Minute, "give up after this long")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 8, "files parsed in parallel")
	cmd.Flags().BoolVar(&listSymbols, "symbols", false, "list the declarations of each file")

	return cmd
}

func printSymbols(cmd *cobra.Command, f *codebase.FileInfo, syms []codebase.Symbol, indent string) {
	for _, sym := range syms {
		pos := f.Lines.Position(sym.NameSpan.Start)
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s (%d:%d)\n", indent, sym.Kind, sym.Name, pos.Line, pos.Column)
		printSymbols(cmd, f, sym.Children, indent+"  ")
	}
}
