package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/dhamidi/vbt/format"
	"github.com/dhamidi/vbt/project"
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// readSource reads a file and decodes it to UTF-8.
func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, converted, err := source.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if converted {
		log.Debugf("%s: decoded as windows-1252", path)
	}
	return text, nil
}

// useColor resolves a color setting of auto, always or never.
func useColor(setting string) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	return !color.NoColor
}

// reportDiagnostics prints ds to stderr, dropping suppressed categories.
func reportDiagnostics(cfg project.Config, lines *source.LineIndex, ds []diag.Diagnostic) error {
	suppress, err := cfg.SuppressedCategories()
	if err != nil {
		return err
	}
	ds = diag.Filter(ds, suppress...)
	if len(ds) == 0 {
		return nil
	}
	return format.NewDiagnosticWriter(os.Stderr, useColor(cfg.Output.Color)).Write(lines, ds)
}

// loadConfig finds the project configuration for path, falling back to the
// defaults when none can be read.
func loadConfig(path string) project.Config {
	p, err := project.LoadFrom(path)
	if err != nil {
		log.Warningf("%s", err)
		return project.DefaultConfig()
	}
	return p.Config
}
