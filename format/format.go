// Package format renders parse results for people and tools: diagnostics
// with their source line, trees, token streams and class headers.
package format

import (
	"fmt"
	"io"
)

// writeText is shared by the encoders: MarshalText builds the output,
// Encode writes it.
func writeText(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

// Kind selects an output format by name.
type Kind string

const (
	KindText Kind = "text"
	KindJSON Kind = "json"
	KindYAML Kind = "yaml"
)

// ParseKind checks name against the formats in allowed.
func ParseKind(name string, allowed ...Kind) (Kind, error) {
	for _, k := range allowed {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown format: %s", name)
}
