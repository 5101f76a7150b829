package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/vbt/vb6/cst"
)

// TreeEncoder writes the indented debug dump of a tree.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(tree *cst.Tree) error {
	text, err := e.MarshalText(tree)
	return writeText(e.w, text, err)
}

func (e *TreeEncoder) MarshalText(tree *cst.Tree) ([]byte, error) {
	if e.positions {
		return []byte(tree.Root.StringWithPositions()), nil
	}
	return []byte(tree.String()), nil
}

// TreeJSONEncoder writes a tree as JSON, with spans and token literals, so
// the source can be rebuilt from the output.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(tree *cst.Tree) error {
	text, err := e.MarshalText(tree)
	if err == nil {
		text = append(text, '\n')
	}
	return writeText(e.w, text, err)
}

func (e *TreeJSONEncoder) MarshalText(tree *cst.Tree) ([]byte, error) {
	return json.MarshalIndent(tree, "", "  ")
}
