package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/vbt/vb6/cst"
	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

func TestTreeEncoder(t *testing.T) {
	tree := cst.ParseSource("test.bas", []byte("Stop\r\n"), cst.WithHeader(false)).Value()

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf, false).Encode(tree))
	assert.Equal(t, tree.String(), buf.String())
	assert.Contains(t, buf.String(), "StopStatement")

	buf.Reset()
	require.NoError(t, NewTreeEncoder(&buf, true).Encode(tree))
	assert.Contains(t, buf.String(), "StopStatement [0-6]")
}

func TestTreeJSONEncoder(t *testing.T) {
	tree := cst.ParseSource("test.bas", []byte("Sub Main()\r\nEnd Sub\r\n")).Value()

	var buf bytes.Buffer
	require.NoError(t, NewTreeJSONEncoder(&buf).Encode(tree))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	var got struct {
		File string `json:"file"`
		Root struct {
			Kind     string `json:"kind"`
			Children []struct {
				Kind string `json:"kind"`
			} `json:"children"`
		} `json:"root"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "test.bas", got.File)
	assert.Equal(t, "Module", got.Root.Kind)
	require.NotEmpty(t, got.Root.Children)
	assert.Equal(t, "SubStatement", got.Root.Children[0].Kind)
}

func TestTokenLineEncoder(t *testing.T) {
	input := []byte("Dim x\r\nx = \"a\"\r\n")
	stream := lexer.Tokenize("test.bas", input).Value()

	var buf bytes.Buffer
	require.NoError(t, NewTokenLineEncoder(&buf, source.NewLineIndex("test.bas", input)).Encode(stream))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, stream.Len())
	assert.Equal(t, "1:1\tDim\t\"Dim\"", lines[0])
	assert.Equal(t, "1:6\tNewline\t\"\\r\\n\"", lines[3])
	assert.Equal(t, "2:5\tStringLiteral\t\"\\\"a\\\"\"", lines[8])
}

func TestTokenJSONEncoder(t *testing.T) {
	input := []byte("x = 1\r\n")
	stream := lexer.Tokenize("test.bas", input).Value()

	text, err := NewTokenJSONEncoder(nil, source.NewLineIndex("test.bas", input)).MarshalText(stream)
	require.NoError(t, err)

	var got []jsonToken
	require.NoError(t, json.Unmarshal(text, &got))
	require.Len(t, got, stream.Len())
	assert.Equal(t, jsonToken{Kind: "Number", Start: 4, End: 5, Line: 1, Column: 5, Literal: "1"}, got[4])
}
