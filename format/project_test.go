package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/vbt/vb6/source"
	"github.com/dhamidi/vbt/vb6/vbp"
)

const projectFile = "Type=OleDll\r\n" +
	`Reference=*\G{00020430-0000-0000-C000-000000000046}#2.0#0#stdole2.tlb#OLE Automation` + "\r\n" +
	"Module=Module1; Module1.bas\r\n" +
	"Form=Form1.frm\r\n" +
	"Name=\"Tools\"\r\n" +
	"MajorVer=2\r\n" +
	"MinorVer=1\r\n" +
	"[MS Transaction Server]\r\n" +
	"AutoRefresh=1\r\n"

func TestHeaderEncoderProject(t *testing.T) {
	out := vbp.Parse(source.NewCursor("Tools.vbp", []byte(projectFile)))
	require.Empty(t, out.Diagnostics())

	var buf bytes.Buffer
	require.NoError(t, NewHeaderEncoder(&buf, KindJSON).EncodeProject(out.Value()))

	var got projectData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "OleDll", got.Type)
	assert.Equal(t, "2.1.0", got.Version)
	assert.Equal(t, []referenceData{{
		GUID:        "{00020430-0000-0000-C000-000000000046}",
		Version:     "2.0",
		LCID:        "0",
		Path:        "stdole2.tlb",
		Description: "OLE Automation",
	}}, got.References)
	assert.Equal(t, []memberData{{Name: "Module1", Path: "Module1.bas"}}, got.Modules)
	assert.Equal(t, []string{"Form1.frm"}, got.Forms)
	assert.Equal(t, map[string]string{"Name": "Tools"}, got.Properties)
	assert.Equal(t, "1", got.Sections["MS Transaction Server"]["AutoRefresh"])

	text, err := NewHeaderEncoder(nil, KindYAML).MarshalProjectText(out.Value())
	require.NoError(t, err)
	assert.Contains(t, string(text), "type: OleDll\n")
}
