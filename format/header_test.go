package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/vbt/vb6/header"
	"github.com/dhamidi/vbt/vb6/source"
)

const classHeader = "VERSION 1.0 CLASS\r\n" +
	"BEGIN\r\n" +
	"  MultiUse = 0\r\n" +
	"  MTSTransactionMode = 3\r\n" +
	"END\r\n" +
	"Attribute VB_Name = \"Widget\"\r\n" +
	"Attribute VB_Exposed = True\r\n" +
	"Attribute VB_Ext_KEY = \"SavedWithClassBuilder6\" ,\"Yes\"\r\n"

func parsedHeader(t *testing.T) header.ClassHeader {
	t.Helper()
	out := header.ParseClassHeader(source.NewCursor("Widget.cls", []byte(classHeader)))
	h, ok := out.Get()
	require.True(t, ok, "header diagnostics: %v", out.Diagnostics())
	return h
}

func TestHeaderEncoderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHeaderEncoder(&buf, KindJSON).Encode(parsedHeader(t)))

	var got headerData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1.0", got.Version)
	assert.Equal(t, "SingleUse", got.Properties.MultiUse)
	assert.Equal(t, "UsesTransaction", got.Properties.MTSTransactionMode)
	assert.Equal(t, "None", got.Properties.DataBindingBehavior)
	assert.Equal(t, "Widget", got.Attributes.Name)
	assert.True(t, got.Attributes.Exposed)
	assert.True(t, got.Attributes.Creatable)
	assert.Equal(t, map[string]string{"SavedWithClassBuilder6": "Yes"}, got.Attributes.Ext)
}

func TestHeaderEncoderYAML(t *testing.T) {
	text, err := NewHeaderEncoder(nil, KindYAML).MarshalText(parsedHeader(t))
	require.NoError(t, err)
	assert.Contains(t, string(text), "version: \"1.0\"\n")
	assert.Contains(t, string(text), "name: Widget\n")

	var got headerData
	require.NoError(t, yaml.Unmarshal(text, &got))
	assert.Equal(t, buildHeaderData(parsedHeader(t)), got)
}

const formHeader = "VERSION 5.00\r\n" +
	"Object = \"{6B7E6392-850A-101B-AFC0-4210102A8DA7}#1.3#0\"; \"COMCTL32.OCX\"\r\n" +
	"Begin VB.Form Form1\r\n" +
	"   Caption = \"Main\"\r\n" +
	"   BeginProperty Font\r\n" +
	"      Name = \"Arial\"\r\n" +
	"   EndProperty\r\n" +
	"   Begin VB.TextBox Text1\r\n" +
	"      Text = \"\"\r\n" +
	"   End\r\n" +
	"End\r\n" +
	"Attribute VB_Name = \"Form1\"\r\n"

func TestHeaderEncoderForm(t *testing.T) {
	out := header.ParseFormHeader(source.NewCursor("Form1.frm", []byte(formHeader)))
	h, ok := out.Get()
	require.True(t, ok, "header diagnostics: %v", out.Diagnostics())

	var buf bytes.Buffer
	require.NoError(t, NewHeaderEncoder(&buf, KindJSON).EncodeForm(h))

	var got formHeaderData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "5.0", got.Version)
	assert.Equal(t, []objectData{{Reference: "{6B7E6392-850A-101B-AFC0-4210102A8DA7}#1.3#0", File: "COMCTL32.OCX"}}, got.Objects)
	assert.Equal(t, "VB.Form", got.Form.Type)
	assert.Equal(t, []propertyData{{Key: "Caption", Value: `"Main"`}}, got.Form.Properties)
	require.Len(t, got.Form.Groups, 1)
	assert.Equal(t, "Font", got.Form.Groups[0].Name)
	require.Len(t, got.Form.Controls, 1)
	assert.Equal(t, controlData{Type: "VB.TextBox", Name: "Text1", Properties: []propertyData{{Key: "Text", Value: `""`}}}, got.Form.Controls[0])
	assert.Equal(t, "Form1", got.Attributes.Name)

	text, err := NewHeaderEncoder(nil, KindYAML).MarshalFormText(h)
	require.NoError(t, err)
	assert.Contains(t, string(text), "type: VB.Form\n")
}
