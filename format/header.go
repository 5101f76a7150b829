package format

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/vbt/vb6/header"
)

// HeaderEncoder writes a class or form header as JSON or YAML.
type HeaderEncoder struct {
	w    io.Writer
	kind Kind
}

func NewHeaderEncoder(w io.Writer, kind Kind) *HeaderEncoder {
	return &HeaderEncoder{w: w, kind: kind}
}

type headerData struct {
	Version    string         `json:"version" yaml:"version"`
	Properties propertiesData `json:"properties" yaml:"properties"`
	Attributes attributesData `json:"attributes" yaml:"attributes"`
}

type propertiesData struct {
	MultiUse            string `json:"multiUse" yaml:"multiUse"`
	Persistable         string `json:"persistable" yaml:"persistable"`
	DataBindingBehavior string `json:"dataBindingBehavior" yaml:"dataBindingBehavior"`
	DataSourceBehavior  string `json:"dataSourceBehavior" yaml:"dataSourceBehavior"`
	MTSTransactionMode  string `json:"mtsTransactionMode" yaml:"mtsTransactionMode"`
}

type attributesData struct {
	Name            string            `json:"name" yaml:"name"`
	GlobalNameSpace bool              `json:"globalNameSpace" yaml:"globalNameSpace"`
	Creatable       bool              `json:"creatable" yaml:"creatable"`
	PredeclaredID   bool              `json:"predeclaredId" yaml:"predeclaredId"`
	Exposed         bool              `json:"exposed" yaml:"exposed"`
	Description     string            `json:"description,omitempty" yaml:"description,omitempty"`
	Ext             map[string]string `json:"ext,omitempty" yaml:"ext,omitempty"`
}

type formHeaderData struct {
	Version    string         `json:"version" yaml:"version"`
	Objects    []objectData   `json:"objects,omitempty" yaml:"objects,omitempty"`
	Form       controlData    `json:"form" yaml:"form"`
	Attributes attributesData `json:"attributes" yaml:"attributes"`
}

type objectData struct {
	Reference string `json:"reference" yaml:"reference"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
}

type controlData struct {
	Type       string              `json:"type" yaml:"type"`
	Name       string              `json:"name" yaml:"name"`
	Properties []propertyData      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Groups     []propertyGroupData `json:"groups,omitempty" yaml:"groups,omitempty"`
	Controls   []controlData       `json:"controls,omitempty" yaml:"controls,omitempty"`
}

type propertyGroupData struct {
	Name       string              `json:"name" yaml:"name"`
	GUID       string              `json:"guid,omitempty" yaml:"guid,omitempty"`
	Properties []propertyData      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Groups     []propertyGroupData `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type propertyData struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func (e *HeaderEncoder) Encode(h header.ClassHeader) error {
	text, err := e.MarshalText(h)
	return writeText(e.w, text, err)
}

func (e *HeaderEncoder) MarshalText(h header.ClassHeader) ([]byte, error) {
	return e.marshal(buildHeaderData(h))
}

func (e *HeaderEncoder) EncodeForm(h header.FormHeader) error {
	text, err := e.MarshalFormText(h)
	return writeText(e.w, text, err)
}

func (e *HeaderEncoder) MarshalFormText(h header.FormHeader) ([]byte, error) {
	data := formHeaderData{
		Version:    h.Version.String(),
		Form:       buildControlData(h.Form),
		Attributes: buildAttributesData(h.Attributes),
	}
	for _, o := range h.Objects {
		data.Objects = append(data.Objects, objectData{Reference: o.Reference, File: o.File})
	}
	return e.marshal(data)
}

func (e *HeaderEncoder) marshal(data any) ([]byte, error) {
	if e.kind == KindYAML {
		return yaml.Marshal(data)
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

func buildHeaderData(h header.ClassHeader) headerData {
	p, a := h.Properties, h.Attributes
	return headerData{
		Version: h.Version.String(),
		Properties: propertiesData{
			MultiUse:            p.MultiUse.String(),
			Persistable:         p.Persistable.String(),
			DataBindingBehavior: p.DataBindingBehavior.String(),
			DataSourceBehavior:  p.DataSourceBehavior.String(),
			MTSTransactionMode:  p.MTSTransactionMode.String(),
		},
		Attributes: buildAttributesData(a),
	}
}

func buildAttributesData(a header.Attributes) attributesData {
	return attributesData{
		Name:            a.Name,
		GlobalNameSpace: a.GlobalNameSpace,
		Creatable:       a.Creatable,
		PredeclaredID:   a.PredeclaredID,
		Exposed:         a.Exposed,
		Description:     a.Description,
		Ext:             a.Ext,
	}
}

func buildControlData(c header.Control) controlData {
	data := controlData{Type: c.Type, Name: c.Name, Properties: buildPropertyData(c.Properties)}
	if c.Namespace != "" {
		data.Type = c.Namespace + "." + c.Type
	}
	for _, g := range c.Groups {
		data.Groups = append(data.Groups, buildGroupData(g))
	}
	for _, child := range c.Controls {
		data.Controls = append(data.Controls, buildControlData(child))
	}
	return data
}

func buildGroupData(g header.PropertyGroup) propertyGroupData {
	data := propertyGroupData{Name: g.Name, GUID: g.GUID, Properties: buildPropertyData(g.Properties)}
	for _, sub := range g.Groups {
		data.Groups = append(data.Groups, buildGroupData(sub))
	}
	return data
}

func buildPropertyData(props []header.Property) []propertyData {
	var out []propertyData
	for _, p := range props {
		out = append(out, propertyData{Key: p.Key, Value: p.Value})
	}
	return out
}
