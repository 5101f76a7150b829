package format

import (
	"fmt"

	"github.com/dhamidi/vbt/vb6/vbp"
)

type projectData struct {
	Type          string                       `json:"type" yaml:"type"`
	Version       string                       `json:"version" yaml:"version"`
	References    []referenceData              `json:"references,omitempty" yaml:"references,omitempty"`
	Objects       []projectObjectData          `json:"objects,omitempty" yaml:"objects,omitempty"`
	Modules       []memberData                 `json:"modules,omitempty" yaml:"modules,omitempty"`
	Classes       []memberData                 `json:"classes,omitempty" yaml:"classes,omitempty"`
	Forms         []string                     `json:"forms,omitempty" yaml:"forms,omitempty"`
	UserControls  []string                     `json:"userControls,omitempty" yaml:"userControls,omitempty"`
	UserDocuments []string                     `json:"userDocuments,omitempty" yaml:"userDocuments,omitempty"`
	PropertyPages []string                     `json:"propertyPages,omitempty" yaml:"propertyPages,omitempty"`
	Designers     []string                     `json:"designers,omitempty" yaml:"designers,omitempty"`
	RelatedDocs   []string                     `json:"relatedDocs,omitempty" yaml:"relatedDocs,omitempty"`
	Properties    map[string]string            `json:"properties,omitempty" yaml:"properties,omitempty"`
	Sections      map[string]map[string]string `json:"sections,omitempty" yaml:"sections,omitempty"`
}

type referenceData struct {
	GUID        string `json:"guid,omitempty" yaml:"guid,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	LCID        string `json:"lcid,omitempty" yaml:"lcid,omitempty"`
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SubProject  bool   `json:"subProject,omitempty" yaml:"subProject,omitempty"`
}

type projectObjectData struct {
	GUID       string `json:"guid,omitempty" yaml:"guid,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	LCID       string `json:"lcid,omitempty" yaml:"lcid,omitempty"`
	File       string `json:"file" yaml:"file"`
	SubProject bool   `json:"subProject,omitempty" yaml:"subProject,omitempty"`
}

type memberData struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// EncodeProject writes the content of a .vbp file.
func (e *HeaderEncoder) EncodeProject(p vbp.Project) error {
	text, err := e.MarshalProjectText(p)
	return writeText(e.w, text, err)
}

func (e *HeaderEncoder) MarshalProjectText(p vbp.Project) ([]byte, error) {
	data := projectData{
		Type:          p.Type,
		Version:       fmt.Sprintf("%d.%d.%d", p.Version.Major, p.Version.Minor, p.Version.Revision),
		Forms:         p.Forms,
		UserControls:  p.UserControls,
		UserDocuments: p.UserDocuments,
		PropertyPages: p.PropertyPages,
		Designers:     p.Designers,
		RelatedDocs:   p.RelatedDocs,
		Properties:    p.Properties,
		Sections:      p.Sections,
	}
	for _, r := range p.References {
		data.References = append(data.References, referenceData(r))
	}
	for _, o := range p.Objects {
		data.Objects = append(data.Objects, projectObjectData(o))
	}
	for _, m := range p.Modules {
		data.Modules = append(data.Modules, memberData(m))
	}
	for _, m := range p.Classes {
		data.Classes = append(data.Classes, memberData(m))
	}
	return e.marshal(data)
}
