package cst

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     jsonSpan    `json:"span"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Span: jsonSpan{Start: n.Span.Start, End: n.Span.End},
	}

	if n.Token != nil {
		jn.Token = &jsonToken{Kind: n.Token.Kind.String(), Literal: n.Token.Literal}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

type jsonTree struct {
	File            string    `json:"file,omitempty"`
	DeclarationsEnd int       `json:"declarationsEnd"`
	Root            *jsonNode `json:"root"`
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	jt := jsonTree{File: t.File, DeclarationsEnd: t.DeclarationsEnd}
	if t.Root != nil {
		jt.Root = t.Root.toJSON()
	}
	return json.Marshal(jt)
}
