package cst

import (
	"strconv"
	"strings"

	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

// Node is either a leaf holding one token (Kind == KindToken) or an
// interior node whose children cover its span without gaps.
type Node struct {
	Kind     SyntaxKind
	Span     source.Span
	Children []*Node
	Token    *lexer.Token
}

func leaf(tok lexer.Token) *Node {
	return &Node{Kind: KindToken, Span: tok.Span, Token: &tok}
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsToken() bool {
	return n.Kind == KindToken
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// TokenKind returns the kind of a leaf's token, or TokenUnknown for
// interior nodes.
func (n *Node) TokenKind() lexer.TokenKind {
	if n.Token != nil {
		return n.Token.Kind
	}
	return lexer.TokenUnknown
}

// Text reproduces the source covered by n.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.Token != nil {
		b.WriteString(n.Token.Literal)
		return
	}
	for _, child := range n.Children {
		child.writeText(b)
	}
}

func (n *Node) ChildCount() int {
	return len(n.Children)
}

func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) FirstChildOfKind(kind SyntaxKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind SyntaxKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstTokenOfKind returns the first direct leaf child holding a token of
// the given kind.
func (n *Node) FirstTokenOfKind(kind lexer.TokenKind) *Node {
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind == kind {
			return child
		}
	}
	return nil
}

// FindAll returns every descendant of the given kind in depth-first order,
// n itself included.
func (n *Node) FindAll(kind SyntaxKind) []*Node {
	var result []*Node
	n.Walk(func(m *Node) bool {
		if m.Kind == kind {
			result = append(result, m)
		}
		return true
	})
	return result
}

func (n *Node) ContainsKind(kind SyntaxKind) bool {
	found := false
	n.Walk(func(m *Node) bool {
		if m.Kind == kind {
			found = true
		}
		return !found
	})
	return found
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Tokens returns the leaf tokens under n in source order.
func (n *Node) Tokens() []lexer.Token {
	var tokens []lexer.Token
	n.Walk(func(m *Node) bool {
		if m.Token != nil {
			tokens = append(tokens, *m.Token)
		}
		return true
	})
	return tokens
}

// WithoutKinds returns a copy of n with every leaf whose token kind is in
// kinds removed. Interior nodes left without children are dropped too. The
// copy is not lossless.
func (n *Node) WithoutKinds(kinds ...lexer.TokenKind) *Node {
	drop := make(map[lexer.TokenKind]bool, len(kinds))
	for _, k := range kinds {
		drop[k] = true
	}
	return n.without(drop)
}

// WithoutTrivia drops whitespace, comments and newlines.
func (n *Node) WithoutTrivia() *Node {
	return n.WithoutKinds(lexer.TokenWhitespace, lexer.TokenComment, lexer.TokenRemComment, lexer.TokenNewline)
}

func (n *Node) without(drop map[lexer.TokenKind]bool) *Node {
	if n.Token != nil {
		if drop[n.Token.Kind] {
			return nil
		}
		tok := *n.Token
		return &Node{Kind: n.Kind, Span: n.Span, Token: &tok}
	}
	out := &Node{Kind: n.Kind, Span: n.Span}
	for _, child := range n.Children {
		out.AddChild(child.without(drop))
	}
	if len(out.Children) == 0 && len(n.Children) > 0 {
		return nil
	}
	return out
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := strings.Repeat("  ", indent)

	result := prefix
	if n.Token != nil {
		result += n.Token.Kind.String()
	} else {
		result += n.Kind.String()
	}
	if showPositions {
		result += " [" + strconv.Itoa(n.Span.Start) + "-" + strconv.Itoa(n.Span.End) + "]"
	}
	if n.Token != nil {
		result += " " + strconv.Quote(n.Token.Literal)
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}

// Tree is the result of parsing one file.
type Tree struct {
	File string
	Root *Node
	// DeclarationsEnd is the offset of the first procedure or executable
	// statement, or the end of input when there is none.
	DeclarationsEnd int
}

func (t *Tree) Text() string {
	return t.Root.Text()
}

func (t *Tree) ChildCount() int {
	return t.Root.ChildCount()
}

func (t *Tree) FirstChild() *Node {
	return t.Root.FirstChild()
}

func (t *Tree) FindAll(kind SyntaxKind) []*Node {
	return t.Root.FindAll(kind)
}

func (t *Tree) ContainsKind(kind SyntaxKind) bool {
	return t.Root.ContainsKind(kind)
}

func (t *Tree) Tokens() []lexer.Token {
	return t.Root.Tokens()
}

func (t *Tree) String() string {
	return t.Root.String()
}
