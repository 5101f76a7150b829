package codebase

import (
	"github.com/dhamidi/vbt/vb6/cst"
	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

type SymbolKind int

const (
	SymbolSub SymbolKind = iota
	SymbolFunction
	SymbolProperty
	SymbolDeclare
	SymbolEvent
	SymbolEnum
	SymbolEnumMember
	SymbolType
	SymbolTypeMember
	SymbolConst
	SymbolVariable
)

var symbolKindNames = map[SymbolKind]string{
	SymbolSub:        "sub",
	SymbolFunction:   "function",
	SymbolProperty:   "property",
	SymbolDeclare:    "declare",
	SymbolEvent:      "event",
	SymbolEnum:       "enum",
	SymbolEnumMember: "enum member",
	SymbolType:       "type",
	SymbolTypeMember: "type member",
	SymbolConst:      "const",
	SymbolVariable:   "variable",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Symbol is a module-level declaration. Span covers the whole declaration,
// NameSpan just its name.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Span     source.Span
	NameSpan source.Span
	Children []Symbol
}

// Symbols lists the declarations made directly in the module, in source
// order. Declarations without a name are left out.
func Symbols(tree *cst.Tree) []Symbol {
	if tree == nil || tree.Root == nil {
		return nil
	}
	var out []Symbol
	for _, n := range tree.Root.Children {
		out = append(out, symbolsOf(n)...)
	}
	return out
}

func symbolsOf(n *cst.Node) []Symbol {
	switch n.Kind {
	case cst.KindSubStatement:
		return named(n, SymbolSub, lexer.TokenSub)
	case cst.KindFunctionStatement:
		return named(n, SymbolFunction, lexer.TokenFunction)
	case cst.KindPropertyStatement:
		return named(n, SymbolProperty, lexer.TokenProperty)
	case cst.KindDeclareStatement:
		return named(n, SymbolDeclare, lexer.TokenSub, lexer.TokenFunction)
	case cst.KindEventStatement:
		return named(n, SymbolEvent, lexer.TokenEvent)
	case cst.KindEnumStatement:
		return container(n, SymbolEnum, lexer.TokenEnum, cst.KindEnumMember, SymbolEnumMember)
	case cst.KindTypeStatement:
		return container(n, SymbolType, lexer.TokenType, cst.KindTypeMember, SymbolTypeMember)
	case cst.KindConstStatement:
		return variables(n, SymbolConst)
	case cst.KindDimStatement:
		return variables(n, SymbolVariable)
	}
	return nil
}

func named(n *cst.Node, kind SymbolKind, keywords ...lexer.TokenKind) []Symbol {
	tok, ok := nameAfter(n, keywords...)
	if !ok {
		return nil
	}
	return []Symbol{{Name: tok.Literal, Kind: kind, Span: n.Span, NameSpan: tok.Span}}
}

func container(n *cst.Node, kind SymbolKind, keyword lexer.TokenKind, memberKind cst.SyntaxKind, member SymbolKind) []Symbol {
	syms := named(n, kind, keyword)
	if syms == nil {
		return nil
	}
	for _, m := range n.ChildrenOfKind(memberKind) {
		syms[0].Children = append(syms[0].Children, named(m, member)...)
	}
	return syms
}

func variables(n *cst.Node, kind SymbolKind) []Symbol {
	var out []Symbol
	for _, v := range n.ChildrenOfKind(cst.KindVariableDeclaration) {
		out = append(out, named(v, kind)...)
	}
	return out
}

// nameAfter finds the name leaf of a declaration. With keywords, the name
// is the first word after one of them; without, the first word of n.
// Modifiers, accessor keywords and line continuations are skipped.
func nameAfter(n *cst.Node, keywords ...lexer.TokenKind) (lexer.Token, bool) {
	started := len(keywords) == 0
	for _, child := range n.Children {
		if !child.IsToken() {
			if started {
				break
			}
			continue
		}
		tok := *child.Token
		if tok.Kind.IsTrivia() {
			continue
		}
		if !started {
			for _, k := range keywords {
				if tok.Kind == k {
					started = true
				}
			}
			continue
		}
		switch tok.Kind {
		case lexer.TokenGet, lexer.TokenLet, lexer.TokenSet, lexer.TokenWithEvents,
			lexer.TokenLBracket, lexer.TokenUnderscore, lexer.TokenNewline:
			continue
		}
		if tok.Kind == lexer.TokenIdent || tok.Kind.IsKeyword() {
			return tok, true
		}
		break
	}
	return lexer.Token{}, false
}
