package cst

import (
	"strings"

	"github.com/dhamidi/vbt/vb6/lexer"
)

func isWord(tok lexer.Token, word string) bool {
	return tok.Kind == lexer.TokenIdent && strings.EqualFold(tok.Literal, word)
}

// parsePropertiesBlock parses a BEGIN ... END block of the preamble, or a
// BeginProperty ... EndProperty group inside one.
func (p *Parser) parsePropertiesBlock() *Node {
	n := p.startNode(KindPropertiesBlock)
	group := isWord(p.peek(), "BeginProperty")
	p.bump(n)
	p.tail(n)
	p.endStatement(n)

	for !p.atEnd() {
		if p.skipTrivia(n) {
			continue
		}
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokenBegin || isWord(tok, "BeginProperty"):
			n.AddChild(p.parsePropertiesBlock())
		case tok.Kind == lexer.TokenEnd || isWord(tok, "EndProperty"):
			if group != isWord(tok, "EndProperty") {
				p.unclosed(n, closerFor(group))
			}
			p.bump(n)
			p.endStatement(n)
			return p.finishNode(n)
		default:
			progress := p.mustProgress(n)
			n.AddChild(p.parseProperty())
			progress()
		}
	}
	p.unclosed(n, closerFor(group))
	return p.finishNode(n)
}

func closerFor(group bool) string {
	if group {
		return "EndProperty"
	}
	return "End"
}

// parseProperty parses "key = value". The value is kept as written up to
// the comment or end of line.
func (p *Parser) parseProperty() *Node {
	n := p.startNode(KindProperty)

	key := p.startNode(KindPropertyKey)
	for !p.checkSig(lexer.TokenEqual) && !p.atLineEnd() {
		p.ws(key)
		p.word(key)
	}
	if len(key.Children) > 0 {
		n.AddChild(p.finishNode(key))
	}

	if p.expect(n, lexer.TokenEqual, "=") {
		p.ws(n)
		value := p.startNode(KindPropertyValue)
		for !p.atLineEnd() {
			p.ws(value)
			p.word(value)
		}
		if len(value.Children) > 0 {
			n.AddChild(p.finishNode(value))
		}
	}
	p.endStatement(n)
	return p.finishNode(n)
}
