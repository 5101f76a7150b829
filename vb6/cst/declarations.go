package cst

import (
	"strings"

	"github.com/dhamidi/vbt/vb6/lexer"
)

// declarationKind looks past modifiers to the keyword that decides which
// declaration follows. ok is false when no modifier or declaration keyword
// starts the statement.
func (p *Parser) declarationKind() (kind lexer.TokenKind, ok bool) {
	i := p.skip()
	modified := false
	for isModifier(p.peekN(i)) {
		modified = true
		i++
		for p.peekN(i).Kind == lexer.TokenWhitespace {
			i++
		}
	}
	kind = p.peekN(i).Kind
	switch kind {
	case lexer.TokenSub, lexer.TokenFunction, lexer.TokenEnum, lexer.TokenDeclare,
		lexer.TokenEvent, lexer.TokenConst:
		return kind, true
	case lexer.TokenProperty, lexer.TokenType:
		next := i + 1
		for p.peekN(next).Kind == lexer.TokenWhitespace {
			next++
		}
		if kind == lexer.TokenProperty || p.peekN(next).Kind != lexer.TokenEqual {
			return kind, true
		}
	}
	return lexer.TokenDim, modified
}

func (p *Parser) atDeclaration() bool {
	_, ok := p.declarationKind()
	return ok
}

// parseDeclaration parses a module-level declaration or procedure,
// including its leading modifiers.
func (p *Parser) parseDeclaration() *Node {
	kind, _ := p.declarationKind()
	switch kind {
	case lexer.TokenSub:
		return p.parseProcedure(KindSubStatement, lexer.TokenSub)
	case lexer.TokenFunction:
		return p.parseProcedure(KindFunctionStatement, lexer.TokenFunction)
	case lexer.TokenProperty:
		return p.parseProcedure(KindPropertyStatement, lexer.TokenProperty)
	case lexer.TokenEnum:
		return p.parseEnum()
	case lexer.TokenType:
		return p.parseType()
	case lexer.TokenDeclare:
		return p.parseDeclare()
	case lexer.TokenEvent:
		return p.parseEvent()
	case lexer.TokenConst:
		return p.parseDim(KindConstStatement)
	}
	return p.parseDim(KindDimStatement)
}

// parseProcedure parses Sub, Function and Property Get/Let/Set with their
// bodies.
func (p *Parser) parseProcedure(kind SyntaxKind, keyword lexer.TokenKind) *Node {
	p.markBody()
	n := p.startNode(kind)
	p.modifiers(n)
	p.ws(n)
	p.bump(n)
	if keyword == lexer.TokenProperty {
		if !p.accept(n, lexer.TokenGet) && !p.accept(n, lexer.TokenLet) && !p.accept(n, lexer.TokenSet) {
			p.expect(n, lexer.TokenGet, "Get")
		}
	}
	if p.expectName(n, "procedure name") {
		p.typeSuffix(n)
	}
	if p.checkSig(lexer.TokenLParen) {
		n.AddChild(p.parseParameterList())
	}
	if p.checkSig(lexer.TokenAs) {
		n.AddChild(p.parseTypeClause())
	}
	p.endStatement(n)

	p.pendingNext = 0
	n.AddChild(p.parseBlock(func() bool {
		return p.atProcedureEnd() || p.atProcedureStart()
	}))
	p.closeBlock(n, keyword)
	return p.finishNode(n)
}

// parseBlock parses statements until stop reports true at the start of a
// statement or input ends.
func (p *Parser) parseBlock(stop func() bool) *Node {
	n := p.startNode(KindCodeBlock)
	for !p.atEnd() {
		if p.skipTrivia(n) {
			continue
		}
		if stop() {
			break
		}
		progress := p.mustProgress(n)
		n.AddChild(p.parseStatement())
		if !progress() {
			break
		}
	}
	return p.finishNode(n)
}

func (p *Parser) parseParameterList() *Node {
	n := p.startNode(KindParameterList)
	p.ws(n)
	p.bump(n)
	for !p.checkSig(lexer.TokenRParen) && !p.atLineEnd() {
		progress := p.mustProgress(n)
		n.AddChild(p.parseParameter())
		if !p.accept(n, lexer.TokenComma) {
			break
		}
		if !progress() {
			break
		}
	}
	p.expect(n, lexer.TokenRParen, ")")
	return p.finishNode(n)
}

// parseParameter parses
// [Optional] [ByVal|ByRef] [ParamArray] name[()] [As type] [= default].
func (p *Parser) parseParameter() *Node {
	n := p.startNode(KindParameter)
	for p.accept(n, lexer.TokenOptional) || p.accept(n, lexer.TokenByVal) ||
		p.accept(n, lexer.TokenByRef) || p.accept(n, lexer.TokenParamArray) {
	}
	p.expectName(n, "parameter name")
	p.typeSuffix(n)
	if p.accept(n, lexer.TokenLParen) {
		p.expect(n, lexer.TokenRParen, ")")
	}
	if p.checkSig(lexer.TokenAs) {
		n.AddChild(p.parseTypeClause())
	}
	if p.accept(n, lexer.TokenEqual) {
		p.ws(n)
		n.AddChild(p.parseExpression())
	}
	return p.finishNode(n)
}

// parseTypeClause parses "As [New] name[.name] [* length]".
func (p *Parser) parseTypeClause() *Node {
	n := p.startNode(KindTypeClause)
	p.ws(n)
	p.bump(n)
	p.accept(n, lexer.TokenNew)
	p.expectName(n, "type name")
	for p.check(lexer.TokenDot) {
		p.bump(n)
		if !isMemberName(p.peek().Kind) {
			break
		}
		p.bump(n)
	}
	if p.accept(n, lexer.TokenStar) {
		p.ws(n)
		n.AddChild(p.parsePrimary())
	}
	return p.finishNode(n)
}

// parseDim parses Dim, Const, ReDim and modifier-led variable lists.
func (p *Parser) parseDim(kind SyntaxKind) *Node {
	n := p.startNode(kind)
	p.modifiers(n)
	switch kind {
	case KindConstStatement:
		p.expect(n, lexer.TokenConst, "Const")
	case KindReDimStatement:
		p.ws(n)
		p.bump(n)
		p.accept(n, lexer.TokenPreserve)
	}
	for {
		progress := p.mustProgress(n)
		n.AddChild(p.parseVariable(kind))
		if !p.accept(n, lexer.TokenComma) || !progress() {
			break
		}
	}
	p.endStatement(n)
	return p.finishNode(n)
}

// parseVariable parses one entry of a declaration list:
// [WithEvents] name[suffix] [(bounds)] [As type] [= value].
func (p *Parser) parseVariable(kind SyntaxKind) *Node {
	n := p.startNode(KindVariableDeclaration)
	p.accept(n, lexer.TokenWithEvents)
	p.expectName(n, "variable name")
	p.typeSuffix(n)
	if p.checkSig(lexer.TokenLParen) {
		n.AddChild(p.parseArrayBounds())
	}
	if p.checkSig(lexer.TokenAs) {
		n.AddChild(p.parseTypeClause())
	}
	if kind == KindConstStatement {
		if p.expect(n, lexer.TokenEqual, "=") {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
	}
	return p.finishNode(n)
}

// parseArrayBounds parses "([lower To] upper, ...)". The parentheses may be
// empty for dynamic arrays.
func (p *Parser) parseArrayBounds() *Node {
	n := p.startNode(KindArrayBounds)
	p.ws(n)
	p.bump(n)
	for !p.checkSig(lexer.TokenRParen) && !p.atLineEnd() {
		progress := p.mustProgress(n)
		p.ws(n)
		n.AddChild(p.parseExpression())
		if p.accept(n, lexer.TokenTo) {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
		if !p.accept(n, lexer.TokenComma) || !progress() {
			break
		}
	}
	p.expect(n, lexer.TokenRParen, ")")
	return p.finishNode(n)
}

// parseDeclare parses an external procedure declaration. Everything after
// the name is kept as written, apart from the parameter list.
func (p *Parser) parseDeclare() *Node {
	n := p.startNode(KindDeclareStatement)
	p.modifiers(n)
	p.ws(n)
	p.bump(n)
	if p.checkSig(lexer.TokenIdent) && strings.EqualFold(p.sig().Literal, "PtrSafe") {
		p.ws(n)
		p.bump(n)
	}
	if !p.accept(n, lexer.TokenSub) {
		p.expect(n, lexer.TokenFunction, "Sub or Function")
	}
	p.expectName(n, "procedure name")
	for !p.atStatementEnd() {
		if p.checkSig(lexer.TokenLParen) {
			n.AddChild(p.parseParameterList())
			continue
		}
		if p.checkSig(lexer.TokenAs) {
			n.AddChild(p.parseTypeClause())
			continue
		}
		p.ws(n)
		p.word(n)
	}
	p.endStatement(n)
	return p.finishNode(n)
}

func (p *Parser) parseEvent() *Node {
	n := p.startNode(KindEventStatement)
	p.modifiers(n)
	p.ws(n)
	p.bump(n)
	p.expectName(n, "event name")
	if p.checkSig(lexer.TokenLParen) {
		n.AddChild(p.parseParameterList())
	}
	p.endStatement(n)
	return p.finishNode(n)
}

// parseEnum parses an Enum block. Members are "name [= value]" lines.
func (p *Parser) parseEnum() *Node {
	n := p.startNode(KindEnumStatement)
	p.modifiers(n)
	p.ws(n)
	p.bump(n)
	p.expectName(n, "enum name")
	p.endStatement(n)

	p.members(n, lexer.TokenEnum, func() *Node {
		m := p.startNode(KindEnumMember)
		p.ws(m)
		if p.check(lexer.TokenLBracket) {
			p.bracketedName(m)
		} else {
			p.expectName(m, "member name")
		}
		if p.accept(m, lexer.TokenEqual) {
			p.ws(m)
			m.AddChild(p.parseExpression())
		}
		p.endStatement(m)
		return p.finishNode(m)
	})
	p.closeBlock(n, lexer.TokenEnum)
	return p.finishNode(n)
}

// parseType parses a user-defined Type block. Members are
// "name[(bounds)] As type" lines.
func (p *Parser) parseType() *Node {
	n := p.startNode(KindTypeStatement)
	p.modifiers(n)
	p.ws(n)
	p.bump(n)
	p.expectName(n, "type name")
	p.endStatement(n)

	p.members(n, lexer.TokenType, func() *Node {
		m := p.startNode(KindTypeMember)
		p.expectName(m, "member name")
		if p.checkSig(lexer.TokenLParen) {
			m.AddChild(p.parseArrayBounds())
		}
		if p.checkSig(lexer.TokenAs) {
			m.AddChild(p.parseTypeClause())
		} else {
			p.expect(m, lexer.TokenAs, "As")
		}
		p.endStatement(m)
		return p.finishNode(m)
	})
	p.closeBlock(n, lexer.TokenType)
	return p.finishNode(n)
}

// members parses the lines of an Enum or Type block until its End line.
// A procedure or another declaration also ends the block, so a missing
// End does not swallow the rest of the module.
func (p *Parser) members(n *Node, closer lexer.TokenKind, member func() *Node) {
	for !p.atEnd() {
		if p.skipTrivia(n) {
			continue
		}
		if p.atEndOf(closer) || p.atProcedureStart() || isModifier(p.sig()) {
			return
		}
		progress := p.mustProgress(n)
		n.AddChild(member())
		if !progress() {
			return
		}
	}
}

// bracketedName attaches a [name] escape, used for enum members that are
// not valid identifiers.
func (p *Parser) bracketedName(n *Node) {
	p.bump(n)
	for !p.check(lexer.TokenRBracket) && !p.atLineEnd() {
		p.bump(n)
	}
	p.expect(n, lexer.TokenRBracket, "]")
}
