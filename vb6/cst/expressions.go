package cst

import (
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/lexer"
)

type precedence int

// Operator precedence from loosest to tightest binding.
const (
	precLowest precedence = iota
	precImp
	precEqv
	precXor
	precOr
	precAnd
	precNot
	precCompare
	precConcat
	precAdditive
	precMod
	precIntDiv
	precMultiplicative
	precNegate
	precPower
)

var binaryPrecedence = map[lexer.TokenKind]precedence{
	lexer.TokenImp:       precImp,
	lexer.TokenEqv:       precEqv,
	lexer.TokenXor:       precXor,
	lexer.TokenOr:        precOr,
	lexer.TokenAnd:       precAnd,
	lexer.TokenEqual:     precCompare,
	lexer.TokenLT:        precCompare,
	lexer.TokenGT:        precCompare,
	lexer.TokenIs:        precCompare,
	lexer.TokenLike:      precCompare,
	lexer.TokenAmpersand: precConcat,
	lexer.TokenPlus:      precAdditive,
	lexer.TokenMinus:     precAdditive,
	lexer.TokenMod:       precMod,
	lexer.TokenBackslash: precIntDiv,
	lexer.TokenStar:      precMultiplicative,
	lexer.TokenSlash:     precMultiplicative,
	lexer.TokenCaret:     precPower,
}

// binaryOperator reports the operator at the next significant token and
// how many tokens it spans. <>, <= and >= are two adjacent symbols.
func (p *Parser) binaryOperator() (prec precedence, width int, ok bool) {
	i := p.skip()
	tok := p.peekN(i)
	prec, ok = binaryPrecedence[tok.Kind]
	if !ok {
		return precLowest, 0, false
	}
	next := p.peekN(i + 1).Kind
	switch tok.Kind {
	case lexer.TokenLT:
		if next == lexer.TokenGT || next == lexer.TokenEqual {
			return prec, 2, true
		}
	case lexer.TokenGT, lexer.TokenEqual:
		if next == lexer.TokenEqual || (tok.Kind == lexer.TokenEqual && (next == lexer.TokenLT || next == lexer.TokenGT)) {
			return prec, 2, true
		}
	}
	return prec, 1, true
}

// parseExpression parses a full expression. The next token must be
// significant; callers attach leading blanks first.
func (p *Parser) parseExpression() *Node {
	return p.parseBinary(precImp)
}

func (p *Parser) parseBinary(min precedence) *Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec, width, ok := p.binaryOperator()
		if !ok || prec < min {
			return left
		}
		n := &Node{Kind: KindBinaryExpression}
		n.AddChild(left)
		p.ws(n)
		for i := 0; i < width; i++ {
			p.bump(n)
		}
		p.ws(n)
		n.AddChild(p.parseBinary(prec + 1))
		left = p.finishNode(n)
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case lexer.TokenNot:
		n := p.startNode(KindUnaryExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parseBinary(precCompare))
		return p.finishNode(n)
	case lexer.TokenMinus, lexer.TokenPlus:
		n := p.startNode(KindUnaryExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parseBinary(precPower))
		return p.finishNode(n)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by member accesses and argument
// lists. Both must follow without blanks.
func (p *Parser) parsePostfix() *Node {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}
	for {
		switch p.peek().Kind {
		case lexer.TokenDot, lexer.TokenBang:
			if !isMemberName(p.peekN(1).Kind) {
				return left
			}
			n := &Node{Kind: KindMemberAccessExpression}
			n.AddChild(left)
			p.bump(n)
			p.word(n)
			p.typeSuffix(n)
			left = p.finishNode(n)
		case lexer.TokenLParen:
			n := &Node{Kind: KindCallExpression}
			n.AddChild(left)
			p.bump(n)
			p.ws(n)
			if args := p.parseArguments(true); args != nil {
				n.AddChild(args)
			}
			p.expect(n, lexer.TokenRParen, ")")
			left = p.finishNode(n)
		default:
			return left
		}
	}
}

// parseArguments parses a comma separated argument list. Inside
// parentheses it ends at the closing parenthesis; without them it ends with
// the statement. It returns nil for an empty list.
func (p *Parser) parseArguments(parenthesized bool) *Node {
	n := p.startNode(KindArgumentList)
	done := func() bool {
		if parenthesized {
			return p.checkSig(lexer.TokenRParen) || p.atLineEnd()
		}
		return p.atStatementEnd()
	}
	for !done() {
		start := p.pos
		p.ws(n)
		if p.atSeparator(parenthesized) {
			p.bump(n)
			continue
		}
		n.AddChild(p.parseArgument())
		if p.checkSig(lexer.TokenComma) || p.checkSig(lexer.TokenSemicolon) {
			p.ws(n)
			if p.atSeparator(parenthesized) {
				p.bump(n)
			}
		}
		if p.pos == start {
			break
		}
	}
	if len(n.Children) == 0 {
		return nil
	}
	return p.finishNode(n)
}

// atSeparator reports whether an argument separator is next. Print style
// calls such as Debug.Print a; b also separate with semicolons.
func (p *Parser) atSeparator(parenthesized bool) bool {
	return p.check(lexer.TokenComma) || (!parenthesized && p.check(lexer.TokenSemicolon))
}

// parseArgument parses [name:=] [ByVal] expression.
func (p *Parser) parseArgument() *Node {
	n := p.startNode(KindArgument)
	if isName(p.peek().Kind) && p.namedArgumentFollows() {
		p.word(n)
		p.ws(n)
		p.bump(n)
		p.bump(n)
		p.ws(n)
	}
	if p.accept(n, lexer.TokenByVal) || p.accept(n, lexer.TokenByRef) {
		p.ws(n)
	}
	n.AddChild(p.parseExpression())
	if len(n.Children) == 0 {
		return nil
	}
	return p.finishNode(n)
}

// namedArgumentFollows reports whether the current name is followed by :=.
func (p *Parser) namedArgumentFollows() bool {
	i := 1
	if p.peekN(1).Kind == lexer.TokenDollar {
		i++
	}
	for p.peekN(i).Kind == lexer.TokenWhitespace {
		i++
	}
	return p.peekN(i).Kind == lexer.TokenColon && p.peekN(i+1).Kind == lexer.TokenEqual
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.TokenNumber:
		return p.parseNumber()
	case tok.Kind == lexer.TokenAmpersand && p.atRadixLiteral():
		return p.parseNumber()
	case tok.Kind == lexer.TokenDot && p.peekN(1).Kind == lexer.TokenNumber:
		return p.parseNumber()
	case tok.Kind == lexer.TokenStringLiteral:
		return p.single(KindStringLiteralExpression)
	case tok.Kind == lexer.TokenTrue || tok.Kind == lexer.TokenFalse:
		return p.single(KindBooleanLiteralExpression)
	case tok.Kind == lexer.TokenNothing || tok.Kind == lexer.TokenEmpty || tok.Kind == lexer.TokenNull:
		return p.single(KindLiteralExpression)
	case tok.Kind == lexer.TokenHash:
		return p.parseDateLiteral()
	case tok.Kind == lexer.TokenLParen:
		n := p.startNode(KindParenthesizedExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parseExpression())
		p.expect(n, lexer.TokenRParen, ")")
		return p.finishNode(n)
	case tok.Kind == lexer.TokenNew:
		n := p.startNode(KindNewExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parsePostfix())
		return p.finishNode(n)
	case tok.Kind == lexer.TokenAddressOf:
		n := p.startNode(KindAddressOfExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parsePostfix())
		return p.finishNode(n)
	case tok.Kind == lexer.TokenTypeOf:
		n := p.startNode(KindTypeOfExpression)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parsePostfix())
		if p.expect(n, lexer.TokenIs, "Is") {
			p.ws(n)
			n.AddChild(p.parsePostfix())
		}
		return p.finishNode(n)
	case tok.Kind == lexer.TokenDot || tok.Kind == lexer.TokenBang:
		// A member of the enclosing With object.
		if !isMemberName(p.peekN(1).Kind) {
			break
		}
		n := p.startNode(KindMemberAccessExpression)
		p.bump(n)
		p.word(n)
		p.typeSuffix(n)
		return p.finishNode(n)
	case isName(tok.Kind):
		n := p.startNode(KindIdentifierExpression)
		p.word(n)
		p.typeSuffix(n)
		return p.finishNode(n)
	}
	p.diags.AddExpected(tok.Span.Start, diag.CategoryExpectedToken, tok.Literal, "expression")
	return nil
}

func (p *Parser) single(kind SyntaxKind) *Node {
	n := p.startNode(kind)
	p.bump(n)
	return p.finishNode(n)
}

// atRadixLiteral reports whether & starts a hexadecimal or octal literal
// such as &HFF or &O17.
func (p *Parser) atRadixLiteral() bool {
	next := p.peekN(1)
	if next.Kind != lexer.TokenIdent || len(next.Literal) < 2 {
		return false
	}
	switch next.Literal[0] {
	case 'H', 'h':
		for _, c := range []byte(next.Literal[1:]) {
			if !isHexDigit(c) {
				return false
			}
		}
		return true
	case 'O', 'o':
		for _, c := range []byte(next.Literal[1:]) {
			if c < '0' || c > '7' {
				return false
			}
		}
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// parseNumber gathers the tokens of one numeric literal: digits, an
// optional fraction and exponent, a radix prefix and a type suffix.
func (p *Parser) parseNumber() *Node {
	n := p.startNode(KindNumericLiteralExpression)
	switch p.peek().Kind {
	case lexer.TokenAmpersand:
		p.bump(n)
		p.bump(n)
	case lexer.TokenDot:
		p.bump(n)
		p.bump(n)
	default:
		p.bump(n)
		if p.check(lexer.TokenDot) && p.peekN(1).Kind == lexer.TokenNumber {
			p.bump(n)
			p.bump(n)
		}
	}
	p.exponent(n)
	p.typeSuffix(n)
	return p.finishNode(n)
}

// exponent attaches an exponent such as E10 or E-3. The lexer splits
// "1E-3" into a number, the word E, a minus and a number.
func (p *Parser) exponent(n *Node) {
	tok := p.peek()
	if tok.Kind != lexer.TokenIdent || (tok.Literal[0] != 'E' && tok.Literal[0] != 'e' && tok.Literal[0] != 'D' && tok.Literal[0] != 'd') {
		return
	}
	for _, c := range []byte(tok.Literal[1:]) {
		if c < '0' || c > '9' {
			return
		}
	}
	if len(tok.Literal) > 1 {
		p.bump(n)
		return
	}
	sign := p.peekN(1).Kind
	if (sign == lexer.TokenPlus || sign == lexer.TokenMinus) && p.peekN(2).Kind == lexer.TokenNumber {
		p.bump(n)
		p.bump(n)
		p.bump(n)
	}
}

// parseDateLiteral parses #...# on one line.
func (p *Parser) parseDateLiteral() *Node {
	n := p.startNode(KindLiteralExpression)
	p.bump(n)
	for !p.check(lexer.TokenHash) && !p.match(lexer.TokenNewline, lexer.TokenEOF) {
		p.bump(n)
	}
	p.expect(n, lexer.TokenHash, "#")
	return p.finishNode(n)
}
