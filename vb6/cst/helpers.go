package cst

import (
	"strings"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

func spanAt(offset int) source.Span {
	return source.Span{Start: offset, End: offset}
}

func spanBetween(start, end int) source.Span {
	return source.Span{Start: start, End: end}
}

// reserved keywords never name a variable or procedure. Every other keyword
// doubles as an identifier where a name is expected, since VB6 reuses many
// of them as function names (Len, Date, Input, ...).
var reserved = map[lexer.TokenKind]bool{
	lexer.TokenAddressOf: true, lexer.TokenAnd: true, lexer.TokenAs: true,
	lexer.TokenAttribute: true, lexer.TokenByRef: true, lexer.TokenByVal: true,
	lexer.TokenCall: true, lexer.TokenCase: true, lexer.TokenConst: true,
	lexer.TokenDeclare: true, lexer.TokenDim: true, lexer.TokenDo: true,
	lexer.TokenEach: true, lexer.TokenElse: true, lexer.TokenElseIf: true,
	lexer.TokenEmpty: true, lexer.TokenEnd: true, lexer.TokenEnum: true,
	lexer.TokenEqv: true, lexer.TokenErase: true, lexer.TokenEvent: true,
	lexer.TokenExit: true, lexer.TokenFalse: true, lexer.TokenFor: true,
	lexer.TokenFriend: true, lexer.TokenFunction: true, lexer.TokenGoSub: true,
	lexer.TokenGoTo: true, lexer.TokenIf: true, lexer.TokenImp: true,
	lexer.TokenImplements: true, lexer.TokenIn: true, lexer.TokenIs: true,
	lexer.TokenLet: true, lexer.TokenLike: true, lexer.TokenLoop: true,
	lexer.TokenMod: true, lexer.TokenNew: true, lexer.TokenNext: true,
	lexer.TokenNot: true, lexer.TokenNothing: true, lexer.TokenNull: true,
	lexer.TokenOn: true, lexer.TokenOption: true, lexer.TokenOptional: true,
	lexer.TokenOr: true, lexer.TokenParamArray: true, lexer.TokenPreserve: true,
	lexer.TokenPrivate: true, lexer.TokenProperty: true, lexer.TokenPublic: true,
	lexer.TokenRaiseEvent: true, lexer.TokenReDim: true, lexer.TokenResume: true,
	lexer.TokenReturn: true, lexer.TokenSelect: true, lexer.TokenSet: true,
	lexer.TokenStatic: true, lexer.TokenStep: true, lexer.TokenStop: true,
	lexer.TokenSub: true, lexer.TokenThen: true, lexer.TokenTo: true,
	lexer.TokenTrue: true, lexer.TokenType: true, lexer.TokenTypeOf: true,
	lexer.TokenUntil: true, lexer.TokenWend: true, lexer.TokenWhile: true,
	lexer.TokenWith: true, lexer.TokenWithEvents: true, lexer.TokenXor: true,
}

// isName reports whether a token of this kind can stand for a name.
func isName(kind lexer.TokenKind) bool {
	return kind == lexer.TokenIdent || (kind.IsKeyword() && !reserved[kind])
}

// isMemberName is looser than isName: after a period any word names a
// member, as in obj.Print or rs.Type.
func isMemberName(kind lexer.TokenKind) bool {
	return kind == lexer.TokenIdent || kind.IsKeyword()
}

func isDefType(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenDefBool, lexer.TokenDefByte, lexer.TokenDefCur, lexer.TokenDefDate,
		lexer.TokenDefDbl, lexer.TokenDefDec, lexer.TokenDefInt, lexer.TokenDefLng,
		lexer.TokenDefObj, lexer.TokenDefSng, lexer.TokenDefStr, lexer.TokenDefVar:
		return true
	}
	return false
}

// dollarKeywords are keywords with a string-returning $ variant.
var dollarKeywords = map[lexer.TokenKind]bool{
	lexer.TokenError:  true,
	lexer.TokenLen:    true,
	lexer.TokenMid:    true,
	lexer.TokenMidB:   true,
	lexer.TokenDate:   true,
	lexer.TokenString: true,
	lexer.TokenTime:   true,
	lexer.TokenInput:  true,
}

// dollarFunctions are the identifiers with a $ variant.
var dollarFunctions = map[string]bool{
	"CHR": true, "CHRB": true, "CHRW": true, "COMMAND": true, "CURDIR": true,
	"DIR": true, "ENVIRON": true, "FORMAT": true, "HEX": true, "LCASE": true,
	"LEFT": true, "LEFTB": true, "LTRIM": true, "OCT": true, "RIGHT": true,
	"RIGHTB": true, "RTRIM": true, "SPACE": true, "STR": true, "TRIM": true,
	"UCASE": true,
}

// atDollarName reports whether the current token and an adjacent $ form a
// function name such as Mid$ or UCase$.
func (p *Parser) atDollarName() bool {
	tok := p.peek()
	if p.peekN(1).Kind != lexer.TokenDollar {
		return false
	}
	if dollarKeywords[tok.Kind] {
		return true
	}
	return tok.Kind == lexer.TokenIdent && dollarFunctions[strings.ToUpper(tok.Literal)]
}

// isModifier reports whether tok is an access or storage modifier that may
// open a declaration. Global is not a keyword of the lexer and is matched
// by spelling.
func isModifier(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.TokenPublic, lexer.TokenPrivate, lexer.TokenFriend, lexer.TokenStatic, lexer.TokenDim:
		return true
	case lexer.TokenIdent:
		return strings.EqualFold(tok.Literal, "Global")
	}
	return false
}

// modifiers attaches a run of modifiers and their blanks.
func (p *Parser) modifiers(n *Node) {
	for isModifier(p.sig()) {
		p.ws(n)
		p.bump(n)
	}
}

// name attaches one name leaf, merging a $ suffix where it names a
// function. It reports false, attaching nothing, when no name follows.
func (p *Parser) name(n *Node) bool {
	if !isName(p.sig().Kind) {
		return false
	}
	p.ws(n)
	p.word(n)
	return true
}

// expectName is name plus an ExpectedToken diagnostic.
func (p *Parser) expectName(n *Node, what string) bool {
	if p.name(n) {
		return true
	}
	tok := p.sig()
	p.diags.AddExpected(tok.Span.Start, diag.CategoryExpectedToken, tok.Literal, what)
	return false
}

// typeSuffix attaches a type declaration character glued to the previous
// name, as in count% or total@. Ampersand and bang only count when no word
// follows them, so that a&b and rs!Field keep their meaning.
func (p *Parser) typeSuffix(n *Node) {
	switch p.peek().Kind {
	case lexer.TokenPercent, lexer.TokenHash, lexer.TokenAt, lexer.TokenDollar:
		p.bump(n)
	case lexer.TokenAmpersand, lexer.TokenBang:
		next := p.peekN(1).Kind
		if !isMemberName(next) && next != lexer.TokenNumber {
			p.bump(n)
		}
	}
}

// atProcedureStart reports whether the next significant tokens open a
// procedure, which no statement block may swallow.
func (p *Parser) atProcedureStart() bool {
	i := p.skip()
	for isModifier(p.peekN(i)) && p.peekN(i).Kind != lexer.TokenDim {
		i++
		for p.peekN(i).Kind == lexer.TokenWhitespace {
			i++
		}
	}
	switch p.peekN(i).Kind {
	case lexer.TokenSub, lexer.TokenFunction:
		return true
	case lexer.TokenProperty:
		j := i + 1
		for p.peekN(j).Kind == lexer.TokenWhitespace {
			j++
		}
		switch p.peekN(j).Kind {
		case lexer.TokenGet, lexer.TokenLet, lexer.TokenSet:
			return true
		}
	}
	return false
}

// atEndOf reports whether the next significant tokens are End followed by
// closer, as in "End Sub".
func (p *Parser) atEndOf(closer lexer.TokenKind) bool {
	return p.checkSig(lexer.TokenEnd) && p.sigAfter().Kind == closer
}

// atProcedureEnd reports whether an End Sub, End Function or End Property
// follows.
func (p *Parser) atProcedureEnd() bool {
	return p.atEndOf(lexer.TokenSub) || p.atEndOf(lexer.TokenFunction) || p.atEndOf(lexer.TokenProperty)
}

// closeBlock attaches "End <closer>" and the rest of its line, or reports
// the block as unclosed.
func (p *Parser) closeBlock(n *Node, closer lexer.TokenKind) {
	if !p.atEndOf(closer) {
		p.unclosed(n, "End "+closer.String())
		return
	}
	p.ws(n)
	p.bump(n)
	p.ws(n)
	p.bump(n)
	p.endStatement(n)
}
