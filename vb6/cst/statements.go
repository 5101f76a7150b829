package cst

import (
	"github.com/dhamidi/vbt/vb6/lexer"
)

// lineStatements are built-in statements whose operands the tree keeps
// verbatim.
var lineStatements = map[lexer.TokenKind]SyntaxKind{
	lexer.TokenAppActivate:   KindAppActivateStatement,
	lexer.TokenBeep:          KindBeepStatement,
	lexer.TokenChDir:         KindChDirStatement,
	lexer.TokenChDrive:       KindChDriveStatement,
	lexer.TokenClose:         KindCloseStatement,
	lexer.TokenDate:          KindDateStatement,
	lexer.TokenDeleteSetting: KindDeleteSettingStatement,
	lexer.TokenError:         KindErrorStatement,
	lexer.TokenFileCopy:      KindFileCopyStatement,
	lexer.TokenGet:           KindGetStatement,
	lexer.TokenPut:           KindPutStatement,
	lexer.TokenInput:         KindInputStatement,
	lexer.TokenKill:          KindKillStatement,
	lexer.TokenLoad:          KindLoadStatement,
	lexer.TokenUnload:        KindUnloadStatement,
	lexer.TokenLock:          KindLockStatement,
	lexer.TokenUnlock:        KindUnlockStatement,
	lexer.TokenLSet:          KindLSetStatement,
	lexer.TokenRSet:          KindRSetStatement,
	lexer.TokenMid:           KindMidStatement,
	lexer.TokenMidB:          KindMidBStatement,
	lexer.TokenMkDir:         KindMkDirStatement,
	lexer.TokenRmDir:         KindRmDirStatement,
	lexer.TokenName:          KindNameStatement,
	lexer.TokenOpen:          KindOpenStatement,
	lexer.TokenPrint:         KindPrintStatement,
	lexer.TokenRandomize:     KindRandomizeStatement,
	lexer.TokenReset:         KindResetStatement,
	lexer.TokenSavePicture:   KindSavePictureStatement,
	lexer.TokenSaveSetting:   KindSaveSettingStatement,
	lexer.TokenSeek:          KindSeekStatement,
	lexer.TokenSendKeys:      KindSendKeysStatement,
	lexer.TokenSetAttr:       KindSetAttrStatement,
	lexer.TokenTime:          KindTimeStatement,
	lexer.TokenWidth:         KindWidthStatement,
	lexer.TokenWrite:         KindWriteStatement,
}

// simpleStatements are a keyword followed by operands kept verbatim.
var simpleStatements = map[lexer.TokenKind]SyntaxKind{
	lexer.TokenGoTo:   KindGotoStatement,
	lexer.TokenGoSub:  KindGoSubStatement,
	lexer.TokenReturn: KindReturnStatement,
	lexer.TokenResume: KindResumeStatement,
	lexer.TokenExit:   KindExitStatement,
	lexer.TokenStop:   KindStopStatement,
	lexer.TokenErase:  KindEraseStatement,
}

// parseStatement parses one statement of a procedure body, or a stray
// statement at module level. Executable statements end the declarations
// region.
func (p *Parser) parseStatement() *Node {
	tok := p.peek()

	switch {
	case tok.Kind == lexer.TokenConst:
		return p.parseDim(KindConstStatement)
	case isModifier(tok):
		if kind, _ := p.declarationKind(); kind == lexer.TokenConst {
			return p.parseDim(KindConstStatement)
		}
		return p.parseDim(KindDimStatement)
	case tok.Kind == lexer.TokenAttribute:
		return p.parseLineStatement(KindAttributeStatement)
	}

	if n := p.parseExecutable(tok); n != nil {
		return n
	}
	return p.errorLine()
}

// parseExecutable returns nil, consuming nothing, when tok cannot start a
// statement.
func (p *Parser) parseExecutable(tok lexer.Token) *Node {
	if kind, ok := simpleStatements[tok.Kind]; ok {
		p.markBody()
		return p.parseLineStatement(kind)
	}

	switch tok.Kind {
	case lexer.TokenIf:
		p.markBody()
		return p.parseIf()
	case lexer.TokenSelect:
		p.markBody()
		return p.parseSelect()
	case lexer.TokenFor:
		p.markBody()
		return p.parseFor()
	case lexer.TokenDo:
		p.markBody()
		return p.parseDo()
	case lexer.TokenWhile:
		p.markBody()
		return p.parseWhile()
	case lexer.TokenWith:
		p.markBody()
		return p.parseWith()
	case lexer.TokenEnd:
		if closesBlock(p.sigAfter().Kind) {
			return nil
		}
		p.markBody()
		return p.parseLineStatement(KindEndStatement)
	case lexer.TokenOn:
		p.markBody()
		return p.parseOnStatement()
	case lexer.TokenCall:
		p.markBody()
		return p.parseCall()
	case lexer.TokenSet:
		p.markBody()
		return p.parseKeywordAssignment(KindSetStatement)
	case lexer.TokenLet:
		p.markBody()
		return p.parseKeywordAssignment(KindLetStatement)
	case lexer.TokenRaiseEvent:
		p.markBody()
		return p.parseCall()
	case lexer.TokenReDim:
		p.markBody()
		return p.parseDim(KindReDimStatement)
	case lexer.TokenLine:
		if p.sigAfter().Kind == lexer.TokenInput {
			p.markBody()
			n := p.startNode(KindLineInputStatement)
			p.bump(n)
			p.ws(n)
			p.bump(n)
			p.tail(n)
			p.endStatement(n)
			return p.finishNode(n)
		}
	}

	if kind, ok := lineStatements[tok.Kind]; ok && p.isLineStatement(tok.Kind) {
		p.markBody()
		return p.parseLineStatement(kind)
	}
	if p.singleLine == 0 && p.atLabel() {
		p.markBody()
		return p.parseLabel()
	}
	if isName(tok.Kind) || tok.Kind == lexer.TokenDot || tok.Kind == lexer.TokenBang {
		p.markBody()
		return p.parseAssignmentOrCall()
	}
	return nil
}

// closesBlock reports whether End followed by kind closes a block rather
// than being the End statement.
func closesBlock(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenIf, lexer.TokenSelect, lexer.TokenWith, lexer.TokenSub,
		lexer.TokenFunction, lexer.TokenProperty, lexer.TokenEnum, lexer.TokenType:
		return true
	}
	return false
}

// isLineStatement tells a built-in statement from an assignment to, or a
// member of, a variable with the same name. Date and Time assign the
// system clock, so "Date = d" stays a statement.
func (p *Parser) isLineStatement(kind lexer.TokenKind) bool {
	if kind == lexer.TokenDate || kind == lexer.TokenTime {
		return true
	}
	if p.peekN(1).Kind == lexer.TokenDot || p.peekN(1).Kind == lexer.TokenBang {
		return false
	}
	return p.sigAfter().Kind != lexer.TokenEqual
}

// onStatementKind distinguishes On Error from the computed On ... GoTo and
// On ... GoSub jumps.
func (p *Parser) onStatementKind() SyntaxKind {
	if after := p.sigAfter(); after.Kind == lexer.TokenError || isWord(after, "Local") {
		return KindOnErrorStatement
	}
	for i := 1; ; i++ {
		switch p.peekN(i).Kind {
		case lexer.TokenGoSub:
			return KindOnGoSubStatement
		case lexer.TokenNewline, lexer.TokenEOF, lexer.TokenGoTo:
			return KindOnGoToStatement
		}
	}
}

// atLabel reports whether a label starts the line: a line number, or a
// name directly followed by a colon that is not part of :=.
func (p *Parser) atLabel() bool {
	tok := p.peek()
	if tok.Kind == lexer.TokenNumber {
		return true
	}
	return isName(tok.Kind) && p.peekN(1).Kind == lexer.TokenColon && p.peekN(2).Kind != lexer.TokenEqual
}

// parseLabel attaches the label and its colon. The statement that may
// follow on the same line is parsed on its own.
func (p *Parser) parseLabel() *Node {
	n := p.startNode(KindLabelStatement)
	p.bump(n)
	if p.check(lexer.TokenColon) {
		p.bump(n)
	}
	if p.atLineEnd() {
		p.endStatement(n)
	}
	return p.finishNode(n)
}

// parseCall parses "Call target[(args)]" and "RaiseEvent name[(args)]".
func (p *Parser) parseCall() *Node {
	kind := KindCallStatement
	if p.check(lexer.TokenRaiseEvent) {
		kind = KindRaiseEventStatement
	}
	n := p.startNode(kind)
	p.bump(n)
	p.ws(n)
	n.AddChild(p.parsePostfix())
	p.endStatement(n)
	return p.finishNode(n)
}

// parseKeywordAssignment parses "Set target = value" and its Let
// counterpart.
func (p *Parser) parseKeywordAssignment(kind SyntaxKind) *Node {
	n := p.startNode(kind)
	p.bump(n)
	p.ws(n)
	n.AddChild(p.parsePostfix())
	if p.expect(n, lexer.TokenEqual, "=") {
		p.ws(n)
		n.AddChild(p.parseExpression())
	}
	p.endStatement(n)
	return p.finishNode(n)
}

// parseAssignmentOrCall parses a statement that starts with a name: an
// assignment when = follows the target, otherwise a call whose arguments
// are not parenthesized.
func (p *Parser) parseAssignmentOrCall() *Node {
	target := p.parsePostfix()
	if p.checkSig(lexer.TokenEqual) {
		n := &Node{Kind: KindAssignmentStatement}
		n.AddChild(target)
		p.ws(n)
		p.bump(n)
		p.ws(n)
		n.AddChild(p.parseExpression())
		p.endStatement(n)
		return p.finishNode(n)
	}

	n := &Node{Kind: KindCallStatement}
	n.AddChild(target)
	if !p.atStatementEnd() {
		p.ws(n)
		if args := p.parseArguments(false); args != nil {
			n.AddChild(args)
		}
	}
	p.endStatement(n)
	return p.finishNode(n)
}
