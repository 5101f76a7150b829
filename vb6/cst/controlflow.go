package cst

import "github.com/dhamidi/vbt/vb6/lexer"

// atBlockCloser reports whether a keyword that closes or continues some
// block follows. Inner blocks stop there, so an unclosed block does not
// swallow the closer of its parent.
func (p *Parser) atBlockCloser() bool {
	switch p.sig().Kind {
	case lexer.TokenNext, lexer.TokenLoop, lexer.TokenWend, lexer.TokenCase,
		lexer.TokenElse, lexer.TokenElseIf:
		return true
	case lexer.TokenEnd:
		return closesBlock(p.sigAfter().Kind)
	}
	return p.atProcedureStart()
}

// blockEnd is the stop condition for the body of a compound statement.
func (p *Parser) blockEnd() bool {
	return p.pendingNext > 0 || p.atBlockCloser()
}

// clauseEnd ends the opening line of a block or clause. A statement on the
// same line, as in "Case 1: x = 1" or "Else x = 2", is left for the body.
func (p *Parser) clauseEnd(n *Node) {
	if p.atStatementEnd() {
		p.endStatement(n)
	}
}

// parseIf parses both the block form and the single-line form of If. The
// form is decided by whether anything follows Then on its line.
func (p *Parser) parseIf() *Node {
	n := p.startNode(KindIfStatement)
	p.bump(n)
	p.ws(n)
	n.AddChild(p.parseExpression())
	p.expect(n, lexer.TokenThen, "Then")
	if !p.atLineEnd() {
		p.parseSingleLineIf(n)
		return p.finishNode(n)
	}
	p.endStatement(n)
	n.AddChild(p.parseBlock(p.blockEnd))

	for p.checkSig(lexer.TokenElseIf) {
		c := p.startNode(KindElseIfClause)
		p.ws(c)
		p.bump(c)
		p.ws(c)
		c.AddChild(p.parseExpression())
		p.expect(c, lexer.TokenThen, "Then")
		p.clauseEnd(c)
		c.AddChild(p.parseBlock(p.blockEnd))
		n.AddChild(p.finishNode(c))
	}
	if p.checkSig(lexer.TokenElse) {
		c := p.startNode(KindElseClause)
		p.ws(c)
		p.bump(c)
		p.clauseEnd(c)
		c.AddChild(p.parseBlock(p.blockEnd))
		n.AddChild(p.finishNode(c))
	}
	p.closeBlock(n, lexer.TokenIf)
	return p.finishNode(n)
}

// parseSingleLineIf parses "If c Then a: b Else d" after Then. The line
// terminator belongs to the If itself.
func (p *Parser) parseSingleLineIf(n *Node) {
	p.singleLine++
	n.AddChild(p.inlineBlock())
	if p.checkSig(lexer.TokenElse) {
		c := p.startNode(KindElseClause)
		p.ws(c)
		p.bump(c)
		c.AddChild(p.inlineBlock())
		n.AddChild(p.finishNode(c))
	}
	p.singleLine--
	p.endStatement(n)
}

// inlineBlock parses the colon separated statements of one branch of a
// single-line If. A bare line number is a jump target, as in
// "If Err Then 100".
func (p *Parser) inlineBlock() *Node {
	n := p.startNode(KindCodeBlock)
	for !p.atLineEnd() && !p.checkSig(lexer.TokenElse) {
		start := p.pos
		p.ws(n)
		switch {
		case p.check(lexer.TokenColon):
			p.bump(n)
		case p.check(lexer.TokenNumber):
			g := p.startNode(KindGotoStatement)
			p.bump(g)
			p.endStatement(g)
			n.AddChild(p.finishNode(g))
		default:
			n.AddChild(p.parseStatement())
		}
		if p.pos == start {
			n.AddChild(p.errorRest())
			if p.pos == start {
				break
			}
		}
	}
	if len(n.Children) == 0 {
		return nil
	}
	return p.finishNode(n)
}

func (p *Parser) parseSelect() *Node {
	n := p.startNode(KindSelectCaseStatement)
	p.bump(n)
	p.expect(n, lexer.TokenCase, "Case")
	p.ws(n)
	n.AddChild(p.parseExpression())
	p.endStatement(n)

clauses:
	for !p.atEnd() {
		if p.skipTrivia(n) {
			continue
		}
		switch {
		case p.check(lexer.TokenCase):
			n.AddChild(p.parseCaseClause())
		case p.blockEnd():
			break clauses
		default:
			// Statements before the first Case are not part of any clause.
			n.AddChild(p.errorLine())
		}
	}
	p.closeBlock(n, lexer.TokenSelect)
	return p.finishNode(n)
}

// parseCaseClause parses "Case Else" or a Case with its comma separated
// tests: "x", "x To y" or "Is <op> x".
func (p *Parser) parseCaseClause() *Node {
	n := p.startNode(KindCaseClause)
	p.bump(n)
	if p.checkSig(lexer.TokenElse) {
		n.Kind = KindCaseElseClause
		p.ws(n)
		p.bump(n)
	} else {
		for {
			p.ws(n)
			if p.check(lexer.TokenIs) {
				p.bump(n)
				p.ws(n)
				p.comparison(n)
				p.ws(n)
				n.AddChild(p.parseExpression())
			} else {
				n.AddChild(p.parseExpression())
				if p.accept(n, lexer.TokenTo) {
					p.ws(n)
					n.AddChild(p.parseExpression())
				}
			}
			if !p.accept(n, lexer.TokenComma) {
				break
			}
		}
	}
	p.clauseEnd(n)
	n.AddChild(p.parseBlock(p.blockEnd))
	return p.finishNode(n)
}

// comparison attaches the comparison operator of a "Case Is" test.
func (p *Parser) comparison(n *Node) {
	prec, width, ok := p.binaryOperator()
	if !ok || prec != precCompare {
		p.expect(n, lexer.TokenEqual, "comparison operator")
		return
	}
	for i := 0; i < width; i++ {
		p.bump(n)
	}
}

// parseFor parses For ... To ... [Step ...] and For Each ... In loops.
func (p *Parser) parseFor() *Node {
	each := p.sigAfter().Kind == lexer.TokenEach
	n := p.startNode(KindForStatement)
	if each {
		n.Kind = KindForEachStatement
	}
	p.bump(n)
	if each {
		p.ws(n)
		p.bump(n)
	}
	p.ws(n)
	n.AddChild(p.parsePostfix())
	if each {
		if p.expect(n, lexer.TokenIn, "In") {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
	} else {
		if p.expect(n, lexer.TokenEqual, "=") {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
		if p.expect(n, lexer.TokenTo, "To") {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
		if p.accept(n, lexer.TokenStep) {
			p.ws(n)
			n.AddChild(p.parseExpression())
		}
	}
	p.endStatement(n)
	n.AddChild(p.parseBlock(p.blockEnd))
	p.closeNext(n)
	return p.finishNode(n)
}

// closeNext attaches the Next line of a loop. "Next j, i" closes the
// enclosing loops as well; they find pendingNext set and close silently.
func (p *Parser) closeNext(n *Node) {
	if p.pendingNext > 0 {
		p.pendingNext--
		return
	}
	if !p.accept(n, lexer.TokenNext) {
		p.unclosed(n, "Next")
		return
	}
	for !p.atStatementEnd() {
		p.ws(n)
		if p.check(lexer.TokenComma) {
			p.pendingNext++
		}
		p.word(n)
	}
	p.endStatement(n)
}

// parseDo parses Do loops with the condition before, after or absent.
func (p *Parser) parseDo() *Node {
	n := p.startNode(KindDoStatement)
	p.bump(n)
	p.loopCondition(n)
	p.endStatement(n)
	n.AddChild(p.parseBlock(p.blockEnd))
	if !p.accept(n, lexer.TokenLoop) {
		p.unclosed(n, "Loop")
		return p.finishNode(n)
	}
	p.loopCondition(n)
	p.endStatement(n)
	return p.finishNode(n)
}

func (p *Parser) loopCondition(n *Node) {
	if p.accept(n, lexer.TokenWhile) || p.accept(n, lexer.TokenUntil) {
		p.ws(n)
		n.AddChild(p.parseExpression())
	}
}

func (p *Parser) parseWhile() *Node {
	n := p.startNode(KindWhileStatement)
	p.bump(n)
	p.ws(n)
	n.AddChild(p.parseExpression())
	p.endStatement(n)
	n.AddChild(p.parseBlock(p.blockEnd))
	if !p.accept(n, lexer.TokenWend) {
		p.unclosed(n, "Wend")
		return p.finishNode(n)
	}
	p.endStatement(n)
	return p.finishNode(n)
}

func (p *Parser) parseWith() *Node {
	n := p.startNode(KindWithStatement)
	p.bump(n)
	p.ws(n)
	n.AddChild(p.parseExpression())
	p.endStatement(n)
	n.AddChild(p.parseBlock(p.blockEnd))
	p.closeBlock(n, lexer.TokenWith)
	return p.finishNode(n)
}
