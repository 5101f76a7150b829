package cst

import (
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/lexer"
)

type Option func(*Parser)

// WithFile names the file in diagnostics. It defaults to the stream's file.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithHeader sets whether parsing starts inside the declarations region.
// It is true by default; pass false to parse a statement fragment.
func WithHeader(inHeader bool) Option {
	return func(p *Parser) {
		p.parsingHeader = inHeader
		if !inHeader {
			p.headerEnd = 0
		}
	}
}

// Parser builds a lossless tree over a token stream. Every token of the
// stream is attached to exactly one leaf.
type Parser struct {
	file   string
	tokens []lexer.Token
	pos    int
	diags  *diag.Collector

	// parsingHeader stays true until the first procedure or executable
	// statement is seen.
	parsingHeader bool
	headerEnd     int

	// singleLine is non-zero while parsing the statements of a single-line
	// If, where Else and the line end terminate a statement.
	singleLine int

	// pendingNext counts loops already closed by a "Next j, i" of an inner
	// loop.
	pendingNext int
}

func NewParser(stream lexer.TokenStream, opts ...Option) *Parser {
	p := &Parser{
		file:          stream.File,
		tokens:        stream.Tokens,
		parsingHeader: true,
		headerEnd:     -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.diags = diag.NewCollector(p.file)
	return p
}

// InHeader reports whether the parser is still in the declarations region.
func (p *Parser) InHeader() bool {
	return p.parsingHeader
}

// Parse builds the tree. A tree is always produced; constructs that could
// not be recognized become Error nodes with a diagnostic.
func (p *Parser) Parse() diag.Outcome[*Tree] {
	root := p.parseModule()
	end := p.headerEnd
	if end < 0 {
		end = root.Span.End
	}
	tree := &Tree{File: p.file, Root: root, DeclarationsEnd: end}
	return diag.Some(tree, p.diags.Diagnostics())
}

func Parse(stream lexer.TokenStream, opts ...Option) diag.Outcome[*Tree] {
	return NewParser(stream, opts...).Parse()
}

// ParseSource tokenizes and parses input. Lexer diagnostics come first.
func ParseSource(file string, input []byte, opts ...Option) diag.Outcome[*Tree] {
	tokens := lexer.Tokenize(file, input)
	opts = append([]Option{WithFile(file)}, opts...)
	tree := Parse(tokens.Value(), opts...)

	var ds []diag.Diagnostic
	ds = append(ds, tokens.Diagnostics()...)
	ds = append(ds, tree.Diagnostics()...)
	return diag.Some(tree.Value(), ds)
}

func (p *Parser) peek() lexer.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		end := 0
		if len(p.tokens) > 0 {
			end = p.tokens[len(p.tokens)-1].Span.End
		}
		return lexer.Token{Kind: lexer.TokenEOF, Span: spanAt(end)}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// bump attaches the current token to n and advances.
func (p *Parser) bump(n *Node) {
	if p.atEnd() {
		return
	}
	n.AddChild(leaf(p.tokens[p.pos]))
	p.pos++
}

// isContinuation reports whether the token at pos+i starts a line
// continuation: an underscore, optional blanks, then a newline.
func (p *Parser) isContinuation(i int) bool {
	if p.peekN(i).Kind != lexer.TokenUnderscore {
		return false
	}
	for j := i + 1; ; j++ {
		switch p.peekN(j).Kind {
		case lexer.TokenWhitespace:
			continue
		case lexer.TokenNewline:
			return true
		default:
			return false
		}
	}
}

// skip returns the distance from pos to the first token that is neither
// whitespace nor part of a line continuation.
func (p *Parser) skip() int {
	i := 0
	for {
		switch {
		case p.peekN(i).Kind == lexer.TokenWhitespace:
			i++
		case p.isContinuation(i):
			for p.peekN(i).Kind != lexer.TokenNewline {
				i++
			}
			i++
		default:
			return i
		}
	}
}

// sig returns the next significant token without consuming anything.
func (p *Parser) sig() lexer.Token {
	return p.peekN(p.skip())
}

// sigAfter returns the significant token after the next one.
func (p *Parser) sigAfter() lexer.Token {
	i := p.skip() + 1
	for {
		switch {
		case p.peekN(i).Kind == lexer.TokenWhitespace:
			i++
		case p.isContinuation(i):
			for p.peekN(i).Kind != lexer.TokenNewline {
				i++
			}
			i++
		default:
			return p.peekN(i)
		}
	}
}

// ws attaches whitespace and line continuations to n.
func (p *Parser) ws(n *Node) {
	for i := p.skip(); i > 0; i-- {
		p.bump(n)
	}
}

// checkSig reports whether the next significant token has the given kind.
func (p *Parser) checkSig(kind lexer.TokenKind) bool {
	return p.sig().Kind == kind
}

// accept attaches leading blanks and the next token when it has the given
// kind.
func (p *Parser) accept(n *Node, kind lexer.TokenKind) bool {
	if !p.checkSig(kind) {
		return false
	}
	p.ws(n)
	p.bump(n)
	return true
}

// expect is accept plus an ExpectedToken diagnostic on failure.
func (p *Parser) expect(n *Node, kind lexer.TokenKind, what string) bool {
	if p.accept(n, kind) {
		return true
	}
	tok := p.sig()
	p.diags.AddExpected(tok.Span.Start, diag.CategoryExpectedToken, tok.Literal, what)
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end. Without progress the current line becomes an Error node in n,
// so no token is ever dropped. It returns false at end of input.
func (p *Parser) mustProgress(n *Node) func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if p.atEnd() {
				return false
			}
			n.AddChild(p.errorLine())
		}
		return !p.atEnd()
	}
}

func (p *Parser) startNode(kind SyntaxKind) *Node {
	return &Node{
		Kind: kind,
		Span: spanAt(p.peek().Span.Start),
	}
}

// finishNode sets n's span from its children.
func (p *Parser) finishNode(n *Node) *Node {
	if len(n.Children) > 0 {
		n.Span.Start = n.Children[0].Span.Start
		n.Span.End = n.Children[len(n.Children)-1].Span.End
	}
	return n
}

// markBody records that the declarations region has ended.
func (p *Parser) markBody() {
	if p.parsingHeader {
		p.parsingHeader = false
		p.headerEnd = p.peek().Span.Start
	}
}

// atLineEnd reports whether the next significant token ends the line.
func (p *Parser) atLineEnd() bool {
	switch p.sig().Kind {
	case lexer.TokenNewline, lexer.TokenComment, lexer.TokenRemComment, lexer.TokenEOF:
		return true
	}
	return false
}

// atStatementEnd is atLineEnd plus the separators that end a statement
// early.
func (p *Parser) atStatementEnd() bool {
	if p.atLineEnd() {
		return true
	}
	tok := p.sig()
	if tok.Kind == lexer.TokenColon && !p.isNamedArgument() {
		return true
	}
	return p.singleLine > 0 && tok.Kind == lexer.TokenElse
}

// isNamedArgument reports whether the next significant tokens are ":=".
func (p *Parser) isNamedArgument() bool {
	i := p.skip()
	return p.peekN(i).Kind == lexer.TokenColon && p.peekN(i+1).Kind == lexer.TokenEqual
}

// endStatement attaches what follows a statement: blanks, a colon or the
// comment and terminator of its line. Unexpected tokens before the line
// end become an Error node.
func (p *Parser) endStatement(n *Node) {
	if !p.atStatementEnd() {
		n.AddChild(p.errorRest())
	}
	p.ws(n)
	if p.check(lexer.TokenColon) {
		p.bump(n)
		return
	}
	if p.singleLine > 0 {
		return
	}
	if p.match(lexer.TokenComment, lexer.TokenRemComment) {
		p.bump(n)
	}
	if p.check(lexer.TokenNewline) {
		p.bump(n)
	}
}

// tail attaches every token up to the end of the statement, line
// continuations included.
func (p *Parser) tail(n *Node) {
	for !p.atStatementEnd() {
		p.ws(n)
		p.word(n)
	}
}

// restOfLine attaches everything through the line terminator, comments and
// colons included.
func (p *Parser) restOfLine(n *Node) {
	for !p.atEnd() {
		if p.isContinuation(0) {
			p.ws(n)
			continue
		}
		if p.check(lexer.TokenNewline) {
			p.bump(n)
			return
		}
		p.word(n)
	}
}

// errorRest wraps the tokens up to the statement end in an Error node.
func (p *Parser) errorRest() *Node {
	n := p.startNode(KindError)
	tok := p.sig()
	p.diags.Add(tok.Span.Start, diag.CategoryUnexpectedToken, tok.Literal)
	for !p.atStatementEnd() {
		p.ws(n)
		p.bump(n)
	}
	return p.finishNode(n)
}

// errorLine wraps the rest of the line, terminator included, in an Error
// node. Parsing resumes on the next line.
func (p *Parser) errorLine() *Node {
	n := p.startNode(KindError)
	tok := p.sig()
	p.diags.Add(tok.Span.Start, diag.CategoryUnexpectedToken, tok.Literal)
	p.restOfLine(n)
	return p.finishNode(n)
}

// unclosed reports a block that ended without its closing keywords.
func (p *Parser) unclosed(n *Node, closer string) {
	p.diags.AddExpected(n.Span.Start, diag.CategoryUnclosedBlock, p.peek().Literal, closer)
}

// word attaches the current token, merging a function name and an
// adjacent dollar sign into one identifier leaf.
func (p *Parser) word(n *Node) {
	if p.atDollarName() {
		first, dollar := p.tokens[p.pos], p.tokens[p.pos+1]
		n.AddChild(leaf(lexer.Token{
			Kind:    lexer.TokenIdent,
			Span:    spanBetween(first.Span.Start, dollar.Span.End),
			Literal: first.Literal + dollar.Literal,
		}))
		p.pos += 2
		return
	}
	p.bump(n)
}

func (p *Parser) parseModule() *Node {
	root := p.startNode(KindModule)
	for !p.atEnd() {
		progress := p.mustProgress(root)
		p.parseModuleItem(root)
		if !progress() {
			break
		}
	}
	return p.finishNode(root)
}

func (p *Parser) parseModuleItem(root *Node) {
	if p.skipTrivia(root) {
		return
	}

	tok := p.peek()
	switch {
	case p.parsingHeader && tok.Kind == lexer.TokenVersion:
		root.AddChild(p.parseLineStatement(KindVersionStatement))
	case p.parsingHeader && tok.Kind == lexer.TokenBegin:
		root.AddChild(p.parsePropertiesBlock())
	case p.parsingHeader && tok.Kind == lexer.TokenObject && p.sigAfter().Kind == lexer.TokenEqual:
		root.AddChild(p.parseLineStatement(KindObjectStatement))
	case tok.Kind == lexer.TokenAttribute:
		root.AddChild(p.parseLineStatement(KindAttributeStatement))
	case tok.Kind == lexer.TokenOption:
		root.AddChild(p.parseLineStatement(KindOptionStatement))
	case tok.Kind == lexer.TokenImplements:
		root.AddChild(p.parseLineStatement(KindImplementsStatement))
	case isDefType(tok.Kind):
		root.AddChild(p.parseLineStatement(KindDefTypeStatement))
	case p.atDeclaration():
		root.AddChild(p.parseDeclaration())
	default:
		root.AddChild(p.parseStatement())
	}
}

// skipTrivia attaches one blank, comment, newline, colon or continuation
// and reports whether it did.
func (p *Parser) skipTrivia(n *Node) bool {
	switch {
	case p.isContinuation(0):
		p.ws(n)
	case p.match(lexer.TokenWhitespace, lexer.TokenComment, lexer.TokenRemComment, lexer.TokenNewline, lexer.TokenColon):
		p.bump(n)
	default:
		return false
	}
	return true
}

// parseOnStatement keeps On Error and On ... GoTo/GoSub verbatim through the
// line terminator, later statements after a colon included. Inside a
// single-line If it ends like any other statement.
func (p *Parser) parseOnStatement() *Node {
	kind := p.onStatementKind()
	if p.singleLine > 0 {
		return p.parseLineStatement(kind)
	}
	n := p.startNode(kind)
	p.restOfLine(n)
	return p.finishNode(n)
}

// parseLineStatement covers statements that are a keyword followed by a
// tail the tree keeps verbatim.
func (p *Parser) parseLineStatement(kind SyntaxKind) *Node {
	n := p.startNode(kind)
	p.word(n)
	p.tail(n)
	p.endStatement(n)
	return p.finishNode(n)
}
