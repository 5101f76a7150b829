package lexer

import "strings"

// TokenStream is the ordered output of one tokenizer pass over a file.
type TokenStream struct {
	File   string
	Tokens []Token
}

func (s TokenStream) Len() int {
	return len(s.Tokens)
}

// Text concatenates every token literal. For a stream produced by Tokenize
// this is the original input.
func (s TokenStream) Text() string {
	var sb strings.Builder
	for _, tok := range s.Tokens {
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

// WithoutWhitespace drops whitespace tokens and keeps everything else,
// comments and newlines included.
func (s TokenStream) WithoutWhitespace() TokenStream {
	return s.Filter(func(tok Token) bool {
		return tok.Kind != TokenWhitespace
	})
}

func (s TokenStream) Filter(keep func(Token) bool) TokenStream {
	out := TokenStream{File: s.File}
	for _, tok := range s.Tokens {
		if keep(tok) {
			out.Tokens = append(out.Tokens, tok)
		}
	}
	return out
}

func (s TokenStream) Kinds() []TokenKind {
	kinds := make([]TokenKind, len(s.Tokens))
	for i, tok := range s.Tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}
