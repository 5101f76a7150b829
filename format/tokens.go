package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

// TokenLineEncoder writes one token per line:
//
//	line:col	Kind	"literal"
type TokenLineEncoder struct {
	w     io.Writer
	lines *source.LineIndex
}

func NewTokenLineEncoder(w io.Writer, lines *source.LineIndex) *TokenLineEncoder {
	return &TokenLineEncoder{w: w, lines: lines}
}

func (e *TokenLineEncoder) Encode(stream lexer.TokenStream) error {
	text, err := e.MarshalText(stream)
	return writeText(e.w, text, err)
}

func (e *TokenLineEncoder) MarshalText(stream lexer.TokenStream) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range stream.Tokens {
		pos := e.lines.Position(tok.Span.Start)
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", pos.Line, pos.Column, tok.Kind, strconv.Quote(tok.Literal))
	}
	return []byte(sb.String()), nil
}

// TokenJSONEncoder writes a token stream as a JSON array.
type TokenJSONEncoder struct {
	w     io.Writer
	lines *source.LineIndex
}

func NewTokenJSONEncoder(w io.Writer, lines *source.LineIndex) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w, lines: lines}
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Literal string `json:"literal"`
}

func (e *TokenJSONEncoder) Encode(stream lexer.TokenStream) error {
	text, err := e.MarshalText(stream)
	if err == nil {
		text = append(text, '\n')
	}
	return writeText(e.w, text, err)
}

func (e *TokenJSONEncoder) MarshalText(stream lexer.TokenStream) ([]byte, error) {
	out := make([]jsonToken, 0, len(stream.Tokens))
	for _, tok := range stream.Tokens {
		pos := e.lines.Position(tok.Span.Start)
		out = append(out, jsonToken{
			Kind:    tok.Kind.String(),
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Line:    pos.Line,
			Column:  pos.Column,
			Literal: tok.Literal,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
