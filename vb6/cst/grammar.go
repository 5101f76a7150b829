package cst

import (
	"bytes"
	_ "embed"

	"golang.org/x/exp/ebnf"
)

//go:embed grammar.ebnf
var grammarSource []byte

// GrammarStart is the production every module is parsed from.
const GrammarStart = "Module"

// GrammarSource returns the EBNF text of the grammar the parser accepts.
func GrammarSource() []byte {
	return bytes.Clone(grammarSource)
}

// Grammar parses and verifies the grammar description starting at
// GrammarStart.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("grammar.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(grammar, GrammarStart); err != nil {
		return nil, err
	}
	return grammar, nil
}
