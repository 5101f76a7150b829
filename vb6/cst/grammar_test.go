package cst

import (
	"strings"
	"testing"
)

func TestGrammarVerifies(t *testing.T) {
	grammar, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	for _, name := range []string{"Module", "IfStatement", "Expression", "eol", "name"} {
		if grammar[name] == nil {
			t.Errorf("production %s is missing", name)
		}
	}
}

// Every statement kind in the grammar has a node kind of the same name.
func TestGrammarStatementsHaveKinds(t *testing.T) {
	grammar, err := Grammar()
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[string]bool{}
	for _, name := range syntaxKindNames {
		kinds[name] = true
	}
	groups := map[string]bool{"SimpleStatement": true, "BlockStatement": true, "LineStatement": true}
	for name := range grammar {
		if !strings.HasSuffix(name, "Statement") || groups[name] {
			continue
		}
		if !kinds[name] {
			t.Errorf("production %s has no node kind", name)
		}
	}
}

func TestGrammarSourceIsCopy(t *testing.T) {
	src := GrammarSource()
	src[0] = 'x'
	if GrammarSource()[0] == 'x' {
		t.Error("GrammarSource shares its buffer")
	}
}
