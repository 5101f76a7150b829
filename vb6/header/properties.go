package header

import (
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// FileUsage is the MultiUse property: whether one server instance serves
// every client.
type FileUsage int

const (
	MultiUse FileUsage = iota
	SingleUse
)

func (u FileUsage) String() string {
	if u == SingleUse {
		return "SingleUse"
	}
	return "MultiUse"
}

type Persistence int

const (
	NotPersistable Persistence = iota
	Persistable
)

func (p Persistence) String() string {
	if p == Persistable {
		return "Persistable"
	}
	return "NotPersistable"
}

type DataBindingBehavior int

const (
	DataBindingNone DataBindingBehavior = iota
	DataBindingSimple
	DataBindingComplex
)

func (b DataBindingBehavior) String() string {
	switch b {
	case DataBindingSimple:
		return "Simple"
	case DataBindingComplex:
		return "Complex"
	}
	return "None"
}

type DataSourceBehavior int

const (
	DataSourceNone DataSourceBehavior = iota
	DataSource
)

func (b DataSourceBehavior) String() string {
	if b == DataSource {
		return "DataSource"
	}
	return "None"
}

type MTSTransactionMode int

const (
	NotAnMTSObject MTSTransactionMode = iota
	NoTransactions
	RequiresTransaction
	UsesTransaction
	RequiresNewTransaction
)

var mtsModeNames = map[MTSTransactionMode]string{
	NotAnMTSObject:         "NotAnMTSObject",
	NoTransactions:         "NoTransactions",
	RequiresTransaction:    "RequiresTransaction",
	UsesTransaction:        "UsesTransaction",
	RequiresNewTransaction: "RequiresNewTransaction",
}

func (m MTSTransactionMode) String() string {
	if name, ok := mtsModeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// Properties is the BEGIN ... END block of a class file. The zero value
// holds the defaults VB6 assumes when the block or a key is absent.
type Properties struct {
	MultiUse            FileUsage
	Persistable         Persistence
	DataBindingBehavior DataBindingBehavior
	DataSourceBehavior  DataSourceBehavior
	MTSTransactionMode  MTSTransactionMode
}

// propertySetters maps each recognized key to a function that validates a
// raw value and stores it. Keys are case-sensitive.
var propertySetters = map[string]func(p *Properties, value string) bool{
	"MultiUse": func(p *Properties, value string) bool {
		switch value {
		case "-1":
			p.MultiUse = MultiUse
		case "0":
			p.MultiUse = SingleUse
		default:
			return false
		}
		return true
	},
	"Persistable": func(p *Properties, value string) bool {
		switch value {
		case "-1":
			p.Persistable = Persistable
		case "0":
			p.Persistable = NotPersistable
		default:
			return false
		}
		return true
	},
	"DataBindingBehavior": func(p *Properties, value string) bool {
		v, ok := smallInt(value, 2)
		if ok {
			p.DataBindingBehavior = DataBindingBehavior(v)
		}
		return ok
	},
	"DataSourceBehavior": func(p *Properties, value string) bool {
		v, ok := smallInt(value, 1)
		if ok {
			p.DataSourceBehavior = DataSourceBehavior(v)
		}
		return ok
	},
	"MTSTransactionMode": func(p *Properties, value string) bool {
		v, ok := smallInt(value, 4)
		if ok {
			p.MTSTransactionMode = MTSTransactionMode(v)
		}
		return ok
	},
}

// smallInt accepts a single decimal digit in 0..limit.
func smallInt(value string, limit int) (int, bool) {
	if len(value) != 1 || !source.IsDigit(value[0]) {
		return 0, false
	}
	v := int(value[0] - '0')
	return v, v <= limit
}

// PropertyNames lists the keys ParseProperties recognizes.
func PropertyNames() []string {
	return []string{"MultiUse", "Persistable", "DataBindingBehavior", "DataSourceBehavior", "MTSTransactionMode"}
}

// ParseProperties reads an optional BEGIN ... END block. Without BEGIN the
// defaults are returned and nothing is consumed beyond leading blanks.
//
// An unknown key, a value outside its key's domain or a missing END stop
// the block and leave the outcome without a value.
func ParseProperties(c *source.Cursor) diag.Outcome[Properties] {
	r := newReader(c)
	var props Properties

	c.TakeSpaces()
	if !r.keyword("BEGIN") {
		return diag.Some(props, r.diagnostics())
	}
	r.endLine()

	for {
		if c.IsEmpty() {
			r.diags.AddExpected(c.Offset(), diag.CategoryKeywordMissing, "", "END")
			return diag.None[Properties](r.diagnostics())
		}
		c.TakeSpaces()
		if r.atBlankLine() {
			r.endLine()
			continue
		}
		if r.keyword("END") {
			r.endLine()
			return diag.Some(props, r.diagnostics())
		}
		if !r.property(&props) {
			return diag.None[Properties](r.diagnostics())
		}
	}
}

func (r *reader) property(p *Properties) bool {
	keyStart := r.c.Offset()
	key, ok := r.c.TakeIdentifierChars()
	if !ok {
		r.diags.Add(keyStart, diag.CategoryUnknownProperty, r.peekWord())
		return false
	}
	set, known := propertySetters[string(key)]
	if !known {
		r.diags.Add(keyStart, diag.CategoryUnknownProperty, string(key))
		return false
	}

	r.c.TakeSpaces()
	if _, ok := r.c.Take("=", source.CaseSensitive); !ok {
		r.diags.AddExpected(r.c.Offset(), diag.CategoryKeywordMissing, r.peekWord(), "=")
		return false
	}
	r.c.TakeSpaces()

	valueStart := r.c.Offset()
	value, _ := r.c.TakeWhile(isValueChar)
	if !set(p, string(value)) {
		r.diags.AddExpected(valueStart, diag.CategoryInvalidPropertyValue, string(value), string(key))
		return false
	}
	r.endLine()
	return true
}
