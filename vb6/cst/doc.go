// Package cst builds a lossless concrete syntax tree from VB6 tokens.
//
// # Overview
//
// The parser consumes a [lexer.TokenStream] and produces a [Tree] whose
// leaves are exactly the tokens of the stream, in order. Concatenating the
// leaf literals reproduces the source byte for byte, including whitespace,
// comments, line continuations and malformed text:
//
//	out := cst.ParseSource("Class1.cls", input)
//	tree := out.Value()
//	tree.Text() == string(input) // always true
//
// # Recovery
//
// Parsing never fails. Tokens the grammar cannot place are wrapped in
// [KindError] nodes and reported with a diagnostic, then parsing resumes at
// the next statement or line:
//
//	Sub Main()
//	    x = = 1          ' Error node with UnexpectedToken
//	End Sub
//
// Blocks that reach their parent's closer or the end of input report
// UnclosedBlock at the block's start and end there.
//
// # Statements
//
// A statement owns the blanks, comment and line terminator that end it, so
// the text of an On Error node is the full source line:
//
//	On Error GoTo ErrorHandler\r\n
//
// A colon ends a statement early. In a single-line If the terminator
// belongs to the If rather than to the statements of its branches.
//
// # Declarations Region
//
// Module-level declarations (Option, Dim, Const, Declare, Type, Enum and
// the like) form the declarations region. The first procedure or
// executable statement ends it; [Tree.DeclarationsEnd] records the offset
// and [Parser.InHeader] reports whether parsing is still inside it.
//
// # Names
//
// Keywords that VB6 also uses as function names (Len, Date, Input, Mid and
// others) are accepted wherever a name is expected. A keyword or function
// name followed directly by $ becomes one identifier leaf, as in Mid$ or
// UCase$.
package cst
