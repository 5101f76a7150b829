package cst

import (
	"strings"
	"testing"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/lexer"
)

func parse(t *testing.T, input string, opts ...Option) (*Tree, []diag.Diagnostic) {
	t.Helper()
	out := ParseSource("test.bas", []byte(input), opts...)
	tree, ok := out.Get()
	if !ok {
		t.Fatalf("ParseSource(%q) returned no tree", input)
	}
	if got := tree.Text(); got != input {
		t.Fatalf("Text() = %q, want %q", got, input)
	}
	return tree, out.Diagnostics()
}

func categories(ds []diag.Diagnostic) []diag.Category {
	var out []diag.Category
	for _, d := range ds {
		out = append(out, d.Category)
	}
	return out
}

func hasCategory(ds []diag.Diagnostic, cat diag.Category) bool {
	for _, d := range ds {
		if d.Category == cat {
			return true
		}
	}
	return false
}

func expectClean(t *testing.T, ds []diag.Diagnostic) {
	t.Helper()
	if len(ds) != 0 {
		t.Errorf("diagnostics = %v, want none", ds)
	}
}

func TestParseLossless(t *testing.T) {
	inputs := []string{
		"",
		"\r\n",
		"Option Explicit\r\n",
		"Sub Main()\r\nEnd Sub",
		"Sub Main()\r\n    x = = 1\r\nEnd Sub\r\n",
		"Sub\r\n",
		")))",
		"If x Then\r\n",
		"End If\r\n",
		"Begin\r\n",
		"Dim (\r\n",
		"\"unterminated\r\n",
		"? ! @",
		"Type = 5\r\n",
		"Next j, i\r\n",
		"Sub A()\r\nFor i = 1 To\r\nEnd Sub",
		"Property Let X(",
		"On",
		"Case Else",
		"_\r\n",
		"a _ \r\n b\r\n",
		"x.",
		"Sub A()\r\n  Select Case\r\n  y = 1\r\nEnd Sub\r\n",
		"Enum E\r\n  )\r\nEnd Enum\r\n",
		"Private Type T\r\n  As Long\r\nEnd Type\r\n",
		"Sub A(ByVal x As Long, Optional ByRef y = 5, ParamArray z())\r\nEnd Sub\r\n",
		"Sub A()\n\tIf a Then b Else c\n\tWith x: .y = 1: End With\nEnd Sub\n",
		"Sub A()\rDo\rLoop Until x\rEnd Sub\r",
		"Function F$(s$)\r\n  F$ = UCase$(s) & Chr$(13)\r\nEnd Function\r\n",
		"Sub A()\r\n  Debug.Print \"a\"; b, c;\r\nEnd Sub\r\n",
		"Sub A()\r\n  Open f For Input As #1\r\n  Line Input #1, s\r\n  Close #1\r\nEnd Sub\r\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parse(t, input)
		})
	}
}

func TestParseOnErrorLine(t *testing.T) {
	input := "Sub Main()\r\n    On Error GoTo ErrorHandler\r\n    Exit Sub\r\nErrorHandler:\r\nEnd Sub\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	nodes := tree.FindAll(KindOnErrorStatement)
	if len(nodes) != 1 {
		t.Fatalf("found %d OnErrorStatement nodes, want 1", len(nodes))
	}
	if got := nodes[0].Text(); got != "On Error GoTo ErrorHandler\r\n" {
		t.Errorf("Text() = %q, want %q", got, "On Error GoTo ErrorHandler\r\n")
	}
	if got := len(tree.FindAll(KindLabelStatement)); got != 1 {
		t.Errorf("found %d labels, want 1", got)
	}
	if got := len(tree.FindAll(KindExitStatement)); got != 1 {
		t.Errorf("found %d Exit statements, want 1", got)
	}
}

func TestParseOnStatementTakesWholeLine(t *testing.T) {
	tests := []struct {
		line string
		kind SyntaxKind
	}{
		{"On Error Resume Next: x = 1\r\n", KindOnErrorStatement},
		{"On Error GoTo Handler ' jump on failure\r\n", KindOnErrorStatement},
		{"On Error GoTo 0: On Error Resume Next\r\n", KindOnErrorStatement},
		{"On n GoTo 10, 20: Stop\r\n", KindOnGoToStatement},
		{"On n GoSub A, B ' dispatch\r\n", KindOnGoSubStatement},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tree, ds := parse(t, "Sub A()\r\n    "+tt.line+"End Sub")
			expectClean(t, ds)
			nodes := tree.FindAll(tt.kind)
			if len(nodes) != 1 {
				t.Fatalf("found %d %v nodes, want 1\n%s", len(nodes), tt.kind, tree.Root)
			}
			if got := nodes[0].Text(); got != tt.line {
				t.Errorf("Text() = %q, want %q", got, tt.line)
			}
			if got := len(tree.FindAll(KindAssignmentStatement)); got != 0 {
				t.Errorf("found %d assignments outside the On statement", got)
			}
		})
	}
}

func TestParseOnErrorInSingleLineIf(t *testing.T) {
	tree, _ := parse(t, "Sub A()\r\n    If fail Then On Error Resume Next Else x = 1\r\nEnd Sub\r\n")

	nodes := tree.FindAll(KindOnErrorStatement)
	if len(nodes) != 1 {
		t.Fatalf("found %d OnErrorStatement nodes, want 1", len(nodes))
	}
	if got := nodes[0].Text(); strings.Contains(got, "Else") {
		t.Errorf("Text() = %q runs into the Else branch", got)
	}
	if got := len(tree.FindAll(KindAssignmentStatement)); got != 1 {
		t.Errorf("found %d assignments, want 1", got)
	}
}

func TestParseProcedure(t *testing.T) {
	input := "Public Function Add(ByVal a As Long, ByVal b As Long) As Long\r\n" +
		"    Add = a + b\r\n" +
		"End Function\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	fn := tree.Root.FirstChildOfKind(KindFunctionStatement)
	if fn == nil {
		t.Fatalf("no FunctionStatement in\n%s", tree)
	}
	params := fn.FirstChildOfKind(KindParameterList)
	if params == nil {
		t.Fatal("no ParameterList")
	}
	if got := len(params.ChildrenOfKind(KindParameter)); got != 2 {
		t.Errorf("found %d parameters, want 2", got)
	}
	if fn.FirstChildOfKind(KindTypeClause) == nil {
		t.Error("no return TypeClause")
	}
	body := fn.FirstChildOfKind(KindCodeBlock)
	if body == nil || body.FirstChildOfKind(KindAssignmentStatement) == nil {
		t.Errorf("body has no assignment:\n%s", fn)
	}
}

func TestParseDeclarationsEnd(t *testing.T) {
	input := "Option Explicit\r\nPrivate m As Long\r\n\r\nPublic Sub Foo()\r\nEnd Sub\r\n"
	stream := lexer.Tokenize("test.bas", []byte(input)).Value()
	p := NewParser(stream)
	if !p.InHeader() {
		t.Error("InHeader() = false before parsing, want true")
	}

	out := p.Parse()
	tree := out.Value()
	expectClean(t, out.Diagnostics())

	if p.InHeader() {
		t.Error("InHeader() = true after a procedure, want false")
	}
	want := strings.Index(input, "Public Sub")
	if tree.DeclarationsEnd != want {
		t.Errorf("DeclarationsEnd = %d, want %d", tree.DeclarationsEnd, want)
	}
	if got := len(tree.Root.ChildrenOfKind(KindDimStatement)); got != 1 {
		t.Errorf("found %d module-level Dim statements, want 1", got)
	}
}

func TestParseDeclarationsOnly(t *testing.T) {
	input := "Option Explicit\r\nPublic Const Max As Long = 10\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	if tree.DeclarationsEnd != len(input) {
		t.Errorf("DeclarationsEnd = %d, want %d", tree.DeclarationsEnd, len(input))
	}
	if tree.Root.FirstChildOfKind(KindConstStatement) == nil {
		t.Errorf("no ConstStatement in\n%s", tree)
	}
}

func TestParseWithoutHeader(t *testing.T) {
	tree, ds := parse(t, "x = 1\r\n", WithHeader(false))
	expectClean(t, ds)

	if tree.DeclarationsEnd != 0 {
		t.Errorf("DeclarationsEnd = %d, want 0", tree.DeclarationsEnd)
	}
	if tree.Root.FirstChildOfKind(KindAssignmentStatement) == nil {
		t.Errorf("no AssignmentStatement in\n%s", tree)
	}
}

func TestParseClassFile(t *testing.T) {
	input := "VERSION 1.0 CLASS\r\n" +
		"BEGIN\r\n" +
		"  MultiUse = -1  'True\r\n" +
		"END\r\n" +
		"Attribute VB_Name = \"Class1\"\r\n" +
		"Option Explicit\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	want := []SyntaxKind{KindVersionStatement, KindPropertiesBlock, KindAttributeStatement, KindOptionStatement}
	var got []SyntaxKind
	for _, child := range tree.Root.Children {
		if !child.IsToken() {
			got = append(got, child.Kind)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("top-level kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind %d = %v, want %v", i, got[i], want[i])
		}
	}

	prop := tree.FindAll(KindProperty)
	if len(prop) != 1 {
		t.Fatalf("found %d properties, want 1", len(prop))
	}
	if key := prop[0].FirstChildOfKind(KindPropertyKey); key == nil || key.Text() != "MultiUse" {
		t.Errorf("PropertyKey = %v, want MultiUse", key)
	}
	if value := prop[0].FirstChildOfKind(KindPropertyValue); value == nil || value.Text() != "-1" {
		t.Errorf("PropertyValue = %v, want -1", value)
	}
}

func TestParseFormBlocks(t *testing.T) {
	input := "VERSION 5.00\r\n" +
		"Begin VB.Form Form1\r\n" +
		"   Caption = \"Hi\"\r\n" +
		"   Begin VB.CommandButton Command1\r\n" +
		"      Caption = \"OK\"\r\n" +
		"   End\r\n" +
		"End\r\n" +
		"Attribute VB_Name = \"Form1\"\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	if got := len(tree.FindAll(KindPropertiesBlock)); got != 2 {
		t.Errorf("found %d blocks, want 2", got)
	}
	if got := len(tree.FindAll(KindProperty)); got != 2 {
		t.Errorf("found %d properties, want 2", got)
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	input := "Sub Main()\r\n    If x Then\r\n        y = 1\r\nEnd Sub\r\n"
	tree, ds := parse(t, input)

	if len(ds) != 1 || ds[0].Category != diag.CategoryUnclosedBlock {
		t.Fatalf("diagnostics = %v, want one UnclosedBlock", ds)
	}
	if ds[0].Expected != "End If" {
		t.Errorf("Expected = %q, want %q", ds[0].Expected, "End If")
	}
	if ds[0].Offset != strings.Index(input, "If") {
		t.Errorf("Offset = %d, want %d", ds[0].Offset, strings.Index(input, "If"))
	}
	sub := tree.Root.FirstChildOfKind(KindSubStatement)
	if sub == nil || sub.FirstTokenOfKind(lexer.TokenEnd) == nil {
		t.Errorf("End Sub not attached to the procedure:\n%s", tree)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	input := "Sub Main()\r\n    x = = 1\r\n    y = 2\r\nEnd Sub\r\n"
	tree, ds := parse(t, input)

	if !hasCategory(ds, diag.CategoryUnexpectedToken) {
		t.Errorf("categories = %v, want UnexpectedToken", categories(ds))
	}
	if !hasCategory(ds, diag.CategoryExpectedToken) {
		t.Errorf("categories = %v, want ExpectedToken", categories(ds))
	}
	if !tree.ContainsKind(KindError) {
		t.Errorf("no Error node in\n%s", tree)
	}
	if got := len(tree.FindAll(KindAssignmentStatement)); got != 2 {
		t.Errorf("found %d assignments, want 2", got)
	}
}

func TestParseStrayCloser(t *testing.T) {
	input := "Sub Main()\r\n    Next\r\n    End If\r\nEnd Sub\r\n"
	tree, ds := parse(t, input)

	if got := len(tree.FindAll(KindError)); got != 2 {
		t.Errorf("found %d Error nodes, want 2", got)
	}
	if !hasCategory(ds, diag.CategoryUnexpectedToken) {
		t.Errorf("categories = %v, want UnexpectedToken", categories(ds))
	}
	if tree.Root.FirstChildOfKind(KindSubStatement) == nil {
		t.Errorf("procedure lost:\n%s", tree)
	}
}

func TestParseSingleLineIf(t *testing.T) {
	input := "Sub M()\r\nIf a Then b = 1 Else b = 2\r\nEnd Sub\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	ifs := tree.FindAll(KindIfStatement)
	if len(ifs) != 1 {
		t.Fatalf("found %d If statements, want 1", len(ifs))
	}
	if got := ifs[0].Text(); got != "If a Then b = 1 Else b = 2\r\n" {
		t.Errorf("Text() = %q", got)
	}
	if ifs[0].FirstChildOfKind(KindElseClause) == nil {
		t.Error("no ElseClause")
	}
	if got := len(ifs[0].FindAll(KindAssignmentStatement)); got != 2 {
		t.Errorf("found %d assignments, want 2", got)
	}
}

func TestParseBlockIf(t *testing.T) {
	input := "Sub M()\r\n" +
		"If a Then\r\n" +
		"  x = 1\r\n" +
		"ElseIf b Then\r\n" +
		"  x = 2\r\n" +
		"ElseIf c Then\r\n" +
		"Else\r\n" +
		"  x = 3\r\n" +
		"End If\r\n" +
		"End Sub\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	ifs := tree.FindAll(KindIfStatement)
	if len(ifs) != 1 {
		t.Fatalf("found %d If statements, want 1", len(ifs))
	}
	if got := len(ifs[0].ChildrenOfKind(KindElseIfClause)); got != 2 {
		t.Errorf("found %d ElseIf clauses, want 2", got)
	}
	if ifs[0].FirstChildOfKind(KindElseClause) == nil {
		t.Error("no ElseClause")
	}
}

func TestParseSelectCase(t *testing.T) {
	input := "Sub M()\r\n" +
		"Select Case x\r\n" +
		"Case 1, 2\r\n" +
		"  y = 1\r\n" +
		"Case Is > 5\r\n" +
		"  y = 2\r\n" +
		"Case 6 To 9\r\n" +
		"Case Else\r\n" +
		"  y = 3\r\n" +
		"End Select\r\n" +
		"End Sub\r\n"
	tree, ds := parse(t, input)
	expectClean(t, ds)

	sel := tree.FindAll(KindSelectCaseStatement)
	if len(sel) != 1 {
		t.Fatalf("found %d Select statements, want 1", len(sel))
	}
	if got := len(sel[0].ChildrenOfKind(KindCaseClause)); got != 3 {
		t.Errorf("found %d Case clauses, want 3", got)
	}
	if got := len(sel[0].ChildrenOfKind(KindCaseElseClause)); got != 1 {
		t.Errorf("found %d Case Else clauses, want 1", got)
	}
}

func TestParseLoops(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kinds []SyntaxKind
	}{
		{"for", "For i = 1 To 10 Step 2\r\n  x = i\r\nNext i\r\n", []SyntaxKind{KindForStatement}},
		{"for each", "For Each v In items\r\nNext\r\n", []SyntaxKind{KindForEachStatement}},
		{"shared next", "For i = 1 To 3\r\nFor j = 1 To 3\r\nNext j, i\r\n", []SyntaxKind{KindForStatement, KindForStatement}},
		{"do while", "Do While x < 3\r\n  x = x + 1\r\nLoop\r\n", []SyntaxKind{KindDoStatement}},
		{"do until", "Do\r\n  x = x + 1\r\nLoop Until x >= 3\r\n", []SyntaxKind{KindDoStatement}},
		{"while", "While x\r\nWend\r\n", []SyntaxKind{KindWhileStatement}},
		{"with", "With Me\r\n  .Caption = \"x\"\r\nEnd With\r\n", []SyntaxKind{KindWithStatement}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Sub M()\r\n" + tt.body + "End Sub\r\n"
			tree, ds := parse(t, input)
			expectClean(t, ds)
			for _, kind := range tt.kinds {
				if !tree.ContainsKind(kind) {
					t.Errorf("no %v in\n%s", kind, tree)
				}
			}
		})
	}
}

func TestParseUnclosedLoops(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"For i = 1 To 3\r\n", "Next"},
		{"Do\r\n", "Loop"},
		{"While x\r\n", "Wend"},
		{"With x\r\n", "End With"},
		{"Select Case x\r\n", "End Select"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			_, ds := parse(t, "Sub M()\r\n"+tt.body+"End Sub\r\n")
			if len(ds) != 1 || ds[0].Category != diag.CategoryUnclosedBlock {
				t.Fatalf("diagnostics = %v, want one UnclosedBlock", ds)
			}
			if ds[0].Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", ds[0].Expected, tt.expected)
			}
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input string
		kind  SyntaxKind
	}{
		{"Private Declare Function GetTickCount Lib \"kernel32\" () As Long\r\n", KindDeclareStatement},
		{"Public Enum Color\r\n    Red = 1\r\n    Green\r\nEnd Enum\r\n", KindEnumStatement},
		{"Private Type Point\r\n    X As Long\r\n    Y(1 To 2) As Long\r\nEnd Type\r\n", KindTypeStatement},
		{"Public Event Changed(ByVal value As Long)\r\n", KindEventStatement},
		{"Private Const MAX_SIZE As Long = 10\r\n", KindConstStatement},
		{"Dim a As Integer, b(10) As String * 5\r\n", KindDimStatement},
		{"Private WithEvents btn As CommandButton\r\n", KindDimStatement},
		{"Implements IShape\r\n", KindImplementsStatement},
		{"DefInt A-Z\r\n", KindDefTypeStatement},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			tree, ds := parse(t, tt.input)
			expectClean(t, ds)
			if tree.Root.FirstChildOfKind(tt.kind) == nil {
				t.Errorf("no top-level %v in\n%s", tt.kind, tree)
			}
			if tree.DeclarationsEnd != len(tt.input) {
				t.Errorf("DeclarationsEnd = %d, want %d", tree.DeclarationsEnd, len(tt.input))
			}
		})
	}
}

func TestParseEnumMembers(t *testing.T) {
	tree, ds := parse(t, "Public Enum Color\r\n    Red = 1\r\n    Green\r\nEnd Enum\r\n")
	expectClean(t, ds)

	if got := len(tree.FindAll(KindEnumMember)); got != 2 {
		t.Errorf("found %d members, want 2", got)
	}
}

func TestParseDollarNames(t *testing.T) {
	tree, ds := parse(t, "Sub M()\r\n    s = Mid$(t, 2)\r\nEnd Sub\r\n")
	expectClean(t, ds)

	var found bool
	for _, tok := range tree.Tokens() {
		if tok.Literal == "Mid$" {
			found = true
			if tok.Kind != lexer.TokenIdent {
				t.Errorf("Mid$ Kind = %v, want Identifier", tok.Kind)
			}
			if tok.Span.End-tok.Span.Start != 4 {
				t.Errorf("Mid$ span = %v, want 4 bytes", tok.Span)
			}
		}
		if tok.Kind == lexer.TokenDollar {
			t.Error("found a separate Dollar token")
		}
	}
	if !found {
		t.Error("no Mid$ identifier")
	}
	if !tree.ContainsKind(KindCallExpression) {
		t.Errorf("no CallExpression in\n%s", tree)
	}
}

func TestParseLineContinuation(t *testing.T) {
	tree, ds := parse(t, "Sub M()\r\n    x = 1 + _\r\n        2\r\nEnd Sub\r\n")
	expectClean(t, ds)

	assigns := tree.FindAll(KindAssignmentStatement)
	if len(assigns) != 1 {
		t.Fatalf("found %d assignments, want 1", len(assigns))
	}
	if !assigns[0].ContainsKind(KindBinaryExpression) {
		t.Errorf("continued expression not joined:\n%s", assigns[0])
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		line string
		kind SyntaxKind
	}{
		{"Call Foo(1, 2)", KindCallStatement},
		{"Foo 1, 2", KindCallStatement},
		{"Set o = New Collection", KindSetStatement},
		{"Let x = 1", KindLetStatement},
		{"RaiseEvent Changed(1)", KindRaiseEventStatement},
		{"ReDim Preserve a(10)", KindReDimStatement},
		{"Erase a", KindEraseStatement},
		{"GoSub Work", KindGoSubStatement},
		{"Return", KindReturnStatement},
		{"Resume Next", KindResumeStatement},
		{"On x GoTo 10, 20", KindOnGoToStatement},
		{"On x GoSub A, B", KindOnGoSubStatement},
		{"Stop", KindStopStatement},
		{"End", KindEndStatement},
		{"Open f For Output As #1", KindOpenStatement},
		{"Print #1, x", KindPrintStatement},
		{"Line Input #1, s", KindLineInputStatement},
		{"Mid$(s, 1, 1) = \"x\"", KindMidStatement},
		{"Date = d", KindDateStatement},
		{"Name = \"x\"", KindAssignmentStatement},
		{"Static n As Long", KindDimStatement},
		{"Const k = 1", KindConstStatement},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			input := "Sub M()\r\n    " + tt.line + "\r\nEnd Sub\r\n"
			tree, ds := parse(t, input)
			expectClean(t, ds)
			body := tree.Root.FirstChildOfKind(KindSubStatement).FirstChildOfKind(KindCodeBlock)
			stmts := body.ChildrenOfKind(tt.kind)
			if len(stmts) != 1 {
				t.Fatalf("no %v in\n%s", tt.kind, body)
			}
			if got := stmts[0].Text(); got != tt.line+"\r\n" {
				t.Errorf("Text() = %q, want %q", got, tt.line+"\r\n")
			}
		})
	}
}

func TestParseColonSeparatedStatements(t *testing.T) {
	tree, ds := parse(t, "Sub M()\r\n    x = 1: y = 2\r\nEnd Sub\r\n")
	expectClean(t, ds)

	assigns := tree.FindAll(KindAssignmentStatement)
	if len(assigns) != 2 {
		t.Fatalf("found %d assignments, want 2", len(assigns))
	}
	if got := assigns[0].Text(); got != "x = 1:" {
		t.Errorf("first Text() = %q, want %q", got, "x = 1:")
	}
}
