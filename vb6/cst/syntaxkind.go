package cst

// SyntaxKind tags interior nodes. Leaves are KindToken and carry the
// lexer token itself.
type SyntaxKind int

const (
	KindError SyntaxKind = iota
	KindToken
	KindModule

	// Preamble
	KindVersionStatement
	KindObjectStatement
	KindPropertiesBlock
	KindProperty
	KindPropertyKey
	KindPropertyValue

	// Module-level declarations
	KindAttributeStatement
	KindOptionStatement
	KindImplementsStatement
	KindDefTypeStatement
	KindDeclareStatement
	KindEventStatement
	KindEnumStatement
	KindEnumMember
	KindTypeStatement
	KindTypeMember
	KindDimStatement
	KindConstStatement
	KindVariableDeclaration
	KindArrayBounds
	KindTypeClause

	// Procedures
	KindSubStatement
	KindFunctionStatement
	KindPropertyStatement
	KindParameterList
	KindParameter
	KindCodeBlock

	// Control flow
	KindIfStatement
	KindElseIfClause
	KindElseClause
	KindSelectCaseStatement
	KindCaseClause
	KindCaseElseClause
	KindForStatement
	KindForEachStatement
	KindDoStatement
	KindWhileStatement
	KindWithStatement

	// Simple statements
	KindCallStatement
	KindRaiseEventStatement
	KindSetStatement
	KindLetStatement
	KindAssignmentStatement
	KindGotoStatement
	KindGoSubStatement
	KindReturnStatement
	KindResumeStatement
	KindExitStatement
	KindStopStatement
	KindEndStatement
	KindOnErrorStatement
	KindOnGoToStatement
	KindOnGoSubStatement
	KindLabelStatement
	KindReDimStatement
	KindEraseStatement

	// Built-in line statements
	KindAppActivateStatement
	KindBeepStatement
	KindChDirStatement
	KindChDriveStatement
	KindCloseStatement
	KindDateStatement
	KindDeleteSettingStatement
	KindErrorStatement
	KindFileCopyStatement
	KindGetStatement
	KindPutStatement
	KindInputStatement
	KindLineInputStatement
	KindKillStatement
	KindLoadStatement
	KindUnloadStatement
	KindLockStatement
	KindUnlockStatement
	KindLSetStatement
	KindRSetStatement
	KindMidStatement
	KindMidBStatement
	KindMkDirStatement
	KindRmDirStatement
	KindNameStatement
	KindOpenStatement
	KindPrintStatement
	KindRandomizeStatement
	KindResetStatement
	KindSavePictureStatement
	KindSaveSettingStatement
	KindSeekStatement
	KindSendKeysStatement
	KindSetAttrStatement
	KindTimeStatement
	KindWidthStatement
	KindWriteStatement

	// Expressions
	KindBinaryExpression
	KindUnaryExpression
	KindParenthesizedExpression
	KindNumericLiteralExpression
	KindStringLiteralExpression
	KindBooleanLiteralExpression
	KindLiteralExpression
	KindIdentifierExpression
	KindMemberAccessExpression
	KindCallExpression
	KindArgumentList
	KindArgument
	KindNewExpression
	KindAddressOfExpression
	KindTypeOfExpression
)

var syntaxKindNames = map[SyntaxKind]string{
	KindError:                    "Error",
	KindToken:                    "Token",
	KindModule:                   "Module",
	KindVersionStatement:         "VersionStatement",
	KindObjectStatement:          "ObjectStatement",
	KindPropertiesBlock:          "PropertiesBlock",
	KindProperty:                 "Property",
	KindPropertyKey:              "PropertyKey",
	KindPropertyValue:            "PropertyValue",
	KindAttributeStatement:       "AttributeStatement",
	KindOptionStatement:          "OptionStatement",
	KindImplementsStatement:      "ImplementsStatement",
	KindDefTypeStatement:         "DefTypeStatement",
	KindDeclareStatement:         "DeclareStatement",
	KindEventStatement:           "EventStatement",
	KindEnumStatement:            "EnumStatement",
	KindEnumMember:               "EnumMember",
	KindTypeStatement:            "TypeStatement",
	KindTypeMember:               "TypeMember",
	KindDimStatement:             "DimStatement",
	KindConstStatement:           "ConstStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindArrayBounds:              "ArrayBounds",
	KindTypeClause:               "TypeClause",
	KindSubStatement:             "SubStatement",
	KindFunctionStatement:        "FunctionStatement",
	KindPropertyStatement:        "PropertyStatement",
	KindParameterList:            "ParameterList",
	KindParameter:                "Parameter",
	KindCodeBlock:                "CodeBlock",
	KindIfStatement:              "IfStatement",
	KindElseIfClause:             "ElseIfClause",
	KindElseClause:               "ElseClause",
	KindSelectCaseStatement:      "SelectCaseStatement",
	KindCaseClause:               "CaseClause",
	KindCaseElseClause:           "CaseElseClause",
	KindForStatement:             "ForStatement",
	KindForEachStatement:         "ForEachStatement",
	KindDoStatement:              "DoStatement",
	KindWhileStatement:           "WhileStatement",
	KindWithStatement:            "WithStatement",
	KindCallStatement:            "CallStatement",
	KindRaiseEventStatement:      "RaiseEventStatement",
	KindSetStatement:             "SetStatement",
	KindLetStatement:             "LetStatement",
	KindAssignmentStatement:      "AssignmentStatement",
	KindGotoStatement:            "GotoStatement",
	KindGoSubStatement:           "GoSubStatement",
	KindReturnStatement:          "ReturnStatement",
	KindResumeStatement:          "ResumeStatement",
	KindExitStatement:            "ExitStatement",
	KindStopStatement:            "StopStatement",
	KindEndStatement:             "EndStatement",
	KindOnErrorStatement:         "OnErrorStatement",
	KindOnGoToStatement:          "OnGoToStatement",
	KindOnGoSubStatement:         "OnGoSubStatement",
	KindLabelStatement:           "LabelStatement",
	KindReDimStatement:           "ReDimStatement",
	KindEraseStatement:           "EraseStatement",
	KindAppActivateStatement:     "AppActivateStatement",
	KindBeepStatement:            "BeepStatement",
	KindChDirStatement:           "ChDirStatement",
	KindChDriveStatement:         "ChDriveStatement",
	KindCloseStatement:           "CloseStatement",
	KindDateStatement:            "DateStatement",
	KindDeleteSettingStatement:   "DeleteSettingStatement",
	KindErrorStatement:           "ErrorStatement",
	KindFileCopyStatement:        "FileCopyStatement",
	KindGetStatement:             "GetStatement",
	KindPutStatement:             "PutStatement",
	KindInputStatement:           "InputStatement",
	KindLineInputStatement:       "LineInputStatement",
	KindKillStatement:            "KillStatement",
	KindLoadStatement:            "LoadStatement",
	KindUnloadStatement:          "UnloadStatement",
	KindLockStatement:            "LockStatement",
	KindUnlockStatement:          "UnlockStatement",
	KindLSetStatement:            "LSetStatement",
	KindRSetStatement:            "RSetStatement",
	KindMidStatement:             "MidStatement",
	KindMidBStatement:            "MidBStatement",
	KindMkDirStatement:           "MkDirStatement",
	KindRmDirStatement:           "RmDirStatement",
	KindNameStatement:            "NameStatement",
	KindOpenStatement:            "OpenStatement",
	KindPrintStatement:           "PrintStatement",
	KindRandomizeStatement:       "RandomizeStatement",
	KindResetStatement:           "ResetStatement",
	KindSavePictureStatement:     "SavePictureStatement",
	KindSaveSettingStatement:     "SaveSettingStatement",
	KindSeekStatement:            "SeekStatement",
	KindSendKeysStatement:        "SendKeysStatement",
	KindSetAttrStatement:         "SetAttrStatement",
	KindTimeStatement:            "TimeStatement",
	KindWidthStatement:           "WidthStatement",
	KindWriteStatement:           "WriteStatement",
	KindBinaryExpression:         "BinaryExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindParenthesizedExpression:  "ParenthesizedExpression",
	KindNumericLiteralExpression: "NumericLiteralExpression",
	KindStringLiteralExpression:  "StringLiteralExpression",
	KindBooleanLiteralExpression: "BooleanLiteralExpression",
	KindLiteralExpression:        "LiteralExpression",
	KindIdentifierExpression:     "IdentifierExpression",
	KindMemberAccessExpression:   "MemberAccessExpression",
	KindCallExpression:           "CallExpression",
	KindArgumentList:             "ArgumentList",
	KindArgument:                 "Argument",
	KindNewExpression:            "NewExpression",
	KindAddressOfExpression:      "AddressOfExpression",
	KindTypeOfExpression:         "TypeOfExpression",
}

func (k SyntaxKind) String() string {
	if name, ok := syntaxKindNames[k]; ok {
		return name
	}
	return "Unknown"
}
