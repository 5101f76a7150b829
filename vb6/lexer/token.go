package lexer

import (
	"strconv"
	"strings"

	"github.com/dhamidi/vbt/vb6/source"
)

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	// TokenEOF marks the end of a stream for parsers peeking past the last
	// token. The lexer never produces it.
	TokenEOF
	TokenNewline
	TokenWhitespace
	TokenComment
	TokenRemComment

	// Literals
	TokenIdent
	TokenNumber
	TokenStringLiteral

	// Symbols
	symbolStart
	TokenEqual
	TokenLT
	TokenGT
	TokenDollar
	TokenUnderscore
	TokenAmpersand
	TokenPercent
	TokenHash
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenPlus
	TokenMinus
	TokenStar
	TokenBackslash
	TokenSlash
	TokenDot
	TokenColon
	TokenCaret
	TokenBang
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenAt
	symbolEnd

	// Keywords, alphabetical. Match priority lives in keywordTable.
	keywordStart
	TokenAccess
	TokenAddressOf
	TokenAlias
	TokenAnd
	TokenAppActivate
	TokenAppend
	TokenAs
	TokenAttribute
	TokenBase
	TokenBeep
	TokenBegin
	TokenBinary
	TokenBoolean
	TokenByRef
	TokenByte
	TokenByVal
	TokenCall
	TokenCase
	TokenChDir
	TokenChDrive
	TokenClass
	TokenClose
	TokenCompare
	TokenConst
	TokenCurrency
	TokenDatabase
	TokenDate
	TokenDecimal
	TokenDeclare
	TokenDefBool
	TokenDefByte
	TokenDefCur
	TokenDefDate
	TokenDefDbl
	TokenDefDec
	TokenDefInt
	TokenDefLng
	TokenDefObj
	TokenDefSng
	TokenDefStr
	TokenDefVar
	TokenDeleteSetting
	TokenDim
	TokenDo
	TokenDouble
	TokenEach
	TokenElse
	TokenElseIf
	TokenEmpty
	TokenEnd
	TokenEnum
	TokenEqv
	TokenErase
	TokenError
	TokenEvent
	TokenExit
	TokenExplicit
	TokenFalse
	TokenFileCopy
	TokenFor
	TokenFriend
	TokenFunction
	TokenGet
	TokenGoSub
	TokenGoTo
	TokenIf
	TokenImp
	TokenImplements
	TokenIn
	TokenInput
	TokenInteger
	TokenIs
	TokenKill
	TokenLen
	TokenLet
	TokenLib
	TokenLike
	TokenLine
	TokenLoad
	TokenLock
	TokenLong
	TokenLoop
	TokenLSet
	TokenMe
	TokenMid
	TokenMidB
	TokenMkDir
	TokenMod
	TokenModule
	TokenName
	TokenNew
	TokenNext
	TokenNot
	TokenNothing
	TokenNull
	TokenObject
	TokenOn
	TokenOpen
	TokenOption
	TokenOptional
	TokenOr
	TokenOutput
	TokenParamArray
	TokenPreserve
	TokenPrint
	TokenPrivate
	TokenProperty
	TokenPublic
	TokenPut
	TokenRaiseEvent
	TokenRandom
	TokenRandomize
	TokenRead
	TokenReDim
	TokenReset
	TokenResume
	TokenReturn
	TokenRmDir
	TokenRSet
	TokenSavePicture
	TokenSaveSetting
	TokenSeek
	TokenSelect
	TokenSendKeys
	TokenSet
	TokenSetAttr
	TokenSingle
	TokenStatic
	TokenStep
	TokenStop
	TokenString
	TokenSub
	TokenText
	TokenThen
	TokenTime
	TokenTo
	TokenTrue
	TokenType
	TokenTypeOf
	TokenUnload
	TokenUnlock
	TokenUntil
	TokenVariant
	TokenVersion
	TokenWend
	TokenWhile
	TokenWidth
	TokenWith
	TokenWithEvents
	TokenWrite
	TokenXor
	keywordEnd

)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:       "Unknown",
	TokenEOF:           "EOF",
	TokenNewline:       "Newline",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenRemComment:    "RemComment",
	TokenIdent:         "Identifier",
	TokenNumber:        "Number",
	TokenStringLiteral: "StringLiteral",
	TokenEqual:         "Equal",
	TokenLT:            "LessThan",
	TokenGT:            "GreaterThan",
	TokenDollar:        "Dollar",
	TokenUnderscore:    "Underscore",
	TokenAmpersand:     "Ampersand",
	TokenPercent:       "Percent",
	TokenHash:          "Hash",
	TokenLParen:        "LeftParen",
	TokenRParen:        "RightParen",
	TokenLBrace:        "LeftBrace",
	TokenRBrace:        "RightBrace",
	TokenComma:         "Comma",
	TokenPlus:          "Plus",
	TokenMinus:         "Minus",
	TokenStar:          "Star",
	TokenBackslash:     "Backslash",
	TokenSlash:         "Slash",
	TokenDot:           "Dot",
	TokenColon:         "Colon",
	TokenCaret:         "Caret",
	TokenBang:          "Bang",
	TokenLBracket:      "LeftBracket",
	TokenRBracket:      "RightBracket",
	TokenSemicolon:     "Semicolon",
	TokenAt:            "At",
	TokenAccess:        "Access",
	TokenAddressOf:     "AddressOf",
	TokenAlias:         "Alias",
	TokenAnd:           "And",
	TokenAppActivate:   "AppActivate",
	TokenAppend:        "Append",
	TokenAs:            "As",
	TokenAttribute:     "Attribute",
	TokenBase:          "Base",
	TokenBeep:          "Beep",
	TokenBegin:         "Begin",
	TokenBinary:        "Binary",
	TokenBoolean:       "Boolean",
	TokenByRef:         "ByRef",
	TokenByte:          "Byte",
	TokenByVal:         "ByVal",
	TokenCall:          "Call",
	TokenCase:          "Case",
	TokenChDir:         "ChDir",
	TokenChDrive:       "ChDrive",
	TokenClass:         "Class",
	TokenClose:         "Close",
	TokenCompare:       "Compare",
	TokenConst:         "Const",
	TokenCurrency:      "Currency",
	TokenDatabase:      "Database",
	TokenDate:          "Date",
	TokenDecimal:       "Decimal",
	TokenDeclare:       "Declare",
	TokenDefBool:       "DefBool",
	TokenDefByte:       "DefByte",
	TokenDefCur:        "DefCur",
	TokenDefDate:       "DefDate",
	TokenDefDbl:        "DefDbl",
	TokenDefDec:        "DefDec",
	TokenDefInt:        "DefInt",
	TokenDefLng:        "DefLng",
	TokenDefObj:        "DefObj",
	TokenDefSng:        "DefSng",
	TokenDefStr:        "DefStr",
	TokenDefVar:        "DefVar",
	TokenDeleteSetting: "DeleteSetting",
	TokenDim:           "Dim",
	TokenDo:            "Do",
	TokenDouble:        "Double",
	TokenEach:          "Each",
	TokenElse:          "Else",
	TokenElseIf:        "ElseIf",
	TokenEmpty:         "Empty",
	TokenEnd:           "End",
	TokenEnum:          "Enum",
	TokenEqv:           "Eqv",
	TokenErase:         "Erase",
	TokenError:         "Error",
	TokenEvent:         "Event",
	TokenExit:          "Exit",
	TokenExplicit:      "Explicit",
	TokenFalse:         "False",
	TokenFileCopy:      "FileCopy",
	TokenFor:           "For",
	TokenFriend:        "Friend",
	TokenFunction:      "Function",
	TokenGet:           "Get",
	TokenGoSub:         "GoSub",
	TokenGoTo:          "GoTo",
	TokenIf:            "If",
	TokenImp:           "Imp",
	TokenImplements:    "Implements",
	TokenIn:            "In",
	TokenInput:         "Input",
	TokenInteger:       "Integer",
	TokenIs:            "Is",
	TokenKill:          "Kill",
	TokenLen:           "Len",
	TokenLet:           "Let",
	TokenLib:           "Lib",
	TokenLike:          "Like",
	TokenLine:          "Line",
	TokenLoad:          "Load",
	TokenLock:          "Lock",
	TokenLong:          "Long",
	TokenLoop:          "Loop",
	TokenLSet:          "LSet",
	TokenMe:            "Me",
	TokenMid:           "Mid",
	TokenMidB:          "MidB",
	TokenMkDir:         "MkDir",
	TokenMod:           "Mod",
	TokenModule:        "Module",
	TokenName:          "Name",
	TokenNew:           "New",
	TokenNext:          "Next",
	TokenNot:           "Not",
	TokenNothing:       "Nothing",
	TokenNull:          "Null",
	TokenObject:        "Object",
	TokenOn:            "On",
	TokenOpen:          "Open",
	TokenOption:        "Option",
	TokenOptional:      "Optional",
	TokenOr:            "Or",
	TokenOutput:        "Output",
	TokenParamArray:    "ParamArray",
	TokenPreserve:      "Preserve",
	TokenPrint:         "Print",
	TokenPrivate:       "Private",
	TokenProperty:      "Property",
	TokenPublic:        "Public",
	TokenPut:           "Put",
	TokenRaiseEvent:    "RaiseEvent",
	TokenRandom:        "Random",
	TokenRandomize:     "Randomize",
	TokenRead:          "Read",
	TokenReDim:         "ReDim",
	TokenReset:         "Reset",
	TokenResume:        "Resume",
	TokenReturn:        "Return",
	TokenRmDir:         "RmDir",
	TokenRSet:          "RSet",
	TokenSavePicture:   "SavePicture",
	TokenSaveSetting:   "SaveSetting",
	TokenSeek:          "Seek",
	TokenSelect:        "Select",
	TokenSendKeys:      "SendKeys",
	TokenSet:           "Set",
	TokenSetAttr:       "SetAttr",
	TokenSingle:        "Single",
	TokenStatic:        "Static",
	TokenStep:          "Step",
	TokenStop:          "Stop",
	TokenString:        "String",
	TokenSub:           "Sub",
	TokenText:          "Text",
	TokenThen:          "Then",
	TokenTime:          "Time",
	TokenTo:            "To",
	TokenTrue:          "True",
	TokenType:          "Type",
	TokenTypeOf:        "TypeOf",
	TokenUnload:        "Unload",
	TokenUnlock:        "Unlock",
	TokenUntil:         "Until",
	TokenVariant:       "Variant",
	TokenVersion:       "Version",
	TokenWend:          "Wend",
	TokenWhile:         "While",
	TokenWidth:         "Width",
	TokenWith:          "With",
	TokenWithEvents:    "WithEvents",
	TokenWrite:         "Write",
	TokenXor:           "Xor",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k TokenKind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

func (k TokenKind) IsSymbol() bool {
	return k > symbolStart && k < symbolEnd
}

// IsTrivia reports whether the grammar can skip tokens of this kind.
// Newlines end statements and are not trivia.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenComment, TokenRemComment:
		return true
	}
	return false
}

// Token is one lexeme. Literal is the exact source text, quotes included,
// so concatenating the literals of a stream reproduces the input.
type Token struct {
	Kind    TokenKind
	Span    source.Span
	Literal string
}

func (t Token) String() string {
	return t.Kind.String() + " " + strconv.Quote(t.Literal)
}

func (t Token) Is(kind TokenKind) bool {
	return t.Kind == kind
}

type keyword struct {
	literal string
	kind    TokenKind
}

// keywordTable is tried in order and the first literal that matches wins.
// A keyword that is a prefix of another must come after it, otherwise the
// shorter spelling would be matched and then rejected at the word boundary.
var keywordTable = []keyword{
	{"AddressOf", TokenAddressOf},
	{"Access", TokenAccess},
	{"Alias", TokenAlias},
	{"And", TokenAnd},
	{"AppActivate", TokenAppActivate},
	{"Append", TokenAppend},
	{"Attribute", TokenAttribute},
	{"As", TokenAs},
	{"Base", TokenBase},
	{"Beep", TokenBeep},
	{"Begin", TokenBegin},
	{"Binary", TokenBinary},
	{"Boolean", TokenBoolean},
	{"ByRef", TokenByRef},
	{"Byte", TokenByte},
	{"ByVal", TokenByVal},
	{"Call", TokenCall},
	{"Case", TokenCase},
	{"ChDir", TokenChDir},
	{"ChDrive", TokenChDrive},
	{"Class", TokenClass},
	{"Close", TokenClose},
	{"Compare", TokenCompare},
	{"Const", TokenConst},
	{"Currency", TokenCurrency},
	{"Date", TokenDate},
	{"Database", TokenDatabase},
	{"Decimal", TokenDecimal},
	{"Declare", TokenDeclare},
	{"DefBool", TokenDefBool},
	{"DefByte", TokenDefByte},
	{"DefCur", TokenDefCur},
	{"DefDate", TokenDefDate},
	{"DefDbl", TokenDefDbl},
	{"DefDec", TokenDefDec},
	{"DefInt", TokenDefInt},
	{"DefLng", TokenDefLng},
	{"DefObj", TokenDefObj},
	{"DefSng", TokenDefSng},
	{"DefStr", TokenDefStr},
	{"DefVar", TokenDefVar},
	{"DeleteSetting", TokenDeleteSetting},
	{"Dim", TokenDim},
	{"Double", TokenDouble},
	{"Do", TokenDo},
	{"Each", TokenEach},
	{"ElseIf", TokenElseIf},
	{"Else", TokenElse},
	{"Empty", TokenEmpty},
	{"End", TokenEnd},
	{"Enum", TokenEnum},
	{"Eqv", TokenEqv},
	{"Erase", TokenErase},
	{"Error", TokenError},
	{"Event", TokenEvent},
	{"Exit", TokenExit},
	{"Explicit", TokenExplicit},
	{"False", TokenFalse},
	{"FileCopy", TokenFileCopy},
	{"For", TokenFor},
	{"Friend", TokenFriend},
	{"Function", TokenFunction},
	{"Get", TokenGet},
	{"GoSub", TokenGoSub},
	{"GoTo", TokenGoTo},
	{"If", TokenIf},
	{"Implements", TokenImplements},
	{"Imp", TokenImp},
	{"Input", TokenInput},
	{"Integer", TokenInteger},
	{"In", TokenIn},
	{"Is", TokenIs},
	{"Kill", TokenKill},
	{"Len", TokenLen},
	{"Let", TokenLet},
	{"Lib", TokenLib},
	{"Like", TokenLike},
	{"Line", TokenLine},
	{"Lock", TokenLock},
	{"Load", TokenLoad},
	{"Long", TokenLong},
	{"Loop", TokenLoop},
	{"LSet", TokenLSet},
	{"Me", TokenMe},
	{"MidB", TokenMidB},
	{"Mid", TokenMid},
	{"MkDir", TokenMkDir},
	{"Module", TokenModule},
	{"Mod", TokenMod},
	{"Name", TokenName},
	{"New", TokenNew},
	{"Next", TokenNext},
	{"Nothing", TokenNothing},
	{"Not", TokenNot},
	{"Null", TokenNull},
	{"Object", TokenObject},
	{"On", TokenOn},
	{"Open", TokenOpen},
	{"Optional", TokenOptional},
	{"Option", TokenOption},
	{"Or", TokenOr},
	{"Output", TokenOutput},
	{"ParamArray", TokenParamArray},
	{"Preserve", TokenPreserve},
	{"Print", TokenPrint},
	{"Private", TokenPrivate},
	{"Property", TokenProperty},
	{"Public", TokenPublic},
	{"Put", TokenPut},
	{"RaiseEvent", TokenRaiseEvent},
	{"Randomize", TokenRandomize},
	{"Random", TokenRandom},
	{"Read", TokenRead},
	{"ReDim", TokenReDim},
	{"Reset", TokenReset},
	{"Resume", TokenResume},
	{"Return", TokenReturn},
	{"RmDir", TokenRmDir},
	{"RSet", TokenRSet},
	{"SavePicture", TokenSavePicture},
	{"SaveSetting", TokenSaveSetting},
	{"Seek", TokenSeek},
	{"Select", TokenSelect},
	{"SendKeys", TokenSendKeys},
	{"SetAttr", TokenSetAttr},
	{"Set", TokenSet},
	{"Single", TokenSingle},
	{"Static", TokenStatic},
	{"Step", TokenStep},
	{"Stop", TokenStop},
	{"String", TokenString},
	{"Sub", TokenSub},
	{"Text", TokenText},
	{"Then", TokenThen},
	{"Time", TokenTime},
	{"To", TokenTo},
	{"True", TokenTrue},
	{"TypeOf", TokenTypeOf},
	{"Type", TokenType},
	{"Unload", TokenUnload},
	{"Unlock", TokenUnlock},
	{"Until", TokenUntil},
	{"Variant", TokenVariant},
	{"Version", TokenVersion},
	{"Wend", TokenWend},
	{"While", TokenWhile},
	{"Width", TokenWidth},
	{"WithEvents", TokenWithEvents},
	{"With", TokenWith},
	{"Write", TokenWrite},
	{"Xor", TokenXor},
}

var keywordsByName = func() map[string]TokenKind {
	m := make(map[string]TokenKind, len(keywordTable))
	for _, kw := range keywordTable {
		m[strings.ToLower(kw.literal)] = kw.kind
	}
	return m
}()

// LookupKeyword classifies a whole word, ignoring case.
func LookupKeyword(word string) (TokenKind, bool) {
	kind, ok := keywordsByName[strings.ToLower(word)]
	return kind, ok
}

// Keywords returns the keyword spellings in match priority order.
func Keywords() []string {
	out := make([]string, len(keywordTable))
	for i, kw := range keywordTable {
		out[i] = kw.literal
	}
	return out
}

var symbolTable = [256]TokenKind{
	'=':  TokenEqual,
	'<':  TokenLT,
	'>':  TokenGT,
	'$':  TokenDollar,
	'_':  TokenUnderscore,
	'&':  TokenAmpersand,
	'%':  TokenPercent,
	'#':  TokenHash,
	'(':  TokenLParen,
	')':  TokenRParen,
	'{':  TokenLBrace,
	'}':  TokenRBrace,
	',':  TokenComma,
	'+':  TokenPlus,
	'-':  TokenMinus,
	'*':  TokenStar,
	'\\': TokenBackslash,
	'/':  TokenSlash,
	'.':  TokenDot,
	':':  TokenColon,
	'^':  TokenCaret,
	'!':  TokenBang,
	'[':  TokenLBracket,
	']':  TokenRBracket,
	';':  TokenSemicolon,
	'@':  TokenAt,
}

// LookupSymbol classifies a single operator or punctuation byte.
func LookupSymbol(b byte) (TokenKind, bool) {
	kind := symbolTable[b]
	return kind, kind != TokenUnknown
}
