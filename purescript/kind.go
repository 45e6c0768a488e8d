package purescript

// SyntaxKind enumerates every node and token kind of the PureScript grammar.
// Sentinel is the highest code; nothing above it belongs to this kind space.
type SyntaxKind uint16

const (
	Whitespace SyntaxKind = iota
	LineComment
	BlockComment

	Module
	ModuleHeader
	ModuleKw
	WhereKw

	ExportList
	ImportList

	ImportDeclaration
	ImportKw
	AsKw

	ModuleName
	QualifiedName
	QualifiedPrefix
	Name
	NameRef
	Upper
	Lower
	Hole
	Operator

	At
	Equal
	Period
	Period2
	Colon
	Colon2
	LeftArrow
	RightArrow
	LeftThickArrow
	RightThickArrow
	LeftParenthesis
	RightParenthesis
	LeftBracket
	RightBracket
	LeftSquare
	RightSquare
	Tick
	Comma
	Pipe
	Minus

	AdoExpression
	AdoKw
	QualifiedAdo
	DoExpression
	DoKw
	QualifiedDo
	ApplicationExpression
	TermArgument
	TypeArgument
	ConstructorExpression
	LiteralExpression
	IfThenElseExpression
	IfKw
	ThenKw
	ElseKw
	InfixChain
	NegateExpression
	OperatorChain
	OperatorNameExpression
	ParenthesizedExpression
	TernaryExpression
	TypedExpression
	VariableExpression

	LiteralChar
	LiteralString
	LiteralRawString
	LiteralInteger
	LiteralNumber
	LiteralTrue
	LiteralFalse

	ConstructorType
	ForallType
	TypeVariableBinding
	KindedType
	VariableType

	Pattern

	ValueDeclaration
	AnnotationDeclaration

	DataDeclaration
	DataKw

	NewtypeDeclaration
	NewtypeKw
	ForallKw

	TypeDeclaration
	TypeKw

	ClassDeclaration
	ClassKw

	InstanceDeclaration
	InstanceKw

	DeriveInstanceDeclaration
	DeriveKw

	ForeignDataDeclaration
	ForeignValueDeclaration
	ForeignKw

	FixityDeclaration
	InfixlKw
	InfixrKw
	InfixKw

	// Generic shapes shared by several productions.
	Labeled   // l: e, e :: T
	Prefixed  // @variable, ?hole
	Wrapped   // ( element )
	OneOrMore // non-empty sequence
	Pair

	Error
	EndOfFile

	// Sentinel is the highest legal kind code.
	Sentinel
)

// kindNames is indexed by SyntaxKind.
var kindNames = [...]string{
	"Whitespace",
	"LineComment",
	"BlockComment",
	"Module",
	"ModuleHeader",
	"ModuleKw",
	"WhereKw",
	"ExportList",
	"ImportList",
	"ImportDeclaration",
	"ImportKw",
	"AsKw",
	"ModuleName",
	"QualifiedName",
	"QualifiedPrefix",
	"Name",
	"NameRef",
	"Upper",
	"Lower",
	"Hole",
	"Operator",
	"At",
	"Equal",
	"Period",
	"Period2",
	"Colon",
	"Colon2",
	"LeftArrow",
	"RightArrow",
	"LeftThickArrow",
	"RightThickArrow",
	"LeftParenthesis",
	"RightParenthesis",
	"LeftBracket",
	"RightBracket",
	"LeftSquare",
	"RightSquare",
	"Tick",
	"Comma",
	"Pipe",
	"Minus",
	"AdoExpression",
	"AdoKw",
	"QualifiedAdo",
	"DoExpression",
	"DoKw",
	"QualifiedDo",
	"ApplicationExpression",
	"TermArgument",
	"TypeArgument",
	"ConstructorExpression",
	"LiteralExpression",
	"IfThenElseExpression",
	"IfKw",
	"ThenKw",
	"ElseKw",
	"InfixChain",
	"NegateExpression",
	"OperatorChain",
	"OperatorNameExpression",
	"ParenthesizedExpression",
	"TernaryExpression",
	"TypedExpression",
	"VariableExpression",
	"LiteralChar",
	"LiteralString",
	"LiteralRawString",
	"LiteralInteger",
	"LiteralNumber",
	"LiteralTrue",
	"LiteralFalse",
	"ConstructorType",
	"ForallType",
	"TypeVariableBinding",
	"KindedType",
	"VariableType",
	"Pattern",
	"ValueDeclaration",
	"AnnotationDeclaration",
	"DataDeclaration",
	"DataKw",
	"NewtypeDeclaration",
	"NewtypeKw",
	"ForallKw",
	"TypeDeclaration",
	"TypeKw",
	"ClassDeclaration",
	"ClassKw",
	"InstanceDeclaration",
	"InstanceKw",
	"DeriveInstanceDeclaration",
	"DeriveKw",
	"ForeignDataDeclaration",
	"ForeignValueDeclaration",
	"ForeignKw",
	"FixityDeclaration",
	"InfixlKw",
	"InfixrKw",
	"InfixKw",
	"Labeled",
	"Prefixed",
	"Wrapped",
	"OneOrMore",
	"Pair",
	"Error",
	"EndOfFile",
	"Sentinel",
}

// Fails to compile when kindNames and the constants above drift apart.
var _ [1]struct{} = [len(kindNames) - int(Sentinel)]struct{}{}
