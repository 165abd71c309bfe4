package syntax

// NodeKind classifies a syntax node. The set is closed: grammar node types
// without a dedicated kind map to KindOther, and the raw grammar name stays
// available on Node.Type.
type NodeKind uint16

// Node kinds.
const (
	KindOther NodeKind = iota
	KindError

	// Structure.
	KindSourceFile
	KindModule
	KindBlock
	KindComment

	// Declarations and statements.
	KindVariableStatement
	KindLexicalDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindMethodDefinition
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindDebuggerStatement
	KindImportStatement
	KindExportStatement
	KindEmptyStatement

	// Expressions.
	KindIdentifier
	KindPropertyIdentifier
	KindNullLiteral
	KindUndefined
	KindTrue
	KindFalse
	KindNumber
	KindStringLiteral
	KindTemplateString
	KindBinaryExpression
	KindUnaryExpression
	KindCallExpression
	KindMemberExpression
	KindArrowFunction
	KindFunctionExpression
	KindObject
	KindArray
	KindParenthesizedExpression
	KindAssignmentExpression

	// Tokens the built-in rules need to address directly.
	KindVarKeyword
	KindLetKeyword
	KindConstKeyword
	KindEqualsEquals
	KindExclamationEquals
	KindEqualsEqualsEquals
	KindExclamationEqualsEquals
	KindSemicolon
	KindPunctuation

	// Type syntax. Everything from here to kindTypeEnd is type-only.
	kindTypeStart
	KindTypeAnnotation
	KindTypeReference
	KindPredefinedType
	KindLiteralType
	KindUnionType
	KindIntersectionType
	KindArrayType
	KindTupleType
	KindFunctionType
	KindObjectType
	KindTypeArguments
	KindTypeParameters
	KindParenthesizedType
	KindTypeQuery
	KindIndexedAccessType
	KindConditionalType
	KindTypePredicate
	KindTypeOperator
	kindTypeEnd

	kindCount
)

//nolint:gochecknoglobals // Static lookup table
var kindNames = [kindCount]string{
	KindOther:                   "Other",
	KindError:                   "Error",
	KindSourceFile:              "SourceFile",
	KindModule:                  "Module",
	KindBlock:                   "Block",
	KindComment:                 "Comment",
	KindVariableStatement:       "VariableStatement",
	KindLexicalDeclaration:      "LexicalDeclaration",
	KindVariableDeclarator:      "VariableDeclarator",
	KindFunctionDeclaration:     "FunctionDeclaration",
	KindClassDeclaration:        "ClassDeclaration",
	KindMethodDefinition:        "MethodDefinition",
	KindInterfaceDeclaration:    "InterfaceDeclaration",
	KindTypeAliasDeclaration:    "TypeAliasDeclaration",
	KindExpressionStatement:     "ExpressionStatement",
	KindReturnStatement:         "ReturnStatement",
	KindIfStatement:             "IfStatement",
	KindDebuggerStatement:       "DebuggerStatement",
	KindImportStatement:         "ImportStatement",
	KindExportStatement:         "ExportStatement",
	KindEmptyStatement:          "EmptyStatement",
	KindIdentifier:              "Identifier",
	KindPropertyIdentifier:      "PropertyIdentifier",
	KindNullLiteral:             "NullLiteral",
	KindUndefined:               "Undefined",
	KindTrue:                    "True",
	KindFalse:                   "False",
	KindNumber:                  "Number",
	KindStringLiteral:           "StringLiteral",
	KindTemplateString:          "TemplateString",
	KindBinaryExpression:        "BinaryExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindCallExpression:          "CallExpression",
	KindMemberExpression:        "MemberExpression",
	KindArrowFunction:           "ArrowFunction",
	KindFunctionExpression:      "FunctionExpression",
	KindObject:                  "Object",
	KindArray:                   "Array",
	KindParenthesizedExpression: "ParenthesizedExpression",
	KindAssignmentExpression:    "AssignmentExpression",
	KindVarKeyword:              "VarKeyword",
	KindLetKeyword:              "LetKeyword",
	KindConstKeyword:            "ConstKeyword",
	KindEqualsEquals:            "EqualsEquals",
	KindExclamationEquals:       "ExclamationEquals",
	KindEqualsEqualsEquals:      "EqualsEqualsEquals",
	KindExclamationEqualsEquals: "ExclamationEqualsEquals",
	KindSemicolon:               "Semicolon",
	KindPunctuation:             "Punctuation",
	kindTypeStart:               "",
	KindTypeAnnotation:          "TypeAnnotation",
	KindTypeReference:           "TypeReference",
	KindPredefinedType:          "PredefinedType",
	KindLiteralType:             "LiteralType",
	KindUnionType:               "UnionType",
	KindIntersectionType:        "IntersectionType",
	KindArrayType:               "ArrayType",
	KindTupleType:               "TupleType",
	KindFunctionType:            "FunctionType",
	KindObjectType:              "ObjectType",
	KindTypeArguments:           "TypeArguments",
	KindTypeParameters:          "TypeParameters",
	KindParenthesizedType:       "ParenthesizedType",
	KindTypeQuery:               "TypeQuery",
	KindIndexedAccessType:       "IndexedAccessType",
	KindConditionalType:         "ConditionalType",
	KindTypePredicate:           "TypePredicate",
	KindTypeOperator:            "TypeOperator",
	kindTypeEnd:                 "",
}

// typeSyntax marks the kinds that belong to type annotations rather than
// executable syntax. The walker consults it once per node.
//
//nolint:gochecknoglobals // Static lookup table
var typeSyntax = func() [kindCount]bool {
	var table [kindCount]bool
	for k := kindTypeStart + 1; k < kindTypeEnd; k++ {
		table[k] = true
	}
	return table
}()

// String returns the kind's name.
func (k NodeKind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsTypeSyntax reports whether nodes of this kind are type-only syntax.
func IsTypeSyntax(k NodeKind) bool {
	return k < kindCount && typeSyntax[k]
}

// IsEqualityOperator reports whether k is one of ==, !=, === or !==.
func IsEqualityOperator(k NodeKind) bool {
	switch k {
	case KindEqualsEquals, KindExclamationEquals, KindEqualsEqualsEquals, KindExclamationEqualsEquals:
		return true
	default:
		return false
	}
}

// KindFromString returns the kind with the given name, or KindOther.
func KindFromString(name string) NodeKind {
	for k, n := range kindNames {
		if n == name && n != "" {
			return NodeKind(k)
		}
	}
	return KindOther
}
