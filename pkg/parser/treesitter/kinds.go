package treesitter

import "github.com/yaklabco/gotslint/pkg/syntax"

// namedKinds maps grammar node types to syntax kinds. The three grammars
// share their JavaScript core, so one table serves all of them.
//
//nolint:gochecknoglobals // Static lookup table
var namedKinds = map[string]syntax.NodeKind{
	"program":                         syntax.KindSourceFile,
	"module":                          syntax.KindModule,
	"internal_module":                 syntax.KindModule,
	"statement_block":                 syntax.KindBlock,
	"comment":                         syntax.KindComment,
	"html_comment":                    syntax.KindComment,
	"variable_declaration":            syntax.KindVariableStatement,
	"lexical_declaration":             syntax.KindLexicalDeclaration,
	"variable_declarator":             syntax.KindVariableDeclarator,
	"function_declaration":            syntax.KindFunctionDeclaration,
	"generator_function_declaration":  syntax.KindFunctionDeclaration,
	"class_declaration":               syntax.KindClassDeclaration,
	"abstract_class_declaration":      syntax.KindClassDeclaration,
	"method_definition":               syntax.KindMethodDefinition,
	"interface_declaration":           syntax.KindInterfaceDeclaration,
	"type_alias_declaration":          syntax.KindTypeAliasDeclaration,
	"expression_statement":            syntax.KindExpressionStatement,
	"return_statement":                syntax.KindReturnStatement,
	"if_statement":                    syntax.KindIfStatement,
	"debugger_statement":              syntax.KindDebuggerStatement,
	"import_statement":                syntax.KindImportStatement,
	"export_statement":                syntax.KindExportStatement,
	"empty_statement":                 syntax.KindEmptyStatement,
	"identifier":                      syntax.KindIdentifier,
	"shorthand_property_identifier":   syntax.KindIdentifier,
	"property_identifier":             syntax.KindPropertyIdentifier,
	"null":                            syntax.KindNullLiteral,
	"undefined":                       syntax.KindUndefined,
	"true":                            syntax.KindTrue,
	"false":                           syntax.KindFalse,
	"number":                          syntax.KindNumber,
	"string":                          syntax.KindStringLiteral,
	"template_string":                 syntax.KindTemplateString,
	"binary_expression":               syntax.KindBinaryExpression,
	"unary_expression":                syntax.KindUnaryExpression,
	"call_expression":                 syntax.KindCallExpression,
	"member_expression":               syntax.KindMemberExpression,
	"arrow_function":                  syntax.KindArrowFunction,
	"function":                        syntax.KindFunctionExpression,
	"function_expression":             syntax.KindFunctionExpression,
	"object":                          syntax.KindObject,
	"array":                           syntax.KindArray,
	"parenthesized_expression":        syntax.KindParenthesizedExpression,
	"assignment_expression":           syntax.KindAssignmentExpression,
	"augmented_assignment_expression": syntax.KindAssignmentExpression,
	"ERROR":                           syntax.KindError,

	// Type syntax.
	"type_annotation":           syntax.KindTypeAnnotation,
	"opting_type_annotation":    syntax.KindTypeAnnotation,
	"omitting_type_annotation":  syntax.KindTypeAnnotation,
	"asserts_annotation":        syntax.KindTypeAnnotation,
	"type_identifier":           syntax.KindTypeReference,
	"nested_type_identifier":    syntax.KindTypeReference,
	"generic_type":              syntax.KindTypeReference,
	"predefined_type":           syntax.KindPredefinedType,
	"literal_type":              syntax.KindLiteralType,
	"union_type":                syntax.KindUnionType,
	"intersection_type":         syntax.KindIntersectionType,
	"array_type":                syntax.KindArrayType,
	"tuple_type":                syntax.KindTupleType,
	"function_type":             syntax.KindFunctionType,
	"constructor_type":          syntax.KindFunctionType,
	"object_type":               syntax.KindObjectType,
	"interface_body":            syntax.KindObjectType,
	"type_arguments":            syntax.KindTypeArguments,
	"type_parameters":           syntax.KindTypeParameters,
	"parenthesized_type":        syntax.KindParenthesizedType,
	"type_query":                syntax.KindTypeQuery,
	"lookup_type":               syntax.KindIndexedAccessType,
	"conditional_type":          syntax.KindConditionalType,
	"type_predicate":            syntax.KindTypePredicate,
	"type_predicate_annotation": syntax.KindTypePredicate,
	"asserts":                   syntax.KindTypePredicate,
	"index_type_query":          syntax.KindTypeOperator,
	"readonly_type":             syntax.KindTypeOperator,
}

// tokenKinds maps anonymous tokens the built-in rules address directly.
//
//nolint:gochecknoglobals // Static lookup table
var tokenKinds = map[string]syntax.NodeKind{
	"var":   syntax.KindVarKeyword,
	"let":   syntax.KindLetKeyword,
	"const": syntax.KindConstKeyword,
	"==":    syntax.KindEqualsEquals,
	"!=":    syntax.KindExclamationEquals,
	"===":   syntax.KindEqualsEqualsEquals,
	"!==":   syntax.KindExclamationEqualsEquals,
	";":     syntax.KindSemicolon,
}

// kindOf classifies a grammar node. Anonymous tokens without a dedicated
// kind are punctuation unless they are words (keywords).
func kindOf(typ string, named bool) syntax.NodeKind {
	if named {
		return namedKinds[typ]
	}
	if k, ok := tokenKinds[typ]; ok {
		return k
	}
	if typ != "" && !isWordStart(typ[0]) {
		return syntax.KindPunctuation
	}
	return syntax.KindOther
}

func isWordStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
