package crofiler

// Handle types are opaque small integers into an Interner's per-kind
// tables. NoHandle marks an optional reference that is absent; it is
// never a valid index into any table.
const NoHandle = -1

type IdentifierHandle int
type PathHandle int
type TypeHandle int
type IdExpressionHandle int
type ValueHandle int
type TemplateParametersHandle int
type FunctionSignatureHandle int

// ConstVolatile is a bitset combining by union wherever cv-qualifiers
// are seen more than once (e.g. leading and trailing on a type).
type ConstVolatile uint8

const (
	CVConst ConstVolatile = 1 << iota
	CVVolatile
)

func (cv ConstVolatile) Const() bool    { return cv&CVConst != 0 }
func (cv ConstVolatile) Volatile() bool { return cv&CVVolatile != 0 }

func (cv ConstVolatile) String() string {
	switch {
	case cv.Const() && cv.Volatile():
		return "const volatile"
	case cv.Const():
		return "const"
	case cv.Volatile():
		return "volatile"
	default:
		return ""
	}
}

// Reference is the trailing ref-qualifier on a type or member function.
type Reference uint8

const (
	RefNone Reference = iota
	RefLvalue
	RefRvalue
)

func (r Reference) String() string {
	switch r {
	case RefLvalue:
		return "&"
	case RefRvalue:
		return "&&"
	default:
		return ""
	}
}

type LiteralValueKind uint8

const (
	LiteralI64 LiteralValueKind = iota
	LiteralU64
	LiteralChar
)

// LiteralValue is the decoded numeric or character payload of a
// Literal. The signed form is preferred; U64 is only populated when
// the digits don't fit in an int64.
type LiteralValue struct {
	Kind LiteralValueKind
	I64  int64
	U64  uint64
	Char rune
}

// Literal pairs a LiteralValue with its optional user-defined-literal
// suffix, e.g. the `_m` in `42_m`.
type Literal struct {
	Value  LiteralValue
	Suffix IdentifierHandle // NoHandle if absent
}

type OperatorKind uint8

const (
	OperatorBasic OperatorKind = iota
	OperatorDeref
	OperatorSpaceship
	OperatorCallIndex
	OperatorCustomLiteral
	OperatorNewDelete
	OperatorCoAwait
	OperatorConversion
)

// Operator is the tagged union of every spelling `operator` can take,
// plus the small set of arithmetic/comparison symbols reused by value
// expressions for their binary operator.
type Operator struct {
	Kind OperatorKind

	// OperatorBasic
	Symbol Symbol
	Twice  bool
	Equal  bool

	// OperatorDeref: `->` (Star=false) or `->*` (Star=true)
	Star bool

	// OperatorCallIndex: `()` (IsIndex=false) or `[]` (IsIndex=true)
	IsIndex bool

	// OperatorCustomLiteral: `"" suffix`
	CustomLiteral IdentifierHandle

	// OperatorNewDelete
	IsDelete bool
	IsArray  bool

	// OperatorConversion
	ConversionType TypeHandle
}

type SimpleTypeKind uint8

const (
	SimpleTypeIdExpression SimpleTypeKind = iota
	SimpleTypeLegacyName
)

// SimpleType is either a scoped id-expression or a legacy C-style
// primitive spelling.
type SimpleType struct {
	Kind         SimpleTypeKind
	IdExpression IdExpressionHandle
	Legacy       LegacyName
}

type TypeSpecifier struct {
	CV     ConstVolatile
	Simple SimpleType
}

type DeclaratorKind uint8

const (
	DeclaratorPointer DeclaratorKind = iota
	DeclaratorLvalueRef
	DeclaratorRvalueRef
)

// Declarator is one link in the pointer/reference chain that can
// follow a type-specifier, each with its own trailing cv-qualifiers
// (e.g. `int * const *`).
type Declarator struct {
	Kind DeclaratorKind
	CV   ConstVolatile
}

// ArrayExtent is one `[N]` or `[]` suffix. Present is false for the
// empty-brackets form.
type ArrayExtent struct {
	Present bool
	Value   ValueHandle
}

// TypeLike is a full type: a specifier, an optional declarator chain,
// an optional function-signature suffix (for function-pointer and
// function-type spellings) and optional array extents.
type TypeLike struct {
	Specifier   TypeSpecifier
	Declarators []Declarator
	Signature   FunctionSignatureHandle // NoHandle if absent
	Arrays      []ArrayExtent
}

// Scope is one `name<template-args>` segment of a scoped id, or a
// function-local scope like `foo()::LocalStruct`.
type Scope struct {
	Name               IdentifierHandle
	TemplateParameters TemplateParametersHandle // NoHandle if absent
	Signature          FunctionSignatureHandle  // NoHandle if absent
}

type UnqualifiedIdKind uint8

const (
	UnqualifiedIdNamed UnqualifiedIdKind = iota
	UnqualifiedIdOperator
	UnqualifiedIdDestructor
	UnqualifiedIdDecltypeAuto
	UnqualifiedIdLambda
	UnqualifiedIdAnonymous
	UnqualifiedIdUnknown
)

// UnqualifiedId is the final component of an id-expression.
type UnqualifiedId struct {
	Kind UnqualifiedIdKind

	// Named, Destructor
	Name IdentifierHandle

	// Named, Operator
	TemplateParameters TemplateParametersHandle // NoHandle if absent

	// Operator
	Operator Operator

	// Lambda
	LambdaFile PathHandle
	LambdaLine int
	LambdaCol  int

	// Anonymous
	AnonymousName IdentifierHandle // NoHandle if unnamed
}

// IdExpression is a possibly-empty chain of Scopes followed by an
// UnqualifiedId.
type IdExpression struct {
	Scopes      []Scope
	Unqualified UnqualifiedId
}

type TemplateParameterKind uint8

const (
	TemplateParameterType TemplateParameterKind = iota
	TemplateParameterValue
)

type TemplateParameter struct {
	Kind  TemplateParameterKind
	Type  TypeHandle
	Value ValueHandle
}

type TemplateParametersKind uint8

const (
	TemplateParametersResolved TemplateParametersKind = iota
	TemplateParametersAmbiguous
)

// TemplateParameters is either a resolved, ordered parameter list or
// the Ambiguous sentinel produced by clang's `<, void>` emission.
type TemplateParameters struct {
	Kind   TemplateParametersKind
	Params []TemplateParameter
}

// FunctionSignature is a parameter-type list plus CV/ref qualifiers
// and an optional, optionally-valued `noexcept` clause. The outer
// optional is whether `noexcept` appears at all; the inner optional
// is whether it was given an argument.
type FunctionSignature struct {
	Params            []TypeHandle
	CV                ConstVolatile
	Ref               Reference
	NoexceptPresent   bool
	NoexceptArgGiven  bool
	NoexceptArg       ValueHandle
}

type ValueUnaryKind uint8

const (
	ValueUnaryIncrement ValueUnaryKind = iota
	ValueUnaryDecrement
	ValueUnarySymbol
	ValueUnaryCast
	ValueUnaryCoAwait
	ValueUnaryDelete
)

// ValueUnaryOp is the prefix operator applied by a ValueUnary node.
type ValueUnaryOp struct {
	Kind            ValueUnaryKind
	Symbol          Symbol
	CastType        TypeHandle
	DeleteIsArray   bool
}

type ValueKind uint8

const (
	ValueLiteral ValueKind = iota
	ValueIdExpression
	ValueUnary
	ValueBinary
	ValueParens
)

// Value is the tagged union behind ValueHandle: a literal, an
// id-expression, a prefix-unary application, a binary application, or
// a parenthesized sub-expression.
type Value struct {
	Kind ValueKind

	Literal      Literal
	IdExpression IdExpressionHandle

	UnaryOp ValueUnaryOp
	Inner   ValueHandle // Unary, Parens

	BinaryOp Operator // OperatorBasic, OperatorDeref or OperatorSpaceship
	Left     ValueHandle
	Right    ValueHandle
}
