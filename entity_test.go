package crofiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralWithSuffix(t *testing.T) {
	in := NewInterner()
	sc := newScanner("42_m")

	lit, ok := parseLiteral(sc, in)
	require.True(t, ok)
	assert.True(t, sc.eof())
	assert.Equal(t, LiteralI64, lit.Value.Kind)
	assert.EqualValues(t, 42, lit.Value.I64)
	require.NotEqual(t, IdentifierHandle(NoHandle), lit.Suffix)
	assert.Equal(t, "_m", in.Identifier(lit.Suffix))

	assert.GreaterOrEqual(t, DisplayWidth(renderLiteral(in, lit)), 4)
}

func TestParseTypeLegacyCombination(t *testing.T) {
	in := NewInterner()
	sc := newScanner("const unsigned long volatile")

	handle, perr, ok := parseTypeLike(sc, in)
	require.True(t, ok)
	require.Nil(t, perr)
	assert.True(t, sc.eof())

	ty := in.Type(handle)
	assert.True(t, ty.Specifier.CV.Const())
	assert.True(t, ty.Specifier.CV.Volatile())
	assert.Equal(t, SimpleTypeLegacyName, ty.Specifier.Simple.Kind)
	assert.Equal(t, LegacyUnsignedLong, ty.Specifier.Simple.Legacy)

	assert.Equal(t, "const volatile unsigned long", renderType(in, ty, elision{}))
}

func TestOperatorAngleBracketAmbiguity(t *testing.T) {
	in := NewInterner()

	sc := newScanner("operator<<void>")
	require.True(t, keyword(sc, "operator"))
	op, tp, perr, ok := parseOperatorOverload(sc, in, defaultOperatorFollow)
	require.True(t, ok)
	require.Nil(t, perr)
	assert.True(t, sc.eof())
	assert.Equal(t, OperatorBasic, op.Kind)
	assert.Equal(t, SymbolLess, op.Symbol)
	assert.False(t, op.Twice)
	assert.False(t, op.Equal)
	require.NotEqual(t, TemplateParametersHandle(NoHandle), tp)
	params := in.TemplateParameters(tp)
	require.Len(t, params.Params, 1)
	voidType := in.Type(params.Params[0].Type)
	assert.Equal(t, LegacyVoid, voidType.Specifier.Simple.Legacy)

	sc2 := newScanner("operator<<")
	require.True(t, keyword(sc2, "operator"))
	op2, tp2, perr2, ok2 := parseOperatorOverload(sc2, in, defaultOperatorFollow)
	require.True(t, ok2)
	require.Nil(t, perr2)
	assert.True(t, sc2.eof())
	assert.Equal(t, OperatorBasic, op2.Kind)
	assert.Equal(t, SymbolLess, op2.Symbol)
	assert.True(t, op2.Twice)
	assert.Equal(t, TemplateParametersHandle(NoHandle), tp2)
}

func TestOperatorEqualsIsNeverTwiceEqual(t *testing.T) {
	in := NewInterner()
	sc := newScanner("operator==")
	require.True(t, keyword(sc, "operator"))
	op, _, perr, ok := parseOperatorOverload(sc, in, defaultOperatorFollow)
	require.True(t, ok)
	require.Nil(t, perr)
	assert.Equal(t, OperatorBasic, op.Kind)
	assert.Equal(t, SymbolEqual, op.Symbol)
	assert.False(t, op.Twice)
	assert.True(t, op.Equal)
}

func TestParseLambdaUnqualifiedId(t *testing.T) {
	in := NewInterner()

	sc := newScanner("(lambda at /a/b.cpp:12:34)")
	id, ok := parseLambda(sc, in)
	require.True(t, ok)
	assert.True(t, sc.eof())
	assert.Equal(t, UnqualifiedIdLambda, id.Kind)
	assert.Equal(t, "/a/b.cpp", in.Path(id.LambdaFile))
	assert.Equal(t, 12, id.LambdaLine)
	assert.Equal(t, 34, id.LambdaCol)

	sc2 := newScanner("(lambda at C:/a/b.cpp:12:34)")
	id2, ok2 := parseLambda(sc2, in)
	require.True(t, ok2)
	assert.True(t, sc2.eof())
	assert.Equal(t, "C:/a/b.cpp", in.Path(id2.LambdaFile))
}

func TestBoundedDisplayElidesInnerScopes(t *testing.T) {
	in := NewInterner()
	handle, err := ParseEntity(in, "std::vector<std::allocator<int>>::iterator")
	require.NoError(t, err)

	ref := LookupEntity(in, handle)
	text, err := ref.BoundedDisplay(20)
	require.NoError(t, err)
	assert.LessOrEqual(t, DisplayWidth(text), 20)
	assert.Contains(t, text, "std")
	assert.Contains(t, text, "iterator")
	assert.Contains(t, text, "…")
}

func TestParseFunctionSignatureWithNoexceptArgument(t *testing.T) {
	in := NewInterner()
	sc := newScanner("() const && noexcept(456)")

	handle, perr, ok := parseFunctionSignature(sc, in)
	require.True(t, ok)
	require.Nil(t, perr)
	assert.True(t, sc.eof())

	fs := in.FunctionSignature(handle)
	assert.Empty(t, fs.Params)
	assert.True(t, fs.CV.Const())
	assert.Equal(t, RefRvalue, fs.Ref)
	assert.True(t, fs.NoexceptPresent)
	require.True(t, fs.NoexceptArgGiven)

	val := in.Value(fs.NoexceptArg)
	require.Equal(t, ValueLiteral, val.Kind)
	assert.EqualValues(t, 456, val.Literal.Value.I64)
}

func TestInterningIsIdempotent(t *testing.T) {
	in := NewInterner()
	h1, err := ParseEntity(in, "ns::Widget")
	require.NoError(t, err)
	h2, err := ParseEntity(in, "ns::Widget")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestStructuralEqualityOfRedundantElaboratedPrefix(t *testing.T) {
	in := NewInterner()
	sc1 := newScanner("struct Foo")
	h1, perr, ok := parseTypeLike(sc1, in)
	require.True(t, ok)
	require.Nil(t, perr)

	sc2 := newScanner("Foo")
	h2, perr2, ok2 := parseTypeLike(sc2, in)
	require.True(t, ok2)
	require.Nil(t, perr2)

	assert.Equal(t, h1, h2)
}

func TestAmbiguousTemplateSentinel(t *testing.T) {
	in := NewInterner()
	sc := newScanner("<, void>")
	handle, perr, ok := parseTemplateParameters(sc, in)
	require.True(t, ok)
	require.Nil(t, perr)
	tp := in.TemplateParameters(handle)
	assert.Equal(t, TemplateParametersAmbiguous, tp.Kind)
}

func TestBinaryOperatorRetriesShorterLengthOnPolicyRejection(t *testing.T) {
	in := NewInterner()
	sc := newScanner("N--1")

	handle, perr, ok := parseValueLike(sc, in, false, false)
	require.True(t, ok)
	require.Nil(t, perr)
	assert.True(t, sc.eof())

	val := in.Value(handle)
	require.Equal(t, ValueBinary, val.Kind)
	assert.Equal(t, SymbolMinus, val.BinaryOp.Symbol)
	assert.False(t, val.BinaryOp.Twice)

	right := in.Value(val.Right)
	require.Equal(t, ValueUnary, right.Kind)
	assert.Equal(t, ValueUnarySymbol, right.UnaryOp.Kind)
	assert.Equal(t, SymbolMinus, right.UnaryOp.Symbol)
}

func TestParseIncompleteIsSurfaced(t *testing.T) {
	in := NewInterner()
	_, err := ParseEntity(in, "Foo$$$")
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ParseErrorIncomplete, perr.Kind)
}

func TestDisplayTooNarrowErrors(t *testing.T) {
	in := NewInterner()
	handle, err := ParseEntity(in, "ns::Widget")
	require.NoError(t, err)
	ref := LookupEntity(in, handle)
	_, err = ref.BoundedDisplay(0)
	require.Error(t, err)
}
