package crofiler

import (
	"fmt"
	"strconv"
	"strings"
)

// elision describes how aggressively renderEntity should collapse
// sub-components that don't fit the width budget. Stages are additive
// and strictly ordered, matching §4.7's truncation priority:
// template-parameter lists, then function-signature parameters, then
// inner scope names, then the unqualified-id itself.
type elision struct {
	templates bool
	sigParams bool
	// scopeStage: 0 = full scope chain, 1 = `first::…::Name`, 2 = `…::Name`.
	scopeStage int
	// all collapses the entire rendering to a single ellipsis.
	all bool
}

func renderEntity(in *Interner, e Entity, el elision) string {
	if el.all {
		return "…"
	}
	text := renderIdExpression(in, in.IdExpression(e.IdExpression), el)
	if e.Signature != FunctionSignatureHandle(NoHandle) {
		text += renderFunctionSignature(in, in.FunctionSignature(e.Signature), el)
	}
	return text
}

func renderIdExpression(in *Interner, ie IdExpression, el elision) string {
	unqualified := renderUnqualifiedId(in, ie.Unqualified, el)

	if len(ie.Scopes) == 0 {
		return unqualified
	}

	switch {
	case el.scopeStage >= 2:
		return "…::" + unqualified
	case el.scopeStage == 1:
		first := renderScope(in, ie.Scopes[0], el)
		return first + "::…::" + unqualified
	default:
		parts := make([]string, len(ie.Scopes))
		for i, s := range ie.Scopes {
			parts[i] = renderScope(in, s, el)
		}
		return strings.Join(parts, "::") + "::" + unqualified
	}
}

func renderScope(in *Interner, s Scope, el elision) string {
	text := in.Identifier(s.Name)
	if s.TemplateParameters != TemplateParametersHandle(NoHandle) {
		text += renderTemplateParameters(in, in.TemplateParameters(s.TemplateParameters), el)
	}
	if s.Signature != FunctionSignatureHandle(NoHandle) {
		text += renderFunctionSignature(in, in.FunctionSignature(s.Signature), el)
	}
	return text
}

func renderUnqualifiedId(in *Interner, u UnqualifiedId, el elision) string {
	switch u.Kind {
	case UnqualifiedIdNamed:
		text := in.Identifier(u.Name)
		if u.TemplateParameters != TemplateParametersHandle(NoHandle) {
			text += renderTemplateParameters(in, in.TemplateParameters(u.TemplateParameters), el)
		}
		return text
	case UnqualifiedIdOperator:
		text := "operator" + renderOperator(in, u.Operator)
		if u.TemplateParameters != TemplateParametersHandle(NoHandle) {
			text += renderTemplateParameters(in, in.TemplateParameters(u.TemplateParameters), el)
		}
		return text
	case UnqualifiedIdDestructor:
		return "~" + in.Identifier(u.Name)
	case UnqualifiedIdDecltypeAuto:
		return "decltype(auto)"
	case UnqualifiedIdLambda:
		return fmt.Sprintf("(lambda at %s:%d:%d)", in.Path(u.LambdaFile), u.LambdaLine, u.LambdaCol)
	case UnqualifiedIdAnonymous:
		if u.AnonymousName == IdentifierHandle(NoHandle) {
			return "(anonymous)"
		}
		return "(anonymous " + in.Identifier(u.AnonymousName) + ")"
	case UnqualifiedIdUnknown:
		return "<unknown>"
	default:
		return "?"
	}
}

func renderOperator(in *Interner, op Operator) string {
	switch op.Kind {
	case OperatorBasic:
		s := op.Symbol.String()
		text := s
		if op.Twice {
			text += s
		}
		if op.Equal {
			text += "="
		}
		return text
	case OperatorDeref:
		if op.Star {
			return "->*"
		}
		return "->"
	case OperatorSpaceship:
		return "<=>"
	case OperatorCallIndex:
		if op.IsIndex {
			return "[]"
		}
		return "()"
	case OperatorCustomLiteral:
		return `"" ` + in.Identifier(op.CustomLiteral)
	case OperatorNewDelete:
		text := " new"
		if op.IsDelete {
			text = " delete"
		}
		if op.IsArray {
			text += "[]"
		}
		return text
	case OperatorCoAwait:
		return " co_await"
	case OperatorConversion:
		return " " + renderType(in, in.Type(op.ConversionType), elision{})
	default:
		return "?"
	}
}

func renderTemplateParameters(in *Interner, tp TemplateParameters, el elision) string {
	if tp.Kind == TemplateParametersAmbiguous {
		return "<, void>"
	}
	if el.templates && len(tp.Params) > 0 {
		return "<…>"
	}
	parts := make([]string, len(tp.Params))
	for i, p := range tp.Params {
		switch p.Kind {
		case TemplateParameterType:
			parts[i] = renderType(in, in.Type(p.Type), el)
		case TemplateParameterValue:
			parts[i] = renderValue(in, in.Value(p.Value), el)
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func renderType(in *Interner, t TypeLike, el elision) string {
	var b strings.Builder
	if t.Specifier.CV.Const() {
		b.WriteString("const ")
	}
	if t.Specifier.CV.Volatile() {
		b.WriteString("volatile ")
	}

	switch t.Specifier.Simple.Kind {
	case SimpleTypeLegacyName:
		b.WriteString(t.Specifier.Simple.Legacy.String())
	case SimpleTypeIdExpression:
		b.WriteString(renderIdExpression(in, in.IdExpression(t.Specifier.Simple.IdExpression), el))
	}

	for _, d := range t.Declarators {
		switch d.Kind {
		case DeclaratorPointer:
			b.WriteString(" *")
		case DeclaratorLvalueRef:
			b.WriteString(" &")
		case DeclaratorRvalueRef:
			b.WriteString(" &&")
		}
		if d.CV != 0 {
			b.WriteString(" ")
			b.WriteString(d.CV.String())
		}
	}

	if t.Signature != FunctionSignatureHandle(NoHandle) {
		b.WriteString(renderFunctionSignature(in, in.FunctionSignature(t.Signature), el))
	}

	for _, a := range t.Arrays {
		b.WriteString("[")
		if a.Present {
			b.WriteString(renderValue(in, in.Value(a.Value), el))
		}
		b.WriteString("]")
	}

	return b.String()
}

func renderFunctionSignature(in *Interner, fs FunctionSignature, el elision) string {
	var b strings.Builder
	b.WriteString("(")
	if el.sigParams && len(fs.Params) > 0 {
		b.WriteString("…")
	} else {
		parts := make([]string, len(fs.Params))
		for i, p := range fs.Params {
			parts[i] = renderType(in, in.Type(p), el)
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(")")

	if fs.CV != 0 {
		b.WriteString(" ")
		b.WriteString(fs.CV.String())
	}
	if fs.Ref != RefNone {
		b.WriteString(" ")
		b.WriteString(fs.Ref.String())
	}
	if fs.NoexceptPresent {
		b.WriteString(" noexcept")
		if fs.NoexceptArgGiven {
			b.WriteString("(")
			b.WriteString(renderValue(in, in.Value(fs.NoexceptArg), el))
			b.WriteString(")")
		}
	}
	return b.String()
}

func renderValue(in *Interner, v Value, el elision) string {
	switch v.Kind {
	case ValueLiteral:
		return renderLiteral(in, v.Literal)
	case ValueIdExpression:
		return renderIdExpression(in, in.IdExpression(v.IdExpression), el)
	case ValueUnary:
		return renderValueUnaryOp(in, v.UnaryOp) + renderValue(in, in.Value(v.Inner), el)
	case ValueBinary:
		return renderValue(in, in.Value(v.Left), el) + " " + renderOperator(in, v.BinaryOp) + " " + renderValue(in, in.Value(v.Right), el)
	case ValueParens:
		return "(" + renderValue(in, in.Value(v.Inner), el) + ")"
	default:
		return "?"
	}
}

func renderValueUnaryOp(in *Interner, u ValueUnaryOp) string {
	switch u.Kind {
	case ValueUnaryIncrement:
		return "++"
	case ValueUnaryDecrement:
		return "--"
	case ValueUnarySymbol:
		return u.Symbol.String()
	case ValueUnaryCast:
		return "(" + renderType(in, in.Type(u.CastType), elision{}) + ")"
	case ValueUnaryCoAwait:
		return "co_await "
	case ValueUnaryDelete:
		if u.DeleteIsArray {
			return "delete[] "
		}
		return "delete "
	default:
		return "?"
	}
}

// writeEntityTree renders a debug indented dump of an entity's
// structure, independent of the width-bounded display machinery.
func writeEntityTree(tp *treePrinter[string], in *Interner, e Entity) {
	tp.pwritel("Entity")
	tp.indent("  ")
	writeIdExpressionTree(tp, in, in.IdExpression(e.IdExpression))
	if e.Signature != FunctionSignatureHandle(NoHandle) {
		tp.pwritel("Signature: " + renderFunctionSignature(in, in.FunctionSignature(e.Signature), elision{}))
	}
	tp.unindent()
}

func writeIdExpressionTree(tp *treePrinter[string], in *Interner, ie IdExpression) {
	for i, s := range ie.Scopes {
		tp.pwritel(fmt.Sprintf("Scope[%d]: %s", i, renderScope(in, s, elision{})))
	}
	tp.pwritel("UnqualifiedId: " + renderUnqualifiedId(in, ie.Unqualified, elision{}))
}

func renderLiteral(in *Interner, l Literal) string {
	var text string
	switch l.Value.Kind {
	case LiteralI64:
		text = strconv.FormatInt(l.Value.I64, 10)
	case LiteralU64:
		text = strconv.FormatUint(l.Value.U64, 10)
	case LiteralChar:
		text = "'" + escapeLiteral(string(l.Value.Char)) + "'"
	}
	if l.Suffix != IdentifierHandle(NoHandle) {
		text += in.Identifier(l.Suffix)
	}
	return text
}
