package crofiler

// parseValueLike parses a ValueLike expression: a primary (literal,
// id-expression, parenthesized sub-expression, or unary application)
// followed by zero or more binary operator applications, folded left
// to right with no precedence between operators. This is the
// single-level Pratt-style folder the source material calls
// "acceptable for trace-data values" - good enough for the numeric
// and id-expression values that appear in template arguments and
// `noexcept(...)`, without implementing full C++ expression
// precedence.
func parseValueLike(sc *scanner, in *Interner, allowComma, allowGreater bool) (ValueHandle, *ParseError, bool) {
	left, perr, ok := parseValuePrimary(sc, in, allowComma, allowGreater)
	if !ok {
		return ValueHandle(NoHandle), nil, false
	}
	if perr != nil {
		return ValueHandle(NoHandle), perr, true
	}

	for {
		sc.skipSpaces()
		start := sc.mark()
		op, ok := parseBinaryOperator(sc, allowComma, allowGreater)
		if !ok {
			sc.backtrack(start)
			break
		}
		sc.skipSpaces()
		right, perr, ok := parseValuePrimary(sc, in, allowComma, allowGreater)
		if !ok {
			sc.backtrack(start)
			break
		}
		if perr != nil {
			return ValueHandle(NoHandle), perr, true
		}
		left = in.internValue(Value{Kind: ValueBinary, BinaryOp: op, Left: left, Right: right})
	}
	return left, nil, true
}

func parseValuePrimary(sc *scanner, in *Interner, allowComma, allowGreater bool) (ValueHandle, *ParseError, bool) {
	start := sc.mark()

	if sc.consumeByte('(') {
		sc.skipSpaces()
		inner, perr, ok := parseValueLike(sc, in, true, true)
		if ok && perr == nil {
			sc.skipSpaces()
			if sc.consumeByte(')') {
				return in.internValue(Value{Kind: ValueParens, Inner: inner}), nil, true
			}
		}
		if perr != nil {
			return ValueHandle(NoHandle), perr, true
		}
		sc.backtrack(start)
	}

	if uop, perr, ok := parsePrefixUnaryOperator(sc, in); ok {
		if perr != nil {
			return ValueHandle(NoHandle), perr, true
		}
		sc.skipSpaces()
		inner, perr, ok := parseValuePrimary(sc, in, allowComma, allowGreater)
		if !ok {
			sc.backtrack(start)
			return ValueHandle(NoHandle), nil, false
		}
		if perr != nil {
			return ValueHandle(NoHandle), perr, true
		}
		return in.internValue(Value{Kind: ValueUnary, UnaryOp: uop, Inner: inner}), nil, true
	}

	if lit, ok := parseLiteral(sc, in); ok {
		return in.internValue(Value{Kind: ValueLiteral, Literal: lit}), nil, true
	}

	if idHandle, perr, ok := parseIdExpression(sc, in); ok {
		if perr != nil {
			return ValueHandle(NoHandle), perr, true
		}
		return in.internValue(Value{Kind: ValueIdExpression, IdExpression: idHandle}), nil, true
	}

	return ValueHandle(NoHandle), nil, false
}
