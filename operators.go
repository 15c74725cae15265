package crofiler

// decodeLen1 decodes a single bare operator symbol.
func decodeLen1(b0 byte) (Operator, bool) {
	if s, ok := symbolFromByte(b0); ok {
		return Operator{Kind: OperatorBasic, Symbol: s}, true
	}
	return Operator{}, false
}

// decodeLen2 decodes two symbol bytes: `s=` -> equal form, `ss` (same
// symbol twice) -> twice form, `->` -> Deref. The `s=` check runs
// first so `==` always decodes as Basic{'=', equal:true}, never as
// '=' twice.
func decodeLen2(b0, b1 byte) (Operator, bool) {
	if b1 == '=' {
		if s, ok := symbolFromByte(b0); ok {
			return Operator{Kind: OperatorBasic, Symbol: s, Equal: true}, true
		}
	}
	if b0 == b1 {
		if s, ok := symbolFromByte(b0); ok {
			return Operator{Kind: OperatorBasic, Symbol: s, Twice: true}, true
		}
	}
	if b0 == '-' && b1 == '>' {
		return Operator{Kind: OperatorDeref}, true
	}
	return Operator{}, false
}

// decodeLen3 decodes three symbol bytes: `sse` (same symbol twice
// plus `=`) -> twice+equal form, `->*` -> Deref{Star:true}, `<=>` ->
// Spaceship.
func decodeLen3(b0, b1, b2 byte) (Operator, bool) {
	if b0 == b1 && b2 == '=' {
		if s, ok := symbolFromByte(b0); ok {
			return Operator{Kind: OperatorBasic, Symbol: s, Twice: true, Equal: true}, true
		}
	}
	if b0 == '-' && b1 == '>' && b2 == '*' {
		return Operator{Kind: OperatorDeref, Star: true}, true
	}
	if b0 == '<' && b1 == '=' && b2 == '>' {
		return Operator{Kind: OperatorSpaceship}, true
	}
	return Operator{}, false
}

// defaultOperatorFollow is the follow-set used to validate an
// operator-name candidate length when parsing `operator`NAME in
// id-expression position: EOF, the start of another scope (`::`), or
// one of the closing/separating delimiters of an enclosing
// template-argument list or parameter list.
func defaultOperatorFollow(sc *scanner) bool {
	if sc.eof() {
		return true
	}
	switch sc.peek() {
	case ':', '>', ',', ')':
		return true
	default:
		return false
	}
}

// parseArithmeticOrComparison implements the bounded-retry decoding of
// §4.6: try operator lengths 3, then 2, then 1; after each candidate,
// optionally consume a template-parameter list; accept the first
// length whose resulting position satisfies isValidFollow, backing
// out completely and retrying shorter lengths otherwise. This is what
// disambiguates `operator<<void>` (length 1, `<`, plus template args
// `<void>`) from `operator<<` (length 2, twice-`<`, no template args).
func parseArithmeticOrComparison(sc *scanner, in *Interner, isValidFollow func(*scanner) bool) (Operator, TemplateParametersHandle, bool) {
	for length := 3; length >= 1; length-- {
		start := sc.mark()

		var op Operator
		var ok bool
		switch length {
		case 3:
			op, ok = decodeLen3(sc.peekAt(0), sc.peekAt(1), sc.peekAt(2))
		case 2:
			op, ok = decodeLen2(sc.peekAt(0), sc.peekAt(1))
		case 1:
			op, ok = decodeLen1(sc.peekAt(0))
		}
		if !ok {
			continue
		}
		sc.advance(length)

		templateHandle := TemplateParametersHandle(NoHandle)
		if sc.peek() == '<' {
			handle, _, ok := parseTemplateParameters(sc, in)
			if !ok {
				sc.backtrack(start)
				continue
			}
			templateHandle = handle
		}

		if isValidFollow(sc) {
			return op, templateHandle, true
		}
		sc.backtrack(start)
	}
	return Operator{}, TemplateParametersHandle(NoHandle), false
}

// parseBracketOperator matches `()` or `[]`.
func parseBracketOperator(sc *scanner) (Operator, bool) {
	start := sc.mark()
	if sc.consumeByte('(') {
		if sc.consumeByte(')') {
			return Operator{Kind: OperatorCallIndex, IsIndex: false}, true
		}
		sc.backtrack(start)
		return Operator{}, false
	}
	if sc.consumeByte('[') {
		if sc.consumeByte(']') {
			return Operator{Kind: OperatorCallIndex, IsIndex: true}, true
		}
		sc.backtrack(start)
		return Operator{}, false
	}
	return Operator{}, false
}

// parseCustomLiteralOperator matches `"" suffix`, allowing optional
// whitespace between the quotes and the identifier.
func parseCustomLiteralOperator(sc *scanner, in *Interner) (Operator, bool) {
	start := sc.mark()
	if !sc.consumeLiteral(`""`) {
		return Operator{}, false
	}
	sc.skipSpaces()
	name, ok := identifier(sc)
	if !ok {
		sc.backtrack(start)
		return Operator{}, false
	}
	return Operator{Kind: OperatorCustomLiteral, CustomLiteral: in.InternIdentifier(name)}, true
}

// parseNewDeleteCoAwaitOrConversion matches, after a single space, one
// of `new`/`new[]`/`delete`/`delete[]`, `co_await`, or falls back to a
// conversion TypeLike (which may itself start with a keyword).
func parseNewDeleteCoAwaitOrConversion(sc *scanner, in *Interner) (Operator, *ParseError, bool) {
	start := sc.mark()
	if !sc.consumeByte(' ') {
		return Operator{}, nil, false
	}

	if keyword(sc, "new") {
		isArray := sc.consumeLiteral("[]")
		return Operator{Kind: OperatorNewDelete, IsArray: isArray}, nil, true
	}
	if keyword(sc, "delete") {
		isArray := sc.consumeLiteral("[]")
		return Operator{Kind: OperatorNewDelete, IsDelete: true, IsArray: isArray}, nil, true
	}
	if keyword(sc, "co_await") {
		return Operator{Kind: OperatorCoAwait}, nil, true
	}

	typeHandle, perr, ok := parseTypeLike(sc, in)
	if !ok {
		sc.backtrack(start)
		return Operator{}, nil, false
	}
	if perr != nil {
		return Operator{}, perr, true
	}
	return Operator{Kind: OperatorConversion, ConversionType: typeHandle}, nil, true
}

// parseOperatorOverload parses the name following the `operator`
// keyword, trying each of §4.6's four alternatives in order.
func parseOperatorOverload(sc *scanner, in *Interner, isValidFollow func(*scanner) bool) (Operator, TemplateParametersHandle, *ParseError, bool) {
	if op, tp, ok := parseArithmeticOrComparison(sc, in, isValidFollow); ok {
		return op, tp, nil, true
	}
	if op, ok := parseBracketOperator(sc); ok {
		return op, TemplateParametersHandle(NoHandle), nil, true
	}
	if op, ok := parseCustomLiteralOperator(sc, in); ok {
		return op, TemplateParametersHandle(NoHandle), nil, true
	}
	if op, perr, ok := parseNewDeleteCoAwaitOrConversion(sc, in); ok {
		return op, TemplateParametersHandle(NoHandle), perr, true
	}
	return Operator{}, TemplateParametersHandle(NoHandle), nil, false
}

// parsePrefixUnaryOperator matches the unary-prefix operators allowed
// at the start of a value expression.
func parsePrefixUnaryOperator(sc *scanner, in *Interner) (ValueUnaryOp, *ParseError, bool) {
	if sc.consumeLiteral("++") {
		return ValueUnaryOp{Kind: ValueUnaryIncrement}, nil, true
	}
	if sc.consumeLiteral("--") {
		return ValueUnaryOp{Kind: ValueUnaryDecrement}, nil, true
	}

	start := sc.mark()
	if sc.consumeByte('(') {
		typeHandle, perr, ok := parseTypeLike(sc, in)
		if ok && perr == nil && sc.consumeByte(')') {
			return ValueUnaryOp{Kind: ValueUnaryCast, CastType: typeHandle}, nil, true
		}
		sc.backtrack(start)
	}

	if keyword(sc, "co_await") {
		if sc.consumeByte(' ') || true {
			return ValueUnaryOp{Kind: ValueUnaryCoAwait}, nil, true
		}
	}
	if keyword(sc, "delete") {
		isArray := sc.consumeLiteral("[]")
		return ValueUnaryOp{Kind: ValueUnaryDelete, DeleteIsArray: isArray}, nil, true
	}

	switch sc.peek() {
	case '+', '-', '*', '&', '~', '!':
		s, _ := symbolFromByte(sc.peek())
		sc.advance(1)
		return ValueUnaryOp{Kind: ValueUnarySymbol, Symbol: s}, nil, true
	}
	return ValueUnaryOp{}, nil, false
}

// parseBinaryOperator matches the value-expression binary operator:
// bounded-retry among arithmetic/comparison lengths 3, 2, 1, same as
// parseArithmeticOrComparison above. A length rejected by policy
// (`~`/`!` are never binary, `++`/`--` are prefix-only) doesn't fail
// the whole match, it falls back to the next shorter length at the
// same start position - so `N--1` rejects length-2 `--` and retries
// length-1 `-`, leaving `-1` for the next primary to consume as a
// unary negation, yielding `N - (-1)`.
func parseBinaryOperator(sc *scanner, allowComma, allowGreater bool) (Operator, bool) {
	for length := 3; length >= 1; length-- {
		var op Operator
		var ok bool
		switch length {
		case 3:
			op, ok = decodeLen3(sc.peekAt(0), sc.peekAt(1), sc.peekAt(2))
		case 2:
			op, ok = decodeLen2(sc.peekAt(0), sc.peekAt(1))
		case 1:
			op, ok = decodeLen1(sc.peekAt(0))
		}
		if !ok || !binaryOperatorAllowed(op, length, allowComma, allowGreater) {
			continue
		}
		sc.advance(length)
		return op, true
	}
	return Operator{}, false
}

// binaryOperatorAllowed applies the value-expression policy: `~`/`!`
// are never binary operators, `,`/`>` only count as one when the
// caller allows it (outside/inside a template-argument or parameter
// list), and a length-2 `++`/`--` is the prefix increment/decrement,
// not a binary operator.
func binaryOperatorAllowed(op Operator, length int, allowComma, allowGreater bool) bool {
	if op.Kind != OperatorBasic {
		return true
	}
	switch op.Symbol {
	case SymbolTilde, SymbolBang:
		return false
	case SymbolComma:
		if !allowComma {
			return false
		}
	case SymbolGreater:
		if !allowGreater {
			return false
		}
	}
	if length == 2 && op.Twice && !op.Equal && (op.Symbol == SymbolPlus || op.Symbol == SymbolMinus) {
		return false
	}
	return true
}
