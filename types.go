package crofiler

var elaboratedTypeKeywords = []string{"typename", "class", "struct", "enum", "union"}

// parseSimpleType tries a legacy primitive combination first, then
// falls back to an id-expression optionally preceded by a discarded
// elaborated-type keyword.
func parseSimpleType(sc *scanner, in *Interner) (SimpleType, *ParseError, bool) {
	if lname, perr, ok := legacyName(sc); ok {
		if perr != nil {
			return SimpleType{}, perr, true
		}
		return SimpleType{Kind: SimpleTypeLegacyName, Legacy: lname}, nil, true
	}

	start := sc.mark()
	if _, ok := keywords(sc, elaboratedTypeKeywords); ok {
		sc.skipSpaces()
	}

	idHandle, perr, ok := parseIdExpression(sc, in)
	if !ok {
		sc.backtrack(start)
		return SimpleType{}, nil, false
	}
	if perr != nil {
		return SimpleType{}, perr, true
	}
	return SimpleType{Kind: SimpleTypeIdExpression, IdExpression: idHandle}, nil, true
}

// parseDeclaratorChain consumes the pointer/reference declarator
// chain that may follow a type-specifier, each link with its own
// trailing cv-qualifiers.
func parseDeclaratorChain(sc *scanner) []Declarator {
	var chain []Declarator
	for {
		sc.skipSpaces()
		switch {
		case sc.consumeByte('*'):
			chain = append(chain, Declarator{Kind: DeclaratorPointer, CV: cv(sc)})
		case sc.peek() == '&':
			ref := reference(sc)
			kind := DeclaratorLvalueRef
			if ref == RefRvalue {
				kind = DeclaratorRvalueRef
			}
			chain = append(chain, Declarator{Kind: kind, CV: cv(sc)})
		default:
			return chain
		}
	}
}

// parseArrayExtents consumes zero or more `[N]`/`[]` suffixes.
func parseArrayExtents(sc *scanner, in *Interner) ([]ArrayExtent, *ParseError) {
	var extents []ArrayExtent
	for {
		sc.skipSpaces()
		if sc.peek() != '[' {
			return extents, nil
		}
		start := sc.mark()
		sc.advance(1)
		sc.skipSpaces()

		if sc.consumeByte(']') {
			extents = append(extents, ArrayExtent{Present: false})
			continue
		}

		valueHandle, perr, ok := parseValueLike(sc, in, true, true)
		if !ok {
			sc.backtrack(start)
			return extents, nil
		}
		if perr != nil {
			return nil, perr
		}
		sc.skipSpaces()
		if !sc.consumeByte(']') {
			return nil, sc.syntaxErrorf("']'")
		}
		extents = append(extents, ArrayExtent{Present: true, Value: valueHandle})
	}
}

// parseTypeLike implements §4.4 in full: leading/trailing cv, a
// SimpleType, a declarator chain, an optional function-signature
// suffix and optional array extents.
func parseTypeLike(sc *scanner, in *Interner) (TypeHandle, *ParseError, bool) {
	start := sc.mark()

	leadingCV := cv(sc)
	sc.skipSpaces()

	simple, perr, ok := parseSimpleType(sc, in)
	if !ok {
		sc.backtrack(start)
		return TypeHandle(NoHandle), nil, false
	}
	if perr != nil {
		return TypeHandle(NoHandle), perr, true
	}
	trailingCV := cv(sc)

	declarators := parseDeclaratorChain(sc)

	signature := FunctionSignatureHandle(NoHandle)
	sc.skipSpaces()
	if sc.peek() == '(' {
		h, perr, ok := parseFunctionSignature(sc, in)
		if perr != nil {
			return TypeHandle(NoHandle), perr, true
		}
		if ok {
			signature = h
		}
	}

	arrays, perr := parseArrayExtents(sc, in)
	if perr != nil {
		return TypeHandle(NoHandle), perr, true
	}

	t := TypeLike{
		Specifier:   TypeSpecifier{CV: leadingCV | trailingCV, Simple: simple},
		Declarators: declarators,
		Signature:   signature,
		Arrays:      arrays,
	}
	return in.internType(t), nil, true
}
