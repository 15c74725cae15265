package crofiler

// parseTemplateParameters parses a `<...>`-delimited, comma-separated
// template-argument list. The caller must have already confirmed the
// next byte is `<`. Each parameter is tried first as a TypeLike, then
// as a ValueLike with ALLOW_COMMA and ALLOW_GREATER both off, since
// inside this list a bare `,` or `>`/`>>` belongs to the list grammar,
// not to a value expression.
func parseTemplateParameters(sc *scanner, in *Interner) (TemplateParametersHandle, *ParseError, bool) {
	start := sc.mark()
	if !sc.consumeByte('<') {
		return TemplateParametersHandle(NoHandle), nil, false
	}

	// The literal clang emission `<, void>` is a sentinel, not a type
	// list: recognize it before attempting regular parameter parsing.
	if sc.consumeLiteral(", void>") {
		return in.internTemplateParameters(TemplateParameters{Kind: TemplateParametersAmbiguous}), nil, true
	}

	sc.skipSpaces()
	if sc.consumeByte('>') {
		return in.internTemplateParameters(TemplateParameters{Kind: TemplateParametersResolved}), nil, true
	}

	var params []TemplateParameter
	for {
		sc.skipSpaces()
		param, perr, ok := parseTemplateParameter(sc, in)
		if !ok {
			sc.backtrack(start)
			return TemplateParametersHandle(NoHandle), nil, false
		}
		if perr != nil {
			return TemplateParametersHandle(NoHandle), perr, true
		}
		params = append(params, param)

		sc.skipSpaces()
		if sc.consumeByte(',') {
			continue
		}
		if sc.consumeByte('>') {
			break
		}
		sc.backtrack(start)
		return TemplateParametersHandle(NoHandle), sc.syntaxErrorf("',' or '>' in template-parameter list"), true
	}

	return in.internTemplateParameters(TemplateParameters{Kind: TemplateParametersResolved, Params: params}), nil, true
}

func parseTemplateParameter(sc *scanner, in *Interner) (TemplateParameter, *ParseError, bool) {
	start := sc.mark()

	if typeHandle, perr, ok := parseTypeLike(sc, in); ok {
		if perr != nil {
			return TemplateParameter{}, perr, true
		}
		return TemplateParameter{Kind: TemplateParameterType, Type: typeHandle}, nil, true
	}
	sc.backtrack(start)

	if valueHandle, perr, ok := parseValueLike(sc, in, false, false); ok {
		if perr != nil {
			return TemplateParameter{}, perr, true
		}
		return TemplateParameter{Kind: TemplateParameterValue, Value: valueHandle}, nil, true
	}
	sc.backtrack(start)
	return TemplateParameter{}, nil, false
}
