package crofiler

// parseFunctionSignature parses `(` comma-separated TypeLike list `)`
// optional CV, optional reference, optional `noexcept` with optional
// `(ValueLike)`. Callers check for the leading `(` themselves before
// calling in most contexts, but this also re-checks so it can be used
// as a standalone optional try.
func parseFunctionSignature(sc *scanner, in *Interner) (FunctionSignatureHandle, *ParseError, bool) {
	start := sc.mark()
	if !sc.consumeByte('(') {
		return FunctionSignatureHandle(NoHandle), nil, false
	}

	var params []TypeHandle
	sc.skipSpaces()
	if sc.peek() != ')' {
		for {
			sc.skipSpaces()
			th, perr, ok := parseTypeLike(sc, in)
			if !ok {
				sc.backtrack(start)
				return FunctionSignatureHandle(NoHandle), nil, false
			}
			if perr != nil {
				return FunctionSignatureHandle(NoHandle), perr, true
			}
			params = append(params, th)
			sc.skipSpaces()
			if sc.consumeByte(',') {
				continue
			}
			break
		}
	}

	sc.skipSpaces()
	if !sc.consumeByte(')') {
		sc.backtrack(start)
		return FunctionSignatureHandle(NoHandle), nil, false
	}

	sc.skipSpaces()
	cvFlags := cv(sc)
	sc.skipSpaces()
	ref := reference(sc)

	sc.skipSpaces()
	var (
		noexceptPresent bool
		argGiven        bool
		argHandle       = ValueHandle(NoHandle)
	)
	if keyword(sc, "noexcept") {
		noexceptPresent = true
		sc.skipSpaces()
		if sc.consumeByte('(') {
			sc.skipSpaces()
			vh, perr, ok := parseValueLike(sc, in, true, true)
			if perr != nil {
				return FunctionSignatureHandle(NoHandle), perr, true
			}
			if ok {
				argHandle = vh
				argGiven = true
			}
			sc.skipSpaces()
			if !sc.consumeByte(')') {
				return FunctionSignatureHandle(NoHandle), sc.syntaxErrorf("')' closing noexcept"), true
			}
		}
	}

	fs := FunctionSignature{
		Params:           params,
		CV:               cvFlags,
		Ref:              ref,
		NoexceptPresent:  noexceptPresent,
		NoexceptArgGiven: argGiven,
		NoexceptArg:      argHandle,
	}
	return in.internFunctionSignature(fs), nil, true
}
