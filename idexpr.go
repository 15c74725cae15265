package crofiler

import "strconv"

// parseIdExpression parses a possibly-empty chain of Scope segments
// followed by an UnqualifiedId. Each candidate scope is spelled
// identically to a named unqualified-id (identifier plus optional
// template parameters plus optional function-signature suffix); the
// chain only commits a segment as a Scope once it sees the `::` that
// follows it, so the final, `::`-less segment naturally falls through
// to parseUnqualifiedId.
func parseIdExpression(sc *scanner, in *Interner) (IdExpressionHandle, *ParseError, bool) {
	start := sc.mark()
	var scopes []Scope

	for {
		segmentStart := sc.mark()
		name, ok := identifier(sc)
		if !ok {
			break
		}

		tpHandle := TemplateParametersHandle(NoHandle)
		if sc.peek() == '<' {
			h, perr, ok := parseTemplateParameters(sc, in)
			if perr != nil {
				return IdExpressionHandle(NoHandle), perr, true
			}
			if ok {
				tpHandle = h
			}
		}

		sigHandle := FunctionSignatureHandle(NoHandle)
		if sc.peek() == '(' {
			h, perr, ok := parseFunctionSignature(sc, in)
			if perr != nil {
				return IdExpressionHandle(NoHandle), perr, true
			}
			if ok {
				sigHandle = h
			}
		}

		if !sc.consumeLiteral("::") {
			sc.backtrack(segmentStart)
			break
		}
		scopes = append(scopes, Scope{
			Name:               in.InternIdentifier(name),
			TemplateParameters: tpHandle,
			Signature:          sigHandle,
		})
	}

	unqualified, perr, ok := parseUnqualifiedId(sc, in)
	if perr != nil {
		return IdExpressionHandle(NoHandle), perr, true
	}
	if !ok {
		if len(scopes) == 0 {
			sc.backtrack(start)
			return IdExpressionHandle(NoHandle), nil, false
		}
		return IdExpressionHandle(NoHandle), sc.syntaxErrorf("unqualified-id"), true
	}

	return in.internIdExpression(IdExpression{Scopes: scopes, Unqualified: unqualified}), nil, true
}

func parseUnqualifiedId(sc *scanner, in *Interner) (UnqualifiedId, *ParseError, bool) {
	start := sc.mark()

	if keyword(sc, "operator") {
		op, tp, perr, ok := parseOperatorOverload(sc, in, defaultOperatorFollow)
		if perr != nil {
			return UnqualifiedId{}, perr, true
		}
		if !ok {
			sc.backtrack(start)
			return UnqualifiedId{}, sc.syntaxErrorf("operator name"), true
		}
		return UnqualifiedId{Kind: UnqualifiedIdOperator, Operator: op, TemplateParameters: tp}, nil, true
	}

	if sc.consumeByte('~') {
		name, ok := identifier(sc)
		if !ok {
			sc.backtrack(start)
			return UnqualifiedId{}, sc.syntaxErrorf("destructor name"), true
		}
		return UnqualifiedId{Kind: UnqualifiedIdDestructor, Name: in.InternIdentifier(name)}, nil, true
	}

	if keyword(sc, "decltype") {
		sc.skipSpaces()
		if sc.consumeByte('(') {
			sc.skipSpaces()
			if keyword(sc, "auto") {
				sc.skipSpaces()
				if sc.consumeByte(')') {
					return UnqualifiedId{Kind: UnqualifiedIdDecltypeAuto}, nil, true
				}
			}
		}
		sc.backtrack(start)
		return UnqualifiedId{}, sc.syntaxErrorf("decltype(auto)"), true
	}

	if id, ok := parseLambda(sc, in); ok {
		return id, nil, true
	}
	if id, ok := parseAnonymous(sc, in); ok {
		return id, nil, true
	}
	if sc.consumeLiteral("<unknown>") {
		return UnqualifiedId{Kind: UnqualifiedIdUnknown}, nil, true
	}

	if name, ok := identifier(sc); ok {
		tp := TemplateParametersHandle(NoHandle)
		if sc.peek() == '<' {
			h, perr, ok := parseTemplateParameters(sc, in)
			if perr != nil {
				return UnqualifiedId{}, perr, true
			}
			if ok {
				tp = h
			}
		}
		return UnqualifiedId{Kind: UnqualifiedIdNamed, Name: in.InternIdentifier(name), TemplateParameters: tp}, nil, true
	}

	return UnqualifiedId{}, nil, false
}

func isAsciiAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// parseLambda matches clang's `(lambda at <path>:<line>:<col>)` form.
// The path may not contain `:` except for a leading Windows disk
// designator (`C:`), which this consumes unconditionally before
// scanning for the delimiting colon.
func parseLambda(sc *scanner, in *Interner) (UnqualifiedId, bool) {
	start := sc.mark()
	if !sc.consumeLiteral("(lambda at ") {
		return UnqualifiedId{}, false
	}

	pathStart := sc.cursor
	if len(sc.rest()) >= 2 && isAsciiAlpha(sc.rest()[0]) && sc.rest()[1] == ':' {
		sc.advance(2)
	}
	for !sc.eof() && sc.peek() != ':' {
		sc.advance(1)
	}
	path := sc.input[pathStart:sc.cursor]

	if !sc.consumeByte(':') {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}
	line, ok := parseDecimalInt(sc)
	if !ok {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}
	if !sc.consumeByte(':') {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}
	col, ok := parseDecimalInt(sc)
	if !ok {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}
	if !sc.consumeByte(')') {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}

	return UnqualifiedId{
		Kind:       UnqualifiedIdLambda,
		LambdaFile: in.InternPath(path),
		LambdaLine: line,
		LambdaCol:  col,
	}, true
}

func parseDecimalInt(sc *scanner) (int, bool) {
	start := sc.cursor
	for !sc.eof() && sc.peek() >= '0' && sc.peek() <= '9' {
		sc.advance(1)
	}
	if sc.cursor == start {
		return 0, false
	}
	n, err := strconv.Atoi(sc.input[start:sc.cursor])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAnonymous matches `(anonymous)` or `(anonymous <identifier>)`.
func parseAnonymous(sc *scanner, in *Interner) (UnqualifiedId, bool) {
	start := sc.mark()
	if !sc.consumeLiteral("(anonymous") {
		return UnqualifiedId{}, false
	}

	name := IdentifierHandle(NoHandle)
	sc.skipSpaces()
	if text, ok := identifier(sc); ok {
		name = in.InternIdentifier(text)
	}
	sc.skipSpaces()
	if !sc.consumeByte(')') {
		sc.backtrack(start)
		return UnqualifiedId{}, false
	}
	return UnqualifiedId{Kind: UnqualifiedIdAnonymous, AnonymousName: name}, true
}
