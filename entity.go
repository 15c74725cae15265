package crofiler

// EntityHandle identifies a fully parsed top-level entity name.
type EntityHandle int

// Entity is the top-level parse result: a scoped id-expression plus
// an optional trailing function signature, covering both plain names
// (`ns::Type`) and callable ones (`ns::fn(int, int) const`).
type Entity struct {
	IdExpression IdExpressionHandle
	Signature    FunctionSignatureHandle // NoHandle if absent
}

// ParseEntity parses a free-form C++ entity-name string - the kind
// found in clang time-trace "detail" fields - into a handle stored in
// in. It is total with respect to malformed input: every failure
// returns a *ParseError rather than panicking.
func ParseEntity(in *Interner, text string) (EntityHandle, error) {
	sc := newScanner(text)
	sc.enterProduction("entity")
	defer sc.leaveProduction()

	idHandle, perr, ok := parseIdExpression(sc, in)
	if perr != nil {
		return EntityHandle(NoHandle), perr
	}
	if !ok {
		return EntityHandle(NoHandle), sc.syntaxErrorf("entity name")
	}

	sc.skipSpaces()
	signature := FunctionSignatureHandle(NoHandle)
	if sc.peek() == '(' {
		h, perr, ok := parseFunctionSignature(sc, in)
		if perr != nil {
			return EntityHandle(NoHandle), perr
		}
		if ok {
			signature = h
		}
	}

	sc.skipSpaces()
	if !sc.eof() {
		return EntityHandle(NoHandle), newIncompleteError(sc.rest(), NewSpan(sc.pos(), Pos(len(text))))
	}

	return in.internEntity(Entity{IdExpression: idHandle, Signature: signature}), nil
}

// EntityRef is an accessor bundling a handle with the interner that
// produced it, so display and introspection methods don't need the
// interner threaded through every call site.
type EntityRef struct {
	in     *Interner
	handle EntityHandle
}

// LookupEntity returns the accessor for handle. It is infallible for
// any handle obtained from in via ParseEntity.
func LookupEntity(in *Interner, handle EntityHandle) EntityRef {
	return EntityRef{in: in, handle: handle}
}

func (r EntityRef) Entity() Entity {
	return r.in.Entity(r.handle)
}

// DisplayWidth returns the number of terminal columns the full,
// untruncated rendering of this entity would occupy.
func (r EntityRef) DisplayWidth() int {
	return entityDisplayWidth(r.in, r.Entity())
}

// BoundedDisplay renders this entity inside maxCols columns, eliding
// the least-informative sub-component first when it doesn't fit.
func (r EntityRef) BoundedDisplay(maxCols int) (string, error) {
	return boundedEntityDisplay(r.in, r.Entity(), maxCols)
}

// DumpTree renders a debug indented tree of the entity's structure,
// independent of the width-bounded display - used by the `ast` CLI
// subcommand.
func (r EntityRef) DumpTree() string {
	tp := newTreePrinter(func(s string) string { return s })
	writeEntityTree(tp, r.in, r.Entity())
	return tp.String()
}
