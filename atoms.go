package crofiler

// reservedKeywords lists the keywords that identifier() must refuse
// to match so that callers trying `identifier` as a fallback after a
// more specific keyword rule behave correctly. It holds the cv,
// elaborated-type, operator, decltype/auto, new/delete, co_await and
// noexcept keywords; the legacy primitive-type keywords of legacy.go
// are not in it.
var reservedKeywords = map[string]bool{
	"const": true, "volatile": true, "operator": true, "typename": true,
	"class": true, "struct": true, "enum": true, "union": true,
	"decltype": true, "auto": true, "new": true, "delete": true,
	"co_await": true, "noexcept": true,
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinuation(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// identifier matches [A-Za-z_][A-Za-z0-9_]*, rejecting any spelling
// that is one of the grammar's reserved keywords.
func identifier(sc *scanner) (string, bool) {
	if sc.eof() || !isIdentStart(sc.peek()) {
		return "", false
	}
	start := sc.cursor
	sc.advance(1)
	for !sc.eof() && isIdentContinuation(sc.peek()) {
		sc.advance(1)
	}
	text := sc.input[start:sc.cursor]
	if reservedKeywords[text] {
		sc.cursor = start
		return "", false
	}
	return text, true
}

// keyword matches kw only when it is not followed by an identifier
// continuation character, so `int` doesn't spuriously match a prefix
// of `internal`.
func keyword(sc *scanner, kw string) bool {
	rest := sc.rest()
	if len(rest) < len(kw) || rest[:len(kw)] != kw {
		return false
	}
	next := byte(0)
	if len(rest) > len(kw) {
		next = rest[len(kw)]
	}
	if isIdentContinuation(next) {
		return false
	}
	sc.advance(len(kw))
	return true
}

// keywords matches the first candidate in order that keyword would
// accept, returning which one matched.
func keywords(sc *scanner, candidates []string) (string, bool) {
	for _, kw := range candidates {
		if keyword(sc, kw) {
			return kw, true
		}
	}
	return "", false
}

// cv matches any number of `const`/`volatile` in any order, folding
// them into a single bitset.
func cv(sc *scanner) ConstVolatile {
	var flags ConstVolatile
	for {
		sc.skipSpaces()
		switch {
		case keyword(sc, "const"):
			flags |= CVConst
		case keyword(sc, "volatile"):
			flags |= CVVolatile
		default:
			return flags
		}
	}
}

// reference matches `&&`, `&`, or nothing.
func reference(sc *scanner) Reference {
	if sc.consumeByte('&') {
		if sc.consumeByte('&') {
			return RefRvalue
		}
		return RefLvalue
	}
	return RefNone
}
