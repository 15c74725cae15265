package crofiler

import "strings"

// LegacyName is the canonical enum covering every space-separated
// combination of C-style primitive keywords that C++ accepts.
// Enumerated explicitly per the open question left by the source
// material: any combination outside this set is a syntax error, not
// silently accepted.
type LegacyName uint8

const (
	LegacyVoid LegacyName = iota
	LegacyBool
	LegacyChar
	LegacySignedChar
	LegacyUnsignedChar
	LegacyWCharT
	LegacyChar8T
	LegacyChar16T
	LegacyChar32T
	LegacyShort
	LegacyUnsignedShort
	LegacyInt
	LegacySigned
	LegacyUnsigned
	LegacyLong
	LegacyUnsignedLong
	LegacyLongLong
	LegacyUnsignedLongLong
	LegacyFloat
	LegacyDouble
	LegacyLongDouble
	LegacyInt128
	LegacyUnsignedInt128
)

func (l LegacyName) String() string {
	switch l {
	case LegacyVoid:
		return "void"
	case LegacyBool:
		return "bool"
	case LegacyChar:
		return "char"
	case LegacySignedChar:
		return "signed char"
	case LegacyUnsignedChar:
		return "unsigned char"
	case LegacyWCharT:
		return "wchar_t"
	case LegacyChar8T:
		return "char8_t"
	case LegacyChar16T:
		return "char16_t"
	case LegacyChar32T:
		return "char32_t"
	case LegacyShort:
		return "short"
	case LegacyUnsignedShort:
		return "unsigned short"
	case LegacyInt:
		return "int"
	case LegacySigned:
		return "signed"
	case LegacyUnsigned:
		return "unsigned"
	case LegacyLong:
		return "long"
	case LegacyUnsignedLong:
		return "unsigned long"
	case LegacyLongLong:
		return "long long"
	case LegacyUnsignedLongLong:
		return "unsigned long long"
	case LegacyFloat:
		return "float"
	case LegacyDouble:
		return "double"
	case LegacyLongDouble:
		return "long double"
	case LegacyInt128:
		return "__int128"
	case LegacyUnsignedInt128:
		return "unsigned __int128"
	default:
		return "?"
	}
}

var legacyKeywords = []string{
	"void", "bool", "char", "wchar_t", "char8_t", "char16_t", "char32_t",
	"short", "int", "long", "signed", "unsigned", "float", "double",
	"__int128",
}

// legacyName consumes a maximal run of legacy primitive keywords and
// canonicalizes it. It fails, without advancing, if the first token is
// not a legacy keyword at all, and throws a syntax error if tokens are
// consumed but their combination is not one C++ accepts.
func legacyName(sc *scanner) (LegacyName, *ParseError, bool) {
	start := sc.mark()
	var words []string
	for {
		sc.skipSpaces()
		word, ok := peekKeyword(sc, legacyKeywords)
		if !ok {
			break
		}
		sc.advance(len(word))
		words = append(words, word)
	}
	if len(words) == 0 {
		sc.backtrack(start)
		return 0, nil, false
	}

	name, err := canonicalizeLegacyName(words)
	if err != nil {
		sc.backtrack(start)
		return 0, sc.syntaxErrorf("legacy primitive combination"), true
	}
	return name, nil, true
}

// peekKeyword returns the first candidate matching at the cursor,
// respecting the identifier-continuation trailing-char discipline, or
// ok=false if none match.
func peekKeyword(sc *scanner, candidates []string) (string, bool) {
	rest := sc.rest()
	for _, kw := range candidates {
		if !strings.HasPrefix(rest, kw) {
			continue
		}
		next := byte(0)
		if len(rest) > len(kw) {
			next = rest[len(kw)]
		}
		if isIdentContinuation(next) {
			continue
		}
		return kw, true
	}
	return "", false
}

// canonicalizeLegacyName validates and folds a sequence of legacy
// keyword tokens (in any order, per the grammar) into the single enum
// variant it denotes.
func canonicalizeLegacyName(words []string) (LegacyName, error) {
	var (
		signedCount, unsignedCount int
		longCount                  int
		shortCount                 int
		intCount                   int
		base                       string
	)
	for _, w := range words {
		switch w {
		case "signed":
			signedCount++
		case "unsigned":
			unsignedCount++
		case "long":
			longCount++
		case "short":
			shortCount++
		case "int":
			intCount++
		case "void", "bool", "char", "wchar_t", "char8_t", "char16_t", "char32_t", "float", "double", "__int128":
			if base != "" && base != w {
				return 0, errLegacyCombination
			}
			base = w
		}
	}

	if signedCount > 1 || unsignedCount > 1 || (signedCount > 0 && unsignedCount > 0) {
		return 0, errLegacyCombination
	}
	signed, unsigned := signedCount > 0, unsignedCount > 0

	switch base {
	case "void":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyVoid, nil
	case "bool":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyBool, nil
	case "char":
		if longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		switch {
		case signed:
			return LegacySignedChar, nil
		case unsigned:
			return LegacyUnsignedChar, nil
		default:
			return LegacyChar, nil
		}
	case "wchar_t":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyWCharT, nil
	case "char8_t":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyChar8T, nil
	case "char16_t":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyChar16T, nil
	case "char32_t":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyChar32T, nil
	case "float":
		if signed || unsigned || longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		return LegacyFloat, nil
	case "double":
		if signed || unsigned || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		if longCount == 1 {
			return LegacyLongDouble, nil
		}
		if longCount == 0 {
			return LegacyDouble, nil
		}
		return 0, errLegacyCombination
	case "__int128":
		if longCount > 0 || shortCount > 0 || intCount > 0 {
			return 0, errLegacyCombination
		}
		if unsigned {
			return LegacyUnsignedInt128, nil
		}
		return LegacyInt128, nil
	case "":
		// No base keyword: short/long/signed/unsigned/int combinations.
		if shortCount > 0 && longCount > 0 {
			return 0, errLegacyCombination
		}
		if shortCount > 1 || longCount > 2 {
			return 0, errLegacyCombination
		}
		switch {
		case shortCount == 1:
			if unsigned {
				return LegacyUnsignedShort, nil
			}
			return LegacyShort, nil
		case longCount == 1:
			if unsigned {
				return LegacyUnsignedLong, nil
			}
			return LegacyLong, nil
		case longCount == 2:
			if unsigned {
				return LegacyUnsignedLongLong, nil
			}
			return LegacyLongLong, nil
		default:
			switch {
			case unsigned:
				return LegacyUnsigned, nil
			case signed:
				return LegacySigned, nil
			case intCount > 0:
				return LegacyInt, nil
			default:
				return 0, errLegacyCombination
			}
		}
	default:
		return 0, errLegacyCombination
	}
}

var errLegacyCombination = &legacyCombinationError{}

type legacyCombinationError struct{}

func (*legacyCombinationError) Error() string {
	return "not a valid combination of legacy C primitive keywords"
}
