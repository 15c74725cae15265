package crofiler

import "fmt"

// Interner owns every append-only table of structural values produced
// while parsing entities. Each table is keyed by a fingerprint of its
// value's Go representation: since every stored struct holds only
// handles, enums and small scalars (never the original source bytes),
// two structurally identical values always fingerprint identically,
// giving the structural - not textual - deduplication the data model
// requires. Cycles are impossible because child handles always
// reference rows appended earlier.
type Interner struct {
	identifiers      []string
	identifierByText map[string]IdentifierHandle

	paths      []string
	pathByText map[string]PathHandle

	types      []TypeLike
	typeByFp   map[string]TypeHandle

	idExpressions []IdExpression
	idExprByFp    map[string]IdExpressionHandle

	values     []Value
	valueByFp  map[string]ValueHandle

	templateParams []TemplateParameters
	templateByFp   map[string]TemplateParametersHandle

	signatures   []FunctionSignature
	signatureByFp map[string]FunctionSignatureHandle

	entities   []Entity
	entityByFp map[string]EntityHandle
}

// NewInterner returns an empty interner ready to back a parse.
func NewInterner() *Interner {
	return &Interner{
		identifierByText: map[string]IdentifierHandle{},
		pathByText:       map[string]PathHandle{},
		typeByFp:         map[string]TypeHandle{},
		idExprByFp:       map[string]IdExpressionHandle{},
		valueByFp:        map[string]ValueHandle{},
		templateByFp:     map[string]TemplateParametersHandle{},
		signatureByFp:    map[string]FunctionSignatureHandle{},
		entityByFp:       map[string]EntityHandle{},
	}
}

// fingerprint renders a value's Go-syntax representation. It is used
// purely as a deterministic, collision-free (for our closed set of
// handle/enum-only structs) map key, never surfaced to callers.
func fingerprint(v any) string {
	return fmt.Sprintf("%#v", v)
}

// InternIdentifier returns the handle for bytes, reusing any previous
// identical identifier. Case-sensitive, idempotent.
func (in *Interner) InternIdentifier(s string) IdentifierHandle {
	if h, ok := in.identifierByText[s]; ok {
		return h
	}
	in.identifiers = append(in.identifiers, s)
	h := IdentifierHandle(len(in.identifiers) - 1)
	in.identifierByText[s] = h
	return h
}

// Identifier resolves a handle obtained from this interner.
func (in *Interner) Identifier(h IdentifierHandle) string {
	return in.identifiers[h]
}

func (in *Interner) InternPath(s string) PathHandle {
	if h, ok := in.pathByText[s]; ok {
		return h
	}
	in.paths = append(in.paths, s)
	h := PathHandle(len(in.paths) - 1)
	in.pathByText[s] = h
	return h
}

func (in *Interner) Path(h PathHandle) string {
	return in.paths[h]
}

func (in *Interner) internType(t TypeLike) TypeHandle {
	fp := fingerprint(t)
	if h, ok := in.typeByFp[fp]; ok {
		return h
	}
	in.types = append(in.types, t)
	h := TypeHandle(len(in.types) - 1)
	in.typeByFp[fp] = h
	return h
}

func (in *Interner) Type(h TypeHandle) TypeLike {
	return in.types[h]
}

func (in *Interner) internIdExpression(e IdExpression) IdExpressionHandle {
	fp := fingerprint(e)
	if h, ok := in.idExprByFp[fp]; ok {
		return h
	}
	in.idExpressions = append(in.idExpressions, e)
	h := IdExpressionHandle(len(in.idExpressions) - 1)
	in.idExprByFp[fp] = h
	return h
}

func (in *Interner) IdExpression(h IdExpressionHandle) IdExpression {
	return in.idExpressions[h]
}

func (in *Interner) internValue(v Value) ValueHandle {
	fp := fingerprint(v)
	if h, ok := in.valueByFp[fp]; ok {
		return h
	}
	in.values = append(in.values, v)
	h := ValueHandle(len(in.values) - 1)
	in.valueByFp[fp] = h
	return h
}

func (in *Interner) Value(h ValueHandle) Value {
	return in.values[h]
}

func (in *Interner) internTemplateParameters(tp TemplateParameters) TemplateParametersHandle {
	fp := fingerprint(tp)
	if h, ok := in.templateByFp[fp]; ok {
		return h
	}
	in.templateParams = append(in.templateParams, tp)
	h := TemplateParametersHandle(len(in.templateParams) - 1)
	in.templateByFp[fp] = h
	return h
}

func (in *Interner) TemplateParameters(h TemplateParametersHandle) TemplateParameters {
	return in.templateParams[h]
}

func (in *Interner) internFunctionSignature(fs FunctionSignature) FunctionSignatureHandle {
	fp := fingerprint(fs)
	if h, ok := in.signatureByFp[fp]; ok {
		return h
	}
	in.signatures = append(in.signatures, fs)
	h := FunctionSignatureHandle(len(in.signatures) - 1)
	in.signatureByFp[fp] = h
	return h
}

func (in *Interner) FunctionSignature(h FunctionSignatureHandle) FunctionSignature {
	return in.signatures[h]
}

func (in *Interner) internEntity(e Entity) EntityHandle {
	fp := fingerprint(e)
	if h, ok := in.entityByFp[fp]; ok {
		return h
	}
	in.entities = append(in.entities, e)
	h := EntityHandle(len(in.entities) - 1)
	in.entityByFp[fp] = h
	return h
}

func (in *Interner) Entity(h EntityHandle) Entity {
	return in.entities[h]
}

// FrozenInterner is a read-only view obtained from Finalize, intended
// to be shared across goroutines once a worker is done mutating it.
// It exposes only the resolve side of the contract.
type FrozenInterner struct {
	in *Interner
}

func (in *Interner) Finalize() *FrozenInterner {
	return &FrozenInterner{in: in}
}

func (f *FrozenInterner) Identifier(h IdentifierHandle) string             { return f.in.Identifier(h) }
func (f *FrozenInterner) Path(h PathHandle) string                         { return f.in.Path(h) }
func (f *FrozenInterner) Type(h TypeHandle) TypeLike                       { return f.in.Type(h) }
func (f *FrozenInterner) IdExpression(h IdExpressionHandle) IdExpression   { return f.in.IdExpression(h) }
func (f *FrozenInterner) Value(h ValueHandle) Value                        { return f.in.Value(h) }
func (f *FrozenInterner) TemplateParameters(h TemplateParametersHandle) TemplateParameters {
	return f.in.TemplateParameters(h)
}
func (f *FrozenInterner) FunctionSignature(h FunctionSignatureHandle) FunctionSignature {
	return f.in.FunctionSignature(h)
}
func (f *FrozenInterner) Entity(h EntityHandle) Entity { return f.in.Entity(h) }
