package types

import "github.com/google/uuid"

// ParamFlavor distinguishes where a type parameter was bound.
type ParamFlavor int

const (
	SchemaParam ParamFlavor = iota
	ModParam
	SynParam
)

func (f ParamFlavor) String() string {
	switch f {
	case SchemaParam:
		return "schema parameter"
	case ModParam:
		return "module parameter"
	case SynParam:
		return "synonym parameter"
	}
	return "parameter"
}

// TParam is a bound type parameter. It is created once when the checker
// opens the enclosing scope and is referenced, never owned, by every node
// that mentions it. While the scope is still open the parameter's kind may
// be a single-assignment slot: it starts unknown and is fixed on its first
// kind-determining use, or defaulted when the scope closes. After the scope
// closes the parameter is immutable.
type TParam struct {
	Unique uuid.UUID
	Name   string
	Flavor ParamFlavor

	kind    Kind
	kindSet bool
}

// NewTParam returns a parameter with a known kind.
func NewTParam(name string, k Kind, flavor ParamFlavor) *TParam {
	return &TParam{Unique: uuid.New(), Name: name, Flavor: flavor, kind: k, kindSet: true}
}

// NewUnresolvedTParam returns a parameter whose kind is not yet known.
func NewUnresolvedTParam(name string, flavor ParamFlavor) *TParam {
	return &TParam{Unique: uuid.New(), Name: name, Flavor: flavor}
}

// KindKnown reports whether the kind slot has been assigned.
func (p *TParam) KindKnown() bool { return p.kindSet }

// SetKind assigns the kind slot. It may be called at most once, by the
// kind checker, while the parameter's scope is still open.
func (p *TParam) SetKind(k Kind) bool {
	if p.kindSet {
		return false
	}
	p.kind = k
	p.kindSet = true
	return true
}

// Kind returns the parameter's kind. An unassigned slot reads as the
// numeric kind, which is also the defaulting rule at scope close.
func (p *TParam) Kind() Kind {
	if !p.kindSet {
		return KNum
	}
	return p.kind
}

func (p *TParam) String() string { return p.Name }
