package types

// Kind classifies elaborated types.
// KNum is the kind of type-level numbers (sizes), KType the kind of value
// types, and KProp the kind of checked constraints. KProp never appears as
// a user-declarable parameter kind; it only classifies propositions
// internally.
type Kind int

const (
	KNum Kind = iota
	KType
	KProp
)

func (k Kind) String() string {
	switch k {
	case KNum:
		return "#"
	case KType:
		return "*"
	case KProp:
		return "Prop"
	}
	return "?"
}
