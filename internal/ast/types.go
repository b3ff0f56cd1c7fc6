package ast

// Type is a surface-syntax type as produced by the parser, with every
// name already resolved. Infix operators are resolved away by the fixity
// pass before the checker ever sees a tree.
type Type interface {
	typeNode()
}

// TWild is the `_` placeholder. Only some contexts permit it.
type TWild struct{}

// TFun is the function arrow `a -> b`.
type TFun struct {
	Arg Type
	Res Type
}

// TSeq is the sequence former `[len]elem`.
type TSeq struct {
	Len  Type
	Elem Type
}

// TBit is the one-bit type constant.
type TBit struct{}

// TInteger is the unbounded-integer type constant.
type TInteger struct{}

// TNum is a type-level numeric literal.
type TNum struct {
	Value int64
}

// TChar is a character literal, which stands for its codepoint at the
// numeric kind.
type TChar struct {
	Value rune
}

// TInf is the `inf` literal.
type TInf struct{}

// TUser is a reference to a named thing: a bound type variable, a synonym,
// a newtype constructor, or a module parameter.
type TUser struct {
	Name Name
	Args []Type
}

// TRecord is a record type literal.
type TRecord struct {
	Fields []NamedField
}

type NamedField struct {
	Name  string
	Type  Type
	Range Range
}

// TTuple is a tuple type literal.
type TTuple struct {
	Types []Type
}

// TParens is explicit parenthesization. Transparent to checking.
type TParens struct {
	Inner Type
}

// TLocated wraps a type with its source range.
type TLocated struct {
	Range Range
	Inner Type
}

// TInfix is an unresolved infix type application. The fixity pass removes
// all of these; one surviving to the kind checker is an internal error.
type TInfix struct {
	Left  Type
	Op    Name
	Right Type
}

func (TWild) typeNode()    {}
func (TFun) typeNode()     {}
func (TSeq) typeNode()     {}
func (TBit) typeNode()     {}
func (TInteger) typeNode() {}
func (TNum) typeNode()     {}
func (TChar) typeNode()    {}
func (TInf) typeNode()     {}
func (TUser) typeNode()    {}
func (TRecord) typeNode()  {}
func (TTuple) typeNode()   {}
func (TParens) typeNode()  {}
func (TLocated) typeNode() {}
func (TInfix) typeNode()   {}

// Prop is a surface-syntax proposition.
type Prop interface {
	propNode()
}

// PFin asserts that a numeric type is finite.
type PFin struct {
	T Type
}

// PEqual asserts equality of two numeric types.
type PEqual struct {
	A, B Type
}

// PGeq asserts ordering of two numeric types.
type PGeq struct {
	A, B Type
}

// PZero asserts that a value type has a zero element.
type PZero struct {
	T Type
}

// PRing asserts that a value type has additive/ring structure.
type PRing struct {
	T Type
}

// PCmp asserts that a value type supports comparisons.
type PCmp struct {
	T Type
}

// PSignedCmp asserts that a value type supports signed comparisons.
type PSignedCmp struct {
	T Type
}

// PUser is a reference to a user-defined constraint synonym.
type PUser struct {
	Name Name
	Args []Type
}

// PLocated wraps a proposition with its source range.
type PLocated struct {
	Range Range
	Inner Prop
}

func (PFin) propNode()       {}
func (PEqual) propNode()     {}
func (PGeq) propNode()       {}
func (PZero) propNode()      {}
func (PRing) propNode()      {}
func (PCmp) propNode()       {}
func (PSignedCmp) propNode() {}
func (PUser) propNode()      {}
func (PLocated) propNode()   {}
