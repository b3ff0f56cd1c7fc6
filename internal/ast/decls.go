package ast

// TParamDef is a surface type-parameter binder. Kind is nil when the
// parameter carries no annotation and its kind must be inferred.
type TParamDef struct {
	Name  Name
	Kind  *KindAnnot
	Range Range
}

// Schema is a surface universally-quantified type: binders, constraints
// and a body, in `{params} (props) => body` form.
type Schema struct {
	Params []TParamDef
	Props  []Prop
	Body   Type
	Range  Range
}

// TySynDecl is a surface type-synonym declaration.
type TySynDecl struct {
	Name   Name
	Params []TParamDef
	Props  []Prop
	Body   Type
	Range  Range
}

// PropSynDecl is a surface constraint-synonym declaration. Its body is a
// conjunction of propositions.
type PropSynDecl struct {
	Name   Name
	Params []TParamDef
	Props  []Prop
	Range  Range
}

// NewtypeDecl is a surface newtype declaration. Field names are distinct
// within one declaration; the name-resolution layer enforces that before
// the checker runs.
type NewtypeDecl struct {
	Name   Name
	Params []TParamDef
	Fields []NamedField
	Range  Range
}
