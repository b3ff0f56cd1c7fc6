package types

import "github.com/silica-lang/silica/internal/ast"

// Expr is an elaborated expression as produced by the type checker and
// consumed by the evaluator. The evaluator is untyped at this level:
// proofs and casts exist purely for the checker and are erased when run.
type Expr interface {
	exprNode()
}

// EList is a sequence literal. ElemType is the elaborated element type;
// the evaluator uses it to decide the bit-sequence fast path.
type EList struct {
	Elems    []Expr
	ElemType Type
}

// ETuple is a tuple literal.
type ETuple struct {
	Elems []Expr
}

// NamedExpr is a named record component.
type NamedExpr struct {
	Name string
	Expr Expr
}

// ERec is a record literal.
type ERec struct {
	Fields []NamedExpr
}

// Selector picks a component out of a value.
type Selector interface {
	selNode()
}

type RecordSel struct{ Name string }
type TupleSel struct{ Index int }
type ListSel struct{ Index int }

func (RecordSel) selNode() {}
func (TupleSel) selNode()  {}
func (ListSel) selNode()   {}

// ESel selects a component of Expr.
type ESel struct {
	Expr Expr
	Sel  Selector
}

// EIf is a conditional; exactly one branch is ever evaluated.
type EIf struct {
	Cond Expr
	Then Expr
	Else Expr
}

// EComp is a comprehension. Matches holds the parallel qualifier groups;
// the qualifiers within one group nest. Len and ElemType are the
// elaborated sequence length and element types.
type EComp struct {
	Len      Type
	ElemType Type
	Body     Expr
	Matches  [][]Match
}

// EVar is a variable reference, resolved by name resolution before
// evaluation ever sees it.
type EVar struct {
	Name ast.Name
}

// ETAbs abstracts over a type parameter.
type ETAbs struct {
	Param *TParam
	Body  Expr
}

// ETApp applies an expression to a type.
type ETApp struct {
	Expr Expr
	Type Type
}

// EAbs is a value-level function abstraction.
type EAbs struct {
	Name      ast.Name
	ParamType Type
	Body      Expr
}

// EApp is function application.
type EApp struct {
	Fn  Expr
	Arg Expr
}

// EProofAbs abstracts over a proof of Prop. Erased at evaluation.
type EProofAbs struct {
	Prop Type
	Body Expr
}

// EProofApp supplies a proof. Erased at evaluation.
type EProofApp struct {
	Expr Expr
}

// ECast ascribes a type. Erased at evaluation.
type ECast struct {
	Expr Expr
	Type Type
}

// EWhere evaluates Body in an environment extended with Groups.
type EWhere struct {
	Body   Expr
	Groups []DeclGroup
}

func (EList) exprNode()     {}
func (ETuple) exprNode()    {}
func (ERec) exprNode()      {}
func (ESel) exprNode()      {}
func (EIf) exprNode()       {}
func (EComp) exprNode()     {}
func (EVar) exprNode()      {}
func (ETAbs) exprNode()     {}
func (ETApp) exprNode()     {}
func (EAbs) exprNode()      {}
func (EApp) exprNode()      {}
func (EProofAbs) exprNode() {}
func (EProofApp) exprNode() {}
func (ECast) exprNode()     {}
func (EWhere) exprNode()    {}

// Decl binds a name to an expression. A nil Body marks a primitive whose
// implementation comes from the host's primitive table.
type Decl struct {
	Name   ast.Name
	Schema Schema
	Body   Expr
}

// DeclGroup is a group of declarations evaluated together. A recursive
// group may mention its own members; a non-recursive group binds each
// member against the environment that precedes the group.
type DeclGroup struct {
	Recursive bool
	Decls     []*Decl
}

// Match is one qualifier in a comprehension group.
type Match interface {
	matchNode()
}

// From is a generator qualifier `Name <- Src`. Len and ElemType are the
// elaborated size and element type of the source sequence.
type From struct {
	Name     ast.Name
	Len      Type
	ElemType Type
	Src      Expr
}

// MLet is a local let qualifier.
type MLet struct {
	Decl *Decl
}

func (From) matchNode() {}
func (MLet) matchNode() {}
