// Package solver declares the boundary between the kind checker and the
// numeric constraint solver. The checker hands every scope's accumulated
// goals to Simplify when the scope closes and asks TypeFnGoals for the
// well-formedness side conditions of type-function applications; beyond
// that the solver is opaque.
package solver

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/types"
)

type Solver interface {
	// Simplify discharges or reduces pending goals, returning the
	// residual goals it could not decide. Residual goals flow upward to
	// the caller; they are not errors at this layer.
	Simplify(goals []types.Goal) ([]types.Goal, error)

	// TypeFnGoals returns the well-formedness goals of applying a type
	// function to fully checked arguments.
	TypeFnGoals(tc types.TypeConst, args []types.Type, rng ast.Range) []types.Goal
}

// Basic decides goals over numeric literals and emits the standard
// type-function side conditions. It is sufficient for checking closed
// sizes and for tests; the production solver lives behind the same
// interface in the surrounding toolchain.
type Basic struct{}

var _ Solver = Basic{}

func (Basic) Simplify(goals []types.Goal) ([]types.Goal, error) {
	var residual []types.Goal
	for _, g := range goals {
		prop := types.Simplify(g.Prop)
		if provable(prop) {
			continue
		}
		g.Prop = prop
		residual = append(residual, g)
	}
	return residual, nil
}

// provable reports whether a goal holds by literal arithmetic alone.
func provable(prop types.Type) bool {
	con, ok := prop.(types.TCon)
	if !ok {
		return false
	}
	switch con.TC {
	case types.PCFin:
		_, ok := con.Args[0].(types.TNum)
		return ok
	case types.PCEqual:
		return literalsEqual(con.Args[0], con.Args[1])
	case types.PCGeq:
		a, aok := con.Args[0].(types.TNum)
		b, bok := con.Args[1].(types.TNum)
		if aok && bok {
			return a.Value >= b.Value
		}
		// inf >= anything.
		_, inf := con.Args[0].(types.TInf)
		return inf
	case types.PCZero, types.PCRing:
		return groundNumericRep(con.Args[0])
	}
	return false
}

func literalsEqual(a, b types.Type) bool {
	if an, ok := a.(types.TNum); ok {
		bn, ok := b.(types.TNum)
		return ok && an.Value == bn.Value
	}
	if _, ok := a.(types.TInf); ok {
		_, ok := b.(types.TInf)
		return ok
	}
	return false
}

// groundNumericRep recognizes the closed types that trivially carry zero
// and ring structure: Integer and finite bit words.
func groundNumericRep(t types.Type) bool {
	con, ok := t.(types.TCon)
	if !ok {
		return false
	}
	switch con.TC {
	case types.TCInteger, types.TCBit:
		return true
	case types.TCSeq:
		if _, fin := con.Args[0].(types.TNum); !fin {
			return false
		}
		elem, ok := con.Args[1].(types.TCon)
		return ok && elem.TC == types.TCBit
	}
	return false
}

func (Basic) TypeFnGoals(tc types.TypeConst, args []types.Type, rng ast.Range) []types.Goal {
	switch tc {
	case types.TFDiv, types.TFMod:
		// The divisor must be at least one.
		return []types.Goal{{
			Prop:   types.TCon{TC: types.PCGeq, Args: []types.Type{args[1], types.TNum{Value: 1}}},
			Source: types.GSTypeFun,
			Range:  rng,
		}}
	case types.TFLenFromThen:
		// The enumeration must start from a finite value.
		return []types.Goal{{
			Prop:   types.TCon{TC: types.PCFin, Args: []types.Type{args[0]}},
			Source: types.GSTypeFun,
			Range:  rng,
		}}
	}
	return nil
}
