package eval

import (
	"fmt"

	"github.com/silica-lang/silica/internal/types"
)

// Nat is a type-level numeric value: a natural number or infinity.
type Nat struct {
	Inf   bool
	Value int
}

func (n Nat) String() string {
	if n.Inf {
		return "inf"
	}
	return fmt.Sprintf("%d", n.Value)
}

func natMin(a, b Nat) Nat {
	if a.Inf {
		return b
	}
	if b.Inf {
		return a
	}
	if a.Value < b.Value {
		return a
	}
	return b
}

func natMul(a, b Nat) Nat {
	if (a.Inf && !b.Inf && b.Value == 0) || (b.Inf && !a.Inf && a.Value == 0) {
		return Nat{Value: 0}
	}
	if a.Inf || b.Inf {
		return Nat{Inf: true}
	}
	return Nat{Value: a.Value * b.Value}
}

// TValue is an evaluated type: every variable substituted, every synonym
// expanded and every numeric type function folded.
type TValue struct {
	Type types.Type
}

// EvalType evaluates an elaborated type under an environment's type
// bindings. An unresolved type variable is an internal error.
func EvalType(env *Env, t types.Type) (TValue, error) {
	r, err := substTVals(env, t)
	if err != nil {
		return TValue{}, err
	}
	return TValue{Type: types.Simplify(r)}, nil
}

func substTVals(env *Env, t types.Type) (types.Type, error) {
	switch typ := t.(type) {
	case types.TVar:
		tv, ok := env.LookupType(typ.Param)
		if !ok {
			return nil, panicf("unresolved type variable %q", typ.Param.Name)
		}
		return tv.Type, nil
	case types.TUser:
		if typ.Expanded != nil {
			return substTVals(env, typ.Expanded)
		}
		args := make([]types.Type, len(typ.Args))
		for i, a := range typ.Args {
			r, err := substTVals(env, a)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return types.TUser{Name: typ.Name, Args: args}, nil
	case types.TCon:
		args := make([]types.Type, len(typ.Args))
		for i, a := range typ.Args {
			r, err := substTVals(env, a)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return types.TCon{TC: typ.TC, Args: args}, nil
	case types.TRec:
		fields := make([]types.Field, len(typ.Fields))
		for i, f := range typ.Fields {
			r, err := substTVals(env, f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Name: f.Name, Type: r}
		}
		return types.TRec{Fields: fields}, nil
	case types.TTuple:
		elems := make([]types.Type, len(typ.Elems))
		for i, el := range typ.Elems {
			r, err := substTVals(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return types.TTuple{Elems: elems}, nil
	default:
		return t, nil
	}
}

// EvalNumType evaluates a numeric-kinded type to a size.
func EvalNumType(env *Env, t types.Type) (Nat, error) {
	tv, err := EvalType(env, t)
	if err != nil {
		return Nat{}, err
	}
	switch n := tv.Type.(type) {
	case types.TNum:
		return Nat{Value: int(n.Value)}, nil
	case types.TInf:
		return Nat{Inf: true}, nil
	}
	return Nat{}, panicf("type %s did not evaluate to a size", tv.Type)
}

// isBitType recognizes the one-bit element type, for the bit-sequence
// fast path.
func isBitType(tv TValue) bool {
	con, ok := tv.Type.(types.TCon)
	return ok && con.TC == types.TCBit
}
