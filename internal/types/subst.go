package types

import "github.com/google/uuid"

// Subst maps type-parameter identities to replacement types.
type Subst map[uuid.UUID]Type

// Instantiate applies a substitution to a type, producing a new type.
// Unmapped variables are left in place. Cached synonym expansions are
// substituted along with the visible arguments so the two never disagree.
func Instantiate(t Type, s Subst) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch typ := t.(type) {
	case TVar:
		if rep, ok := s[typ.Param.Unique]; ok {
			return rep
		}
		return typ
	case TCon:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = Instantiate(a, s)
		}
		return TCon{TC: typ.TC, Args: args}
	case TUser:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = Instantiate(a, s)
		}
		var exp Type
		if typ.Expanded != nil {
			exp = Instantiate(typ.Expanded, s)
		}
		return TUser{Name: typ.Name, Args: args, Expanded: exp}
	case TRec:
		fields := make([]Field, len(typ.Fields))
		for i, f := range typ.Fields {
			fields[i] = Field{Name: f.Name, Type: Instantiate(f.Type, s)}
		}
		return TRec{Fields: fields}
	case TTuple:
		elems := make([]Type, len(typ.Elems))
		for i, e := range typ.Elems {
			elems[i] = Instantiate(e, s)
		}
		return TTuple{Elems: elems}
	default:
		// TNum, TInf: no variables inside.
		return typ
	}
}

// FreeParams collects the parameters appearing free in a type, in first
// occurrence order.
func FreeParams(t Type) []*TParam {
	seen := make(map[uuid.UUID]bool)
	var out []*TParam
	var walk func(Type)
	walk = func(t Type) {
		switch typ := t.(type) {
		case TVar:
			if !seen[typ.Param.Unique] {
				seen[typ.Param.Unique] = true
				out = append(out, typ.Param)
			}
		case TCon:
			for _, a := range typ.Args {
				walk(a)
			}
		case TUser:
			for _, a := range typ.Args {
				walk(a)
			}
		case TRec:
			for _, f := range typ.Fields {
				walk(f.Type)
			}
		case TTuple:
			for _, e := range typ.Elems {
				walk(e)
			}
		}
	}
	walk(t)
	return out
}
