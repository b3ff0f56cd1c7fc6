package types

import "math/bits"

// Simplify rebuilds a type with all numeric type functions over literal
// arguments folded away. Types embedded in checked schemas and synonyms
// pass through here before they are returned, so downstream consumers see
// normalized sizes. Applications whose result is not determined by the
// literals (or that would be ill-formed, which the solver reports through
// goals) are left intact.
func Simplify(t Type) Type {
	switch typ := t.(type) {
	case TCon:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = Simplify(a)
		}
		rebuilt := TCon{TC: typ.TC, Args: args}
		if !typ.TC.IsTypeFun() {
			return rebuilt
		}
		if folded, ok := foldTypeFun(typ.TC, args); ok {
			return folded
		}
		return rebuilt
	case TUser:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = Simplify(a)
		}
		var exp Type
		if typ.Expanded != nil {
			exp = Simplify(typ.Expanded)
		}
		return TUser{Name: typ.Name, Args: args, Expanded: exp}
	case TRec:
		fields := make([]Field, len(typ.Fields))
		for i, f := range typ.Fields {
			fields[i] = Field{Name: f.Name, Type: Simplify(f.Type)}
		}
		return TRec{Fields: fields}
	case TTuple:
		elems := make([]Type, len(typ.Elems))
		for i, e := range typ.Elems {
			elems[i] = Simplify(e)
		}
		return TTuple{Elems: elems}
	default:
		return t
	}
}

// numArg views a simplified argument as a literal size.
func numArg(t Type) (val int64, inf bool, ok bool) {
	switch n := t.(type) {
	case TNum:
		return n.Value, false, true
	case TInf:
		return 0, true, true
	}
	return 0, false, false
}

func foldTypeFun(tc TypeConst, args []Type) (Type, bool) {
	vals := make([]int64, len(args))
	infs := make([]bool, len(args))
	for i, a := range args {
		v, inf, ok := numArg(a)
		if !ok {
			return nil, false
		}
		vals[i], infs[i] = v, inf
	}

	fin := func(v int64) (Type, bool) { return TNum{Value: v}, true }

	switch tc {
	case TFAdd:
		if infs[0] || infs[1] {
			return TInf{}, true
		}
		return fin(vals[0] + vals[1])
	case TFSub:
		if infs[0] && !infs[1] {
			return TInf{}, true
		}
		if infs[0] || infs[1] {
			return nil, false
		}
		if vals[0] < vals[1] {
			return nil, false
		}
		return fin(vals[0] - vals[1])
	case TFMul:
		if (infs[0] && !infs[1] && vals[1] == 0) || (infs[1] && !infs[0] && vals[0] == 0) {
			return fin(0)
		}
		if infs[0] || infs[1] {
			return TInf{}, true
		}
		return fin(vals[0] * vals[1])
	case TFDiv:
		if infs[1] {
			if infs[0] {
				return nil, false
			}
			return fin(0)
		}
		if vals[1] == 0 {
			return nil, false
		}
		if infs[0] {
			return TInf{}, true
		}
		return fin(vals[0] / vals[1])
	case TFMod:
		if infs[1] {
			if infs[0] {
				return nil, false
			}
			return fin(vals[0])
		}
		if vals[1] == 0 || infs[0] {
			return nil, false
		}
		return fin(vals[0] % vals[1])
	case TFExp:
		if infs[1] {
			if !infs[0] && vals[0] == 0 {
				return fin(0)
			}
			if !infs[0] && vals[0] == 1 {
				return fin(1)
			}
			return TInf{}, true
		}
		if infs[0] {
			if vals[1] == 0 {
				return fin(1)
			}
			return TInf{}, true
		}
		r := int64(1)
		for i := int64(0); i < vals[1]; i++ {
			r *= vals[0]
		}
		return fin(r)
	case TFMin:
		if infs[0] {
			return args[1], true
		}
		if infs[1] {
			return args[0], true
		}
		if vals[0] < vals[1] {
			return fin(vals[0])
		}
		return fin(vals[1])
	case TFMax:
		if infs[0] || infs[1] {
			return TInf{}, true
		}
		if vals[0] > vals[1] {
			return fin(vals[0])
		}
		return fin(vals[1])
	case TFWidth:
		if infs[0] {
			return TInf{}, true
		}
		return fin(int64(bits.Len64(uint64(vals[0]))))
	case TFLenFromThen:
		// Length of [x, y ...] over w-bit words.
		if infs[0] || infs[1] || infs[2] {
			return nil, false
		}
		x, y, w := vals[0], vals[1], vals[2]
		if x == y || w <= 0 || w >= 63 {
			return nil, false
		}
		limit := int64(1)<<uint(w) - 1
		if y > x {
			return fin((limit-x)/(y-x) + 1)
		}
		return fin(x/(x-y) + 1)
	case TFLenFromThenTo:
		if infs[0] || infs[1] || infs[2] {
			return nil, false
		}
		x, y, z := vals[0], vals[1], vals[2]
		if x == y {
			return nil, false
		}
		if y > x {
			if z < x {
				return fin(0)
			}
			return fin((z-x)/(y-x) + 1)
		}
		if z > x {
			return fin(0)
		}
		return fin((x-z)/(x-y) + 1)
	}
	return nil, false
}
