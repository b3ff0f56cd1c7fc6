package eval

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/types"
)

// compBind is one name produced by a qualifier group, indexable by the
// comprehension's result position.
type compBind struct {
	name ast.Name
	at   func(i int) (Value, error)
}

// evalComp runs a comprehension. Each parallel qualifier group produces
// a branch of bindings with its own length; the result's length is the
// minimum across branches, so a short group truncates the others. When a
// name appears in several groups, the binding from the last group wins.
func (e *Evaluator) evalComp(node types.EComp, env *Env) (Value, error) {
	tv, err := EvalType(env, node.ElemType)
	if err != nil {
		return nil, err
	}
	length := Nat{Inf: true}
	var binds []compBind
	for _, group := range node.Matches {
		br, err := e.evalBranch(group, env)
		if err != nil {
			return nil, err
		}
		length = natMin(length, br.len)
		binds = append(binds, br.binds...)
	}
	if len(node.Matches) == 0 {
		length = Nat{Value: 1}
	}
	body := node.Body
	elems := MemoMap(func(i int) (Value, error) {
		return e.Eval(body, sliceEnv(env, binds, i))
	})
	if length.Inf {
		return Stream{Elems: elems}, nil
	}
	return Seq{Len: length.Value, Bits: isBitType(tv), Elem: tv.Type, Elems: elems}, nil
}

// branch is the outcome of one qualifier group: how many result positions
// it yields and which names it binds at each position.
type branch struct {
	len   Nat
	binds []compBind
}

// evalBranch runs one qualifier group. Qualifiers within a group nest:
// each generator multiplies the positions produced so far, and every
// earlier binding stutters so that position i of the combined branch sees
// block i/L of the earlier bindings paired with element i%L of the new
// generator, where L is the new generator's length.
func (e *Evaluator) evalBranch(group []types.Match, env *Env) (branch, error) {
	br := branch{len: Nat{Value: 1}}
	for _, m := range group {
		var err error
		switch q := m.(type) {
		case types.From:
			br, err = e.evalFrom(q, br, env)
		case types.MLet:
			br, err = e.evalMatchLet(q, br, env)
		default:
			err = panicf("unknown qualifier form %T", m)
		}
		if err != nil {
			return branch{}, err
		}
	}
	return br, nil
}

// evalFrom extends a branch with a generator. A finite source is
// re-evaluated once per block of the earlier bindings; an infinite source
// is evaluated exactly once, under the earlier bindings frozen at
// position zero, and pins the branch length to infinity.
func (e *Evaluator) evalFrom(q types.From, prev branch, env *Env) (branch, error) {
	srcLen, err := EvalNumType(env, q.Len)
	if err != nil {
		return branch{}, err
	}
	if srcLen.Inf {
		if prev.len.Inf {
			return branch{}, panicf("generator %q draws from an infinite source after an infinite one in the same group", q.Name.Ident)
		}
		// The block index i div inf is zero at every position: the source
		// is evaluated exactly once and every earlier binding freezes at
		// block zero.
		src, earlier := q.Src, prev.binds
		srcTh := NewThunk(q.Name.Ident, func() (Value, error) {
			return e.Eval(src, sliceEnv(env, earlier, 0))
		})
		binds := make([]compBind, 0, len(prev.binds)+1)
		for _, b := range prev.binds {
			b := b
			binds = append(binds, compBind{name: b.name, at: func(int) (Value, error) {
				return b.at(0)
			}})
		}
		binds = append(binds, compBind{name: q.Name, at: func(i int) (Value, error) {
			v, err := srcTh.Force()
			if err != nil {
				return nil, err
			}
			return seqIndex(v, i)
		}})
		return branch{len: Nat{Inf: true}, binds: binds}, nil
	}

	if prev.len.Inf {
		return branch{}, panicf("generator %q draws from a finite source after an infinite one in the same group", q.Name.Ident)
	}
	l := srcLen.Value
	newLen := natMul(prev.len, Nat{Value: l})
	if l == 0 {
		return branch{len: newLen, binds: prev.binds}, nil
	}
	// Element i of the combined branch is element i%l of the source
	// evaluated for block i/l; the source itself is evaluated at most once
	// per block and memoized.
	src, earlier := q.Src, prev.binds
	blockSrc := MemoMap(func(block int) (Value, error) {
		return e.Eval(src, sliceEnv(env, earlier, block))
	})
	binds := make([]compBind, 0, len(prev.binds)+1)
	for _, b := range prev.binds {
		b := b
		binds = append(binds, compBind{name: b.name, at: func(i int) (Value, error) {
			return b.at(i / l)
		}})
	}
	binds = append(binds, compBind{name: q.Name, at: func(i int) (Value, error) {
		v, err := blockSrc.At(i / l)
		if err != nil {
			return nil, err
		}
		return seqIndex(v, i%l)
	}})
	return branch{len: newLen, binds: binds}, nil
}

// evalMatchLet extends a branch with a let qualifier. The let body sees
// the earlier bindings at the same result position, so it re-evaluates
// per position; it does not change the branch length.
func (e *Evaluator) evalMatchLet(q types.MLet, prev branch, env *Env) (branch, error) {
	d, earlier := q.Decl, prev.binds
	binds := make([]compBind, len(prev.binds), len(prev.binds)+1)
	copy(binds, prev.binds)
	binds = append(binds, compBind{name: d.Name, at: func(i int) (Value, error) {
		return e.evalDeclBody(d, sliceEnv(env, earlier, i))
	}})
	return branch{len: prev.len, binds: binds}, nil
}

// sliceEnv views a bind set at one result position, as a frame over base.
// Binds are installed in order, so a later group's binding of the same
// name shadows an earlier group's.
func sliceEnv(base *Env, binds []compBind, i int) *Env {
	env := Enclosed(base)
	for _, b := range binds {
		b := b
		env.Bind(b.name, NewThunk(b.name.Ident, func() (Value, error) {
			return b.at(i)
		}))
	}
	return env
}

// seqIndex indexes into a finite or infinite sequence value.
func seqIndex(v Value, i int) (Value, error) {
	switch s := v.(type) {
	case Seq:
		return s.Elems.At(i)
	case Stream:
		return s.Elems.At(i)
	}
	return nil, panicf("generator source is not a sequence: %s", v.Type())
}
