// Package eval executes elaborated expressions and declaration groups
// under call-by-need evaluation. Every bound computation is memoized at
// most once, forced on demand, and self-reference during forcing is a
// detectable loop error rather than non-termination.
package eval

import "github.com/silica-lang/silica/internal/types"

// Evaluator reduces elaborated expressions to values. The primitive
// table is injected at construction so independent evaluation contexts
// can coexist; the evaluator itself implements no primitives.
type Evaluator struct {
	prims map[string]Value
}

func New(prims map[string]Value) *Evaluator {
	if prims == nil {
		prims = make(map[string]Value)
	}
	return &Evaluator{prims: prims}
}

// Eval reduces an expression to its outermost value shape. Sub-components
// of the result stay deferred until a caller demands them.
func (e *Evaluator) Eval(expr types.Expr, env *Env) (Value, error) {
	switch node := expr.(type) {
	case types.EList:
		return e.evalList(node, env)
	case types.ETuple:
		elems := make([]*Thunk, len(node.Elems))
		for i, el := range node.Elems {
			el := el
			elems[i] = NewThunk("", func() (Value, error) { return e.Eval(el, env) })
		}
		return Tuple{Elems: elems}, nil
	case types.ERec:
		fields := make([]RecordField, len(node.Fields))
		for i, f := range node.Fields {
			f := f
			fields[i] = RecordField{
				Name:  f.Name,
				Value: NewThunk(f.Name, func() (Value, error) { return e.Eval(f.Expr, env) }),
			}
		}
		return Record{Fields: fields}, nil
	case types.ESel:
		v, err := e.Eval(node.Expr, env)
		if err != nil {
			return nil, err
		}
		return e.evalSel(v, node.Sel)
	case types.EIf:
		cond, err := e.Eval(node.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(Bit)
		if !ok {
			return nil, panicf("conditional on a non-bit value: %s", cond.Type())
		}
		if b.Value {
			return e.Eval(node.Then, env)
		}
		return e.Eval(node.Else, env)
	case types.EComp:
		return e.evalComp(node, env)
	case types.EVar:
		th, ok := env.Lookup(node.Name)
		if !ok {
			return nil, panicf("unresolved variable %q in environment %s", node.Name.Ident, env)
		}
		return th.Force()
	case types.ETAbs:
		param, body := node.Param, node.Body
		return Poly{Fn: func(tv TValue) (Value, error) {
			child := Enclosed(env)
			child.BindType(param, tv)
			return e.Eval(body, child)
		}}, nil
	case types.ETApp:
		fn, err := e.Eval(node.Expr, env)
		if err != nil {
			return nil, err
		}
		p, ok := fn.(Poly)
		if !ok {
			return nil, panicf("type application to a non-polymorphic value: %s", fn.Type())
		}
		tv, err := EvalType(env, node.Type)
		if err != nil {
			return nil, err
		}
		return p.Fn(tv)
	case types.EAbs:
		name, body := node.Name, node.Body
		return Func{Fn: func(arg *Thunk) (Value, error) {
			child := Enclosed(env)
			child.Bind(name, arg)
			return e.Eval(body, child)
		}}, nil
	case types.EApp:
		fn, err := e.Eval(node.Fn, env)
		if err != nil {
			return nil, err
		}
		f, ok := fn.(Func)
		if !ok {
			return nil, panicf("application of a non-function value: %s", fn.Type())
		}
		arg := node.Arg
		return f.Fn(NewThunk("", func() (Value, error) { return e.Eval(arg, env) }))
	case types.EProofAbs:
		// Proofs are erased at evaluation.
		return e.Eval(node.Body, env)
	case types.EProofApp:
		return e.Eval(node.Expr, env)
	case types.ECast:
		return e.Eval(node.Expr, env)
	case types.EWhere:
		child, err := e.EvalDeclGroups(node.Groups, env)
		if err != nil {
			return nil, err
		}
		return e.Eval(node.Body, child)
	}
	return nil, panicf("unknown expression form %T", expr)
}

// evalList builds a finite sequence. The element count comes from the
// literal itself and the bit fast-path flag from the elaborated element
// type; the elements stay individually deferred.
func (e *Evaluator) evalList(node types.EList, env *Env) (Value, error) {
	tv, err := EvalType(env, node.ElemType)
	if err != nil {
		return nil, err
	}
	elems := make([]*Thunk, len(node.Elems))
	for i, el := range node.Elems {
		el := el
		elems[i] = NewThunk("", func() (Value, error) { return e.Eval(el, env) })
	}
	return Seq{Len: len(elems), Bits: isBitType(tv), Elem: tv.Type, Elems: ThunkMap(elems)}, nil
}

// evalSel selects a component out of a value. Selection distributes over
// a function's result and maps pointwise over finite and infinite
// sequences, without forcing the elements being passed over.
func (e *Evaluator) evalSel(v Value, sel types.Selector) (Value, error) {
	switch val := v.(type) {
	case Record:
		rs, ok := sel.(types.RecordSel)
		if !ok {
			return nil, panicf("selector %T applied to a record", sel)
		}
		th, ok := val.Lookup(rs.Name)
		if !ok {
			return nil, panicf("record has no field %q", rs.Name)
		}
		return th.Force()
	case Tuple:
		ts, ok := sel.(types.TupleSel)
		if !ok {
			return nil, panicf("selector %T applied to a tuple", sel)
		}
		if ts.Index < 0 || ts.Index >= len(val.Elems) {
			return nil, panicf("tuple index %d out of bounds (%d components)", ts.Index, len(val.Elems))
		}
		return val.Elems[ts.Index].Force()
	case Seq:
		if ls, ok := sel.(types.ListSel); ok {
			return val.Elems.At(ls.Index)
		}
		elems := val.Elems
		comp := selComponent(val.Elem, sel)
		return Seq{
			Len:  val.Len,
			Bits: isBitType(TValue{Type: comp}),
			Elem: comp,
			Elems: MemoMap(func(i int) (Value, error) {
				el, err := elems.At(i)
				if err != nil {
					return nil, err
				}
				return e.evalSel(el, sel)
			}),
		}, nil
	case Stream:
		if ls, ok := sel.(types.ListSel); ok {
			return val.Elems.At(ls.Index)
		}
		elems := val.Elems
		return Stream{Elems: MemoMap(func(i int) (Value, error) {
			el, err := elems.At(i)
			if err != nil {
				return nil, err
			}
			return e.evalSel(el, sel)
		})}, nil
	case Func:
		fn := val.Fn
		return Func{Fn: func(arg *Thunk) (Value, error) {
			r, err := fn(arg)
			if err != nil {
				return nil, err
			}
			return e.evalSel(r, sel)
		}}, nil
	}
	return nil, panicf("unexpected shape in selection: %s", v.Type())
}

// selComponent is the element type of a selection distributed over a
// sequence, when the sequence recorded its element type.
func selComponent(elem types.Type, sel types.Selector) types.Type {
	switch s := sel.(type) {
	case types.TupleSel:
		if t, ok := elem.(types.TTuple); ok && s.Index >= 0 && s.Index < len(t.Elems) {
			return t.Elems[s.Index]
		}
	case types.RecordSel:
		if r, ok := elem.(types.TRec); ok {
			for _, f := range r.Fields {
				if f.Name == s.Name {
					return f.Type
				}
			}
		}
	}
	return nil
}

// EvalDeclGroups extends an environment with a module's declaration
// groups, in order.
func (e *Evaluator) EvalDeclGroups(groups []types.DeclGroup, env *Env) (*Env, error) {
	for _, g := range groups {
		env = e.evalDeclGroup(g, env)
	}
	return env, nil
}

// evalDeclGroup binds one group. A non-recursive group defers each member
// against the environment preceding the group. A recursive group first
// allocates one placeholder per member, binds them all so members can see
// each other, then fills every placeholder with its real computation
// against the extended environment. The fill order across members is
// unspecified; each member's placeholder is independent.
func (e *Evaluator) evalDeclGroup(g types.DeclGroup, env *Env) *Env {
	child := Enclosed(env)
	if !g.Recursive {
		base := env
		for _, d := range g.Decls {
			d := d
			child.Bind(d.Name, NewThunk(d.Name.Ident, func() (Value, error) {
				return e.evalDeclBody(d, base)
			}))
		}
		return child
	}
	holes := make([]*Thunk, len(g.Decls))
	for i, d := range g.Decls {
		holes[i] = Blackhole(d.Name.Ident)
		child.Bind(d.Name, holes[i])
	}
	for i, d := range g.Decls {
		d := d
		holes[i].Fill(func() (Value, error) {
			return e.evalDeclBody(d, child)
		})
	}
	return child
}

// evalDeclBody runs a declaration's defining expression, or consults the
// primitive table when the declaration has no body.
func (e *Evaluator) evalDeclBody(d *types.Decl, env *Env) (Value, error) {
	if d.Body == nil {
		v, ok := e.prims[d.Name.Ident]
		if !ok {
			return nil, panicf("no primitive implementation for %q", d.Name.Ident)
		}
		return v, nil
	}
	return e.Eval(d.Body, env)
}

// BindNewtypes binds each newtype's constructor: one type abstraction per
// parameter, ignored at the value level, around a value-level identity.
// A newtype has no runtime representation of its own.
func (e *Evaluator) BindNewtypes(env *Env, nts ...*types.Newtype) {
	for _, nt := range nts {
		var v Value = Func{Fn: func(arg *Thunk) (Value, error) { return arg.Force() }}
		for range nt.Params {
			inner := v
			v = Poly{Fn: func(TValue) (Value, error) { return inner, nil }}
		}
		env.Bind(nt.Name, Ready(v))
	}
}
