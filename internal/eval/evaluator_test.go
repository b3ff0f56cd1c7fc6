package eval

import (
	"errors"
	"testing"

	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/types"
)

const wordWidth = 8

var wordType = types.TCon{TC: types.TCSeq, Args: []types.Type{
	types.TNum{Value: wordWidth}, types.TCon{TC: types.TCBit},
}}

// addPrim is a curried two-word adder.
func addPrim() Value {
	return Func{Fn: func(a *Thunk) (Value, error) {
		return Func{Fn: func(b *Thunk) (Value, error) {
			av, err := a.Force()
			if err != nil {
				return nil, err
			}
			bv, err := b.Force()
			if err != nil {
				return nil, err
			}
			x, err := WordValue(av)
			if err != nil {
				return nil, err
			}
			y, err := WordValue(bv)
			if err != nil {
				return nil, err
			}
			return Word(wordWidth, x+y), nil
		}}, nil
	}}
}

// consPrim prefixes an element onto a stream without forcing the tail.
func consPrim() Value {
	return Func{Fn: func(x *Thunk) (Value, error) {
		return Func{Fn: func(rest *Thunk) (Value, error) {
			return Stream{Elems: MemoMap(func(i int) (Value, error) {
				if i == 0 {
					return x.Force()
				}
				rv, err := rest.Force()
				if err != nil {
					return nil, err
				}
				return seqIndex(rv, i-1)
			})}, nil
		}}, nil
	}}
}

func wordSeq(vals ...int64) Value {
	elems := make([]*Thunk, len(vals))
	for i, v := range vals {
		elems[i] = Ready(Word(wordWidth, v))
	}
	return Seq{Len: len(elems), Elems: ThunkMap(elems)}
}

// wantWords indexes a sequence value and compares word contents.
func wantWords(t *testing.T, v Value, want []int64) {
	t.Helper()
	var at func(int) (Value, error)
	switch s := v.(type) {
	case Seq:
		if s.Len != len(want) {
			t.Fatalf("sequence length = %d, want %d", s.Len, len(want))
		}
		at = s.Elems.At
	case Stream:
		at = s.Elems.At
	default:
		t.Fatalf("value is %s, want a sequence", v.Type())
	}
	for i, w := range want {
		el, err := at(i)
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		got, err := WordValue(el)
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		if got != w {
			t.Errorf("element %d = %d, want %d", i, got, w)
		}
	}
}

func bindValue(env *Env, ident string, v Value) ast.Name {
	name := ast.NewName(ident)
	env.Bind(name, Ready(v))
	return name
}

func TestWhereNonRecursiveGroups(t *testing.T) {
	ev := New(map[string]Value{"add": addPrim()})
	env := NewEnv()

	add := ast.NewName("add")
	ten := ast.NewName("ten")
	one := ast.NewName("one")
	sum := ast.NewName("sum")

	// sum where add = <prim>; ten = 10; one = 1; sum = add ten one
	expr := types.EWhere{
		Body: types.EVar{Name: sum},
		Groups: []types.DeclGroup{
			{Decls: []*types.Decl{{Name: add}}},
			{Decls: []*types.Decl{
				{Name: ten, Body: hostExpr(env, "h_ten", Word(wordWidth, 10))},
				{Name: one, Body: hostExpr(env, "h_one", Word(wordWidth, 1))},
			}},
			{Decls: []*types.Decl{{
				Name: sum,
				Body: types.EApp{
					Fn:  types.EApp{Fn: types.EVar{Name: add}, Arg: types.EVar{Name: ten}},
					Arg: types.EVar{Name: one},
				},
			}}},
		},
	}

	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, err := WordValue(v)
	if err != nil {
		t.Fatalf("WordValue() error: %v", err)
	}
	if got != 11 {
		t.Errorf("sum = %d, want 11", got)
	}
}

// hostExpr injects a host value as an expression by pre-binding it.
func hostExpr(env *Env, ident string, v Value) types.Expr {
	return types.EVar{Name: bindValue(env, ident, v)}
}

func TestMissingPrimitive(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	name := ast.NewName("mystery")

	child := ev.evalDeclGroup(types.DeclGroup{Decls: []*types.Decl{{Name: name}}}, env)
	th, _ := child.Lookup(name)
	_, err := th.Force()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("missing primitive produced %v, want an internal error", err)
	}
}

func TestProductiveRecursion(t *testing.T) {
	// ones = cons one ones: recursion through a lazy tail terminates.
	ev := New(nil)
	env := NewEnv()
	cons := bindValue(env, "cons", consPrim())
	one := bindValue(env, "one", Word(wordWidth, 1))
	ones := ast.NewName("ones")

	child, err := ev.EvalDeclGroups([]types.DeclGroup{{
		Recursive: true,
		Decls: []*types.Decl{{
			Name: ones,
			Body: types.EApp{
				Fn:  types.EApp{Fn: types.EVar{Name: cons}, Arg: types.EVar{Name: one}},
				Arg: types.EVar{Name: ones},
			},
		}},
	}}, env)
	if err != nil {
		t.Fatalf("EvalDeclGroups() error: %v", err)
	}

	th, ok := child.Lookup(ones)
	if !ok {
		t.Fatalf("ones not bound")
	}
	v, err := th.Force()
	if err != nil {
		t.Fatalf("Force() error: %v", err)
	}
	wantWords(t, v, []int64{1, 1, 1})
}

func TestStrictSelfReference(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	name := ast.NewName("loop")

	child, err := ev.EvalDeclGroups([]types.DeclGroup{{
		Recursive: true,
		Decls:     []*types.Decl{{Name: name, Body: types.EVar{Name: name}}},
	}}, env)
	if err != nil {
		t.Fatalf("EvalDeclGroups() error: %v", err)
	}

	th, _ := child.Lookup(name)
	_, err = th.Force()
	var loop *LoopError
	if !errors.As(err, &loop) {
		t.Fatalf("strict self-reference produced %v, want a loop error", err)
	}
	if loop.Name != "loop" {
		t.Errorf("loop names %q, want loop", loop.Name)
	}
}

func TestStrictSelfReferenceThroughAddition(t *testing.T) {
	// x = add x one: the addition forces x while x is still being
	// computed, which is the loop the blackhole detects.
	ev := New(nil)
	env := NewEnv()
	add := bindValue(env, "add", addPrim())
	one := bindValue(env, "one", Word(wordWidth, 1))
	x := ast.NewName("x")

	child, err := ev.EvalDeclGroups([]types.DeclGroup{{
		Recursive: true,
		Decls: []*types.Decl{{
			Name: x,
			Body: types.EApp{
				Fn:  types.EApp{Fn: types.EVar{Name: add}, Arg: types.EVar{Name: x}},
				Arg: types.EVar{Name: one},
			},
		}},
	}}, env)
	if err != nil {
		t.Fatalf("EvalDeclGroups() error: %v", err)
	}

	th, _ := child.Lookup(x)
	_, err = th.Force()
	var loop *LoopError
	if !errors.As(err, &loop) {
		t.Fatalf("strict recursion produced %v, want a loop error", err)
	}
	if loop.Name != "x" {
		t.Errorf("loop names %q, want x", loop.Name)
	}
}

func TestMutualRecursion(t *testing.T) {
	// a = cons one b; b = cons ten a: members of one recursive group see
	// each other regardless of order.
	ev := New(nil)
	env := NewEnv()
	cons := bindValue(env, "cons", consPrim())
	one := bindValue(env, "one", Word(wordWidth, 1))
	ten := bindValue(env, "ten", Word(wordWidth, 10))
	a := ast.NewName("a")
	b := ast.NewName("b")

	consOf := func(hd, tl ast.Name) types.Expr {
		return types.EApp{
			Fn:  types.EApp{Fn: types.EVar{Name: cons}, Arg: types.EVar{Name: hd}},
			Arg: types.EVar{Name: tl},
		}
	}
	child, err := ev.EvalDeclGroups([]types.DeclGroup{{
		Recursive: true,
		Decls: []*types.Decl{
			{Name: a, Body: consOf(one, b)},
			{Name: b, Body: consOf(ten, a)},
		},
	}}, env)
	if err != nil {
		t.Fatalf("EvalDeclGroups() error: %v", err)
	}

	th, _ := child.Lookup(a)
	v, err := th.Force()
	if err != nil {
		t.Fatalf("Force() error: %v", err)
	}
	wantWords(t, v, []int64{1, 10, 1, 10})
}

func TestConditionalEvaluatesOneBranch(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	yes := bindValue(env, "yes", Bit{Value: true})
	one := bindValue(env, "one", Word(wordWidth, 1))

	// The untaken branch references an unbound name; it must never run.
	expr := types.EIf{
		Cond: types.EVar{Name: yes},
		Then: types.EVar{Name: one},
		Else: types.EVar{Name: ast.NewName("unbound")},
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 1 {
		t.Errorf("conditional = %d, want 1", got)
	}
}

func TestSelectionDistributesOverSequence(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	pts := bindValue(env, "pts", Seq{Len: 2, Elems: ThunkMap([]*Thunk{
		Ready(Tuple{Elems: []*Thunk{Ready(Word(wordWidth, 1)), Ready(Word(wordWidth, 2))}}),
		Ready(Tuple{Elems: []*Thunk{Ready(Word(wordWidth, 3)), Ready(Word(wordWidth, 4))}}),
	})})

	v, err := ev.Eval(types.ESel{Expr: types.EVar{Name: pts}, Sel: types.TupleSel{Index: 1}}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	wantWords(t, v, []int64{2, 4})
}

func TestSelectionKeepsBitFastPath(t *testing.T) {
	ev := New(nil)
	env := NewEnv()

	bitType := types.TCon{TC: types.TCBit}
	pair := func(ident string, b bool, w int64) types.Expr {
		return hostExpr(env, ident, Tuple{Elems: []*Thunk{
			Ready(Bit{Value: b}), Ready(Word(wordWidth, w)),
		}})
	}
	list := types.EList{
		Elems:    []types.Expr{pair("p0", true, 1), pair("p1", false, 2)},
		ElemType: types.TTuple{Elems: []types.Type{bitType, wordType}},
	}

	v, err := ev.Eval(types.ESel{Expr: list, Sel: types.TupleSel{Index: 0}}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	bits, ok := v.(Seq)
	if !ok || !bits.Bits {
		t.Errorf("selecting the bit components lost the fast-path flag")
	}

	v, err = ev.Eval(types.ESel{Expr: list, Sel: types.TupleSel{Index: 1}}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	words, ok := v.(Seq)
	if !ok {
		t.Fatalf("selection produced %s, want a sequence", v.Type())
	}
	if words.Bits {
		t.Errorf("selecting the word components set the fast-path flag")
	}
	wantWords(t, words, []int64{1, 2})
}

func TestSelectionDistributesOverFunction(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	pair := bindValue(env, "pair", Func{Fn: func(arg *Thunk) (Value, error) {
		return Tuple{Elems: []*Thunk{arg, Ready(Word(wordWidth, 9))}}, nil
	}})
	one := bindValue(env, "one", Word(wordWidth, 1))

	// (pair.1) one selects out of the function's result.
	expr := types.EApp{
		Fn:  types.ESel{Expr: types.EVar{Name: pair}, Sel: types.TupleSel{Index: 1}},
		Arg: types.EVar{Name: one},
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 9 {
		t.Errorf("selected result = %d, want 9", got)
	}
}

func TestRecordLiteralAndSelection(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	one := bindValue(env, "one", Word(wordWidth, 1))

	expr := types.ESel{
		Expr: types.ERec{Fields: []types.NamedExpr{
			{Name: "lo", Expr: types.EVar{Name: one}},
			{Name: "hi", Expr: types.EVar{Name: ast.NewName("unbound")}},
		}},
		Sel: types.RecordSel{Name: "lo"},
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 1 {
		t.Errorf("field lo = %d, want 1", got)
	}
}

func TestListIndexSelection(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	xs := bindValue(env, "xs", wordSeq(10, 20, 30))

	v, err := ev.Eval(types.ESel{Expr: types.EVar{Name: xs}, Sel: types.ListSel{Index: 2}}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 30 {
		t.Errorf("element 2 = %d, want 30", got)
	}
}

func TestSelectionFromUnexpectedShape(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	b := bindValue(env, "b", Bit{Value: true})

	_, err := ev.Eval(types.ESel{Expr: types.EVar{Name: b}, Sel: types.TupleSel{Index: 0}}, env)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("selection from a bit produced %v, want an internal error", err)
	}
}

func TestUnresolvedVariable(t *testing.T) {
	ev := New(nil)
	_, err := ev.Eval(types.EVar{Name: ast.NewName("ghost")}, NewEnv())
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("unresolved variable produced %v, want an internal error", err)
	}
}

func TestTypeAbstractionAndApplication(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	p := types.NewTParam("n", types.KNum, types.SchemaParam)

	inner := bindValue(env, "inner", Word(wordWidth, 5))
	expr := types.ETApp{
		Expr: types.ETAbs{Param: p, Body: types.EVar{Name: inner}},
		Type: types.TNum{Value: 8},
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 5 {
		t.Errorf("instantiated value = %d, want 5", got)
	}

	// The environment binding is visible to type evaluation.
	child := Enclosed(env)
	child.BindType(p, TValue{Type: types.TNum{Value: 8}})
	n, err := EvalNumType(child, types.TVar{Param: p})
	if err != nil {
		t.Fatalf("EvalNumType() error: %v", err)
	}
	if n.Inf || n.Value != 8 {
		t.Errorf("EvalNumType() = %s, want 8", n)
	}
}

func TestProofAndCastErasure(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	one := bindValue(env, "one", Word(wordWidth, 1))

	expr := types.ECast{
		Expr: types.EProofApp{Expr: types.EProofAbs{
			Prop: types.TCon{TC: types.PCFin, Args: []types.Type{types.TNum{Value: 8}}},
			Body: types.EVar{Name: one},
		}},
		Type: wordType,
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 1 {
		t.Errorf("erased value = %d, want 1", got)
	}
}

func TestListLiteralBitFlag(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	yes := bindValue(env, "yes", Bit{Value: true})

	v, err := ev.Eval(types.EList{
		Elems:    []types.Expr{types.EVar{Name: yes}},
		ElemType: types.TCon{TC: types.TCBit},
	}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	s, ok := v.(Seq)
	if !ok || !s.Bits {
		t.Errorf("bit list not flagged as a word: %v", v)
	}

	v, err = ev.Eval(types.EList{ElemType: wordType}, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	s, ok = v.(Seq)
	if !ok || s.Bits || s.Len != 0 {
		t.Errorf("empty word list mis-shaped: %v", v)
	}
}

func TestNewtypeConstructorIsIdentity(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	one := bindValue(env, "one", Word(wordWidth, 1))

	name := ast.NewName("Tagged")
	nt := &types.Newtype{
		Name:   name,
		Params: []*types.TParam{types.NewTParam("n", types.KNum, types.SchemaParam)},
		Fields: []types.Field{{Name: "val", Type: wordType}},
	}
	ev.BindNewtypes(env, nt)

	expr := types.EApp{
		Fn:  types.ETApp{Expr: types.EVar{Name: name}, Type: types.TNum{Value: 8}},
		Arg: types.EVar{Name: one},
	}
	v, err := ev.Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval() error: %v", err)
	}
	got, _ := WordValue(v)
	if got != 1 {
		t.Errorf("constructed value = %d, want the wrapped 1", got)
	}
}

func TestApplicationOfNonFunction(t *testing.T) {
	ev := New(nil)
	env := NewEnv()
	b := bindValue(env, "b", Bit{Value: true})

	_, err := ev.Eval(types.EApp{Fn: types.EVar{Name: b}, Arg: types.EVar{Name: b}}, env)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("application of a bit produced %v, want an internal error", err)
	}
}
