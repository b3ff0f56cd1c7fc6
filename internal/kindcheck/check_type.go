package kindcheck

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/types"
)

// CheckType elaborates a surface type. When expected is non-nil the
// result is guaranteed to have that kind: a disagreement is recorded as a
// kind-mismatch diagnostic and a fresh placeholder of the expected kind is
// substituted, so one local error never blocks checking of the
// surrounding context.
func (c *Checker) CheckType(t ast.Type, expected *types.Kind) types.Type {
	switch t := t.(type) {
	case ast.TLocated:
		if c.pushRange(t.Range) {
			defer c.popRange()
		}
		return c.CheckType(t.Inner, expected)
	case ast.TParens:
		return c.CheckType(t.Inner, expected)
	case ast.TWild:
		return c.checkWildcard(expected)
	case ast.TFun:
		return c.checkTCon(types.TCFun, []ast.Type{t.Arg, t.Res}, expected)
	case ast.TSeq:
		return c.checkTCon(types.TCSeq, []ast.Type{t.Len, t.Elem}, expected)
	case ast.TBit:
		return c.checkTCon(types.TCBit, nil, expected)
	case ast.TInteger:
		return c.checkTCon(types.TCInteger, nil, expected)
	case ast.TNum:
		return c.expectKind(types.TNum{Value: t.Value}, types.KNum, expected)
	case ast.TChar:
		// A character literal stands for its codepoint.
		return c.expectKind(types.TNum{Value: int64(t.Value)}, types.KNum, expected)
	case ast.TInf:
		return c.expectKind(types.TInf{}, types.KNum, expected)
	case ast.TTuple:
		elems := make([]types.Type, len(t.Types))
		for i, e := range t.Types {
			kt := types.KType
			elems[i] = c.CheckType(e, &kt)
		}
		return c.expectKind(types.TTuple{Elems: elems}, types.KType, expected)
	case ast.TRecord:
		return c.checkRecord(t, expected)
	case ast.TUser:
		return c.resolveUser(t.Name, t.Args, expected)
	case ast.TInfix:
		diag.Panicf("infix type operator %q survived fixity resolution", t.Op.Ident)
	}
	diag.Panicf("unknown surface type form %T", t)
	return nil
}

// checkWildcard handles `_`. Contexts that forbid wildcards get an error
// and a placeholder; permitted wildcards become fresh placeholder types of
// the expected kind, defaulting to numeric with a warning when no kind is
// expected.
func (c *Checker) checkWildcard(expected *types.Kind) types.Type {
	if !c.wildcardsAllowed() {
		c.diags.Error(diag.UnexpectedWildcard, c.curRange(), nil,
			"wildcard is not allowed in this context")
		k := types.KNum
		if expected != nil {
			k = *expected
		}
		return c.freshType("_", k)
	}
	k := types.KNum
	if expected != nil {
		k = *expected
	} else {
		c.diags.Warn(diag.DefaultedWildcard, c.curRange(), nil,
			"kind of wildcard defaulted to %s", types.KNum)
	}
	return c.freshType("_", k)
}

// checkTCon elaborates a built-in constructor or type-function
// application. Builtin arity is fixed by the surface grammar; a
// type-function application additionally asks the solver for its
// well-formedness goals.
func (c *Checker) checkTCon(tc types.TypeConst, args []ast.Type, expected *types.Kind) types.Type {
	argKinds, res := tc.Signature()
	if len(args) != len(argKinds) {
		diag.Panicf("builtin %q applied to %d arguments, want %d", tc, len(args), len(argKinds))
	}
	elab := make([]types.Type, len(args))
	for i, a := range args {
		k := argKinds[i]
		elab[i] = c.CheckType(a, &k)
	}
	t := types.TCon{TC: tc, Args: elab}
	if tc.IsTypeFun() {
		c.addGoals(c.solver.TypeFnGoals(tc, elab, c.curRange()))
	}
	return c.expectKind(t, res, expected)
}

func (c *Checker) checkRecord(t ast.TRecord, expected *types.Kind) types.Type {
	seen := make(map[string]bool)
	var fields []types.Field
	for _, f := range t.Fields {
		if seen[f.Name] {
			c.diags.Error(diag.RepeatedField, c.rangeOr(f.Range), []string{f.Name},
				"repeated record field %q", f.Name)
			continue
		}
		seen[f.Name] = true
		kt := types.KType
		fields = append(fields, types.Field{Name: f.Name, Type: c.CheckType(f.Type, &kt)})
	}
	return c.expectKind(types.TRec{Fields: fields}, types.KType, expected)
}

// expectKind checks an inferred kind against the expected one, recovering
// from a mismatch by substituting a well-kinded placeholder.
func (c *Checker) expectKind(t types.Type, actual types.Kind, expected *types.Kind) types.Type {
	if expected != nil && *expected != actual {
		c.diags.Error(diag.KindMismatch, c.curRange(), []string{t.String()},
			"expected kind %s, inferred kind %s for %s", *expected, actual, t)
		return c.freshType("_err", *expected)
	}
	return t
}

// resolveUser elaborates a use of a named type. Resolution priority:
// locally bound parameter, outer elaborated parameter, type synonym,
// constraint synonym, newtype constructor, module parameter, builtin
// type function, then either an implicitly introduced existential
// variable or an undefined-synonym error with a placeholder result.
func (c *Checker) resolveUser(name ast.Name, args []ast.Type, expected *types.Kind) types.Type {
	if p, ok := c.lookupLocal(name.Ident); ok {
		return c.useParam(p, name, args, expected, true)
	}
	if p, ok := c.outer[name.Unique]; ok {
		return c.useParam(p, name, args, expected, false)
	}
	if syn, ok := c.syns[name.Unique]; ok {
		return c.useTySyn(syn, name, args, expected)
	}
	if syn, ok := c.propSyns[name.Unique]; ok {
		return c.usePropSyn(syn, name, args, expected)
	}
	if nt, ok := c.newtypes[name.Unique]; ok {
		fixed := c.checkArity(name, args, nt.Params)
		return c.expectKind(types.TUser{Name: name, Args: fixed}, types.KType, expected)
	}
	if p, ok := c.modParams[name.Unique]; ok {
		if len(args) != 0 {
			diag.Panicf("module parameter type %q applied to arguments", name.Ident)
		}
		return c.expectKind(types.TVar{Param: p}, p.Kind(), expected)
	}
	if tc, ok := builtinTypeFuns[name.Ident]; ok {
		return c.useBuiltin(tc, name, args, expected)
	}
	if c.cfg.AllowImplicitParams && len(args) == 0 {
		if p, ok := c.implicit[name.Unique]; ok {
			return c.expectKind(types.TVar{Param: p}, p.Kind(), expected)
		}
		k := types.KNum
		if expected != nil {
			k = *expected
		}
		p := types.NewTParam(name.Ident, k, types.SchemaParam)
		c.implicit[name.Unique] = p
		return types.TVar{Param: p}
	}
	c.diags.Error(diag.UndefinedSynonym, c.curRange(), []string{name.Ident},
		"undefined type synonym %q", name.Ident)
	k := types.KType
	if expected != nil {
		k = *expected
	}
	return c.freshType(name.Ident, k)
}

// builtinTypeFuns names the numeric type functions the fixity pass leaves
// behind as ordinary applications. Local parameters and user definitions
// shadow these, so the table is consulted last.
var builtinTypeFuns = map[string]types.TypeConst{
	"+":                types.TFAdd,
	"-":                types.TFSub,
	"*":                types.TFMul,
	"/":                types.TFDiv,
	"%":                types.TFMod,
	"^^":               types.TFExp,
	"min":              types.TFMin,
	"max":              types.TFMax,
	"width":            types.TFWidth,
	"lengthFromThen":   types.TFLenFromThen,
	"lengthFromThenTo": types.TFLenFromThenTo,
}

// useBuiltin elaborates a named application of a builtin type function.
// Unlike the constructors with dedicated surface syntax, arity here comes
// from user code and degrades the same way synonym arity does.
func (c *Checker) useBuiltin(tc types.TypeConst, name ast.Name, args []ast.Type, expected *types.Kind) types.Type {
	argKinds, res := tc.Signature()
	n := len(args)
	if n > len(argKinds) {
		c.diags.Error(diag.TooManyParams, c.curRange(), []string{name.Ident},
			"too many parameters for %q: expected %d, got %d", name.Ident, len(argKinds), n)
		n = len(argKinds)
	} else if n < len(argKinds) {
		c.diags.Error(diag.TooFewParams, c.curRange(), []string{name.Ident},
			"too few parameters for %q: expected %d, got %d", name.Ident, len(argKinds), n)
	}
	elab := make([]types.Type, len(argKinds))
	for i := 0; i < n; i++ {
		k := argKinds[i]
		elab[i] = c.CheckType(args[i], &k)
	}
	for i := len(argKinds); i < len(args); i++ {
		c.CheckType(args[i], nil)
	}
	for i := n; i < len(argKinds); i++ {
		elab[i] = c.freshType(name.Ident, argKinds[i])
	}
	t := types.TCon{TC: tc, Args: elab}
	if tc.IsTypeFun() {
		c.addGoals(c.solver.TypeFnGoals(tc, elab, c.curRange()))
	}
	return c.expectKind(t, res, expected)
}

// useParam elaborates a reference to a bound type parameter. A parameter
// of a still-open scope may have an unassigned kind slot; the first
// occurrence with an expected kind fixes it.
func (c *Checker) useParam(p *types.TParam, name ast.Name, args []ast.Type, expected *types.Kind, open bool) types.Type {
	if len(args) != 0 {
		c.diags.Error(diag.KindMismatch, c.curRange(), []string{name.Ident},
			"type parameter %q does not accept arguments", name.Ident)
		// Keep checking the arguments so their own errors still surface.
		for _, a := range args {
			c.CheckType(a, nil)
		}
		k := types.KType
		if expected != nil {
			k = *expected
		}
		return c.freshType(name.Ident, k)
	}
	if open && !p.KindKnown() {
		if expected != nil {
			p.SetKind(*expected)
		}
		return types.TVar{Param: p}
	}
	return c.expectKind(types.TVar{Param: p}, p.Kind(), expected)
}

// checkArity elaborates synonym/newtype arguments against the declared
// parameter list. Too few arguments pad with fresh placeholders of the
// missing parameters' kinds; too many truncate. Both record exactly one
// diagnostic and keep checking.
func (c *Checker) checkArity(name ast.Name, args []ast.Type, params []*types.TParam) []types.Type {
	n := len(args)
	if n > len(params) {
		c.diags.Error(diag.TooManyParams, c.curRange(), []string{name.Ident},
			"too many parameters for %q: expected %d, got %d", name.Ident, len(params), n)
		n = len(params)
	} else if n < len(params) {
		c.diags.Error(diag.TooFewParams, c.curRange(), []string{name.Ident},
			"too few parameters for %q: expected %d, got %d", name.Ident, len(params), n)
	}
	fixed := make([]types.Type, len(params))
	for i := 0; i < n; i++ {
		k := params[i].Kind()
		fixed[i] = c.CheckType(args[i], &k)
	}
	// Check surplus arguments anyway so their errors are still reported,
	// then drop them.
	for i := len(params); i < len(args); i++ {
		c.CheckType(args[i], nil)
	}
	// Pad missing arguments with placeholders of the declared kinds.
	for i := n; i < len(params); i++ {
		fixed[i] = c.freshType(params[i].Name, params[i].Kind())
	}
	return fixed
}

func (c *Checker) useTySyn(syn *types.TySyn, name ast.Name, args []ast.Type, expected *types.Kind) types.Type {
	fixed := c.checkArity(name, args, syn.Params)
	su := make(types.Subst, len(syn.Params))
	for i, p := range syn.Params {
		su[p.Unique] = fixed[i]
	}
	for _, prop := range syn.Props {
		c.addGoals([]types.Goal{{
			Prop:   types.Instantiate(prop, su),
			Source: types.GSTySyn,
			Range:  c.curRange(),
		}})
	}
	body := types.Instantiate(syn.Body, su)
	t := types.TUser{Name: name, Args: fixed, Expanded: body}
	return c.expectKind(t, body.Kind(), expected)
}

func (c *Checker) usePropSyn(syn *types.PropSyn, name ast.Name, args []ast.Type, expected *types.Kind) types.Type {
	fixed := c.checkArity(name, args, syn.Params)
	su := make(types.Subst, len(syn.Params))
	for i, p := range syn.Params {
		su[p.Unique] = fixed[i]
	}
	props := make([]types.Type, len(syn.Props))
	for i, prop := range syn.Props {
		props[i] = types.Instantiate(prop, su)
	}
	t := types.TUser{Name: name, Args: fixed, Expanded: conjunction(props)}
	return c.expectKind(t, types.KProp, expected)
}

// conjunction folds propositions into one.
func conjunction(props []types.Type) types.Type {
	if len(props) == 0 {
		return types.TCon{TC: types.PCFin, Args: []types.Type{types.TNum{Value: 0}}}
	}
	acc := props[len(props)-1]
	for i := len(props) - 2; i >= 0; i-- {
		acc = types.TCon{TC: types.PCAnd, Args: []types.Type{props[i], acc}}
	}
	return acc
}

// CheckProp elaborates a surface proposition at the proposition kind,
// through the same constructor-application path as types.
func (c *Checker) CheckProp(p ast.Prop) types.Type {
	kp := types.KProp
	switch p := p.(type) {
	case ast.PLocated:
		if c.pushRange(p.Range) {
			defer c.popRange()
		}
		return c.CheckProp(p.Inner)
	case ast.PFin:
		return c.checkTCon(types.PCFin, []ast.Type{p.T}, &kp)
	case ast.PEqual:
		return c.checkTCon(types.PCEqual, []ast.Type{p.A, p.B}, &kp)
	case ast.PGeq:
		return c.checkTCon(types.PCGeq, []ast.Type{p.A, p.B}, &kp)
	case ast.PZero:
		return c.checkTCon(types.PCZero, []ast.Type{p.T}, &kp)
	case ast.PRing:
		return c.checkTCon(types.PCRing, []ast.Type{p.T}, &kp)
	case ast.PCmp:
		return c.checkTCon(types.PCCmp, []ast.Type{p.T}, &kp)
	case ast.PSignedCmp:
		return c.checkTCon(types.PCSignedCmp, []ast.Type{p.T}, &kp)
	case ast.PUser:
		return c.resolveUser(p.Name, p.Args, &kp)
	}
	diag.Panicf("unknown surface proposition form %T", p)
	return nil
}
