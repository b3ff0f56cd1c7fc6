package kindcheck

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/types"
)

// CheckSchema elaborates a universally quantified type. Constraints and
// the body are checked in the scope of the schema's own parameters, with
// wildcards permitted; embedded type constructors are rebuilt in
// simplified form before the schema is returned. The goals generated
// while checking are returned for the caller's solver pass.
func (c *Checker) CheckSchema(s ast.Schema) (types.Schema, []types.Goal) {
	if c.pushRange(s.Range) {
		defer c.popRange()
	}
	var props []types.Type
	var body types.Type
	params := c.WithScopedParams(true, types.SchemaParam, s.Params, func() {
		for _, p := range s.Props {
			props = append(props, c.CheckProp(p))
		}
		kt := types.KType
		body = c.CheckType(s.Body, &kt)
	})
	for i := range props {
		props[i] = types.Simplify(props[i])
	}
	return types.Schema{Params: params, Props: props, Body: types.Simplify(body)}, c.takeGoals()
}

// CheckTySyn elaborates a type-synonym declaration, discharges the goals
// accumulated in its scope through the solver, registers the synonym for
// later uses, and returns it with any residual goals.
func (c *Checker) CheckTySyn(d ast.TySynDecl) (*types.TySyn, []types.Goal) {
	if c.pushRange(d.Range) {
		defer c.popRange()
	}
	var props []types.Type
	var body types.Type
	params := c.WithScopedParams(false, types.SynParam, d.Params, func() {
		for _, p := range d.Props {
			props = append(props, c.CheckProp(p))
		}
		body = c.CheckType(d.Body, nil)
	})
	for i := range props {
		props[i] = types.Simplify(props[i])
	}
	syn := &types.TySyn{
		Name:   d.Name,
		Params: params,
		Props:  props,
		Body:   types.Simplify(body),
	}
	c.AddTySyn(syn)
	return syn, c.closeScopeGoals()
}

// CheckPropSyn elaborates a constraint-synonym declaration. The body is a
// conjunction of propositions, each checked at the proposition kind.
func (c *Checker) CheckPropSyn(d ast.PropSynDecl) (*types.PropSyn, []types.Goal) {
	if c.pushRange(d.Range) {
		defer c.popRange()
	}
	var props []types.Type
	params := c.WithScopedParams(false, types.SynParam, d.Params, func() {
		for _, p := range d.Props {
			props = append(props, c.CheckProp(p))
		}
	})
	for i := range props {
		props[i] = types.Simplify(props[i])
	}
	syn := &types.PropSyn{Name: d.Name, Params: params, Props: props}
	c.AddPropSyn(syn)
	return syn, c.closeScopeGoals()
}

// CheckNewtype elaborates a newtype declaration. Every field is checked
// at the value-type kind and field order is preserved. Duplicate field
// names were already rejected by the name-lookup layer and are not
// re-validated here.
func (c *Checker) CheckNewtype(d ast.NewtypeDecl) (*types.Newtype, []types.Goal) {
	if c.pushRange(d.Range) {
		defer c.popRange()
	}
	var fields []types.Field
	params := c.WithScopedParams(false, types.SynParam, d.Params, func() {
		for _, f := range d.Fields {
			kt := types.KType
			fields = append(fields, types.Field{Name: f.Name, Type: c.CheckType(f.Type, &kt)})
		}
	})
	for i := range fields {
		fields[i].Type = types.Simplify(fields[i].Type)
	}
	nt := &types.Newtype{Name: d.Name, Params: params, Fields: fields}
	c.AddNewtype(nt)
	return nt, c.closeScopeGoals()
}

// closeScopeGoals hands the accumulated goals to the solver as the scope
// closes and returns the residual it could not discharge.
func (c *Checker) closeScopeGoals() []types.Goal {
	goals := c.takeGoals()
	if len(goals) == 0 {
		return nil
	}
	residual, err := c.solver.Simplify(goals)
	if err != nil {
		diag.Panicf("constraint solver failed: %v", err)
	}
	return residual
}
