// Package kindcheck elaborates surface types, propositions and schemas
// into the internal type algebra, inferring kind annotations and
// collecting well-formedness goals for the constraint solver.
package kindcheck

import (
	"github.com/google/uuid"
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/solver"
	"github.com/silica-lang/silica/internal/types"
)

// Config controls checker behavior that depends on the surrounding
// context. The zero value is usable.
type Config struct {
	// AllowImplicitParams permits an undefined zero-argument type name to
	// silently introduce a fresh existential type variable, the way type
	// annotations inside expressions do. Declaration contexts leave this
	// off and report undefined synonyms instead.
	AllowImplicitParams bool
}

// Checker is the single-threaded kind-inference context. It owns the
// in-scope parameter stack, the synonym/newtype/module-parameter tables,
// the accumulated goals and the source-range stack for diagnostics.
type Checker struct {
	cfg    Config
	solver solver.Solver
	diags  *diag.Diagnostics

	syns      map[uuid.UUID]*types.TySyn
	propSyns  map[uuid.UUID]*types.PropSyn
	newtypes  map[uuid.UUID]*types.Newtype
	modParams map[uuid.UUID]*types.TParam
	outer     map[uuid.UUID]*types.TParam
	implicit  map[uuid.UUID]*types.TParam

	scopes []*paramScope
	goals  []types.Goal
	ranges []ast.Range
	wild   []bool
}

func New(cfg Config, s solver.Solver, d *diag.Diagnostics) *Checker {
	return &Checker{
		cfg:       cfg,
		solver:    s,
		diags:     d,
		syns:      make(map[uuid.UUID]*types.TySyn),
		propSyns:  make(map[uuid.UUID]*types.PropSyn),
		newtypes:  make(map[uuid.UUID]*types.Newtype),
		modParams: make(map[uuid.UUID]*types.TParam),
		outer:     make(map[uuid.UUID]*types.TParam),
		implicit:  make(map[uuid.UUID]*types.TParam),
	}
}

// AddTySyn makes a checked synonym visible to subsequent checking.
func (c *Checker) AddTySyn(s *types.TySyn) { c.syns[s.Name.Unique] = s }

// AddPropSyn makes a checked constraint synonym visible.
func (c *Checker) AddPropSyn(s *types.PropSyn) { c.propSyns[s.Name.Unique] = s }

// AddNewtype makes a checked newtype visible.
func (c *Checker) AddNewtype(n *types.Newtype) { c.newtypes[n.Name.Unique] = n }

// AddModParam declares a module/functor parameter type.
func (c *Checker) AddModParam(name ast.Name, k types.Kind) *types.TParam {
	p := types.NewTParam(name.Ident, k, types.ModParam)
	c.modParams[name.Unique] = p
	return p
}

// AddOuterParam makes an already elaborated parameter from a finished
// enclosing scope visible by its surface name.
func (c *Checker) AddOuterParam(name ast.Name, p *types.TParam) {
	c.outer[name.Unique] = p
}

// ImplicitParams returns the existential parameters introduced so far, so
// the host can fold them into the enclosing schema.
func (c *Checker) ImplicitParams() []*types.TParam {
	out := make([]*types.TParam, 0, len(c.implicit))
	for _, p := range c.implicit {
		out = append(out, p)
	}
	return out
}

// scopeEntry pairs a parameter with the binder it came from, so the
// defaulting warning can point at the right source range.
type scopeEntry struct {
	def   ast.TParamDef
	param *types.TParam
}

type paramScope struct {
	flavor types.ParamFlavor
	order  []scopeEntry
	byName map[string]*types.TParam
}

// WithScopedParams opens a scope of type parameters, runs action inside
// it, and returns the elaborated parameters in declaration order.
//
// Kind resolution is a three-phase protocol. Phase one allocates one
// parameter per distinct name, with a single-assignment kind slot left
// unset when the binder carries no annotation, so the action can
// reference a parameter before its kind is known. Phase two runs the
// action, which fixes slots on their first kind-determining use. Phase
// three, after the action returns, defaults every still-unset slot to the
// numeric kind with a warning. Duplicate-name errors are recorded before
// the action runs and defaulting warnings after, each in parameter-list
// order.
func (c *Checker) WithScopedParams(allowWildcards bool, flavor types.ParamFlavor, params []ast.TParamDef, action func()) []*types.TParam {
	sc := &paramScope{flavor: flavor, byName: make(map[string]*types.TParam)}
	for _, p := range params {
		if _, dup := sc.byName[p.Name.Ident]; dup {
			c.diags.Error(diag.RepeatedParam, c.rangeOr(p.Range), []string{p.Name.Ident},
				"repeated type parameter %q", p.Name.Ident)
			continue
		}
		var tp *types.TParam
		if p.Kind != nil {
			tp = types.NewTParam(p.Name.Ident, kindOfAnnot(*p.Kind), flavor)
		} else {
			tp = types.NewUnresolvedTParam(p.Name.Ident, flavor)
		}
		sc.byName[p.Name.Ident] = tp
		sc.order = append(sc.order, scopeEntry{def: p, param: tp})
	}

	c.scopes = append(c.scopes, sc)
	c.wild = append(c.wild, allowWildcards)
	action()
	c.wild = c.wild[:len(c.wild)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]

	out := make([]*types.TParam, 0, len(sc.order))
	for _, entry := range sc.order {
		if !entry.param.KindKnown() {
			entry.param.SetKind(types.KNum)
			c.diags.Warn(diag.DefaultedKind, c.rangeOr(entry.def.Range), []string{entry.param.Name},
				"kind of type parameter %q defaulted to %s", entry.param.Name, types.KNum)
		}
		out = append(out, entry.param)
	}
	return out
}

func kindOfAnnot(k ast.KindAnnot) types.Kind {
	if k == ast.KindType {
		return types.KType
	}
	return types.KNum
}

// lookupLocal finds a parameter of a still-open scope, innermost first.
func (c *Checker) lookupLocal(ident string) (*types.TParam, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if p, ok := c.scopes[i].byName[ident]; ok {
			return p, true
		}
	}
	return nil, false
}

func (c *Checker) wildcardsAllowed() bool {
	if len(c.wild) == 0 {
		return false
	}
	return c.wild[len(c.wild)-1]
}

// curFlavor is the flavor of the innermost open scope; fresh placeholder
// variables inherit it.
func (c *Checker) curFlavor() types.ParamFlavor {
	if len(c.scopes) == 0 {
		return types.SchemaParam
	}
	return c.scopes[len(c.scopes)-1].flavor
}

// freshType builds a fresh placeholder type variable of the given kind,
// used for wildcards and for error recovery by substitution.
func (c *Checker) freshType(hint string, k types.Kind) types.Type {
	return types.TVar{Param: types.NewTParam(hint, k, c.curFlavor())}
}

func (c *Checker) pushRange(r ast.Range) bool {
	if r.IsZero() {
		return false
	}
	c.ranges = append(c.ranges, r)
	return true
}

func (c *Checker) popRange() {
	c.ranges = c.ranges[:len(c.ranges)-1]
}

// curRange is the innermost enclosing source range, for diagnostics.
func (c *Checker) curRange() ast.Range {
	if len(c.ranges) == 0 {
		return ast.Range{}
	}
	return c.ranges[len(c.ranges)-1]
}

func (c *Checker) rangeOr(r ast.Range) ast.Range {
	if r.IsZero() {
		return c.curRange()
	}
	return r
}

// addGoal records a proposition for the solver call that closes the
// current scope.
func (c *Checker) addGoals(gs []types.Goal) {
	c.goals = append(c.goals, gs...)
}

// takeGoals removes and returns every pending goal.
func (c *Checker) takeGoals() []types.Goal {
	gs := c.goals
	c.goals = nil
	return gs
}

// Goals exposes pending goals without consuming them.
func (c *Checker) Goals() []types.Goal { return c.goals }
