package eval

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/types"
)

type binding struct {
	name string
	th   *Thunk
}

// Env maps variable names to deferred values and type parameters to
// evaluated type-level values. Environments are layered: extension builds
// a child frame that shadows the outer one, and a frame is never mutated
// after it has been published to evaluation.
type Env struct {
	vars  map[uuid.UUID]binding
	tvals map[uuid.UUID]TValue
	outer *Env
}

func NewEnv() *Env {
	return &Env{
		vars:  make(map[uuid.UUID]binding),
		tvals: make(map[uuid.UUID]TValue),
	}
}

// Enclosed builds a fresh frame shadowing outer.
func Enclosed(outer *Env) *Env {
	env := NewEnv()
	env.outer = outer
	return env
}

// Bind adds a deferred value to the local frame. A later Bind of the same
// name shadows an earlier one.
func (e *Env) Bind(name ast.Name, th *Thunk) {
	e.vars[name.Unique] = binding{name: name.Ident, th: th}
}

// BindType adds an evaluated type-level value to the local frame.
func (e *Env) BindType(p *types.TParam, tv TValue) {
	e.tvals[p.Unique] = tv
}

func (e *Env) Lookup(name ast.Name) (*Thunk, bool) {
	for env := e; env != nil; env = env.outer {
		if b, ok := env.vars[name.Unique]; ok {
			return b.th, true
		}
	}
	return nil, false
}

func (e *Env) LookupType(p *types.TParam) (TValue, bool) {
	for env := e; env != nil; env = env.outer {
		if tv, ok := env.tvals[p.Unique]; ok {
			return tv, true
		}
	}
	return TValue{}, false
}

// Merge flattens e's visible bindings into a single frame layered over
// base, favoring e on collisions.
func (e *Env) Merge(base *Env) *Env {
	out := Enclosed(base)
	var frames []*Env
	for env := e; env != nil; env = env.outer {
		frames = append(frames, env)
	}
	// Outermost frame first so inner frames overwrite on collision.
	for i := len(frames) - 1; i >= 0; i-- {
		for u, b := range frames[i].vars {
			out.vars[u] = b
		}
		for u, tv := range frames[i].tvals {
			out.tvals[u] = tv
		}
	}
	return out
}

// String renders the names visible in the environment, for the
// unresolved-variable internal error.
func (e *Env) String() string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.outer {
		for _, b := range env.vars {
			if !seen[b.name] {
				seen[b.name] = true
				names = append(names, b.name)
			}
		}
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
