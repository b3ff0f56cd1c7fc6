package types

import (
	"fmt"
	"strings"

	"github.com/silica-lang/silica/internal/ast"
)

// GoalSource records which construct generated a goal, for diagnostics.
type GoalSource int

const (
	GSSchema GoalSource = iota
	GSTySyn
	GSNewtype
	GSModParam
	GSTypeFun
)

func (s GoalSource) String() string {
	switch s {
	case GSSchema:
		return "schema constraint"
	case GSTySyn:
		return "type synonym constraint"
	case GSNewtype:
		return "newtype constraint"
	case GSModParam:
		return "module parameter constraint"
	case GSTypeFun:
		return "type function well-formedness"
	}
	return "constraint"
}

// Goal is a proposition that the constraint solver must validate or
// simplify. It is produced during kind checking and consumed exactly once
// by the solver call that closes the enclosing scope.
type Goal struct {
	Prop   Type
	Source GoalSource
	Range  ast.Range
}

func (g Goal) String() string {
	return fmt.Sprintf("%s (from %s at %s)", g.Prop, g.Source, g.Range)
}

// Schema is a universally quantified type. Binding order of Params is
// significant and visible to callers. Every parameter free in Props or
// Body is either in Params or bound by an enclosing scope.
type Schema struct {
	Params []*TParam
	Props  []Type
	Body   Type
}

func (s Schema) String() string {
	var b strings.Builder
	if len(s.Params) > 0 {
		parts := make([]string, len(s.Params))
		for i, p := range s.Params {
			parts[i] = fmt.Sprintf("%s : %s", p.Name, p.Kind())
		}
		fmt.Fprintf(&b, "{%s} ", strings.Join(parts, ", "))
	}
	if len(s.Props) > 0 {
		parts := make([]string, len(s.Props))
		for i, p := range s.Props {
			parts[i] = propString(p)
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(parts, ", "))
	}
	b.WriteString(s.Body.String())
	return b.String()
}

// propString drops the parens String adds around an application; the
// constraint list supplies its own grouping.
func propString(p Type) string {
	s := p.String()
	if c, ok := p.(TCon); ok && len(c.Args) > 0 &&
		strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return s
}

// MonoSchema wraps a type with no binders or constraints.
func MonoSchema(t Type) Schema { return Schema{Body: t} }

// TySyn is a named, parameterized type synonym. The parameter list arity
// is exactly the arity expected at every use site.
type TySyn struct {
	Name   ast.Name
	Params []*TParam
	Props  []Type
	Body   Type
}

// PropSyn is a named, parameterized constraint synonym; its body is the
// conjunction of Props.
type PropSyn struct {
	Name   ast.Name
	Params []*TParam
	Props  []Type
}

// Newtype is a named record constructor with a distinct type identity but
// no distinct runtime representation. Field order is preserved.
type Newtype struct {
	Name   ast.Name
	Params []*TParam
	Fields []Field
}
