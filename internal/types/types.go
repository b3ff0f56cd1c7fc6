package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/silica-lang/silica/internal/ast"
)

// Type is the interface for elaborated types. Every constructed Type is
// kind-consistent with how it was built: the kind checker verifies arity
// and argument kinds before a node is returned, so Kind never fails.
type Type interface {
	Kind() Kind
	String() string
	Equal(Type) bool
}

// TCon is a built-in constant, type function or proposition application.
type TCon struct {
	TC   TypeConst
	Args []Type
}

func (t TCon) Kind() Kind {
	_, res := t.TC.Signature()
	return res
}

func (t TCon) String() string {
	switch t.TC {
	case TCSeq:
		if len(t.Args) == 2 {
			return fmt.Sprintf("[%s]%s", t.Args[0], t.Args[1])
		}
	case TCFun:
		if len(t.Args) == 2 {
			return fmt.Sprintf("(%s -> %s)", t.Args[0], t.Args[1])
		}
	case TFAdd, TFSub, TFMul, TFDiv, TFMod, TFExp, PCEqual, PCGeq:
		if len(t.Args) == 2 {
			return fmt.Sprintf("(%s %s %s)", t.Args[0], t.TC, t.Args[1])
		}
	}
	if len(t.Args) == 0 {
		return t.TC.String()
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s %s)", t.TC, strings.Join(parts, " "))
}

func (t TCon) Equal(other Type) bool {
	o, ok := unwrap(other).(TCon)
	if !ok || o.TC != t.TC || len(o.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// TVar is a reference to a bound type parameter. The parameter is shared,
// never owned: identity is the parameter's unique id.
type TVar struct {
	Param *TParam
}

func (t TVar) Kind() Kind     { return t.Param.Kind() }
func (t TVar) String() string { return t.Param.Name }

func (t TVar) Equal(other Type) bool {
	o, ok := unwrap(other).(TVar)
	return ok && o.Param.Unique == t.Param.Unique
}

// TUser is a use of a named definition. For a type synonym Expanded caches
// the substituted body: it is kept for display but the synonym wrapper is
// transparent to equality. For a newtype Expanded is nil and the type is
// nominal, compared by name and arguments.
type TUser struct {
	Name     ast.Name
	Args     []Type
	Expanded Type
}

func (t TUser) Kind() Kind {
	if t.Expanded != nil {
		return t.Expanded.Kind()
	}
	return KType
}

func (t TUser) String() string {
	if len(t.Args) == 0 {
		return t.Name.Ident
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s %s)", t.Name.Ident, strings.Join(parts, " "))
}

func (t TUser) Equal(other Type) bool {
	if t.Expanded != nil {
		return t.Expanded.Equal(other)
	}
	o, ok := unwrap(other).(TUser)
	if !ok || o.Expanded != nil || o.Name.Unique != t.Name.Unique || len(o.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// unwrap strips transparent synonym applications so the other Equal
// methods can compare representations directly.
func unwrap(t Type) Type {
	for {
		u, ok := t.(TUser)
		if !ok || u.Expanded == nil {
			return t
		}
		t = u.Expanded
	}
}

// Field is a named record component.
type Field struct {
	Name string
	Type Type
}

// TRec is a record type. Field order is irrelevant to equality and field
// names are unique; the checker reports duplicates before building one.
type TRec struct {
	Fields []Field
}

func (t TRec) Kind() Kind { return KType }

func (t TRec) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("%s : %s", f.Name, f.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t TRec) Equal(other Type) bool {
	o, ok := unwrap(other).(TRec)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	a := sortedFields(t.Fields)
	b := sortedFields(o.Fields)
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Type.Equal(b[i].Type) {
			return false
		}
	}
	return true
}

func sortedFields(fs []Field) []Field {
	out := make([]Field, len(fs))
	copy(out, fs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TTuple is a tuple type.
type TTuple struct {
	Elems []Type
}

func (t TTuple) Kind() Kind { return KType }

func (t TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TTuple) Equal(other Type) bool {
	o, ok := unwrap(other).(TTuple)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// TNum is a type-level numeric literal.
type TNum struct {
	Value int64
}

func (t TNum) Kind() Kind     { return KNum }
func (t TNum) String() string { return fmt.Sprintf("%d", t.Value) }

func (t TNum) Equal(other Type) bool {
	o, ok := unwrap(other).(TNum)
	return ok && o.Value == t.Value
}

// TInf is the infinite size literal.
type TInf struct{}

func (t TInf) Kind() Kind     { return KNum }
func (t TInf) String() string { return "inf" }

func (t TInf) Equal(other Type) bool {
	_, ok := unwrap(other).(TInf)
	return ok
}
