package ast

import (
	"fmt"

	"github.com/google/uuid"
)

// Name is an identifier that has already been resolved by the renamer.
// Two names refer to the same thing exactly when their Unique ids match;
// Ident is kept only for display.
type Name struct {
	Ident  string
	Unique uuid.UUID
}

func NewName(ident string) Name {
	return Name{Ident: ident, Unique: uuid.New()}
}

func (n Name) String() string { return n.Ident }

// Range is a source location span attached to surface syntax for diagnostics.
// The zero Range means "no position information".
type Range struct {
	File    string `yaml:"file,omitempty"`
	Line    int    `yaml:"line"`
	Col     int    `yaml:"col"`
	EndLine int    `yaml:"endLine,omitempty"`
	EndCol  int    `yaml:"endCol,omitempty"`
}

func (r Range) IsZero() bool { return r == Range{} }

func (r Range) String() string {
	if r.IsZero() {
		return "<no position>"
	}
	if r.File == "" {
		return fmt.Sprintf("%d:%d", r.Line, r.Col)
	}
	return fmt.Sprintf("%s:%d:%d", r.File, r.Line, r.Col)
}

// KindAnnot is a surface kind annotation on a type parameter.
// Propositions are not a declarable parameter kind, so they do not appear here.
type KindAnnot int

const (
	KindNum KindAnnot = iota
	KindType
)

func (k KindAnnot) String() string {
	if k == KindNum {
		return "#"
	}
	return "*"
}
