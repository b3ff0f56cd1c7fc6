package eval

import (
	"strings"

	"github.com/silica-lang/silica/internal/types"
)

type ValueType string

const (
	BIT_VALUE    ValueType = "BIT"
	SEQ_VALUE    ValueType = "SEQ"
	STREAM_VALUE ValueType = "STREAM"
	TUPLE_VALUE  ValueType = "TUPLE"
	RECORD_VALUE ValueType = "RECORD"
	FUNC_VALUE   ValueType = "FUNC"
	POLY_VALUE   ValueType = "POLY"
)

// Value is a runtime value. Constructing a value with sub-components
// never forces those sub-components; Inspect is the one debugging entry
// point that demands elements.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Bit is a single bit.
type Bit struct {
	Value bool
}

func (b Bit) Type() ValueType { return BIT_VALUE }

func (b Bit) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// SeqMap is random access into the elements of a sequence.
type SeqMap interface {
	At(i int) (Value, error)
}

// memoMap memoizes an index function: element i is computed at most once
// and re-observing it returns the identical result.
type memoMap struct {
	at   func(i int) (Value, error)
	vals map[int]Value
	errs map[int]error
}

// MemoMap wraps an index function with a memo table.
func MemoMap(at func(i int) (Value, error)) SeqMap {
	return &memoMap{at: at, vals: make(map[int]Value), errs: make(map[int]error)}
}

func (m *memoMap) At(i int) (Value, error) {
	if v, ok := m.vals[i]; ok {
		return v, m.errs[i]
	}
	if err, ok := m.errs[i]; ok {
		return nil, err
	}
	v, err := m.at(i)
	m.vals[i] = v
	m.errs[i] = err
	return v, err
}

// thunkMap backs a finite sequence with one thunk per element.
type thunkMap []*Thunk

// ThunkMap builds a SeqMap over individually deferred elements.
func ThunkMap(elems []*Thunk) SeqMap { return thunkMap(elems) }

func (m thunkMap) At(i int) (Value, error) {
	if i < 0 || i >= len(m) {
		return nil, panicf("sequence index %d out of bounds (length %d)", i, len(m))
	}
	return m[i].Force()
}

// Seq is a finite sequence with an explicit element count. Bits marks the
// all-elements-are-bits fast path; Elem, when known, is the evaluated
// element type the flag was derived from, so selection can keep the flag
// accurate while distributing over the sequence.
type Seq struct {
	Len   int
	Bits  bool
	Elem  types.Type
	Elems SeqMap
}

func (s Seq) Type() ValueType { return SEQ_VALUE }

func (s Seq) Inspect() string {
	parts := make([]string, s.Len)
	for i := 0; i < s.Len; i++ {
		v, err := s.Elems.At(i)
		if err != nil {
			parts[i] = "<error>"
			continue
		}
		parts[i] = v.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Stream is an infinite sequence.
type Stream struct {
	Elems SeqMap
}

func (s Stream) Type() ValueType { return STREAM_VALUE }

func (s Stream) Inspect() string {
	parts := make([]string, 0, 4)
	for i := 0; i < 3; i++ {
		v, err := s.Elems.At(i)
		if err != nil {
			parts = append(parts, "<error>")
			continue
		}
		parts = append(parts, v.Inspect())
	}
	return "[" + strings.Join(parts, ", ") + ", ...]"
}

// Tuple holds its components lazily.
type Tuple struct {
	Elems []*Thunk
}

func (t Tuple) Type() ValueType { return TUPLE_VALUE }

func (t Tuple) Inspect() string {
	parts := make([]string, len(t.Elems))
	for i, th := range t.Elems {
		v, err := th.Force()
		if err != nil {
			parts[i] = "<error>"
			continue
		}
		parts[i] = v.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordField is a named, lazily-held record component.
type RecordField struct {
	Name  string
	Value *Thunk
}

// Record holds its components lazily, by field name.
type Record struct {
	Fields []RecordField
}

func (r Record) Type() ValueType { return RECORD_VALUE }

func (r Record) Lookup(name string) (*Thunk, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Inspect() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		v, err := f.Value.Force()
		if err != nil {
			parts[i] = f.Name + " = <error>"
			continue
		}
		parts[i] = f.Name + " = " + v.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Func is an opaque host closure from a deferred argument to a value.
type Func struct {
	Fn func(*Thunk) (Value, error)
}

func (f Func) Type() ValueType { return FUNC_VALUE }
func (f Func) Inspect() string { return "<function>" }

// Poly is an opaque host closure from an evaluated type to a value.
type Poly struct {
	Fn func(TValue) (Value, error)
}

func (p Poly) Type() ValueType { return POLY_VALUE }
func (p Poly) Inspect() string { return "<polymorphic value>" }

// Word builds the finite bit-sequence representation of value at the
// given width, most significant bit first.
func Word(width int, value int64) Value {
	elems := make([]*Thunk, width)
	for i := 0; i < width; i++ {
		bit := value>>(uint(width-1-i))&1 == 1
		elems[i] = Ready(Bit{Value: bit})
	}
	return Seq{Len: width, Bits: true, Elem: types.TCon{TC: types.TCBit}, Elems: ThunkMap(elems)}
}

// WordValue forces every element of a finite bit sequence into an
// integer, most significant bit first.
func WordValue(v Value) (int64, error) {
	s, ok := v.(Seq)
	if !ok {
		return 0, panicf("expected a finite bit sequence, got %s", v.Type())
	}
	var out int64
	for i := 0; i < s.Len; i++ {
		el, err := s.Elems.At(i)
		if err != nil {
			return 0, err
		}
		b, ok := el.(Bit)
		if !ok {
			return 0, panicf("expected a bit, got %s", el.Type())
		}
		out <<= 1
		if b.Value {
			out |= 1
		}
	}
	return out, nil
}

func (s Seq) String() string    { return s.Inspect() }
func (b Bit) String() string    { return b.Inspect() }
func (t Tuple) String() string  { return t.Inspect() }
func (r Record) String() string { return r.Inspect() }
