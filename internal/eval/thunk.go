package eval

import "github.com/silica-lang/silica/internal/diag"

type thunkState int

const (
	stUnforced thunkState = iota
	stForcing
	stForced
)

// Thunk is a deferred computation, memoized at most once. Its state moves
// unforced -> forcing -> forced and never back; once forced, the stored
// result never changes and re-observing it runs nothing. Forcing a thunk
// that is already mid-force is the loop-detection failure mode.
type Thunk struct {
	state   thunkState
	name    string
	compute func() (Value, error)
	val     Value
	err     error
}

// NewThunk defers compute under the given binding name. The name only
// appears in loop reports.
func NewThunk(name string, compute func() (Value, error)) *Thunk {
	return &Thunk{name: name, compute: compute}
}

// Ready wraps an already-computed value.
func Ready(v Value) *Thunk {
	return &Thunk{state: stForced, val: v}
}

// Blackhole allocates a placeholder for a recursive binding. Forcing it
// before Fill reports a loop on the named binding.
func Blackhole(name string) *Thunk {
	return &Thunk{name: name}
}

// Fill supplies the real computation of a pre-allocated placeholder.
// Single assignment: a second fill is an internal error.
func (t *Thunk) Fill(compute func() (Value, error)) {
	if t.compute != nil || t.state != stUnforced {
		diag.Panicf("placeholder for %q filled twice", t.name)
	}
	t.compute = compute
}

// Force demands the thunk's value, computing it on first use.
func (t *Thunk) Force() (Value, error) {
	switch t.state {
	case stForced:
		return t.val, t.err
	case stForcing:
		return nil, &LoopError{Name: t.name}
	}
	if t.compute == nil {
		// An unfilled placeholder: the defining computation of a
		// recursive group demanded a member before its fill step.
		return nil, &LoopError{Name: t.name}
	}
	t.state = stForcing
	t.val, t.err = t.compute()
	t.state = stForced
	t.compute = nil
	return t.val, t.err
}
