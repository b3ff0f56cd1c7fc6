package eval

import "fmt"

// LoopError reports that forcing a deferred computation re-entered
// itself: the named binding's value depends on itself strictly. It is an
// expected condition in buggy user programs, distinct from internal
// errors, but it still aborts the current evaluation.
type LoopError struct {
	Name string
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("<<loop>> value of %q depends on itself", e.Name)
}

// PanicError marks an evaluator internal-consistency failure: an earlier
// pass failed to guarantee an invariant the evaluator relies on. It must
// propagate to the host, never be caught and retried.
type PanicError struct {
	Message string
}

func (e *PanicError) Error() string {
	return "evaluator internal error: " + e.Message
}

func panicf(format string, args ...interface{}) error {
	return &PanicError{Message: fmt.Sprintf(format, args...)}
}
