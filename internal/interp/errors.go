package interp

import (
	"errors"
	"fmt"
)

// ArityMismatchError is returned by Run when the number of supplied inputs
// does not match the root term's arity. Per spec §4.C/§7, deeper arity
// failures cannot occur: every sub-application the trampoline builds is
// derived from a well-formed Term, whose constructors already enforce the
// invariants in spec §3.
type ArityMismatchError struct {
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch: program expects %d input(s), got %d", e.Expected, e.Got)
}

// ErrStepBudgetExceeded is not itself returned as a Go error by Run: budget
// exhaustion is a normal, non-fatal outcome surfaced through Result.Overflow,
// per spec §5/§7. It is exported as a sentinel purely so calling code (e.g.
// the search driver) can log or compare against a single well-known value
// when it chooses to treat overflow as an error in its own error-handling
// path.
var ErrStepBudgetExceeded = errors.New("interpreter: step budget exceeded")
