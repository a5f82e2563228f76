// Package interp evaluates program trees built by internal/lang on tuples of
// natural-number inputs. It is a trampoline over an explicit stack of thunks
// (spec §4.C): the evaluator never recurses on the host call stack for Term
// structure, so arbitrarily deep programs run in bounded Go-stack space. Deep
// recursion instead grows the explicit stack, which the caller bounds with a
// step budget.
package interp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dekarrin/primrec/internal/lang"
)

// thunk is an interpreter-internal evaluation cell. It is either closed
// (holds a natural number in value) or open (holds a term and the argument
// thunks it is applied to). An open thunk becomes closed at most once, by
// in-place update of this same struct, never by replacing the pointer other
// code may be holding to it.
type thunk struct {
	closed bool
	value  *big.Int
	term   *lang.Term
	args   []*thunk
}

// Result is the outcome of one Run. Exactly one of Overflow or the
// (Value, Nonzero) pair is meaningful: Overflow means the step budget was
// exhausted before the root thunk closed; otherwise Nonzero always reflects
// whether the final (or, in binary mode, the provably-final) result is
// nonzero, and Value holds the full computed natural number when it was
// actually reduced to a literal (binary mode may leave it nil if Run returned
// via the S shortcut without fully forcing the value).
type Result struct {
	Steps    int
	Value    *big.Int
	Nonzero  bool
	Overflow bool
}

// Options configures a single Run.
type Options struct {
	// Budget caps the number of trampoline steps taken before Run reports
	// overflow. Budget <= 0 means unlimited.
	Budget int

	// Binary enables the shortcut described in spec §4.C: Run returns the
	// instant the root thunk's outer term becomes S, without forcing its
	// argument, since the final value is then provably >= 1.
	Binary bool

	// Trace, if set, receives one line per trampoline step describing the
	// thunk currently at the top of the stack. Purely a debugging aid; it
	// changes no evaluation semantics, just like the archived call-stack
	// interpreter's display parameter it is modeled on.
	Trace io.Writer
}

// Run evaluates root applied to inputs, returning the number of trampoline
// steps taken and the outcome. Run is deterministic: the same (root, inputs,
// opts) always produces the same Result.
func Run(root *lang.Term, inputs []*big.Int, opts Options) (Result, error) {
	if len(inputs) != root.Arity() {
		return Result{}, &ArityMismatchError{Expected: root.Arity(), Got: len(inputs)}
	}

	ar := newArena()
	rootThunk := ar.alloc()
	*rootThunk = thunk{term: root, args: closeInputs(ar, inputs)}

	stack := make([]*thunk, 0, root.Depth()+len(inputs)+4)
	stack = append(stack, rootThunk)

	steps := 0
	for len(stack) > 0 {
		if opts.Budget > 0 && steps >= opts.Budget {
			return Result{Steps: steps, Overflow: true}, nil
		}
		steps++

		top := stack[len(stack)-1]

		if top.closed {
			stack = stack[:len(stack)-1]
			continue
		}

		if opts.Trace != nil {
			fmt.Fprintf(opts.Trace, "%d: %s\n", steps, describeThunk(top))
		}

		if pushed := stepThunk(ar, top); pushed != nil {
			stack = append(stack, pushed)
		}

		if opts.Binary && top == rootThunk {
			if rootThunk.closed {
				return Result{Steps: steps, Value: rootThunk.value, Nonzero: rootThunk.value.Sign() != 0}, nil
			}
			if rootThunk.term.Tag() == lang.S {
				return Result{Steps: steps, Nonzero: true}, nil
			}
		}
	}

	return Result{Steps: steps, Value: rootThunk.value, Nonzero: rootThunk.value.Sign() != 0}, nil
}

// stepThunk applies the rule for t's tag, mutating t in place per spec §4.C's
// table. It returns a thunk that must be pushed above t (forced before t is
// revisited), or nil if t was rewritten and no forcing is needed first.
func stepThunk(ar *arena, t *thunk) *thunk {
	term := t.term
	a := t.args

	switch term.Tag() {
	case lang.Z:
		closeThunk(t, big.NewInt(0))
		return nil

	case lang.I:
		if !a[0].closed {
			return a[0]
		}
		closeThunk(t, new(big.Int).Set(a[0].value))
		return nil

	case lang.S:
		if !a[0].closed {
			return a[0]
		}
		closeThunk(t, new(big.Int).Add(a[0].value, big.NewInt(1)))
		return nil

	case lang.LeftTag:
		g := term.Children()[0]
		t.term = g
		t.args = a[1:]
		return nil

	case lang.RightTag:
		g := term.Children()[0]
		t.term = g
		t.args = a[:len(a)-1]
		return nil

	case lang.CompTag:
		children := term.Children()
		g, peers := children[0], children[1:]

		newArgs := make([]*thunk, len(peers))
		for i, h := range peers {
			ht := ar.alloc()
			*ht = thunk{term: h, args: a}
			newArgs[i] = ht
		}
		t.term = g
		t.args = newArgs
		return nil

	case lang.RecTag:
		if !a[0].closed {
			return a[0]
		}

		base, step := term.Children()[0], term.Children()[1]

		if a[0].value.Sign() == 0 {
			t.term = base
			t.args = a[1:]
			return nil
		}

		mThunk := ar.alloc()
		*mThunk = thunk{closed: true, value: new(big.Int).Sub(a[0].value, big.NewInt(1))}

		selfArgs := make([]*thunk, 0, len(a))
		selfArgs = append(selfArgs, mThunk)
		selfArgs = append(selfArgs, a[1:]...)

		selfThunk := ar.alloc()
		*selfThunk = thunk{term: term, args: selfArgs}

		stepArgs := make([]*thunk, 0, len(a)+1)
		stepArgs = append(stepArgs, mThunk, selfThunk)
		stepArgs = append(stepArgs, a[1:]...)

		t.term = step
		t.args = stepArgs
		return nil

	default:
		return nil
	}
}

func closeThunk(t *thunk, value *big.Int) {
	t.closed = true
	t.value = value
	t.term = nil
	t.args = nil
}

func closeInputs(ar *arena, inputs []*big.Int) []*thunk {
	args := make([]*thunk, len(inputs))
	for i, v := range inputs {
		th := ar.alloc()
		*th = thunk{closed: true, value: new(big.Int).Set(v)}
		args[i] = th
	}
	return args
}

func describeThunk(t *thunk) string {
	if t.closed {
		return fmt.Sprintf("closed(%s)", t.value.String())
	}
	return fmt.Sprintf("open(%s, %d arg(s))", t.term.Tag(), len(t.args))
}
