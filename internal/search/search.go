// Package search implements the Busy-Beaver-style sweep described in spec
// §4.H, grounded on the reference castor/seeker/beaver drivers: for each
// class size it walks the canonical arity-1 program stream and records the
// largest scanned input on which some program proves non-zero.
package search

import (
	"log"
	"math/big"

	"github.com/dekarrin/primrec/internal/interp"
	"github.com/dekarrin/primrec/internal/lang"
	"github.com/dekarrin/primrec/internal/shapes"
)

// Options bounds one sweep.
type Options struct {
	// ScanRange is the exclusive upper bound on the scanned input k, 0..R-1.
	ScanRange int

	// StepBudget is the interpreter step budget for every program/input
	// pair; reaching it marks that pair as overflowed.
	StepBudget int
}

// Result is the outcome for one class size.
type Result struct {
	Size     int
	Best     int
	Winners  []*lang.Term
	Overflow []*lang.Term
}

// Run sweeps every program of the given size (spec §4.H). An ArityMismatch
// or other runtime error from a single program is logged and the program is
// skipped; it never aborts the sweep, mirroring the reference drivers'
// per-program try/except.
func Run(size int, opts Options) Result {
	result := Result{Size: size, Best: -1}

	for _, program := range shapes.Main(1, size) {
		best, overflowed := scanOne(program, opts)
		if overflowed {
			result.Overflow = append(result.Overflow, program)
			continue
		}
		if best < 0 {
			continue
		}
		switch {
		case best > result.Best:
			result.Best = best
			result.Winners = []*lang.Term{program}
		case best == result.Best:
			result.Winners = append(result.Winners, program)
		}
	}

	return result
}

// scanOne runs program on inputs 0..ScanRange-1 in order, stopping at the
// first non-zero result. It returns the winning k (or -1 if none was found)
// and whether the scan hit an overflow before a winner was found.
func scanOne(program *lang.Term, opts Options) (best int, overflow bool) {
	best = -1
	for k := 0; k < opts.ScanRange; k++ {
		result, err := run(program, k, opts.StepBudget)
		if err != nil {
			log.Printf("search: skipping program %s: %v", lang.Print(program), err)
			return -1, false
		}
		if result.Overflow {
			overflow = true
			break
		}
		if result.Nonzero {
			best = k
			break
		}
	}
	return best, overflow
}

func run(program *lang.Term, k, budget int) (interp.Result, error) {
	inputs := []*big.Int{big.NewInt(int64(k))}
	return interp.Run(program, inputs, interp.Options{Budget: budget, Binary: true})
}
