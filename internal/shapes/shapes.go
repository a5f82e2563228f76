// Package shapes generates every well-formed program tree of a given arity
// and node count (spec §4.G). The four streams below mirror the filter chain
// the reference generator builds by subclassing (ZSoR -> ZISoR -> ZISRoR ->
// ZISRLoR): here each stage is a plain function, and the filter table that
// used to live in mixin overrides is one explicit slice of rules consulted
// whenever a Rec node is built.
package shapes

import (
	"sync"

	"github.com/dekarrin/primrec/internal/lang"
)

// cacheKey identifies one (stream, arity, size) memo slot. The four streams
// overlap heavily in their recursive calls, so memoizing is not an
// optimization nicety here but the difference between tractable and
// exponential.
type cacheKey struct {
	stream string
	arity  int
	size   int
}

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey][]*lang.Term{}
)

func memo(stream string, arity, size int, build func() []*lang.Term) []*lang.Term {
	key := cacheKey{stream, arity, size}

	cacheMu.Lock()
	if hit, ok := cache[key]; ok {
		cacheMu.Unlock()
		return hit
	}
	cacheMu.Unlock()

	result := build()

	cacheMu.Lock()
	cache[key] = result
	cacheMu.Unlock()
	return result
}

// Gen yields every well-formed term of the given arity with exactly size
// nodes (the full "ZISRLoR" stream: atoms, Comp, Left, Right, Rec all
// included).
func Gen(arity, size int) []*lang.Term {
	return memo("full", arity, size, func() []*lang.Term {
		return genFull(arity, size)
	})
}

// Main is the canonical stream the search driver sweeps: Gen with top-level
// projections (Left/Right) excluded, since those would add an argument the
// driver never supplies.
func Main(arity, size int) []*lang.Term {
	return memo("main", arity, size, func() []*lang.Term {
		var out []*lang.Term
		out = append(out, genAtoms(arity, size)...)
		out = append(out, genComp(arity, size)...)
		if arity >= 1 {
			out = append(out, genRec(arity, size)...)
		}
		return out
	})
}

// genNoLeft is the "ZISRoR" stream: everything Gen produces except terms
// whose outermost tag is Left. It is the stream Right draws its child from,
// which structurally enforces the "a Right child must not itself have a Left
// at the outermost position" filter.
func genNoLeft(arity, size int) []*lang.Term {
	return memo("noleft", arity, size, func() []*lang.Term {
		var out []*lang.Term
		out = append(out, genAtoms(arity, size)...)
		out = append(out, genComp(arity, size)...)
		if arity >= 1 {
			out = append(out, genRight(arity, size)...)
			out = append(out, genRec(arity, size)...)
		}
		return out
	})
}

// genHeadCandidates is the "ZSoR" stream: the source of Comp heads. It
// excludes Identity as well as both projections, which is the "head of a
// Comp must not be I nor a Projection" filter from spec §4.G.
func genHeadCandidates(arity, size int) []*lang.Term {
	return memo("head", arity, size, func() []*lang.Term {
		if size == 1 {
			if arity == 0 {
				return []*lang.Term{lang.NewZ()}
			}
			if arity == 1 {
				return []*lang.Term{lang.NewS()}
			}
			return nil
		}
		var out []*lang.Term
		out = append(out, genComp(arity, size)...)
		if arity >= 1 {
			out = append(out, genRec(arity, size)...)
		}
		return out
	})
}

func genFull(arity, size int) []*lang.Term {
	var out []*lang.Term
	out = append(out, genAtoms(arity, size)...)
	out = append(out, genComp(arity, size)...)
	if arity >= 1 {
		out = append(out, genLeft(arity, size)...)
		out = append(out, genRight(arity, size)...)
		out = append(out, genRec(arity, size)...)
	}
	return out
}

func genAtoms(arity, size int) []*lang.Term {
	if size != 1 {
		return nil
	}
	switch arity {
	case 0:
		return []*lang.Term{lang.NewZ()}
	case 1:
		return []*lang.Term{lang.NewI(), lang.NewS()}
	default:
		return nil
	}
}

func genLeft(arity, size int) []*lang.Term {
	if arity < 1 || size < 2 {
		return nil
	}
	var out []*lang.Term
	for _, g := range Gen(arity-1, size-1) {
		out = append(out, lang.NewLeft(g))
	}
	return out
}

func genRight(arity, size int) []*lang.Term {
	if arity < 1 || size < 2 {
		return nil
	}
	var out []*lang.Term
	for _, g := range genNoLeft(arity-1, size-1) {
		out = append(out, lang.NewRight(g))
	}
	return out
}

// genComp builds every Comp node of the requested arity and size: a head of
// some smaller arity b and size k (drawn from genHeadCandidates), paired with
// an ordered b-tuple of peers of the Comp's own arity whose sizes sum to
// size-1-k.
func genComp(arity, size int) []*lang.Term {
	var out []*lang.Term
	for headSize := 1; headSize <= size-2; headSize++ {
		peersSize := size - 1 - headSize
		for headArity := 1; headArity <= headSize; headArity++ {
			heads := genHeadCandidates(headArity, headSize)
			if len(heads) == 0 {
				continue
			}
			for _, parts := range compositions(peersSize, headArity) {
				choices := make([][]*lang.Term, headArity)
				ok := true
				for i, p := range parts {
					choices[i] = Gen(arity, p)
					if len(choices[i]) == 0 {
						ok = false
						break
					}
				}
				if !ok {
					continue
				}
				for _, head := range heads {
					for _, peers := range cartesian(choices) {
						t, err := lang.NewComp(head, peers)
						if err == nil {
							out = append(out, t)
						}
					}
				}
			}
		}
	}
	return out
}

// genRec builds every Rec node of the requested arity and size, dropping any
// (base, step) pair matched by recSuppressionTable.
func genRec(arity, size int) []*lang.Term {
	if arity < 1 {
		return nil
	}
	var out []*lang.Term
	for k := 1; k <= size-2; k++ {
		bases := Gen(arity-1, k)
		steps := Gen(arity+1, size-1-k)
		for _, base := range bases {
			for _, step := range steps {
				if suppressRec(base, step) {
					continue
				}
				t, err := lang.NewRec(base, step)
				if err == nil {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

// compositions enumerates every ordered tuple of `parts` positive integers
// summing to total.
func compositions(total, parts int) [][]int {
	if parts <= 0 {
		return nil
	}
	if parts == 1 {
		if total < 1 {
			return nil
		}
		return [][]int{{total}}
	}
	var out [][]int
	for first := 1; first <= total-(parts-1); first++ {
		for _, rest := range compositions(total-first, parts-1) {
			out = append(out, append([]int{first}, rest...))
		}
	}
	return out
}

// cartesian returns every combination obtained by picking one element from
// each slice in choices, in order.
func cartesian(choices [][]*lang.Term) [][]*lang.Term {
	if len(choices) == 0 {
		return [][]*lang.Term{{}}
	}
	rest := cartesian(choices[1:])
	out := make([][]*lang.Term, 0, len(choices[0])*len(rest))
	for _, c := range choices[0] {
		for _, r := range rest {
			combo := make([]*lang.Term, 0, len(r)+1)
			combo = append(combo, c)
			combo = append(combo, r...)
			out = append(out, combo)
		}
	}
	return out
}
