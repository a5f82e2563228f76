package bijection

import (
	"math/big"

	"github.com/dekarrin/primrec/internal/lang"
	"github.com/dekarrin/primrec/internal/pairing"
)

var big3 = big.NewInt(3)

// Hash is the exact inverse of Create: it recovers the (arity, index) pair
// that Create would need to reproduce t (spec §4.F). Hash never fails on a
// well-formed *lang.Term, since every Term the lang package can construct
// already satisfies the arity invariants Create relies on.
func Hash(t *lang.Term) (arity int, index *big.Int) {
	switch t.Tag() {
	case lang.Z:
		return 0, big.NewInt(0)
	case lang.I:
		return 1, big.NewInt(0)
	case lang.S:
		return 1, big.NewInt(1)

	case lang.LeftTag:
		childArity, f := Hash(t.Children()[0])
		idx := new(big.Int).Mul(f, big4)
		idx.Add(idx, big1)
		return childArity + 1, idx

	case lang.RightTag:
		childArity, f := Hash(t.Children()[0])
		idx := new(big.Int).Mul(f, big4)
		return childArity + 1, idx

	case lang.RecTag:
		baseArity, baseIdx := Hash(t.Children()[0])
		_, stepIdx := Hash(t.Children()[1])
		f := pairing.Pair(baseIdx, stepIdx)
		idx := new(big.Int).Mul(f, big4)
		idx.Add(idx, big.NewInt(2))
		return baseArity + 1, idx

	case lang.CompTag:
		return hashComp(t)

	default:
		// unreachable: lang.Tag only ever takes the above six values.
		return 0, big.NewInt(0)
	}
}

func hashComp(t *lang.Term) (arity int, index *big.Int) {
	children := t.Children()
	g, peers := children[0], children[1:]

	gArity, gIdx := Hash(g)

	indices := make([]*big.Int, 0, len(peers)+1)
	indices = append(indices, gIdx)

	var peerArity int
	for _, p := range peers {
		pa, pidx := Hash(p)
		peerArity = pa
		indices = append(indices, pidx)
	}

	x := pairing.PairN(indices)
	f := pairing.TwoPower(big.NewInt(int64(gArity-1)), x)

	if peerArity == 0 {
		idx := new(big.Int).Add(f, big1)
		return 0, idx
	}

	idx := new(big.Int).Mul(f, big4)
	idx.Add(idx, big3)
	return peerArity, idx
}
