// Package bijection implements the exact bijection between ℕ and the
// well-formed program trees of a given arity (spec §4.E/§4.F): Create(a, n)
// materializes the n-th tree of arity a, and Hash(t) recovers (a, n). The two
// are exact inverses on every well-formed tree.
package bijection

import (
	"math/big"

	"github.com/dekarrin/primrec/internal/lang"
	"github.com/dekarrin/primrec/internal/pairing"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big4 = big.NewInt(4)
)

// Create returns the n-th well-formed term of the given arity, per the
// numbering in spec §4.E.
func Create(arity int, n *big.Int) (*lang.Term, error) {
	if arity < 0 || n == nil || n.Sign() < 0 {
		return nil, &lang.InvalidIndexError{Arity: arity, Index: n}
	}

	switch {
	case arity == 0 && n.Sign() == 0:
		return lang.NewZ(), nil
	case arity == 1 && n.Cmp(big0) == 0:
		return lang.NewI(), nil
	case arity == 1 && n.Cmp(big1) == 0:
		return lang.NewS(), nil
	}

	if arity == 0 {
		nPrime := new(big.Int).Sub(n, big1)
		return createComp(0, nPrime)
	}

	q, r := new(big.Int), new(big.Int)
	q.DivMod(n, big4, r)

	switch r.Int64() {
	case 0:
		g, err := Create(arity-1, q)
		if err != nil {
			return nil, err
		}
		return lang.NewRight(g), nil
	case 1:
		g, err := Create(arity-1, q)
		if err != nil {
			return nil, err
		}
		return lang.NewLeft(g), nil
	case 2:
		i, j := pairing.Unpair(q)
		base, err := Create(arity-1, i)
		if err != nil {
			return nil, err
		}
		step, err := Create(arity+1, j)
		if err != nil {
			return nil, err
		}
		return lang.NewRec(base, step)
	default: // 3
		return createComp(arity, q)
	}
}

// createComp decodes the Comp encoding described in spec §4.E: m splits into
// a peer count b and a combined sub-index x, which in turn splits n-ary into
// the head's index and each peer's index.
func createComp(arity int, m *big.Int) (*lang.Term, error) {
	bMinus1, x := pairing.TwoPowerInverse(m)
	b := int(bMinus1.Int64()) + 1

	parts := pairing.UnpairN(x, b+1)
	headIndex := parts[0]
	peerIndices := parts[1:]

	head, err := Create(b, headIndex)
	if err != nil {
		return nil, err
	}

	peers := make([]*lang.Term, 0, b)
	for _, pi := range peerIndices {
		peer, err := Create(arity, pi)
		if err != nil {
			return nil, err
		}
		peers = append(peers, peer)
	}

	return lang.NewComp(head, peers)
}
