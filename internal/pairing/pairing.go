// Package pairing implements the two total bijections ℕ²↔ℕ that back the
// enumerator and hasher (spec §4.D): the Cantor pairing function and the
// 2^u(2v-1) "two-power" pairing, plus their n-ary generalizations by balanced
// recursive splitting. Every function here is exact on all representable
// values, so indices are represented with math/big.Int rather than a fixed
// machine width. Spec §1 requires program integers (and, by the same
// reasoning, the enumerator's indices) to be unbounded.
package pairing

import "math/big"

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// isqrt returns floor(sqrt(n)) for n >= 0 via Newton's method, correct for
// all non-negative n (spec §4.D).
func isqrt(n *big.Int) *big.Int {
	if n.Sign() == 0 {
		return big.NewInt(0)
	}

	x := new(big.Int).Set(n)
	y := new(big.Int).Add(x, big1)
	y.Div(y, big2)

	for y.Cmp(x) < 0 {
		x.Set(y)
		t := new(big.Int).Div(n, x)
		y = new(big.Int).Add(x, t)
		y.Div(y, big2)
	}
	return x
}

// Pair computes the Cantor pairing ((x+y)(x+y+1))/2 + x.
func Pair(x, y *big.Int) *big.Int {
	s := new(big.Int).Add(x, y)
	p := new(big.Int).Mul(s, new(big.Int).Add(s, big1))
	p.Div(p, big2)
	return p.Add(p, x)
}

// Unpair inverts Pair: given n = Pair(x, y), returns (x, y).
func Unpair(n *big.Int) (x, y *big.Int) {
	w := isqrt(new(big.Int).Mul(big2, n))

	triangular := func(k *big.Int) *big.Int {
		t := new(big.Int).Mul(k, new(big.Int).Add(k, big1))
		return t.Div(t, big2)
	}

	if triangular(w).Cmp(n) > 0 {
		w = new(big.Int).Sub(w, big1)
	}

	p := triangular(w)
	x = new(big.Int).Sub(n, p)
	y = new(big.Int).Sub(w, x)
	return x, y
}

// TwoPower computes 2^u * (2v-1) for (u,v) != (0,0), and 0 for (0,0).
func TwoPower(u, v *big.Int) *big.Int {
	if u.Sign() == 0 && v.Sign() == 0 {
		return big.NewInt(0)
	}

	twoV := new(big.Int).Mul(big2, v)
	odd := new(big.Int).Sub(twoV, big1)

	pow := new(big.Int).Exp(big2, u, nil)
	return pow.Mul(pow, odd)
}

// TwoPowerInverse inverts TwoPower: given n = TwoPower(u, v), returns (u, v).
func TwoPowerInverse(n *big.Int) (u, v *big.Int) {
	if n.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0)
	}

	uVal := uint(n.TrailingZeroBits())
	u = new(big.Int).SetUint64(uint64(uVal))

	odd := new(big.Int).Rsh(n, uVal)
	v = new(big.Int).Add(odd, big1)
	v.Div(v, big2)
	return u, v
}

// PairN is the n-ary extension of Pair: identity for one value, Pair for two,
// and for more than two, a balanced split at floor(n/2) with Pair combining
// the two halves' recursively-paired indices.
func PairN(values []*big.Int) *big.Int {
	switch len(values) {
	case 0:
		return big.NewInt(0)
	case 1:
		return new(big.Int).Set(values[0])
	case 2:
		return Pair(values[0], values[1])
	default:
		mid := len(values) / 2
		i := PairN(values[:mid])
		j := PairN(values[mid:])
		return Pair(i, j)
	}
}

// UnpairN inverts PairN: given n = PairN(values) and the original count of
// values, returns the original slice.
func UnpairN(n *big.Int, count int) []*big.Int {
	switch count {
	case 1:
		return []*big.Int{new(big.Int).Set(n)}
	case 2:
		x, y := Unpair(n)
		return []*big.Int{x, y}
	default:
		mid := count / 2
		i, j := Unpair(n)
		left := UnpairN(i, mid)
		right := UnpairN(j, count-mid)
		return append(left, right...)
	}
}
