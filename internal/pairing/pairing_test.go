package pairing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bi(n int64) *big.Int { return big.NewInt(n) }

func Test_Pair_Unpair_roundtrip(t *testing.T) {
	for x := int64(0); x < 12; x++ {
		for y := int64(0); y < 12; y++ {
			n := Pair(bi(x), bi(y))
			gotX, gotY := Unpair(n)
			assert.Equal(t, x, gotX.Int64(), "x for (%d,%d)", x, y)
			assert.Equal(t, y, gotY.Int64(), "y for (%d,%d)", x, y)
		}
	}
}

func Test_Pair_knownValues(t *testing.T) {
	// pair(x,y) = ((x+y)(x+y+1))/2 + x
	assert.Equal(t, int64(0), Pair(bi(0), bi(0)).Int64())
	assert.Equal(t, int64(1), Pair(bi(0), bi(1)).Int64())
	assert.Equal(t, int64(2), Pair(bi(1), bi(0)).Int64())
}

func Test_TwoPower_TwoPowerInverse_roundtrip(t *testing.T) {
	for u := int64(0); u < 6; u++ {
		for v := int64(0); v < 6; v++ {
			if u == 0 && v == 0 {
				continue
			}
			n := TwoPower(bi(u), bi(v))
			gotU, gotV := TwoPowerInverse(n)
			assert.Equal(t, u, gotU.Int64(), "u for (%d,%d)", u, v)
			assert.Equal(t, v, gotV.Int64(), "v for (%d,%d)", u, v)
		}
	}
}

func Test_TwoPower_zero(t *testing.T) {
	assert.Equal(t, int64(0), TwoPower(bi(0), bi(0)).Int64())
	u, v := TwoPowerInverse(bi(0))
	assert.Equal(t, int64(0), u.Int64())
	assert.Equal(t, int64(0), v.Int64())
}

func Test_PairN_UnpairN_roundtrip(t *testing.T) {
	for _, count := range []int{1, 2, 3, 4, 5, 7} {
		values := make([]*big.Int, count)
		for i := range values {
			values[i] = bi(int64(i*3 + 1))
		}
		n := PairN(values)
		got := UnpairN(n, count)
		if assert.Len(t, got, count) {
			for i := range values {
				assert.Equal(t, values[i].Int64(), got[i].Int64(), "index %d", i)
			}
		}
	}
}
