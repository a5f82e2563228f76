package bijection

import (
	"math/big"
	"testing"

	"github.com/dekarrin/primrec/internal/lang"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Create_atoms(t *testing.T) {
	z, err := Create(0, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "Z", lang.Print(z))

	i, err := Create(1, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "I", lang.Print(i))

	s, err := Create(1, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "S", lang.Print(s))
}

func Test_Create_Hash_roundtrip(t *testing.T) {
	for _, arity := range []int{0, 1, 2} {
		for n := int64(0); n < 200; n++ {
			tree, err := Create(arity, big.NewInt(n))
			require.NoErrorf(t, err, "Create(%d,%d)", arity, n)

			gotArity, gotIndex := Hash(tree)
			assert.Equalf(t, arity, gotArity, "arity for Create(%d,%d)", arity, n)
			assert.Equalf(t, n, gotIndex.Int64(), "index for Create(%d,%d)", arity, n)
		}
	}
}

func Test_Hash_Create_roundtrip(t *testing.T) {
	for _, arity := range []int{0, 1, 2} {
		for n := int64(0); n < 200; n++ {
			tree, err := Create(arity, big.NewInt(n))
			require.NoError(t, err)

			a, idx := Hash(tree)
			back, err := Create(a, idx)
			require.NoError(t, err)

			if diff := cmp.Diff(tree, back); diff != "" {
				t.Errorf("Create(Hash(t)) != t (-want +got):\n%s", diff)
			}
		}
	}
}
