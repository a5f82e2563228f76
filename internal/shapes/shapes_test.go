package shapes

import (
	"testing"

	"github.com/dekarrin/primrec/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Gen_baseCases(t *testing.T) {
	z := Gen(0, 1)
	require.Len(t, z, 1)
	assert.Equal(t, "Z", lang.Print(z[0]))

	ones := Gen(1, 1)
	require.Len(t, ones, 2)
	assert.ElementsMatch(t, []string{"I", "S"}, []string{lang.Print(ones[0]), lang.Print(ones[1])})
}

func Test_Gen_allWellFormed(t *testing.T) {
	for size := 1; size <= 6; size++ {
		for _, tree := range Gen(1, size) {
			assert.Equal(t, 1, tree.Arity())
		}
	}
}

func Test_Main_excludesTopLevelProjections(t *testing.T) {
	for size := 1; size <= 7; size++ {
		for _, tree := range Main(1, size) {
			assert.NotEqual(t, lang.LeftTag, tree.Tag())
			assert.NotEqual(t, lang.RightTag, tree.Tag())
		}
	}
}

func Test_MainCounts_monotonicallyNonDecreasing(t *testing.T) {
	prev := 0
	for size := 1; size <= 6; size++ {
		count := len(Main(1, size))
		assert.GreaterOrEqualf(t, count, prev, "size %d", size)
		prev = count
	}
}

func Test_suppressRec_filtersKnownShapes(t *testing.T) {
	zero := lang.NewZ()
	leftLeftZero := lang.NewLeft(lang.NewLeft(lang.NewZ()))
	assert.True(t, suppressRec(zero, leftLeftZero))

	noop := lang.NewLeft(lang.NewI())
	assert.True(t, suppressRec(lang.NewI(), noop))
}
