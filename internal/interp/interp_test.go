package interp

import (
	"math/big"
	"testing"

	"github.com/dekarrin/primrec/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, program string) *lang.Term {
	t.Helper()
	tree, err := lang.Parse(program)
	require.NoError(t, err)
	return tree
}

func bi(n int64) *big.Int { return big.NewInt(n) }

func Test_Run_concreteScenarios(t *testing.T) {
	testCases := []struct {
		name    string
		program string
		inputs  []*big.Int
		want    int64
	}{
		{"addition 10+5", "RI<>S", []*big.Int{bi(10), bi(5)}, 15},
		{"addition 0+7", "RI<>S", []*big.Int{bi(0), bi(7)}, 7},
		{"multiplication 7*8", "R<Z<RI<>SIS", []*big.Int{bi(7), bi(8)}, 56},
		{"constant zero", "Z", nil, 0},
		{"comp of successors", "oSS", []*big.Int{bi(3)}, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := mustParse(t, tc.program)
			result, err := Run(program, tc.inputs, Options{})
			require.NoError(t, err)
			require.False(t, result.Overflow)
			assert.Equal(t, tc.want, result.Value.Int64())
		})
	}
}

func Test_Run_determinism(t *testing.T) {
	program := mustParse(t, "RI<>S")
	inputs := []*big.Int{bi(10), bi(5)}

	first, err := Run(program, inputs, Options{})
	require.NoError(t, err)
	second, err := Run(program, inputs, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Steps, second.Steps)
	assert.Equal(t, first.Value.Int64(), second.Value.Int64())
}

func Test_Run_arityMismatch(t *testing.T) {
	program := mustParse(t, "S")
	_, err := Run(program, nil, Options{})
	require.Error(t, err)
	var ae *ArityMismatchError
	require.ErrorAs(t, err, &ae)
}

func Test_Run_stepBudgetOverflow(t *testing.T) {
	program := mustParse(t, "RI<>S")
	result, err := Run(program, []*big.Int{bi(1000), bi(1000)}, Options{Budget: 5})
	require.NoError(t, err)
	assert.True(t, result.Overflow)
	assert.Equal(t, 5, result.Steps)
}

func Test_Run_binaryShortcut(t *testing.T) {
	program := mustParse(t, "S")
	result, err := Run(program, []*big.Int{bi(0)}, Options{Binary: true})
	require.NoError(t, err)
	assert.True(t, result.Nonzero)
}

func Test_Run_deepRecursionBoundedStack(t *testing.T) {
	// A Rec term applied to a large n unrolls iteratively via the
	// trampoline's explicit stack, not the Go call stack.
	program := mustParse(t, "RI<>S")
	result, err := Run(program, []*big.Int{bi(50000), bi(1)}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(50001), result.Value.Int64())
}
