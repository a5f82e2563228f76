package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Run_smallClassFindsAWinner(t *testing.T) {
	result := Run(3, Options{ScanRange: 10, StepBudget: 5000})
	require.GreaterOrEqual(t, result.Best, -1)
	if result.Best >= 0 {
		assert.NotEmpty(t, result.Winners)
	}
}

func Test_Run_neverPanicsAcrossSizes(t *testing.T) {
	for size := 1; size <= 5; size++ {
		assert.NotPanics(t, func() {
			Run(size, Options{ScanRange: 5, StepBudget: 2000})
		})
	}
}
