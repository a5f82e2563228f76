package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_encDecBinaryInt_roundtrip(t *testing.T) {
	for _, n := range []int{0, 1, 7, 255, 1 << 20, -1} {
		enc := encBinaryInt(n)
		got, read, err := decBinaryInt(enc)
		require.NoError(t, err)
		assert.Equal(t, n, got)
		assert.Equal(t, 8, read)
	}
}

func Test_encDecBinaryString_roundtrip(t *testing.T) {
	for _, s := range []string{"", "hello", "RI<>S", "unicode: éè"} {
		enc := encBinaryString(s)
		got, _, err := decBinaryString(enc)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func Test_winnersBlob_roundtrip(t *testing.T) {
	w := winnersBlob{"Z", "RI<>S", "oSS"}
	data, err := w.MarshalBinary()
	require.NoError(t, err)

	var got winnersBlob
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, w, got)
}

func Test_winnersBlob_empty(t *testing.T) {
	var w winnersBlob
	data, err := w.MarshalBinary()
	require.NoError(t, err)

	var got winnersBlob
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Empty(t, []string(got))
}
