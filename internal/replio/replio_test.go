package replio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DirectReader_readsTrimmedLines(t *testing.T) {
	r := NewDirectReader(strings.NewReader("  RI<>S \n  \noSS\n"))
	defer r.Close()

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "RI<>S", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "oSS", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func Test_DirectReader_emptyInput(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))
	defer r.Close()

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}
