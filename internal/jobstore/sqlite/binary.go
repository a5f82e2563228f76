package sqlite

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// winnersBlob is the on-disk encoding of a Job's winning program texts: a
// length-prefixed list of length-prefixed UTF-8 strings. It exists purely so
// that rezi.EncBinary/DecBinary (the teacher's choice for any column that
// isn't a plain scalar, see server/dao/sqlite/sqlite.go's game-state column)
// has a concrete encoding.BinaryMarshaler to wrap, the same way
// internal/tunascript's AST nodes give it one.
type winnersBlob []string

func (w winnersBlob) MarshalBinary() ([]byte, error) {
	enc := encBinaryInt(len(w))
	for _, s := range w {
		enc = append(enc, encBinaryString(s)...)
	}
	return enc, nil
}

func (w *winnersBlob) UnmarshalBinary(data []byte) error {
	count, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("winner count: %w", err)
	}
	data = data[n:]

	out := make(winnersBlob, 0, count)
	for i := 0; i < count; i++ {
		s, read, err := decBinaryString(data)
		if err != nil {
			return fmt.Errorf("winner %d: %w", i, err)
		}
		out = append(out, s)
		data = data[read:]
	}

	*w = out
	return nil
}

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.PutVarint(enc, int64(i))
	return enc
}

func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}
	val, read := binary.Varint(data[:8])
	if read <= 0 {
		return 0, 0, fmt.Errorf("input buffer too small or value too large")
	}
	return int(val), 8, nil
}

func encBinaryString(s string) []byte {
	runeCount := utf8.RuneCountInString(s)
	enc := encBinaryInt(runeCount)
	return append(enc, []byte(s)...)
}

// decBinaryString returns the string followed by the number of bytes of data
// consumed, including the 8-byte rune-count prefix.
func decBinaryString(data []byte) (string, int, error) {
	runeCount, n, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("string rune count: %w", err)
	}
	data = data[n:]
	read := n

	var sb []rune
	for i := 0; i < runeCount; i++ {
		ch, size := utf8.DecodeRune(data)
		if ch == utf8.RuneError && size <= 1 {
			return "", 0, fmt.Errorf("invalid UTF-8 in string")
		}
		sb = append(sb, ch)
		data = data[size:]
		read += size
	}

	return string(sb), read, nil
}
