package cborcodec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosip/claim169-go/internal/cborcodec"
)

func TestEncodeDeterministicMapOrdering(t *testing.T) {
	e1, err := cborcodec.TextEntry("z", "last")
	require.NoError(t, err)
	e2, err := cborcodec.IntEntry(5, "five")
	require.NoError(t, err)
	e3, err := cborcodec.IntEntry(1, "one")
	require.NoError(t, err)
	e4, err := cborcodec.TextEntry("a", "first")
	require.NoError(t, err)

	// Deliberately out of order: encode should sort ints ascending first, then
	// text lexicographically.
	encoded, err := cborcodec.EncodeDeterministicMap([]cborcodec.Entry{e1, e2, e3, e4})
	require.NoError(t, err)

	entries, err := cborcodec.DecodeMapEntries(encoded)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	require.NotNil(t, entries[0].IntKey)
	require.Equal(t, int64(1), *entries[0].IntKey)
	require.NotNil(t, entries[1].IntKey)
	require.Equal(t, int64(5), *entries[1].IntKey)
	require.NotNil(t, entries[2].TextKey)
	require.Equal(t, "a", *entries[2].TextKey)
	require.NotNil(t, entries[3].TextKey)
	require.Equal(t, "z", *entries[3].TextKey)
}

func TestEncodeDeterministicMapIsByteIdentical(t *testing.T) {
	build := func() []byte {
		e1, _ := cborcodec.IntEntry(2, "two")
		e2, _ := cborcodec.IntEntry(1, "one")
		encoded, err := cborcodec.EncodeDeterministicMap([]cborcodec.Entry{e1, e2})
		require.NoError(t, err)
		return encoded
	}

	a := build()
	b := build()
	require.Equal(t, a, b)
}

func TestDecodeMapEntriesPreservesUnknownValueBytes(t *testing.T) {
	known, err := cborcodec.IntEntry(1, "known")
	require.NoError(t, err)
	unknown, err := cborcodec.IntEntry(999, map[string]int{"x": 1, "y": 2})
	require.NoError(t, err)

	encoded, err := cborcodec.EncodeDeterministicMap([]cborcodec.Entry{known, unknown})
	require.NoError(t, err)

	entries, err := cborcodec.DecodeMapEntries(encoded)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Re-encoding the decoded entries verbatim must reproduce the same bytes.
	reencoded, err := cborcodec.EncodeDeterministicMap(entries)
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}
