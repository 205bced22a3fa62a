package base45_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosip/claim169-go/internal/base45"
)

func TestEncodeKnownVectors(t *testing.T) {
	// RFC 9285 §4.3 examples.
	cases := []struct {
		in  []byte
		out string
	}{
		{[]byte("AB"), "BB8"},
		{[]byte("Hello!!"), "%69 VD92EX0"},
		{[]byte("base-45"), "UJCLQE7W581"},
		{[]byte{0}, "00"},
		{[]byte{}, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, base45.Encode(c.in))
	}
}

func TestDecodeKnownVectors(t *testing.T) {
	cases := []struct {
		in  string
		out []byte
	}{
		{"BB8", []byte("AB")},
		{"%69 VD92EX0", []byte("Hello!!")},
		{"UJCLQE7W581", []byte("base-45")},
	}
	for _, c := range cases {
		got, err := base45.Decode(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.out, got)
	}
}

func TestRoundTripArbitraryBytes(t *testing.T) {
	// Property 9: Base45 round-trip is bit-exact over arbitrary byte strings
	// up to 2048 bytes.
	r := rand.New(rand.NewSource(42))
	for _, size := range []int{0, 1, 2, 3, 7, 64, 255, 1024, 2048} {
		buf := make([]byte, size)
		r.Read(buf)

		encoded := base45.Encode(buf)
		decoded, err := base45.Decode(encoded)
		require.NoError(t, err)
		if !bytes.Equal(buf, decoded) {
			t.Fatalf("round-trip mismatch at size %d", size)
		}
	}
}

func TestDecodeRejectsInvalidAlphabet(t *testing.T) {
	_, err := base45.Decode("BB!")
	require.Error(t, err)
}

func TestDecodeRejectsLengthModThree(t *testing.T) {
	_, err := base45.Decode("B")
	require.Error(t, err)
}

func TestDecodeRejectsOversizedGroup(t *testing.T) {
	// "::W" decodes to c=44, d=44, e=32 -> 44 + 44*45 + 32*45*45 = 66824, which
	// exceeds the maximum two-byte value of 65535.
	_, err := base45.Decode("::W")
	require.Error(t, err)
}

func TestDecodeDoesNotTrimOrFold(t *testing.T) {
	// Space is a legal alphabet member; lowercase is not. Both must be handled
	// literally, with no normalization.
	_, err := base45.Decode("ab8")
	require.Error(t, err)

	// A leading space is decoded as alphabet value 36, not trimmed away.
	got, err := base45.Decode(" 00")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x24}, got)
}
