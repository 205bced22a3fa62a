package cose_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosip/claim169-go/internal/cborcodec"
	"github.com/mosip/claim169-go/internal/cose"
)

func buildProtected(t *testing.T, alg cose.AlgID, kid []byte) []byte {
	t.Helper()
	entries := []cborcodec.Entry{}
	e, err := cose.AlgEntry(alg)
	require.NoError(t, err)
	entries = append(entries, e)
	if kid != nil {
		ke, err := cose.KidEntry(kid)
		require.NoError(t, err)
		entries = append(entries, ke)
	}
	raw, err := cose.BuildHeaderMap(entries)
	require.NoError(t, err)
	return raw
}

func TestSign1RoundTrip(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgEdDSA, []byte("kid-1"))
	payload := []byte("hello payload")
	signature := []byte("fake-signature-bytes")

	wire, err := cose.BuildSign1(protectedRaw, nil, payload, signature)
	require.NoError(t, err)

	parsed, err := cose.ParseSign1(wire)
	require.NoError(t, err)

	require.True(t, parsed.Tagged)
	require.Equal(t, payload, parsed.Payload)
	require.Equal(t, signature, parsed.Signature)
	require.False(t, parsed.PayloadIsNil)

	rh := parsed.ResolvedHeader()
	algRaw, ok := rh.Value(cose.LabelAlg)
	require.True(t, ok)
	alg, err := cose.DecodeAlg(algRaw)
	require.NoError(t, err)
	require.Equal(t, cose.AlgEdDSA, alg)

	kidRaw, ok := rh.Value(cose.LabelKid)
	require.True(t, ok)
	var kid []byte
	require.NoError(t, cborcodec.Unmarshal(kidRaw, &kid))
	require.Equal(t, []byte("kid-1"), kid)
}

func TestSign1DeterministicEncode(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgES256, nil)
	a, err := cose.BuildSign1(protectedRaw, nil, []byte("p"), []byte("s"))
	require.NoError(t, err)
	b, err := cose.BuildSign1(protectedRaw, nil, []byte("p"), []byte("s"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSign1NilPayload(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgEdDSA, nil)
	wire, err := cose.BuildSign1(protectedRaw, nil, nil, []byte("sig"))
	require.NoError(t, err)

	parsed, err := cose.ParseSign1(wire)
	require.NoError(t, err)
	require.True(t, parsed.PayloadIsNil)
}

func TestSign1SigStructureMatchesCanonicalForm(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgEdDSA, nil)
	payload := []byte("payload-bytes")

	sig1 := &cose.Sign1{ProtectedRaw: protectedRaw, Payload: payload}
	got, err := sig1.SigStructure()
	require.NoError(t, err)

	// Property 4: the Sig_structure must be the canonical
	// ["Signature1", protected, external_aad(empty), payload] array.
	var decoded []interface{}
	require.NoError(t, cborcodec.Unmarshal(got, &decoded))
	require.Len(t, decoded, 4)
	require.Equal(t, "Signature1", decoded[0])
}

func TestSign1RejectsWrongTag(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgEdDSA, nil)
	encrypt0Wire, err := cose.BuildEncrypt0(protectedRaw, nil, []byte("ciphertext"))
	require.NoError(t, err)

	_, err = cose.ParseSign1(encrypt0Wire)
	require.Error(t, err)
}

func TestEncrypt0RoundTrip(t *testing.T) {
	protectedRaw := buildProtected(t, cose.AlgA256GCM, nil)
	ivEntry, err := cose.IVEntry([]byte("123456789012"))
	require.NoError(t, err)

	wire, err := cose.BuildEncrypt0(protectedRaw, []cborcodec.Entry{ivEntry}, []byte("ciphertext+tag"))
	require.NoError(t, err)

	parsed, err := cose.ParseEncrypt0(wire)
	require.NoError(t, err)
	require.True(t, parsed.Tagged)
	require.Equal(t, []byte("ciphertext+tag"), parsed.Ciphertext)

	rh := parsed.ResolvedHeader()
	ivRaw, ok := rh.Value(cose.LabelIV)
	require.True(t, ok)
	var iv []byte
	require.NoError(t, cborcodec.Unmarshal(ivRaw, &iv))
	require.Equal(t, []byte("123456789012"), iv)
}

func TestHeaderTieBreakProtectedWins(t *testing.T) {
	protectedEntry, err := cose.AlgEntry(cose.AlgEdDSA)
	require.NoError(t, err)
	duplicateUnprotected, err := cborcodec.IntEntry(cose.LabelAlg, int64(cose.AlgES256))
	require.NoError(t, err)

	rh := cose.NewResolvedHeader([]cborcodec.Entry{protectedEntry}, []cborcodec.Entry{duplicateUnprotected})
	require.Contains(t, rh.DuplicateLabels, int64(cose.LabelAlg))

	v, ok := rh.Value(cose.LabelAlg)
	require.True(t, ok)
	alg, err := cose.DecodeAlg(v)
	require.NoError(t, err)
	require.Equal(t, cose.AlgEdDSA, alg) // protected value wins
}

func TestDecodeAlgAcceptsTextForm(t *testing.T) {
	raw, err := cborcodec.Marshal("EdDSA")
	require.NoError(t, err)
	alg, err := cose.DecodeAlg(raw)
	require.NoError(t, err)
	require.Equal(t, cose.AlgEdDSA, alg)
}
