package claim169_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	claim169 "github.com/mosip/claim169-go"
)

func strp(s string) *string { return &s }
func i64p(v int64) *int64   { return &v }

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// S1 — Minimal unsigned round-trip.
func TestS1MinimalUnsignedRoundTrip(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-12345-ABCDE"), FullName: strp("John Doe")}
	meta := claim169.CwtMeta{
		Issuer:    strp("https://mosip.example.org"),
		ExpiresAt: i64p(1800000000),
		IssuedAt:  i64p(1700000000),
	}

	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)
	require.NotEmpty(t, text)

	result, err := claim169.NewDecoder().
		AllowUnverified().
		WithoutTimestampValidation().
		Decode(text)
	require.NoError(t, err)

	require.Equal(t, "ID-12345-ABCDE", *result.Claim169.ID)
	require.Equal(t, "John Doe", *result.Claim169.FullName)
	require.Equal(t, claim169.Skipped, result.VerificationStatus)
}

// S2 — Ed25519 signed (RFC 8032 test vector 1).
func TestS2Ed25519Signed(t *testing.T) {
	priv := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")

	claim := claim169.Claim169{ID: strp("ID-SIGNED-001"), FullName: strp("Signed Test Person")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.NewEncoder().SignWithEd25519(priv).Encode(claim, meta)
	require.NoError(t, err)

	result, err := claim169.NewDecoder().
		VerifyWithEd25519(pub).
		WithoutTimestampValidation().
		Decode(text)
	require.NoError(t, err)
	require.Equal(t, claim169.Verified, result.VerificationStatus)
	require.Equal(t, "ID-SIGNED-001", *result.Claim169.ID)
}

// S3 — Wrong key rejected.
func TestS3WrongKeyRejected(t *testing.T) {
	priv := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wrongPub := make([]byte, 32)
	for i := range wrongPub {
		wrongPub[i] = 0xFF
	}

	claim := claim169.Claim169{ID: strp("ID-SIGNED-001"), FullName: strp("Signed Test Person")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.NewEncoder().SignWithEd25519(priv).Encode(claim, meta)
	require.NoError(t, err)

	_, err = claim169.NewDecoder().
		VerifyWithEd25519(wrongPub).
		WithoutTimestampValidation().
		Decode(text)
	require.Error(t, err)
	code, ok := claim169.Code(err)
	require.True(t, ok)
	require.Equal(t, claim169.ErrSignatureInvalid, code)
}

// S4 — Expired with clock.
func TestS4ExpiredWithClock(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-EXP"), FullName: strp("Expired Person")}
	meta := claim169.CwtMeta{
		Issuer:    strp("https://mosip.example.org"),
		ExpiresAt: i64p(1609459200), // 2021-01-01
	}

	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)

	_, err = claim169.NewDecoder().
		AllowUnverified().
		WithTimestampValidation().
		Decode(text)
	require.Error(t, err)
	code, ok := claim169.Code(err)
	require.True(t, ok)
	require.Equal(t, claim169.ErrExpired, code)

	result, err := claim169.NewDecoder().
		AllowUnverified().
		WithoutTimestampValidation().
		Decode(text)
	require.NoError(t, err)
	require.Equal(t, "ID-EXP", *result.Claim169.ID)
}

// S5 — Encrypt-then-sign-then-decrypt.
func TestS5EncryptThenSignThenDecrypt(t *testing.T) {
	priv := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	aesKey := make([]byte, 32)
	for i := range aesKey {
		aesKey[i] = 0x01
	}

	claim := claim169.Claim169{ID: strp("ID-ENC-001"), FullName: strp("Encrypted Person")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.NewEncoder().
		SignWithEd25519(priv).
		EncryptWithAES256(aesKey).
		Encode(claim, meta)
	require.NoError(t, err)

	result, err := claim169.NewDecoder().
		DecryptWithAES256(aesKey).
		VerifyWithEd25519(pub).
		WithoutTimestampValidation().
		Decode(text)
	require.NoError(t, err)
	require.Equal(t, claim169.Verified, result.VerificationStatus)
	require.Equal(t, "ID-ENC-001", *result.Claim169.ID)
}

// S6 — Decompression bomb.
func TestS6DecompressionBomb(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-BOMB"), FullName: strp(strings.Repeat("A", 200000))}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)

	_, err = claim169.NewDecoder().
		AllowUnverified().
		WithoutTimestampValidation().
		MaxDecompressedBytes(65536).
		Decode(text)
	require.Error(t, err)
	code, ok := claim169.Code(err)
	require.True(t, ok)
	require.Equal(t, claim169.ErrDecompressLimitExceeded, code)
}

// Property 1 (partial): round trip preserves every known field. Unknown-field
// preservation across the full pipeline is covered separately by
// TestPropertyRoundTripPreservesUnknownFields below, since that's a distinct
// and easier-to-break guarantee (it requires every layer — schema and CWT —
// to thread entries it doesn't understand back out).
func TestPropertyRoundTripPreservesKnownFields(t *testing.T) {
	claim := claim169.Claim169{
		ID:       strp("ID-RT-1"),
		FullName: strp("Round Trip"),
		Gender:   func() *int { v := 1; return &v }(),
	}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org"), IssuedAt: i64p(1700000000)}

	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)

	result, err := claim169.NewDecoder().AllowUnverified().WithoutTimestampValidation().Decode(text)
	require.NoError(t, err)
	require.Equal(t, *claim.ID, *result.Claim169.ID)
	require.Equal(t, *claim.FullName, *result.Claim169.FullName)
	require.Equal(t, *claim.Gender, *result.Claim169.Gender)
}

// Property 3: decoding a payload with CBOR keys outside the schema, then
// re-encoding it with the same configuration, yields byte-identical output —
// exercised here at both the Claim169 layer (an unknown field 900) and the
// CWT layer (an unknown top-level claim 901), through the public pipeline
// rather than a single internal package in isolation.
func TestPropertyRoundTripPreservesUnknownFields(t *testing.T) {
	unknownSchemaField, err := claim169.NewUnknownEntry(900, "future-schema-field")
	require.NoError(t, err)
	unknownCwtClaim, err := claim169.NewUnknownEntry(901, "future-cwt-claim")
	require.NoError(t, err)

	claim := claim169.Claim169{
		ID:       strp("ID-UNK-1"),
		FullName: strp("Unknown Fields"),
		Unknowns: []claim169.UnknownEntry{unknownSchemaField},
	}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.NewEncoder().
		AllowUnsigned().
		PreserveCwtUnknownClaims([]claim169.UnknownEntry{unknownCwtClaim}).
		Encode(claim, meta)
	require.NoError(t, err)

	result, err := claim169.NewDecoder().AllowUnverified().WithoutTimestampValidation().Decode(text)
	require.NoError(t, err)
	require.Len(t, result.Claim169.Unknowns, 1)
	require.Equal(t, int64(900), *result.Claim169.Unknowns[0].IntKey)
	require.Len(t, result.CwtUnknownClaims, 1)
	require.Equal(t, int64(901), *result.CwtUnknownClaims[0].IntKey)

	reencoded, err := claim169.NewEncoder().
		AllowUnsigned().
		PreserveCwtUnknownClaims(result.CwtUnknownClaims).
		Encode(result.Claim169, result.CwtMeta)
	require.NoError(t, err)
	require.Equal(t, text, reencoded)
}

// Property 2: deterministic encode — two encodes of the same unsigned claim
// produce byte-identical text (no signature/nonce randomness in play).
func TestPropertyDeterministicEncodeUnsigned(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-DET"), FullName: strp("Deterministic")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text1, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)
	text2, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)
	require.Equal(t, text1, text2)
}

// Convenience wrapper smoke test.
func TestConvenienceDecode169Encode169(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-CONV"), FullName: strp("Convenience")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}

	text, err := claim169.Encode169(claim, meta, claim169.WithAllowUnsigned())
	require.NoError(t, err)

	result, err := claim169.Decode169(text, claim169.WithAllowUnverified(), claim169.WithSkipBiometrics())
	require.NoError(t, err)
	require.Equal(t, "ID-CONV", *result.Claim169.ID)
}

// Decoder/Encoder reuse after execution must fail, not silently re-run.
func TestDecoderCannotBeReused(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-ONE"), FullName: strp("One Shot")}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}
	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)

	d := claim169.NewDecoder().AllowUnverified().WithoutTimestampValidation()
	_, err = d.Decode(text)
	require.NoError(t, err)

	_, err = d.Decode(text)
	require.Error(t, err)
	code, ok := claim169.Code(err)
	require.True(t, ok)
	require.Equal(t, claim169.ErrDecodingConfig, code)
}

// ScopedResult.Release zeroizes tracked buffers and is idempotent.
func TestScopedResultRelease(t *testing.T) {
	claim := claim169.Claim169{ID: strp("ID-PHOTO"), FullName: strp("Photo Person"), Photo: []byte{1, 2, 3, 4}}
	meta := claim169.CwtMeta{Issuer: strp("https://mosip.example.org")}
	text, err := claim169.NewEncoder().AllowUnsigned().Encode(claim, meta)
	require.NoError(t, err)

	result, err := claim169.NewDecoder().AllowUnverified().WithoutTimestampValidation().Decode(text)
	require.NoError(t, err)

	scoped := claim169.NewScopedResult(result)
	require.Equal(t, []byte{1, 2, 3, 4}, scoped.Claim169.Photo)
	scoped.Release()
	require.Equal(t, []byte{0, 0, 0, 0}, scoped.Claim169.Photo)
	scoped.Release() // idempotent, must not panic
}
