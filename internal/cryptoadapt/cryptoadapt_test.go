package cryptoadapt_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosip/claim169-go/internal/cryptoadapt"
)

func TestEd25519SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := cryptoadapt.NewEd25519Signer(priv.Seed())
	require.NoError(t, err)
	sig, err := signer.Sign(cryptoadapt.AlgEdDSA, nil, []byte("data"))
	require.NoError(t, err)

	verifier, err := cryptoadapt.NewEd25519Verifier(pub)
	require.NoError(t, err)
	result, err := verifier.Verify(cryptoadapt.AlgEdDSA, nil, []byte("data"), sig)
	require.NoError(t, err)
	require.True(t, result.Valid)
}

// Property 6: flipping any bit of the signed region yields an explicit
// invalid verdict with certainty, never a silent "valid".
func TestEd25519BitFlipRejected(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := cryptoadapt.NewEd25519Signer(priv.Seed())
	require.NoError(t, err)
	data := []byte("signed region")
	sig, err := signer.Sign(cryptoadapt.AlgEdDSA, nil, data)
	require.NoError(t, err)

	flipped := append([]byte(nil), data...)
	flipped[0] ^= 0x01

	verifier, err := cryptoadapt.NewEd25519Verifier(pub)
	require.NoError(t, err)
	result, err := verifier.Verify(cryptoadapt.AlgEdDSA, nil, flipped, sig)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Reason)
}

// Property 8: the verifier contract forces an explicit verdict; a
// deliberately wrong key must reject, not default to "valid".
func TestEd25519WrongKeyForcesInvalidVerdict(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := cryptoadapt.NewEd25519Signer(priv.Seed())
	require.NoError(t, err)
	sig, err := signer.Sign(cryptoadapt.AlgEdDSA, nil, []byte("data"))
	require.NoError(t, err)

	wrongPub := bytes.Repeat([]byte{0xFF}, ed25519.PublicKeySize)
	verifier, err := cryptoadapt.NewEd25519Verifier(wrongPub)
	require.NoError(t, err)
	result, err := verifier.Verify(cryptoadapt.AlgEdDSA, nil, []byte("data"), sig)
	require.NoError(t, err)
	require.False(t, result.Valid)
}

func TestECDSAP256SignVerifyRoundTrip(t *testing.T) {
	scalar := make([]byte, 32)
	_, err := rand.Read(scalar)
	require.NoError(t, err)

	signer, err := cryptoadapt.NewECDSAP256Signer(scalar)
	require.NoError(t, err)
	sig, err := signer.Sign(cryptoadapt.AlgES256, nil, []byte("data"))
	require.NoError(t, err)
	require.Len(t, sig, 64)

	verifier, err := cryptoadapt.NewECDSAP256Verifier(marshalPub(t, scalar))
	require.NoError(t, err)
	result, err := verifier.Verify(cryptoadapt.AlgES256, nil, []byte("data"), sig)
	require.NoError(t, err)
	require.True(t, result.Valid)
}

// Property 7: flipping any bit of an AEAD ciphertext/tag must fail to
// decrypt, never silently succeed with altered plaintext.
func TestAESGCMBitFlipRejected(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 16)
	c, err := cryptoadapt.NewAESGCMCipher(key)
	require.NoError(t, err)

	nonce, err := cryptoadapt.GenerateNonce()
	require.NoError(t, err)
	aad := []byte("aad")
	ct, err := c.Encrypt(cryptoadapt.AlgA128GCM, nil, nonce, aad, []byte("plaintext"))
	require.NoError(t, err)

	flipped := append([]byte(nil), ct...)
	flipped[0] ^= 0x01

	_, err = c.Decrypt(cryptoadapt.AlgA128GCM, nil, nonce, aad, flipped)
	require.Error(t, err)
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	c, err := cryptoadapt.NewAESGCMCipher(key)
	require.NoError(t, err)

	nonce, err := cryptoadapt.GenerateNonce()
	require.NoError(t, err)
	aad := []byte("aad-bytes")
	plaintext := []byte("the quick brown fox")

	ct, err := c.Encrypt(cryptoadapt.AlgA256GCM, nil, nonce, aad, plaintext)
	require.NoError(t, err)

	pt, err := c.Decrypt(cryptoadapt.AlgA256GCM, nil, nonce, aad, ct)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

// Property 10 (statistical): repeated nonce generation never reuses a value
// across a reasonably large sample.
func TestNonceGenerationDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n, err := cryptoadapt.GenerateNonce()
		require.NoError(t, err)
		require.Len(t, n, cryptoadapt.NonceSize)
		key := string(n)
		require.False(t, seen[key], "nonce reused")
		seen[key] = true
	}
}

func TestInvalidKeyLengthRejected(t *testing.T) {
	_, err := cryptoadapt.NewAESGCMCipher([]byte{0x01, 0x02})
	require.Error(t, err)
}

func marshalPub(t *testing.T, scalar []byte) []byte {
	t.Helper()
	pub, err := cryptoadapt.ParseECDSAP256PrivateKey(scalar)
	require.NoError(t, err)
	return elliptic.Marshal(elliptic.P256(), pub.X, pub.Y)
}
