package cryptoadapt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/mosip/claim169-go/internal/zeroize"
)

// NonceSize is the AES-GCM IV length spec.md §4.7 mandates.
const NonceSize = 12

// AESGCMCipher implements both Encryptor and Decryptor over a single
// in-process AES-GCM key (128 or 256-bit). The key is copied into an owned
// scratch buffer zeroized on Close.
type AESGCMCipher struct {
	key       []byte
	algorithm string
	aead      cipher.AEAD
}

// NewAESGCMCipher builds a cipher for a 16-byte (A128GCM) or 32-byte
// (A256GCM) key.
func NewAESGCMCipher(key []byte) (*AESGCMCipher, error) {
	var algorithm string
	switch len(key) {
	case 16:
		algorithm = AlgA128GCM
	case 32:
		algorithm = AlgA256GCM
	default:
		return nil, WrapInvalidKey(fmt.Sprintf("AES-GCM key must be 16 or 32 bytes, got %d", len(key)), nil)
	}

	owned := make([]byte, len(key))
	copy(owned, key)

	block, err := aes.NewCipher(owned)
	if err != nil {
		return nil, WrapInvalidKey("invalid AES key", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESGCMCipher{key: owned, algorithm: algorithm, aead: aead}, nil
}

// GenerateNonce returns a fresh CSPRNG nonce, never reused with the same key
// by construction (crypto/rand per call).
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

// Encrypt seals plaintext under aad, producing ciphertext||tag.
func (c *AESGCMCipher) Encrypt(algorithm string, kid, nonce, aad, plaintext []byte) ([]byte, error) {
	if algorithm != c.algorithm {
		return nil, WrapInvalidKey(fmt.Sprintf("AESGCMCipher configured for %s, got %q", c.algorithm, algorithm), nil)
	}
	if len(nonce) != NonceSize {
		return nil, WrapInvalidKey(fmt.Sprintf("AES-GCM nonce must be %d bytes, got %d", NonceSize, len(nonce)), nil)
	}
	return c.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Decrypt opens ciphertext||tag under aad.
func (c *AESGCMCipher) Decrypt(algorithm string, kid, nonce, aad, ciphertext []byte) ([]byte, error) {
	if algorithm != c.algorithm {
		return nil, WrapInvalidKey(fmt.Sprintf("AESGCMCipher configured for %s, got %q", c.algorithm, algorithm), nil)
	}
	if len(nonce) != NonceSize {
		return nil, WrapInvalidKey(fmt.Sprintf("AES-GCM nonce must be %d bytes, got %d", NonceSize, len(nonce)), nil)
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, err // wrapped DecryptionFailed by the calling pipeline stage
	}
	return plaintext, nil
}

// Close zeroizes the scratch key buffer.
func (c *AESGCMCipher) Close() {
	zeroize.Zero(c.key)
}
