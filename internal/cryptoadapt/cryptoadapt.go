// Package cryptoadapt implements the crypto layer (C7): the four
// single-method capability contracts (Signer/Verifier/Encryptor/Decryptor)
// and the built-in Ed25519, ECDSA P-256, and AES-GCM implementations spec.md
// §4.7 requires.
//
// The capability interfaces are narrow on purpose, grounded on the teacher's
// main/protocol.go pattern of embedding a `ubirch.Crypto` interface and
// depending only on its method set everywhere else in the codebase — here the
// same shape lets a callback-based host binding satisfy Signer/Verifier/
// Encryptor/Decryptor with a closure-wrapping struct instead of a concrete
// software implementation.
package cryptoadapt

// Signer signs data under the named algorithm and opaque key handle.
type Signer interface {
	Sign(algorithm string, kid, data []byte) ([]byte, error)
}

// VerifyResult is the explicit verdict a Verifier must return. Per spec.md
// §4.7 the return type must force an explicit verdict; there is no
// zero-value/default that reads as "valid".
type VerifyResult struct {
	Valid  bool
	Reason string
}

// Verifier checks a signature and returns an explicit verdict.
type Verifier interface {
	Verify(algorithm string, kid, data, signature []byte) (VerifyResult, error)
}

// Encryptor performs AEAD encryption under the named algorithm.
type Encryptor interface {
	Encrypt(algorithm string, kid, nonce, aad, plaintext []byte) ([]byte, error)
}

// Decryptor performs AEAD decryption under the named algorithm.
type Decryptor interface {
	Decrypt(algorithm string, kid, nonce, aad, ciphertext []byte) ([]byte, error)
}

// Algorithm names used across the built-in adapters, matching the COSE alg
// names from internal/cose.
const (
	AlgEdDSA   = "EdDSA"
	AlgES256   = "ES256"
	AlgA128GCM = "A128GCM"
	AlgA256GCM = "A256GCM"
)
