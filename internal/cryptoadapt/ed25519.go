package cryptoadapt

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mosip/claim169-go/internal/zeroize"
)

// Ed25519Signer signs with an in-process Ed25519 private key. The key
// material is copied into a scratch buffer that is zeroized on Close.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
}

// NewEd25519Signer parses raw (32-byte seed, 64-byte expanded key, or
// PEM/PKCS8) and copies it into an owned scratch buffer.
func NewEd25519Signer(raw []byte) (*Ed25519Signer, error) {
	priv, err := ParseEd25519PrivateKey(raw)
	if err != nil {
		return nil, err
	}
	owned := make(ed25519.PrivateKey, len(priv))
	copy(owned, priv)
	return &Ed25519Signer{priv: owned}, nil
}

// Sign signs data; algorithm must be "EdDSA".
func (s *Ed25519Signer) Sign(algorithm string, kid, data []byte) ([]byte, error) {
	if algorithm != AlgEdDSA {
		return nil, WrapInvalidKey(fmt.Sprintf("Ed25519Signer does not support algorithm %q", algorithm), nil)
	}
	return ed25519.Sign(s.priv, data), nil
}

// Close zeroizes the scratch private key buffer.
func (s *Ed25519Signer) Close() {
	zeroize.Zero(s.priv)
}

// Ed25519Verifier verifies with an in-process Ed25519 public key.
type Ed25519Verifier struct {
	pub ed25519.PublicKey
}

// NewEd25519Verifier parses raw (32-byte raw key or PEM/SPKI).
func NewEd25519Verifier(raw []byte) (*Ed25519Verifier, error) {
	pub, err := ParseEd25519PublicKey(raw)
	if err != nil {
		return nil, err
	}
	return &Ed25519Verifier{pub: pub}, nil
}

// Verify checks signature against data; algorithm must be "EdDSA". The
// result always carries an explicit verdict: ed25519.Verify returning false
// maps to Valid:false, never a default "valid".
func (v *Ed25519Verifier) Verify(algorithm string, kid, data, signature []byte) (VerifyResult, error) {
	if algorithm != AlgEdDSA {
		return VerifyResult{}, WrapInvalidKey(fmt.Sprintf("Ed25519Verifier does not support algorithm %q", algorithm), nil)
	}
	if ed25519.Verify(v.pub, data, signature) {
		return VerifyResult{Valid: true}, nil
	}
	return VerifyResult{Valid: false, Reason: "ed25519 signature verification failed"}, nil
}
