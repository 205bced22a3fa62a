package cryptoadapt

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/mosip/claim169-go/internal/zeroize"
)

// ECDSAP256Signer signs with an in-process ECDSA P-256 private key, hashing
// the input with SHA-256 before signing (ES256, RFC 9053 §8.1). The scalar
// is copied into an owned scratch buffer zeroized on Close.
type ECDSAP256Signer struct {
	priv    *ecdsa.PrivateKey
	scratch []byte
}

// NewECDSAP256Signer parses raw (32-byte scalar or PEM/PKCS8/SEC1).
func NewECDSAP256Signer(raw []byte) (*ECDSAP256Signer, error) {
	priv, err := ParseECDSAP256PrivateKey(raw)
	if err != nil {
		return nil, err
	}
	scratch := priv.D.Bytes()
	return &ECDSAP256Signer{priv: priv, scratch: scratch}, nil
}

// Sign signs data; algorithm must be "ES256". Returns the fixed-size
// r||s encoding (64 bytes) rather than ASN.1 DER, matching COSE's
// convention for ECDSA signatures.
func (s *ECDSAP256Signer) Sign(algorithm string, kid, data []byte) ([]byte, error) {
	if algorithm != AlgES256 {
		return nil, WrapInvalidKey(fmt.Sprintf("ECDSAP256Signer does not support algorithm %q", algorithm), nil)
	}
	digest := sha256.Sum256(data)
	r, sVal, err := ecdsa.Sign(rand.Reader, s.priv, digest[:])
	if err != nil {
		return nil, err
	}
	return fixedSizeRS(r, sVal), nil
}

// Close zeroizes the scratch scalar buffer.
func (s *ECDSAP256Signer) Close() {
	zeroize.Zero(s.scratch)
}

func fixedSizeRS(r, s *big.Int) []byte {
	out := make([]byte, 64)
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	copy(out[32-len(rBytes):32], rBytes)
	copy(out[64-len(sBytes):64], sBytes)
	return out
}

// ECDSAP256Verifier verifies with an in-process ECDSA P-256 public key.
type ECDSAP256Verifier struct {
	pub *ecdsa.PublicKey
}

// NewECDSAP256Verifier parses raw (33/65-byte SEC1 point or PEM/SPKI).
func NewECDSAP256Verifier(raw []byte) (*ECDSAP256Verifier, error) {
	pub, err := ParseECDSAP256PublicKey(raw)
	if err != nil {
		return nil, err
	}
	return &ECDSAP256Verifier{pub: pub}, nil
}

// Verify checks signature (64-byte r||s) against data; algorithm must be
// "ES256". Always returns an explicit verdict.
func (v *ECDSAP256Verifier) Verify(algorithm string, kid, data, signature []byte) (VerifyResult, error) {
	if algorithm != AlgES256 {
		return VerifyResult{}, WrapInvalidKey(fmt.Sprintf("ECDSAP256Verifier does not support algorithm %q", algorithm), nil)
	}
	if len(signature) != 64 {
		return VerifyResult{Valid: false, Reason: "ecdsa signature must be 64 bytes (r||s)"}, nil
	}
	r := new(big.Int).SetBytes(signature[:32])
	sVal := new(big.Int).SetBytes(signature[32:])

	digest := sha256.Sum256(data)
	if ecdsa.Verify(v.pub, digest[:], r, sVal) {
		return VerifyResult{Valid: true}, nil
	}
	return VerifyResult{Valid: false, Reason: "ecdsa signature verification failed"}, nil
}
