package cryptoadapt

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
)

// decodePEMOrRaw strips a PEM envelope if present, returning the inner DER
// bytes; otherwise returns raw unchanged. Accepts any PEM block type, since
// spec.md only requires "PEM/SPKI (RFC 8410)" acceptance, not a specific
// block-type check.
func decodePEMOrRaw(raw []byte) []byte {
	block, _ := pem.Decode(raw)
	if block == nil {
		return raw
	}
	return block.Bytes
}

// ParseEd25519PublicKey accepts either a 32-byte raw public key or a
// PEM/DER SubjectPublicKeyInfo (RFC 8410) wrapping one.
func ParseEd25519PublicKey(raw []byte) (ed25519.PublicKey, error) {
	if len(raw) == ed25519.PublicKeySize {
		return ed25519.PublicKey(raw), nil
	}

	der := decodePEMOrRaw(raw)
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, WrapInvalidKey("not a 32-byte raw key or a valid SPKI-encoded Ed25519 key", err)
	}
	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, WrapInvalidKey(fmt.Sprintf("SPKI key is not Ed25519 (got %T)", pub), nil)
	}
	return edPub, nil
}

// ParseEd25519PrivateKey accepts a 32-byte raw seed (the conventional
// "private key" length in spec.md §4.7) or a PEM/DER PKCS8 wrapping one.
func ParseEd25519PrivateKey(raw []byte) (ed25519.PrivateKey, error) {
	if len(raw) == ed25519.SeedSize {
		return ed25519.NewKeyFromSeed(raw), nil
	}
	if len(raw) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(raw), nil
	}

	der := decodePEMOrRaw(raw)
	priv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, WrapInvalidKey("not a 32/64-byte raw key or a valid PKCS8-encoded Ed25519 key", err)
	}
	edPriv, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, WrapInvalidKey(fmt.Sprintf("PKCS8 key is not Ed25519 (got %T)", priv), nil)
	}
	return edPriv, nil
}

// ParseECDSAP256PublicKey accepts a SEC1 point (33-byte compressed or
// 65-byte uncompressed) or a PEM/DER SubjectPublicKeyInfo wrapping one.
func ParseECDSAP256PublicKey(raw []byte) (*ecdsa.PublicKey, error) {
	curve := elliptic.P256()

	switch len(raw) {
	case 33:
		x, y := elliptic.UnmarshalCompressed(curve, raw)
		if x == nil {
			return nil, WrapInvalidKey("compressed SEC1 point is not on curve P-256", nil)
		}
		return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
	case 65:
		x, y := elliptic.Unmarshal(curve, raw)
		if x == nil {
			return nil, WrapInvalidKey("uncompressed SEC1 point is not on curve P-256", nil)
		}
		return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
	}

	der := decodePEMOrRaw(raw)
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, WrapInvalidKey("not a 33/65-byte SEC1 point or a valid SPKI-encoded P-256 key", err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok || ecPub.Curve != curve {
		return nil, WrapInvalidKey(fmt.Sprintf("SPKI key is not ECDSA P-256 (got %T)", pub), nil)
	}
	return ecPub, nil
}

// ParseECDSAP256PrivateKey accepts a 32-byte raw scalar or a PEM/DER PKCS8
// wrapping one.
func ParseECDSAP256PrivateKey(raw []byte) (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()

	if len(raw) == 32 {
		d := new(big.Int).SetBytes(raw)
		x, y := curve.ScalarBaseMult(raw)
		return &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
			D:         d,
		}, nil
	}

	der := decodePEMOrRaw(raw)
	priv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		if ecPriv, err2 := x509.ParseECPrivateKey(der); err2 == nil {
			return ecPriv, nil
		}
		return nil, WrapInvalidKey("not a 32-byte raw scalar or a valid PKCS8/SEC1-encoded P-256 key", err)
	}
	ecPriv, ok := priv.(*ecdsa.PrivateKey)
	if !ok || ecPriv.Curve != curve {
		return nil, WrapInvalidKey(fmt.Sprintf("PKCS8 key is not ECDSA P-256 (got %T)", priv), nil)
	}
	return ecPriv, nil
}
