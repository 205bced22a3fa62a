package cose

import (
	"fmt"

	"github.com/mosip/claim169-go/internal/cborcodec"
)

// wireEncrypt0 is the 3-element COSE_Encrypt0 array (RFC 9052 §5.2):
//
//	COSE_Encrypt0 = [protected, unprotected, ciphertext]
type wireEncrypt0 struct {
	_           struct{} `cbor:",toarray"`
	Protected   cborcodec.RawMessage
	Unprotected cborcodec.RawMessage
	Ciphertext  cborcodec.RawMessage
}

// Encrypt0 is a parsed or to-be-built COSE_Encrypt0 object.
type Encrypt0 struct {
	ProtectedRaw []byte
	Protected    []cborcodec.Entry
	Unprotected  []cborcodec.Entry
	Ciphertext   []byte
	Tagged       bool
}

// ParseEncrypt0 decodes a COSE_Encrypt0 object, tagged (16) or untagged.
func ParseEncrypt0(data []byte) (*Encrypt0, error) {
	tagNum, tagged, content, err := peekTag(data)
	if err != nil {
		return nil, WrapCoseParse("malformed input", err)
	}
	if tagged && tagNum != TagEncrypt0 {
		return nil, WrapCoseParse(fmt.Sprintf("unexpected CBOR tag %d for COSE_Encrypt0", tagNum), nil)
	}

	n, err := arrayLength(content)
	if err != nil {
		return nil, WrapCoseParse("not a CBOR array", err)
	}
	if n != 3 {
		return nil, WrapCoseParse(fmt.Sprintf("COSE_Encrypt0 must have 3 elements, got %d", n), nil)
	}

	var wire wireEncrypt0
	if err := cborcodec.Unmarshal(content, &wire); err != nil {
		return nil, WrapCoseParse("decoding COSE_Encrypt0 array", err)
	}

	var protectedRaw []byte
	if len(wire.Protected) > 0 {
		if err := cborcodec.Unmarshal(wire.Protected, &protectedRaw); err != nil {
			return nil, WrapCoseParse("protected header is not a byte string", err)
		}
	}

	var protectedEntries []cborcodec.Entry
	if len(protectedRaw) > 0 {
		protectedEntries, err = cborcodec.DecodeMapEntries(protectedRaw)
		if err != nil {
			return nil, WrapCoseParse("protected header is not a CBOR map", err)
		}
	}

	unprotectedEntries, err := cborcodec.DecodeMapEntries(wire.Unprotected)
	if err != nil {
		return nil, WrapCoseParse("unprotected header is not a CBOR map", err)
	}

	e := &Encrypt0{
		ProtectedRaw: protectedRaw,
		Protected:    protectedEntries,
		Unprotected:  unprotectedEntries,
		Tagged:       tagged,
	}

	if err := cborcodec.Unmarshal(wire.Ciphertext, &e.Ciphertext); err != nil {
		return nil, WrapCoseParse("ciphertext is not a byte string", err)
	}

	return e, nil
}

// EncStructure reconstructs the canonical Enc_structure used as AEAD AAD.
func (e *Encrypt0) EncStructure() ([]byte, error) {
	return BuildEncStructure(e.ProtectedRaw)
}

// ResolvedHeader merges this object's protected/unprotected maps under the
// protected-wins tie-break rule.
func (e *Encrypt0) ResolvedHeader() ResolvedHeader {
	return NewResolvedHeader(e.Protected, e.Unprotected)
}

// BuildEncrypt0 assembles the wire bytes for a COSE_Encrypt0 object, tagged 16.
func BuildEncrypt0(protectedRaw []byte, unprotected []cborcodec.Entry, ciphertext []byte) ([]byte, error) {
	unprotectedMap, err := cborcodec.EncodeDeterministicMap(unprotected)
	if err != nil {
		return nil, err
	}

	protectedBstr, err := cborcodec.Marshal(protectedRaw)
	if err != nil {
		return nil, err
	}

	wire := wireEncrypt0{
		Protected:   protectedBstr,
		Unprotected: cborcodec.RawMessage(unprotectedMap),
		Ciphertext:  mustMarshalBytes(ciphertext),
	}

	arr, err := cborcodec.Marshal(wire)
	if err != nil {
		return nil, err
	}

	return cborcodec.Marshal(cborcodec.Tag{Number: TagEncrypt0, Content: cborcodec.RawMessage(arr)})
}
