package cose

import (
	"fmt"

	"github.com/mosip/claim169-go/internal/cborcodec"
)

// wireSign1 mirrors the teacher's COSE_Sign1 struct in main/cose_signer.go,
// but holds every field as cbor.RawMessage instead of concrete Go types so raw
// bytes survive decode for byte-exact Sig_structure reconstruction and
// unknown-header preservation.
type wireSign1 struct {
	_           struct{} `cbor:",toarray"`
	Protected   cborcodec.RawMessage
	Unprotected cborcodec.RawMessage
	Payload     cborcodec.RawMessage
	Signature   cborcodec.RawMessage
}

// Sign1 is a parsed or to-be-built COSE_Sign1 object.
type Sign1 struct {
	ProtectedRaw []byte // exact bytes of the protected header map (unwrapped from its bstr)
	Protected    []cborcodec.Entry
	Unprotected  []cborcodec.Entry
	Payload      []byte
	PayloadIsNil bool
	Signature    []byte
	Tagged       bool
}

// ParseSign1 decodes a COSE_Sign1 object, tagged (18) or untagged.
func ParseSign1(data []byte) (*Sign1, error) {
	tagNum, tagged, content, err := peekTag(data)
	if err != nil {
		return nil, WrapCoseParse("malformed input", err)
	}
	if tagged && tagNum != TagSign1 {
		return nil, WrapCoseParse(fmt.Sprintf("unexpected CBOR tag %d for COSE_Sign1", tagNum), nil)
	}

	n, err := arrayLength(content)
	if err != nil {
		return nil, WrapCoseParse("not a CBOR array", err)
	}
	if n != 4 {
		return nil, WrapCoseParse(fmt.Sprintf("COSE_Sign1 must have 4 elements, got %d", n), nil)
	}

	var wire wireSign1
	if err := cborcodec.Unmarshal(content, &wire); err != nil {
		return nil, WrapCoseParse("decoding COSE_Sign1 array", err)
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

	s := &Sign1{
		ProtectedRaw: protectedRaw,
		Protected:    protectedEntries,
		Unprotected:  unprotectedEntries,
		Tagged:       tagged,
	}

	if isNil(wire.Payload) {
		s.PayloadIsNil = true
	} else {
		if err := cborcodec.Unmarshal(wire.Payload, &s.Payload); err != nil {
			return nil, WrapCoseParse("payload is not a byte string", err)
		}
	}

	if err := cborcodec.Unmarshal(wire.Signature, &s.Signature); err != nil {
		return nil, WrapCoseParse("signature is not a byte string", err)
	}

	return s, nil
}

func isNil(raw cborcodec.RawMessage) bool {
	return len(raw) == 1 && raw[0] == 0xf6
}

// SigStructure reconstructs the canonical Sig_structure for this object, using
// the exact protected-header bytes as received (or built).
func (s *Sign1) SigStructure() ([]byte, error) {
	return BuildSigStructure(s.ProtectedRaw, s.Payload)
}

// ResolvedHeader merges this object's protected/unprotected maps under the
// protected-wins tie-break rule.
func (s *Sign1) ResolvedHeader() ResolvedHeader {
	return NewResolvedHeader(s.Protected, s.Unprotected)
}

// BuildSign1 assembles the wire bytes for a COSE_Sign1 object, tagged 18.
func BuildSign1(protectedRaw []byte, unprotected []cborcodec.Entry, payload []byte, signature []byte) ([]byte, error) {
	unprotectedMap, err := cborcodec.EncodeDeterministicMap(unprotected)
	if err != nil {
		return nil, err
	}

	protectedBstr, err := cborcodec.Marshal(protectedRaw)
	if err != nil {
		return nil, err
	}

	wire := wireSign1{
		Protected:   protectedBstr,
		Unprotected: cborcodec.RawMessage(unprotectedMap),
		Signature:   mustMarshalBytes(signature),
	}
	if payload == nil {
		wire.Payload = cborcodec.RawMessage([]byte{0xf6}) // CBOR null
	} else {
		wire.Payload = mustMarshalBytes(payload)
	}

	arr, err := cborcodec.Marshal(wire)
	if err != nil {
		return nil, err
	}

	return cborcodec.Marshal(cborcodec.Tag{Number: TagSign1, Content: cborcodec.RawMessage(arr)})
}

func mustMarshalBytes(b []byte) cborcodec.RawMessage {
	if b == nil {
		// The encode mode writes a nil slice as CBOR null; an empty byte
		// string is what COSE expects here.
		b = []byte{}
	}
	raw, err := cborcodec.Marshal(b)
	if err != nil {
		// Marshaling a []byte to a CBOR byte string cannot fail.
		panic(err)
	}
	return cborcodec.RawMessage(raw)
}
