package cose

import "github.com/mosip/claim169-go/internal/cborcodec"

// sigStructure mirrors the teacher's Sig_structure type in main/cose_signer.go,
// a CBOR array encoded with the toarray struct tag:
//
//	Sig_structure = ["Signature1", protected, external_aad(empty), payload]
type sigStructure struct {
	_               struct{} `cbor:",toarray"`
	Context         string
	ProtectedHeader []byte
	External        []byte
	Payload         []byte
}

// SigStructureContext is the fixed context string for COSE_Sign1 (§3, RFC 9052
// §4.4).
const SigStructureContext = "Signature1"

// BuildSigStructure reconstructs the canonical Sig_structure for a COSE_Sign1
// payload. protectedRaw must be the exact bytes of the protected header bstr
// content — on decode, the bytes as received; on encode, the bytes this
// library just built — so signer and verifier always operate over the same
// ToBeSigned value.
func BuildSigStructure(protectedRaw, payload []byte) ([]byte, error) {
	if payload == nil {
		payload = []byte{}
	}
	s := sigStructure{
		Context:         SigStructureContext,
		ProtectedHeader: protectedRaw,
		External:        []byte{},
		Payload:         payload,
	}
	return cborcodec.Marshal(s)
}

// encStructure mirrors RFC 9052 §5.3:
//
//	Enc_structure = ["Encrypt0", protected, external_aad(empty)]
type encStructure struct {
	_               struct{} `cbor:",toarray"`
	Context         string
	ProtectedHeader []byte
	External        []byte
}

// EncStructureContext is the fixed context string for COSE_Encrypt0.
const EncStructureContext = "Encrypt0"

// BuildEncStructure reconstructs the canonical Enc_structure used as AEAD
// additional authenticated data.
func BuildEncStructure(protectedRaw []byte) ([]byte, error) {
	s := encStructure{
		Context:         EncStructureContext,
		ProtectedHeader: protectedRaw,
		External:        []byte{},
	}
	return cborcodec.Marshal(s)
}
