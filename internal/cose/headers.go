// Package cose implements the COSE_Sign1 / COSE_Encrypt0 structural
// encoder/verifier (C4): building and parsing the 4-/3-tuples, reconstructing
// the canonical Sig_structure / Enc_structure byte-for-byte, and resolving
// header values under the protected-wins tie-break rule.
//
// Grounded on the teacher's main/cose_signer.go, which hand-builds the same
// COSE_Sign1 shape and Sig_structure with a canonical cbor.EncMode; extended
// here to also cover COSE_Encrypt0, text-form `alg` values (see Open Question
// #1 in DESIGN.md), and unknown-header-label preservation.
package cose

import (
	"fmt"

	"github.com/mosip/claim169-go/internal/cborcodec"
)

// Common COSE header parameter labels (RFC 9052 §3.1).
const (
	LabelAlg = 1
	LabelKid = 4
	LabelIV  = 5
)

// CBOR tags for the two envelope shapes this package understands.
const (
	TagSign1    = 18
	TagEncrypt0 = 16
)

// AlgID is a COSE algorithm identifier, e.g. -8 for EdDSA.
type AlgID int64

const (
	AlgEdDSA   AlgID = -8
	AlgES256   AlgID = -7
	AlgA128GCM AlgID = 1
	AlgA256GCM AlgID = 3
)

// Name returns the algorithm's registered short name.
func (a AlgID) Name() (string, error) {
	switch a {
	case AlgEdDSA:
		return "EdDSA", nil
	case AlgES256:
		return "ES256", nil
	case AlgA128GCM:
		return "A128GCM", nil
	case AlgA256GCM:
		return "A256GCM", nil
	default:
		return "", fmt.Errorf("cose: unsupported alg %d", a)
	}
}

// algByName maps the registered short names back to their AlgID, used when a
// protected header carries alg as a text string instead of an integer (Open
// Question #1: source accepts this defensively, so this library does too).
var algByName = map[string]AlgID{
	"EdDSA":   AlgEdDSA,
	"ES256":   AlgES256,
	"A128GCM": AlgA128GCM,
	"A256GCM": AlgA256GCM,
}

// DecodeAlg decodes a header value that is either a CBOR integer or a CBOR
// text string naming the algorithm.
func DecodeAlg(raw cborcodec.RawMessage) (AlgID, error) {
	var asInt int64
	if err := cborcodec.Unmarshal(raw, &asInt); err == nil {
		return AlgID(asInt), nil
	}
	var asText string
	if err := cborcodec.Unmarshal(raw, &asText); err == nil {
		if id, ok := algByName[asText]; ok {
			return id, nil
		}
		return 0, fmt.Errorf("cose: unrecognised alg name %q", asText)
	}
	return 0, fmt.Errorf("cose: alg header is neither integer nor text")
}

// BuildHeaderMap assembles a definite-length, canonically-ordered CBOR header
// map from the given label/value entries.
func BuildHeaderMap(entries []cborcodec.Entry) ([]byte, error) {
	return cborcodec.EncodeDeterministicMap(entries)
}

// AlgEntry builds a protected-header entry carrying alg as a canonical
// integer, the form this library always produces on encode.
func AlgEntry(alg AlgID) (cborcodec.Entry, error) {
	return cborcodec.IntEntry(LabelAlg, int64(alg))
}

// KidEntry builds a kid header entry.
func KidEntry(kid []byte) (cborcodec.Entry, error) {
	return cborcodec.IntEntry(LabelKid, kid)
}

// IVEntry builds an iv header entry.
func IVEntry(iv []byte) (cborcodec.Entry, error) {
	return cborcodec.IntEntry(LabelIV, iv)
}

// ResolvedHeader is the outcome of merging protected and unprotected header
// maps under the protected-wins tie-break rule (§4.4).
type ResolvedHeader struct {
	Protected   []cborcodec.Entry
	Unprotected []cborcodec.Entry
	// DuplicateLabels lists labels present in both maps, where the protected
	// value won; callers surface these as warnings.
	DuplicateLabels []int64
}

func findEntry(entries []cborcodec.Entry, label int64) (cborcodec.Entry, bool) {
	for _, e := range entries {
		if e.IntKey != nil && *e.IntKey == label {
			return e, true
		}
	}
	return cborcodec.Entry{}, false
}

// Value returns the effective value for label, preferring the protected map,
// and reports whether the label appeared in either map. Labels present in
// both maps are listed in DuplicateLabels.
func (h ResolvedHeader) Value(label int64) (cborcodec.RawMessage, bool) {
	if e, ok := findEntry(h.Protected, label); ok {
		return e.Value, true
	}
	if e, ok := findEntry(h.Unprotected, label); ok {
		return e.Value, true
	}
	return nil, false
}

// NewResolvedHeader merges protected and unprotected entries, recording any
// label that appears in both (protected wins the value, per §4.4).
func NewResolvedHeader(protected, unprotected []cborcodec.Entry) ResolvedHeader {
	rh := ResolvedHeader{Protected: protected, Unprotected: unprotected}
	for _, pe := range protected {
		if pe.IntKey == nil {
			continue
		}
		if _, ok := findEntry(unprotected, *pe.IntKey); ok {
			rh.DuplicateLabels = append(rh.DuplicateLabels, *pe.IntKey)
		}
	}
	return rh
}
