// Package cwt implements the CWT claims layer (C5): mapping standard claim
// keys 1/2/4/5/6 to/from CwtMeta, mounting/extracting the Claim-169 payload
// under key 169, and the expires_at/not_before timestamp policy.
//
// Grounded on internal/cborcodec's Entry/DecodeMapEntries/EncodeDeterministicMap
// primitives (the CWT map is, structurally, just another deterministic CBOR
// map like a COSE header map), extended with the claim-specific key
// assignments from spec.md §6.
package cwt

import (
	"github.com/mosip/claim169-go/internal/cborcodec"
)

// Standard CWT claim keys this layer understands (RFC 8392 §3.1), plus the
// Claim-169 payload key.
const (
	ClaimIss      = 1
	ClaimSub      = 2
	ClaimExp      = 4
	ClaimNbf      = 5
	ClaimIat      = 6
	ClaimClaim169 = 169
)

// Meta is the CWT metadata surfaced to callers: issuer, subject, and the
// three Unix-epoch timestamps, each optional.
type Meta struct {
	Issuer    *string
	Subject   *string
	ExpiresAt *int64
	NotBefore *int64
	IssuedAt  *int64
}

// Decoded is the result of decoding a CWT map: the claim metadata, the raw
// (still-encoded) Claim-169 payload bytes, and any map entries this layer
// doesn't recognise, preserved for byte-exact re-encoding.
type Decoded struct {
	Meta       Meta
	PayloadRaw []byte
	Unknowns   []cborcodec.Entry
}

// Decode parses a CWT CBOR map (the bytes of the map itself, not wrapped in
// anything else) into its metadata, Claim-169 payload, and unknown entries.
// Missing key 169 fails with Claim169NotFound.
func Decode(data []byte) (*Decoded, error) {
	entries, err := cborcodec.DecodeMapEntries(data)
	if err != nil {
		return nil, WrapCwtParse("CWT claims are not a CBOR map", err)
	}

	d := &Decoded{}
	found169 := false

	for _, e := range entries {
		if e.IntKey == nil {
			d.Unknowns = append(d.Unknowns, e)
			continue
		}
		switch *e.IntKey {
		case ClaimIss:
			var s string
			if err := cborcodec.Unmarshal(e.Value, &s); err != nil {
				return nil, WrapCwtParse("claim 1 (iss) is not a text string", err)
			}
			d.Meta.Issuer = &s
		case ClaimSub:
			var s string
			if err := cborcodec.Unmarshal(e.Value, &s); err != nil {
				return nil, WrapCwtParse("claim 2 (sub) is not a text string", err)
			}
			d.Meta.Subject = &s
		case ClaimExp:
			v, err := decodeTimestamp(e.Value)
			if err != nil {
				return nil, WrapCwtParse("claim 4 (exp) is not an integer", err)
			}
			d.Meta.ExpiresAt = &v
		case ClaimNbf:
			v, err := decodeTimestamp(e.Value)
			if err != nil {
				return nil, WrapCwtParse("claim 5 (nbf) is not an integer", err)
			}
			d.Meta.NotBefore = &v
		case ClaimIat:
			v, err := decodeTimestamp(e.Value)
			if err != nil {
				return nil, WrapCwtParse("claim 6 (iat) is not an integer", err)
			}
			d.Meta.IssuedAt = &v
		case ClaimClaim169:
			found169 = true
			d.PayloadRaw = []byte(e.Value)
		default:
			d.Unknowns = append(d.Unknowns, e)
		}
	}

	if !found169 {
		return nil, ErrClaim169NotFound()
	}

	return d, nil
}

func decodeTimestamp(raw cborcodec.RawMessage) (int64, error) {
	var v int64
	if err := cborcodec.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Encode assembles the CWT claims map bytes from metadata, the already-
// encoded Claim-169 payload, and any unknown entries to preserve.
func Encode(meta Meta, payloadRaw []byte, unknowns []cborcodec.Entry) ([]byte, error) {
	entries := make([]cborcodec.Entry, 0, 6+len(unknowns))

	if meta.Issuer != nil {
		e, err := cborcodec.IntEntry(ClaimIss, *meta.Issuer)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if meta.Subject != nil {
		e, err := cborcodec.IntEntry(ClaimSub, *meta.Subject)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if meta.ExpiresAt != nil {
		e, err := cborcodec.IntEntry(ClaimExp, *meta.ExpiresAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if meta.NotBefore != nil {
		e, err := cborcodec.IntEntry(ClaimNbf, *meta.NotBefore)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if meta.IssuedAt != nil {
		e, err := cborcodec.IntEntry(ClaimIat, *meta.IssuedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	payloadKey := int64(ClaimClaim169)
	entries = append(entries, cborcodec.Entry{IntKey: &payloadKey, Value: cborcodec.RawMessage(payloadRaw)})
	entries = append(entries, unknowns...)

	return cborcodec.EncodeDeterministicMap(entries)
}

// ValidateTimestamps applies the §4.5 timestamp policy: now is the host
// clock (Unix seconds), tolerance is the non-negative clock skew allowance.
// A zero-value Meta field means the claim was absent and is never checked.
func ValidateTimestamps(meta Meta, now, tolerance int64) error {
	if meta.ExpiresAt != nil && now > *meta.ExpiresAt+tolerance {
		return ErrExpired(*meta.ExpiresAt)
	}
	if meta.NotBefore != nil && now+tolerance < *meta.NotBefore {
		return ErrNotYetValid(*meta.NotBefore)
	}
	return nil
}
