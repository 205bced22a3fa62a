// Package cborcodec wraps github.com/fxamacker/cbor/v2 with the two contracts
// C3 needs: a canonical encode mode for ordinary typed values, and a
// deterministic map assembler/disassembler that implements the specific
// ordering rule spec §4.3 requires (integer keys before text keys, integers
// sorted numerically, text keys sorted lexicographically by UTF-8 bytes) while
// preserving the raw bytes of any map entry whose key isn't recognised by the
// caller's schema, so it can be re-emitted byte-for-byte on re-encode.
//
// Grounded on the teacher's main/cose_signer.go initCBOREncMode, which builds
// its encode mode from cbor.CanonicalEncOptions(); that canonical mode is used
// here for ordinary (non-map-root) values, since fxamacker's built-in canonical
// sort (RFC 7049 length-first) already happens to agree with ascending-key
// order for same-width integer keys and isn't relied upon for the mixed
// int/text top-level maps, which are assembled by hand instead.
package cborcodec

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// EncMode is the shared canonical encode mode: shortest-form integers,
// definite-length containers, no indefinite-length items.
var EncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cborcodec: building canonical encode mode: %v", err))
	}
	return m
}

// Marshal encodes v using the shared canonical encode mode.
func Marshal(v interface{}) ([]byte, error) {
	return EncMode.Marshal(v)
}

// Unmarshal decodes data into v using fxamacker/cbor's permissive defaults,
// which accept indefinite-length items and any integer encoding width.
func Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

// RawMessage re-exports cbor.RawMessage so callers outside this package never
// need to import fxamacker/cbor directly.
type RawMessage = cbor.RawMessage

// Tag re-exports cbor.Tag for callers that need to wrap/unwrap CBOR tags.
type Tag = cbor.Tag

// Entry is one key/value pair of a CBOR map, keyed by either an integer or a
// text string (never both), with the value held as already-encoded raw CBOR
// bytes so unknown fields can be preserved verbatim.
type Entry struct {
	IntKey  *int64
	TextKey *string
	Value   RawMessage
}

// IntEntry builds an Entry with an integer key whose value is canonically
// marshaled from v.
func IntEntry(key int64, v interface{}) (Entry, error) {
	raw, err := Marshal(v)
	if err != nil {
		return Entry{}, err
	}
	k := key
	return Entry{IntKey: &k, Value: raw}, nil
}

// TextEntry builds an Entry with a text key whose value is canonically
// marshaled from v.
func TextEntry(key string, v interface{}) (Entry, error) {
	raw, err := Marshal(v)
	if err != nil {
		return Entry{}, err
	}
	k := key
	return Entry{TextKey: &k, Value: raw}, nil
}

// EncodeDeterministicMap assembles entries into a definite-length CBOR map
// whose entries are sorted per §4.3: integer keys before text keys, integer
// keys ascending numerically, text keys ascending lexicographically by UTF-8
// bytes.
func EncodeDeterministicMap(entries []Entry) ([]byte, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return entryLess(sorted[i], sorted[j])
	})

	head, err := mapHeader(len(sorted))
	if err != nil {
		return nil, err
	}

	out := head
	for _, e := range sorted {
		keyBytes, err := encodeKey(e)
		if err != nil {
			return nil, err
		}
		out = append(out, keyBytes...)
		out = append(out, e.Value...)
	}
	return out, nil
}

func entryLess(a, b Entry) bool {
	aIsInt := a.IntKey != nil
	bIsInt := b.IntKey != nil
	if aIsInt != bIsInt {
		return aIsInt // integer keys sort before text keys
	}
	if aIsInt {
		return *a.IntKey < *b.IntKey
	}
	return *a.TextKey < *b.TextKey // lexicographic over UTF-8 bytes
}

func encodeKey(e Entry) ([]byte, error) {
	if e.IntKey != nil {
		return Marshal(*e.IntKey)
	}
	return Marshal(*e.TextKey)
}

// mapHeader encodes a definite-length CBOR map header (major type 5) for n
// pairs, using the shortest integer encoding for n, mirroring how
// cbor.CanonicalEncOptions() would encode a map of this size.
func mapHeader(n int) ([]byte, error) {
	switch {
	case n < 24:
		return []byte{0xA0 | byte(n)}, nil
	case n < 256:
		return []byte{0xB8, byte(n)}, nil
	case n < 65536:
		return []byte{0xB9, byte(n >> 8), byte(n)}, nil
	default:
		return nil, fmt.Errorf("cborcodec: map too large (%d entries)", n)
	}
}

// DecodeMapEntries decodes a CBOR map into its raw entries, preserving the
// original encoded bytes of every value so unrecognised keys can be re-emitted
// verbatim. Integer keys are normalized to int64; all other key kinds are
// treated as text keys via fmt.Sprint (CWT/Claim169 maps only ever use integer
// keys in this schema, so this path is exercised only defensively).
func DecodeMapEntries(data []byte) ([]Entry, error) {
	var raw map[interface{}]RawMessage
	if err := Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for k, v := range raw {
		switch key := k.(type) {
		case int64:
			kk := key
			entries = append(entries, Entry{IntKey: &kk, Value: v})
		case uint64:
			kk := int64(key)
			entries = append(entries, Entry{IntKey: &kk, Value: v})
		case string:
			kk := key
			entries = append(entries, Entry{TextKey: &kk, Value: v})
		default:
			kk := fmt.Sprint(key)
			entries = append(entries, Entry{TextKey: &kk, Value: v})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entryLess(entries[i], entries[j]) })
	return entries, nil
}
