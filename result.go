package claim169

import "github.com/mosip/claim169-go/internal/zeroize"

// VerificationStatus reports the outcome of the COSE_Sign1 verification
// step, per spec.md §4.8.
type VerificationStatus string

const (
	// Verified means a verifier ran and accepted the signature.
	Verified VerificationStatus = "Verified"
	// Skipped means allow_unverified was chosen and no verifier ran.
	Skipped VerificationStatus = "Skipped"
	// Failed is reserved for structured result reporting when a driver is
	// configured to continue past a rejected signature; by default a
	// rejected signature is an error (SignatureInvalid), not this status.
	Failed VerificationStatus = "Failed"
)

// DecodeResult is the outcome of a successful Decode call.
type DecodeResult struct {
	Claim169           Claim169
	CwtMeta            CwtMeta
	VerificationStatus VerificationStatus
	Warnings           []string

	// CwtUnknownClaims preserves any top-level CWT claim-map entry outside
	// the recognised set (1/2/4/5/6/169), byte-exact. Pass it to
	// Encoder.PreserveCwtUnknownClaims to keep it across a decode/re-encode
	// round trip (spec.md's unknown-field-preservation property applies at
	// the CWT layer too, not just inside the Claim169 payload).
	CwtUnknownClaims []UnknownEntry
}

// ScopedResult wraps a DecodeResult with an explicit Release method that
// zeroizes every tracked biometric/photo buffer (§5). DecodeResult itself
// never auto-zeroizes; call Release from a defer at the caller's scope
// boundary.
type ScopedResult struct {
	DecodeResult
	released bool
}

// NewScopedResult wraps a DecodeResult for scoped zeroization.
func NewScopedResult(r DecodeResult) *ScopedResult {
	return &ScopedResult{DecodeResult: r}
}

// Release overwrites every tracked secret buffer (photo, biometric
// template/sound/hash data) with zeros. Safe to call more than once.
func (s *ScopedResult) Release() {
	if s.released {
		return
	}
	s.released = true

	zeroize.Zero(s.Claim169.Photo)
	for _, group := range s.Claim169.Biometrics {
		for i := range group {
			zeroize.Zero(group[i].Data)
		}
	}
}
