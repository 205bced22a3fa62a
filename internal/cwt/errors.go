package cwt

import "github.com/mosip/claim169-go/internal/perr"

const stage = "C5"

// WrapCwtParse builds a CwtParse-tagged error for malformed CWT maps.
func WrapCwtParse(msg string, cause error) error {
	return perr.New(perr.CwtParse, stage, msg, cause)
}

// ErrClaim169NotFound is raised when the CWT map carries no key 169.
func ErrClaim169NotFound() error {
	return perr.New(perr.Claim169NotFound, stage, "no key 169 (Claim-169 payload) in CWT map", nil)
}

// ErrExpired is raised when now > expires_at + tolerance.
func ErrExpired(expiresAt int64) error {
	return perr.New(perr.Expired, stage, "credential has expired", &expiredDetail{ExpiresAt: expiresAt})
}

// ErrNotYetValid is raised when now + tolerance < not_before.
func ErrNotYetValid(notBefore int64) error {
	return perr.New(perr.NotYetValid, stage, "credential is not yet valid", &notYetValidDetail{NotBefore: notBefore})
}

// expiredDetail/notYetValidDetail carry the offending timestamp as the
// wrapped cause so callers that type-assert on perr.Error.Cause can recover
// it without a second exported package.
type expiredDetail struct{ ExpiresAt int64 }

func (e *expiredDetail) Error() string { return "expires_at exceeded" }

type notYetValidDetail struct{ NotBefore int64 }

func (e *notYetValidDetail) Error() string { return "not_before not reached" }

// ExpiresAt extracts the offending expires_at timestamp from an Expired error, if present.
func ExpiresAt(err error) (int64, bool) {
	if d, ok := err.(*expiredDetail); ok {
		return d.ExpiresAt, true
	}
	if e, ok := err.(*perr.Error); ok {
		if d, ok := e.Cause.(*expiredDetail); ok {
			return d.ExpiresAt, true
		}
	}
	return 0, false
}

// NotBefore extracts the offending not_before timestamp from a NotYetValid error, if present.
func NotBefore(err error) (int64, bool) {
	if d, ok := err.(*notYetValidDetail); ok {
		return d.NotBefore, true
	}
	if e, ok := err.(*perr.Error); ok {
		if d, ok := e.Cause.(*notYetValidDetail); ok {
			return d.NotBefore, true
		}
	}
	return 0, false
}
