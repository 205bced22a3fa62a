// Package perr holds the stage-tagged error type (C9) that every layer of the
// pipeline raises. It lives in its own internal package (rather than directly
// in the root claim169 package) purely so internal/* packages can construct
// these errors without an import cycle back through the root package; the root
// package re-exports these types via aliases so the public API is unaffected.
package perr

import "fmt"

// ErrorCode is a stable, binding-friendly identifier for every failure the
// pipeline can surface. Names are frozen so language bindings can map them 1:1.
type ErrorCode string

const (
	Base45Decode            ErrorCode = "Base45Decode"
	Decompress              ErrorCode = "Decompress"
	DecompressLimitExceeded ErrorCode = "DecompressLimitExceeded"
	CoseParse               ErrorCode = "CoseParse"
	SignatureInvalid        ErrorCode = "SignatureInvalid"
	DecryptionFailed        ErrorCode = "DecryptionFailed"
	CwtParse                ErrorCode = "CwtParse"
	Claim169NotFound        ErrorCode = "Claim169NotFound"
	Expired                 ErrorCode = "Expired"
	NotYetValid             ErrorCode = "NotYetValid"
	Claim169Parse           ErrorCode = "Claim169Parse"
	DecodingConfig          ErrorCode = "DecodingConfig"
	EncodingConfig          ErrorCode = "EncodingConfig"
	InvalidKey              ErrorCode = "InvalidKey"
)

// Error is the single stage-tagged error type used across every layer of the
// pipeline. It never carries key material or plaintext.
type Error struct {
	Code    ErrorCode
	Stage   string // "C1".."C9"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Code, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Stage, e.Message)
}

// Unwrap allows errors.Is/errors.As to reach the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New constructs a stage-tagged Error.
func New(code ErrorCode, stage, msg string, cause error) *Error {
	return &Error{Code: code, Stage: stage, Message: msg, Cause: cause}
}
