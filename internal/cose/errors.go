package cose

import "github.com/mosip/claim169-go/internal/perr"

const stage = "C4"

// WrapCoseParse builds a CoseParse-tagged error for malformed envelopes,
// missing/unsupported alg, and similar structural problems.
func WrapCoseParse(msg string, cause error) error {
	return perr.New(perr.CoseParse, stage, msg, cause)
}

// WrapSignatureInvalid builds a SignatureInvalid-tagged error.
func WrapSignatureInvalid(reason string, cause error) error {
	return perr.New(perr.SignatureInvalid, stage, reason, cause)
}

// WrapDecryptionFailed builds a DecryptionFailed-tagged error.
func WrapDecryptionFailed(reason string, cause error) error {
	return perr.New(perr.DecryptionFailed, stage, reason, cause)
}
