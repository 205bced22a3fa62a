package cryptoadapt

import "github.com/mosip/claim169-go/internal/perr"

const stage = "C7"

// WrapInvalidKey builds an InvalidKey-tagged error for wrong-length or
// malformed SEC1/PEM/raw key material.
func WrapInvalidKey(what string, cause error) error {
	return perr.New(perr.InvalidKey, stage, what, cause)
}
