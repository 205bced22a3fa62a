// Copyright (c) 2024 MOSIP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package claim169

import "github.com/mosip/claim169-go/internal/perr"

// ErrorCode is a stable, binding-friendly identifier for every failure the
// pipeline can surface (C9). Names are frozen so language bindings can map
// them 1:1.
type ErrorCode = perr.ErrorCode

// Error is the single stage-tagged error type used across every layer of the
// pipeline. It never carries key material or plaintext.
type Error = perr.Error

// The C9 error taxonomy, re-exported from internal/perr so internal packages
// can construct these without importing this root package.
const (
	ErrBase45Decode            = perr.Base45Decode
	ErrDecompress              = perr.Decompress
	ErrDecompressLimitExceeded = perr.DecompressLimitExceeded
	ErrCoseParse               = perr.CoseParse
	ErrSignatureInvalid        = perr.SignatureInvalid
	ErrDecryptionFailed        = perr.DecryptionFailed
	ErrCwtParse                = perr.CwtParse
	ErrClaim169NotFound        = perr.Claim169NotFound
	ErrExpired                 = perr.Expired
	ErrNotYetValid             = perr.NotYetValid
	ErrClaim169Parse           = perr.Claim169Parse
	ErrDecodingConfig          = perr.DecodingConfig
	ErrEncodingConfig          = perr.EncodingConfig
	ErrInvalidKey              = perr.InvalidKey
)

// Code extracts the ErrorCode from err if it is (or wraps) an *Error.
func Code(err error) (ErrorCode, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}
