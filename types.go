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

import (
	"github.com/mosip/claim169-go/internal/cborcodec"
	"github.com/mosip/claim169-go/internal/cryptoadapt"
	"github.com/mosip/claim169-go/internal/cwt"
	"github.com/mosip/claim169-go/internal/schema"
)

// Claim169 is the typed identity record (§3, §4.6). Re-exported from
// internal/schema so the type identity is shared between the public API and
// the internal codec without requiring callers to import an internal path.
type Claim169 = schema.Claim169

// Biometric is one entry in a Claim169 biometric group's ordered sequence.
type Biometric = schema.Biometric

// BiometricGroup names one of the 16 MOSIP biometric body-part keys.
type BiometricGroup = schema.BiometricGroup

// CwtMeta is the CWT claims metadata (§3): issuer, subject, and the three
// Unix-epoch timestamps.
type CwtMeta = cwt.Meta

// UnknownEntry is one preserved CBOR map entry whose key a given layer's
// schema doesn't recognise — the same shape whether it came from an unknown
// Claim169 field (already carried on Claim169.Unknowns) or an unknown
// top-level CWT claim (carried on DecodeResult.CwtUnknownClaims and threaded
// back in via Encoder.PreserveCwtUnknownClaims). Re-exported from
// internal/cborcodec so callers building one by hand never need that
// import path.
type UnknownEntry = cborcodec.Entry

// NewUnknownEntry builds an UnknownEntry with an integer key, canonically
// encoding value. Used to inject a pass-through field a caller wants
// preserved across a decode/re-encode round trip without this library
// understanding its meaning.
func NewUnknownEntry(key int64, value interface{}) (UnknownEntry, error) {
	return cborcodec.IntEntry(key, value)
}

// Signer, Verifier, Encryptor, and Decryptor are the four crypto capability
// contracts a caller can implement to plug in an external key holder (an
// HSM, a KMS, a remote signer) instead of the built-in software adapters
// (§4.7). Re-exported from internal/cryptoadapt so callback implementers
// never need to import an internal path.
type (
	Signer       = cryptoadapt.Signer
	Verifier     = cryptoadapt.Verifier
	Encryptor    = cryptoadapt.Encryptor
	Decryptor    = cryptoadapt.Decryptor
	VerifyResult = cryptoadapt.VerifyResult
)

// Enum constants re-exported for convenience; never consulted for
// validation during decode/encode (Open Question #2: unknown codes pass
// silently).
const (
	PhotoFormatJPEG     = schema.PhotoFormatJPEG
	PhotoFormatJPEG2000 = schema.PhotoFormatJPEG2000
	PhotoFormatAVIF     = schema.PhotoFormatAVIF
	PhotoFormatWEBP     = schema.PhotoFormatWEBP

	BiometricFormatImage    = schema.BiometricFormatImage
	BiometricFormatTemplate = schema.BiometricFormatTemplate
	BiometricFormatSound    = schema.BiometricFormatSound
	BiometricFormatBioHash  = schema.BiometricFormatBioHash
)

// Biometric group keys 50-65, re-exported so callers can index
// Claim169.Biometrics without importing internal/schema.
const (
	KeyBiometricRightIndex     = schema.KeyBiometricRightIndex
	KeyBiometricRightLittle    = schema.KeyBiometricRightLittle
	KeyBiometricRightMiddle    = schema.KeyBiometricRightMiddle
	KeyBiometricRightRing      = schema.KeyBiometricRightRing
	KeyBiometricRightThumb     = schema.KeyBiometricRightThumb
	KeyBiometricLeftIndex      = schema.KeyBiometricLeftIndex
	KeyBiometricLeftLittle     = schema.KeyBiometricLeftLittle
	KeyBiometricLeftMiddle     = schema.KeyBiometricLeftMiddle
	KeyBiometricLeftRing       = schema.KeyBiometricLeftRing
	KeyBiometricLeftThumb      = schema.KeyBiometricLeftThumb
	KeyBiometricRightIris      = schema.KeyBiometricRightIris
	KeyBiometricLeftIris       = schema.KeyBiometricLeftIris
	KeyBiometricFace           = schema.KeyBiometricFace
	KeyBiometricLeftPalmprint  = schema.KeyBiometricLeftPalmprint
	KeyBiometricRightPalmprint = schema.KeyBiometricRightPalmprint
	KeyBiometricExceptionPhoto = schema.KeyBiometricExceptionPhoto
)
