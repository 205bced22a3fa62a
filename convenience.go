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

// DecodeOption configures a Decoder before it runs. Each option is a thin
// wrapper around one of the Decoder's chained methods, so Decode169 can
// accept the same knobs without forcing every caller to build a Decoder by
// hand for the common case.
type DecodeOption func(*Decoder)

// WithVerifyEd25519 is a DecodeOption wrapping Decoder.VerifyWithEd25519.
func WithVerifyEd25519(publicKey []byte) DecodeOption {
	return func(d *Decoder) { d.VerifyWithEd25519(publicKey) }
}

// WithVerifyECDSAP256 is a DecodeOption wrapping Decoder.VerifyWithECDSAP256.
func WithVerifyECDSAP256(publicKey []byte) DecodeOption {
	return func(d *Decoder) { d.VerifyWithECDSAP256(publicKey) }
}

// WithVerifier is a DecodeOption wrapping Decoder.VerifyWith.
func WithVerifier(v Verifier) DecodeOption {
	return func(d *Decoder) { d.VerifyWith(v) }
}

// WithAllowUnverified is a DecodeOption wrapping Decoder.AllowUnverified.
func WithAllowUnverified() DecodeOption {
	return func(d *Decoder) { d.AllowUnverified() }
}

// WithDecryptAES128 is a DecodeOption wrapping Decoder.DecryptWithAES128.
func WithDecryptAES128(key []byte) DecodeOption {
	return func(d *Decoder) { d.DecryptWithAES128(key) }
}

// WithDecryptAES256 is a DecodeOption wrapping Decoder.DecryptWithAES256.
func WithDecryptAES256(key []byte) DecodeOption {
	return func(d *Decoder) { d.DecryptWithAES256(key) }
}

// WithDecryptor is a DecodeOption wrapping Decoder.DecryptWith.
func WithDecryptor(dec Decryptor) DecodeOption {
	return func(d *Decoder) { d.DecryptWith(dec) }
}

// WithSkipBiometrics is a DecodeOption wrapping Decoder.SkipBiometrics.
func WithSkipBiometrics() DecodeOption {
	return func(d *Decoder) { d.SkipBiometrics() }
}

// Decode169 runs the decode pipeline with a one-shot Decoder built from opts.
// Equivalent to constructing a Decoder, applying the same chained calls, and
// calling Decode — provided for callers who don't need to reuse a Decoder
// across multiple QR payloads.
func Decode169(text string, opts ...DecodeOption) (DecodeResult, error) {
	d := NewDecoder()
	for _, opt := range opts {
		opt(d)
	}
	return d.Decode(text)
}

// EncodeOption configures an Encoder before it runs.
type EncodeOption func(*Encoder)

// WithSignEd25519 is an EncodeOption wrapping Encoder.SignWithEd25519.
func WithSignEd25519(privateKey []byte) EncodeOption {
	return func(e *Encoder) { e.SignWithEd25519(privateKey) }
}

// WithSignECDSAP256 is an EncodeOption wrapping Encoder.SignWithECDSAP256.
func WithSignECDSAP256(privateKey []byte) EncodeOption {
	return func(e *Encoder) { e.SignWithECDSAP256(privateKey) }
}

// WithSigner is an EncodeOption wrapping Encoder.SignWith.
func WithSigner(signer Signer, algorithm string) EncodeOption {
	return func(e *Encoder) { e.SignWith(signer, algorithm) }
}

// WithAllowUnsigned is an EncodeOption wrapping Encoder.AllowUnsigned.
func WithAllowUnsigned() EncodeOption {
	return func(e *Encoder) { e.AllowUnsigned() }
}

// WithEncryptAES128 is an EncodeOption wrapping Encoder.EncryptWithAES128.
func WithEncryptAES128(key []byte) EncodeOption {
	return func(e *Encoder) { e.EncryptWithAES128(key) }
}

// WithEncryptAES256 is an EncodeOption wrapping Encoder.EncryptWithAES256.
func WithEncryptAES256(key []byte) EncodeOption {
	return func(e *Encoder) { e.EncryptWithAES256(key) }
}

// WithEncryptor is an EncodeOption wrapping Encoder.EncryptWith.
func WithEncryptor(enc Encryptor, algorithm string) EncodeOption {
	return func(e *Encoder) { e.EncryptWith(enc, algorithm) }
}

// WithEncodeSkipBiometrics is an EncodeOption wrapping Encoder.SkipBiometrics.
func WithEncodeSkipBiometrics() EncodeOption {
	return func(e *Encoder) { e.SkipBiometrics() }
}

// WithCwtUnknownClaims is an EncodeOption wrapping
// Encoder.PreserveCwtUnknownClaims.
func WithCwtUnknownClaims(entries []UnknownEntry) EncodeOption {
	return func(e *Encoder) { e.PreserveCwtUnknownClaims(entries) }
}

// Encode169 runs the encode pipeline with a one-shot Encoder built from opts.
func Encode169(claim Claim169, meta CwtMeta, opts ...EncodeOption) (string, error) {
	e := NewEncoder()
	for _, opt := range opts {
		opt(e)
	}
	return e.Encode(claim, meta)
}
