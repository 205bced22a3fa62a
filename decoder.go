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
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mosip/claim169-go/internal/base45"
	"github.com/mosip/claim169-go/internal/cborcodec"
	"github.com/mosip/claim169-go/internal/cose"
	"github.com/mosip/claim169-go/internal/cryptoadapt"
	"github.com/mosip/claim169-go/internal/cwt"
	"github.com/mosip/claim169-go/internal/obslog"
	"github.com/mosip/claim169-go/internal/perr"
	"github.com/mosip/claim169-go/internal/schema"
	"github.com/mosip/claim169-go/internal/zlibcodec"
)

// decoderConfig holds everything a Decoder's chained option methods set.
// Mirrors the teacher's Config struct: plain fields set by chained calls,
// validated once at Decode() rather than at option-call time.
type decoderConfig struct {
	verifierEd25519Key []byte
	verifierECDSAKey   []byte
	verifierCallback   cryptoadapt.Verifier
	allowUnverified    bool

	decryptorAES128Key []byte
	decryptorAES256Key []byte
	decryptorCallback  cryptoadapt.Decryptor

	skipBiometrics bool

	// timestampValidation is nil until explicitly set; Decode() applies the
	// host default (ON for native Go) when nil.
	timestampValidation *bool
	clockSkewTolerance   int64

	maxDecompressedBytes int

	logger *logrus.Logger
}

// Decoder is a fluent builder for the decode direction of the pipeline
// (§6/§4.8). Not safe for concurrent use; build and execute from a single
// goroutine.
type Decoder struct {
	cfg      decoderConfig
	executed bool
}

// NewDecoder returns a Decoder with defaults: no verifier, no decryptor,
// timestamp validation unset (host default applies), max_decompressed_bytes
// at the §4.2 default.
func NewDecoder() *Decoder {
	return &Decoder{cfg: decoderConfig{maxDecompressedBytes: zlibcodec.DefaultMaxDecompressedBytes}}
}

// VerifyWithEd25519 configures in-process Ed25519 verification with the
// given raw (32-byte) or PEM/SPKI public key.
func (d *Decoder) VerifyWithEd25519(publicKey []byte) *Decoder {
	d.cfg.verifierEd25519Key = publicKey
	return d
}

// VerifyWithECDSAP256 configures in-process ECDSA P-256 verification with
// the given SEC1 or PEM/SPKI public key.
func (d *Decoder) VerifyWithECDSAP256(publicKey []byte) *Decoder {
	d.cfg.verifierECDSAKey = publicKey
	return d
}

// VerifyWith configures a caller-supplied verifier (e.g. an HSM callback).
func (d *Decoder) VerifyWith(v cryptoadapt.Verifier) *Decoder {
	d.cfg.verifierCallback = v
	return d
}

// AllowUnverified permits Decode() to proceed without a verifier, surfacing
// VerificationStatus == Skipped.
func (d *Decoder) AllowUnverified() *Decoder {
	d.cfg.allowUnverified = true
	return d
}

// DecryptWithAES128 configures in-process AES-128-GCM decryption.
func (d *Decoder) DecryptWithAES128(key []byte) *Decoder {
	d.cfg.decryptorAES128Key = key
	return d
}

// DecryptWithAES256 configures in-process AES-256-GCM decryption.
func (d *Decoder) DecryptWithAES256(key []byte) *Decoder {
	d.cfg.decryptorAES256Key = key
	return d
}

// DecryptWith configures a caller-supplied decryptor.
func (d *Decoder) DecryptWith(dec cryptoadapt.Decryptor) *Decoder {
	d.cfg.decryptorCallback = dec
	return d
}

// SkipBiometrics drops biometric entry data during decode, retaining only
// presence information (§4.6).
func (d *Decoder) SkipBiometrics() *Decoder {
	d.cfg.skipBiometrics = true
	return d
}

// WithTimestampValidation turns exp/nbf checking on.
func (d *Decoder) WithTimestampValidation() *Decoder {
	v := true
	d.cfg.timestampValidation = &v
	return d
}

// WithoutTimestampValidation turns exp/nbf checking off (the default in
// hosts without a trusted clock, per §4.5).
func (d *Decoder) WithoutTimestampValidation() *Decoder {
	v := false
	d.cfg.timestampValidation = &v
	return d
}

// ClockSkewTolerance sets the non-negative tolerance (seconds) applied to
// exp/nbf comparisons. Negative values are rejected at Decode() time.
func (d *Decoder) ClockSkewTolerance(seconds int64) *Decoder {
	d.cfg.clockSkewTolerance = seconds
	return d
}

// MaxDecompressedBytes overrides the zlib decompression bound (default
// 65536). Non-positive values are rejected at Decode() time.
func (d *Decoder) MaxDecompressedBytes(n int) *Decoder {
	d.cfg.maxDecompressedBytes = n
	return d
}

// WithLogger redirects structured diagnostic logs to the caller's logger
// (the package default discards everything).
func (d *Decoder) WithLogger(l *logrus.Logger) *Decoder {
	d.cfg.logger = l
	return d
}

func (d *Decoder) logger() *logrus.Logger {
	if d.cfg.logger != nil {
		return d.cfg.logger
	}
	return obslog.Discarded()
}

// validate checks the configuration mistakes spec.md §7 calls out, all at
// call time rather than option-call time.
func (d *Decoder) validate() error {
	if d.executed {
		return perr.New(perr.DecodingConfig, "C8", "decoder instance already executed", nil)
	}
	hasVerifier := d.cfg.verifierEd25519Key != nil || d.cfg.verifierECDSAKey != nil || d.cfg.verifierCallback != nil
	if !hasVerifier && !d.cfg.allowUnverified {
		return perr.New(perr.DecodingConfig, "C8", "no verifier configured and allow_unverified not set", nil)
	}
	if d.cfg.clockSkewTolerance < 0 {
		return perr.New(perr.DecodingConfig, "C8", "clock_skew_tolerance must be non-negative", nil)
	}
	if d.cfg.maxDecompressedBytes <= 0 {
		return perr.New(perr.DecodingConfig, "C8", "max_decompressed_bytes must be positive", nil)
	}
	return nil
}

func (d *Decoder) buildVerifier() (cryptoadapt.Verifier, error) {
	if d.cfg.verifierCallback != nil {
		return d.cfg.verifierCallback, nil
	}
	if d.cfg.verifierEd25519Key != nil {
		return cryptoadapt.NewEd25519Verifier(d.cfg.verifierEd25519Key)
	}
	if d.cfg.verifierECDSAKey != nil {
		return cryptoadapt.NewECDSAP256Verifier(d.cfg.verifierECDSAKey)
	}
	return nil, nil
}

func (d *Decoder) buildDecryptor() (cryptoadapt.Decryptor, error) {
	if d.cfg.decryptorCallback != nil {
		return d.cfg.decryptorCallback, nil
	}
	if d.cfg.decryptorAES128Key != nil {
		return cryptoadapt.NewAESGCMCipher(d.cfg.decryptorAES128Key)
	}
	if d.cfg.decryptorAES256Key != nil {
		return cryptoadapt.NewAESGCMCipher(d.cfg.decryptorAES256Key)
	}
	return nil, nil
}

// algNameFor maps a cose.AlgID to the algorithm name the crypto adapters
// expect (§4.4: "EdDSA" for -8, "ES256" for -7, "A128GCM"/"A256GCM" for 1/3).
func algNameFor(alg cose.AlgID) (string, error) {
	name, err := alg.Name()
	if err != nil {
		return "", WrapCoseParse(fmt.Sprintf("unsupported alg %d", alg), err)
	}
	return name, nil
}

// WrapCoseParse is a small root-package convenience so decoder.go/encoder.go
// don't need to import internal/cose just for its error helper.
func WrapCoseParse(msg string, cause error) error {
	return perr.New(perr.CoseParse, "C4", msg, cause)
}

// Decode runs the full seven-stage pipeline in reverse (text -> record),
// per §4.8's stage order: C1 -> C2 -> C4.Encrypt0? -> C4.Sign1 -> C5 -> C6.
func (d *Decoder) Decode(text string) (DecodeResult, error) {
	if err := d.validate(); err != nil {
		return DecodeResult{}, err
	}
	d.executed = true
	log := d.logger()

	// C1: Base45
	compressed, err := base45.Decode(text)
	if err != nil {
		return DecodeResult{}, perr.New(perr.Base45Decode, "C1", "invalid Base45 text", err)
	}
	log.WithFields(obslog.StageFields("C1")).Debug("base45 decoded")

	// C2: zlib
	cborBytes, err := zlibcodec.Decompress(compressed, d.cfg.maxDecompressedBytes)
	if err != nil {
		if lim, ok := err.(*zlibcodec.LimitExceededError); ok {
			return DecodeResult{}, perr.New(perr.DecompressLimitExceeded, "C2", lim.Error(), lim)
		}
		return DecodeResult{}, perr.New(perr.Decompress, "C2", "malformed zlib/DEFLATE stream", err)
	}
	log.WithFields(obslog.StageFields("C2")).Debug("zlib decompressed")

	var warnings []string

	// Detect Encrypt0 vs Sign1 by CBOR tag, or by probing the tuple shape.
	tagNum, tagged, _, peekErr := cose.PeekTag(cborBytes)
	isEncrypt0 := tagged && tagNum == cose.TagEncrypt0
	if !tagged && peekErr == nil {
		if n, err := cose.ArrayLen(cborBytes); err == nil && n == 3 {
			isEncrypt0 = true
		}
	}

	signBytes := cborBytes
	if isEncrypt0 {
		decryptor, err := d.buildDecryptor()
		if err != nil {
			return DecodeResult{}, err
		}
		if decryptor == nil {
			return DecodeResult{}, perr.New(perr.DecodingConfig, "C8", "encrypted envelope but no decryptor configured", nil)
		}

		env, err := cose.ParseEncrypt0(cborBytes)
		if err != nil {
			return DecodeResult{}, err
		}
		rh := env.ResolvedHeader()
		warnings = append(warnings, duplicateLabelWarnings(rh.DuplicateLabels)...)

		algRaw, ok := rh.Value(cose.LabelAlg)
		if !ok {
			return DecodeResult{}, WrapCoseParse("Encrypt0 missing alg header", nil)
		}
		alg, err := cose.DecodeAlg(algRaw)
		if err != nil {
			return DecodeResult{}, WrapCoseParse("Encrypt0 alg header malformed", err)
		}
		algName, err := algNameFor(alg)
		if err != nil {
			return DecodeResult{}, err
		}

		ivRaw, ok := rh.Value(cose.LabelIV)
		if !ok {
			return DecodeResult{}, WrapCoseParse("Encrypt0 missing iv header", nil)
		}
		var iv []byte
		if err := cborcodec.Unmarshal(ivRaw, &iv); err != nil {
			return DecodeResult{}, WrapCoseParse("Encrypt0 iv header malformed", err)
		}

		var kid []byte
		if kidRaw, ok := rh.Value(cose.LabelKid); ok {
			_ = cborcodec.Unmarshal(kidRaw, &kid)
		}

		aad, err := env.EncStructure()
		if err != nil {
			return DecodeResult{}, err
		}

		plaintext, err := decryptor.Decrypt(algName, kid, iv, aad, env.Ciphertext)
		if err != nil {
			if _, ok := err.(*perr.Error); ok {
				return DecodeResult{}, err
			}
			return DecodeResult{}, perr.New(perr.DecryptionFailed, "C4", "AEAD decryption failed", err)
		}
		signBytes = plaintext
		log.WithFields(obslog.StageFields("C4.Encrypt0")).Debug("decrypted")
	}

	// C4: Sign1
	sig1, err := cose.ParseSign1(signBytes)
	if err != nil {
		return DecodeResult{}, err
	}
	rh := sig1.ResolvedHeader()
	warnings = append(warnings, duplicateLabelWarnings(rh.DuplicateLabels)...)

	algRaw, ok := rh.Value(cose.LabelAlg)
	if !ok {
		return DecodeResult{}, WrapCoseParse("Sign1 missing alg header", nil)
	}
	alg, err := cose.DecodeAlg(algRaw)
	if err != nil {
		return DecodeResult{}, WrapCoseParse("Sign1 alg header malformed", err)
	}
	algName, err := algNameFor(alg)
	if err != nil {
		return DecodeResult{}, err
	}

	var kid []byte
	if kidRaw, ok := rh.Value(cose.LabelKid); ok {
		_ = cborcodec.Unmarshal(kidRaw, &kid)
	}

	verifier, err := d.buildVerifier()
	if err != nil {
		return DecodeResult{}, err
	}

	status := Skipped
	if verifier != nil {
		sigStruct, err := sig1.SigStructure()
		if err != nil {
			return DecodeResult{}, err
		}
		result, err := verifier.Verify(algName, kid, sigStruct, sig1.Signature)
		if err != nil {
			if _, ok := err.(*perr.Error); ok {
				return DecodeResult{}, err
			}
			return DecodeResult{}, perr.New(perr.SignatureInvalid, "C4", "verifier returned an error", err)
		}
		if !result.Valid {
			reason := result.Reason
			if reason == "" {
				reason = "signature verification failed"
			}
			return DecodeResult{}, perr.New(perr.SignatureInvalid, "C4", reason, nil)
		}
		status = Verified
	}
	log.WithFields(obslog.StageFields("C4.Sign1")).Debug("signature checked")

	if sig1.PayloadIsNil {
		return DecodeResult{}, WrapCoseParse("Sign1 payload is nil", nil)
	}

	// C5: CWT
	cwtDecoded, err := cwt.Decode(sig1.Payload)
	if err != nil {
		return DecodeResult{}, err
	}
	log.WithFields(obslog.StageFields("C5")).Debug("cwt decoded")

	timestampsOn := true
	if d.cfg.timestampValidation != nil {
		timestampsOn = *d.cfg.timestampValidation
	}
	if timestampsOn {
		now := time.Now().Unix()
		if err := cwt.ValidateTimestamps(cwtDecoded.Meta, now, d.cfg.clockSkewTolerance); err != nil {
			return DecodeResult{}, err
		}
	}

	// C6: Claim169 schema
	claim, schemaWarnings, err := schema.Decode(cwtDecoded.PayloadRaw, d.cfg.skipBiometrics)
	if err != nil {
		return DecodeResult{}, err
	}
	warnings = append(warnings, schemaWarnings...)
	log.WithFields(obslog.StageFields("C6")).Debug("claim169 decoded")

	return DecodeResult{
		Claim169:           *claim,
		CwtMeta:            cwtDecoded.Meta,
		VerificationStatus: status,
		Warnings:           warnings,
		CwtUnknownClaims:   cwtDecoded.Unknowns,
	}, nil
}

func duplicateLabelWarnings(labels []int64) []string {
	var out []string
	for _, l := range labels {
		out = append(out, fmt.Sprintf("duplicate header label %d in protected and unprotected maps; protected value used", l))
	}
	return out
}
