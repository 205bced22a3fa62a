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

// encoderConfig holds everything an Encoder's chained option methods set.
type encoderConfig struct {
	signerEd25519Key  []byte
	signerECDSAKey    []byte
	signerCallback    cryptoadapt.Signer
	signerCallbackAlg string
	allowUnsigned     bool

	encryptorAES128Key []byte
	encryptorAES256Key []byte
	encryptorCallback  cryptoadapt.Encryptor
	encryptorAlg       string

	// deterministicNonce is set only via claim169unsafe, for tests.
	deterministicNonce []byte

	// cwtUnknownClaims carries top-level CWT claim-map entries the caller
	// wants preserved from a prior decode (DecodeResult.CwtUnknownClaims),
	// so a decode-then-re-encode round trip doesn't silently drop them.
	cwtUnknownClaims []cborcodec.Entry

	skipBiometrics bool
	logger         *logrus.Logger
}

// Encoder is a fluent builder for the encode direction of the pipeline
// (§6/§4.8). Not safe for concurrent use.
type Encoder struct {
	cfg      encoderConfig
	executed bool
}

// NewEncoder returns an Encoder with no signer/encryptor configured.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// SignWithEd25519 configures in-process Ed25519 signing with the given raw
// (32-byte seed/64-byte expanded) or PEM/PKCS8 private key.
func (e *Encoder) SignWithEd25519(privateKey []byte) *Encoder {
	e.cfg.signerEd25519Key = privateKey
	return e
}

// SignWithECDSAP256 configures in-process ECDSA P-256 signing with the given
// 32-byte scalar or PEM/PKCS8/SEC1 private key.
func (e *Encoder) SignWithECDSAP256(privateKey []byte) *Encoder {
	e.cfg.signerECDSAKey = privateKey
	return e
}

// SignWith configures a caller-supplied signer (e.g. an HSM callback) under
// the given COSE algorithm name ("EdDSA" or "ES256").
func (e *Encoder) SignWith(signer cryptoadapt.Signer, algorithm string) *Encoder {
	e.cfg.signerCallback = signer
	e.cfg.signerCallbackAlg = algorithm
	return e
}

// AllowUnsigned permits Encode() to proceed without a signer (an unsigned
// Sign1 with an empty signature is still emitted, per §6's builder-composes
// surface; most callers will also set allow_unverified on the decode side).
func (e *Encoder) AllowUnsigned() *Encoder {
	e.cfg.allowUnsigned = true
	return e
}

// EncryptWithAES128 configures in-process AES-128-GCM encryption.
func (e *Encoder) EncryptWithAES128(key []byte) *Encoder {
	e.cfg.encryptorAES128Key = key
	return e
}

// EncryptWithAES256 configures in-process AES-256-GCM encryption.
func (e *Encoder) EncryptWithAES256(key []byte) *Encoder {
	e.cfg.encryptorAES256Key = key
	return e
}

// EncryptWith configures a caller-supplied encryptor under the given COSE
// algorithm name ("A128GCM" or "A256GCM").
func (e *Encoder) EncryptWith(enc cryptoadapt.Encryptor, algorithm string) *Encoder {
	e.cfg.encryptorCallback = enc
	e.cfg.encryptorAlg = algorithm
	return e
}

// SetDeterministicNonceUnsafe pins the AEAD nonce Encrypt0 uses instead of
// generating one fresh per call. Reusing a nonce under the same key breaks
// AES-GCM's confidentiality and authenticity guarantees outright; this
// exists only so claim169unsafe can build byte-reproducible fixtures for
// tests. Never call this from production code.
func (e *Encoder) SetDeterministicNonceUnsafe(nonce []byte) *Encoder {
	e.cfg.deterministicNonce = nonce
	return e
}

// PreserveCwtUnknownClaims threads top-level CWT claim-map entries outside
// the recognised set (1/2/4/5/6/169) back into Encode's output — typically
// DecodeResult.CwtUnknownClaims from a prior Decode call, so those entries
// survive a decode/re-encode round trip instead of being dropped.
func (e *Encoder) PreserveCwtUnknownClaims(entries []UnknownEntry) *Encoder {
	e.cfg.cwtUnknownClaims = entries
	return e
}

// SkipBiometrics omits biometric entries from the encoded output.
func (e *Encoder) SkipBiometrics() *Encoder {
	e.cfg.skipBiometrics = true
	return e
}

// WithLogger redirects structured diagnostic logs to the caller's logger.
func (e *Encoder) WithLogger(l *logrus.Logger) *Encoder {
	e.cfg.logger = l
	return e
}

func (e *Encoder) logger() *logrus.Logger {
	if e.cfg.logger != nil {
		return e.cfg.logger
	}
	return obslog.Discarded()
}

func (e *Encoder) validate() error {
	if e.executed {
		return perr.New(perr.EncodingConfig, "C8", "encoder instance already executed", nil)
	}
	hasSigner := e.cfg.signerEd25519Key != nil || e.cfg.signerECDSAKey != nil || e.cfg.signerCallback != nil
	if !hasSigner && !e.cfg.allowUnsigned {
		return perr.New(perr.EncodingConfig, "C8", "no signer configured and allow_unsigned not set", nil)
	}
	if e.cfg.signerCallback != nil && e.cfg.signerCallbackAlg == "" {
		return perr.New(perr.EncodingConfig, "C8", "sign_with callback requires an explicit algorithm name", nil)
	}
	if e.cfg.encryptorCallback != nil && e.cfg.encryptorAlg == "" {
		return perr.New(perr.EncodingConfig, "C8", "encrypt_with callback requires an explicit algorithm name", nil)
	}
	return nil
}

type builtSigner struct {
	alg    string
	signer cryptoadapt.Signer
	closer func()
}

func (e *Encoder) buildSigner() (*builtSigner, error) {
	if e.cfg.signerCallback != nil {
		return &builtSigner{alg: e.cfg.signerCallbackAlg, signer: e.cfg.signerCallback}, nil
	}
	if e.cfg.signerEd25519Key != nil {
		s, err := cryptoadapt.NewEd25519Signer(e.cfg.signerEd25519Key)
		if err != nil {
			return nil, err
		}
		return &builtSigner{alg: cryptoadapt.AlgEdDSA, signer: s, closer: s.Close}, nil
	}
	if e.cfg.signerECDSAKey != nil {
		s, err := cryptoadapt.NewECDSAP256Signer(e.cfg.signerECDSAKey)
		if err != nil {
			return nil, err
		}
		return &builtSigner{alg: cryptoadapt.AlgES256, signer: s, closer: s.Close}, nil
	}
	return nil, nil
}

type builtEncryptor struct {
	alg       string
	encryptor cryptoadapt.Encryptor
	closer    func()
}

func (e *Encoder) buildEncryptor() (*builtEncryptor, error) {
	if e.cfg.encryptorCallback != nil {
		return &builtEncryptor{alg: e.cfg.encryptorAlg, encryptor: e.cfg.encryptorCallback}, nil
	}
	if e.cfg.encryptorAES128Key != nil {
		c, err := cryptoadapt.NewAESGCMCipher(e.cfg.encryptorAES128Key)
		if err != nil {
			return nil, err
		}
		return &builtEncryptor{alg: cryptoadapt.AlgA128GCM, encryptor: c, closer: c.Close}, nil
	}
	if e.cfg.encryptorAES256Key != nil {
		c, err := cryptoadapt.NewAESGCMCipher(e.cfg.encryptorAES256Key)
		if err != nil {
			return nil, err
		}
		return &builtEncryptor{alg: cryptoadapt.AlgA256GCM, encryptor: c, closer: c.Close}, nil
	}
	return nil, nil
}

// Encode runs the full seven-stage pipeline (record -> text), per §4.8's
// order: C6 -> C5 -> C3 -> C4.Sign1 -> C4.Encrypt0? -> C2 -> C1.
func (e *Encoder) Encode(claim Claim169, meta CwtMeta) (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}
	e.executed = true
	log := e.logger()

	// C6: Claim169 schema
	if e.cfg.skipBiometrics {
		claim.Biometrics = nil
	}
	payload, err := schema.Encode(&claim)
	if err != nil {
		return "", err
	}
	log.WithFields(obslog.StageFields("C6")).Debug("claim169 encoded")

	// C5: CWT
	cwtBytes, err := cwt.Encode(meta, payload, e.cfg.cwtUnknownClaims)
	if err != nil {
		return "", err
	}
	log.WithFields(obslog.StageFields("C5")).Debug("cwt encoded")

	// C4: Sign1
	signer, err := e.buildSigner()
	if err != nil {
		return "", err
	}
	if signer != nil && signer.closer != nil {
		defer signer.closer()
	}

	var signature []byte
	var signAlg cose.AlgID
	if signer != nil {
		signAlg, err = algIDForName(signer.alg)
		if err != nil {
			return "", err
		}
	} else {
		// allow_unsigned: emit Sign1 with alg=EdDSA as a neutral placeholder
		// header and an empty signature (spec.md §6 builder-composes surface).
		signAlg = cose.AlgEdDSA
	}

	algEntry, err := cose.AlgEntry(signAlg)
	if err != nil {
		return "", err
	}
	protectedRaw, err := cose.BuildHeaderMap([]cborcodec.Entry{algEntry})
	if err != nil {
		return "", err
	}

	sig1 := &cose.Sign1{ProtectedRaw: protectedRaw, Payload: cwtBytes}
	sigStruct, err := sig1.SigStructure()
	if err != nil {
		return "", err
	}
	if signer != nil {
		signature, err = signer.signer.Sign(signer.alg, nil, sigStruct)
		if err != nil {
			return "", err
		}
	}

	sign1Wire, err := cose.BuildSign1(protectedRaw, nil, cwtBytes, signature)
	if err != nil {
		return "", err
	}
	log.WithFields(obslog.StageFields("C4.Sign1")).Debug("sign1 built")

	wire := sign1Wire

	// C4: Encrypt0 (optional)
	encryptor, err := e.buildEncryptor()
	if err != nil {
		return "", err
	}
	if encryptor != nil && encryptor.closer != nil {
		defer encryptor.closer()
	}
	if encryptor != nil {
		encAlg, err := algIDForName(encryptor.alg)
		if err != nil {
			return "", err
		}
		encAlgEntry, err := cose.AlgEntry(encAlg)
		if err != nil {
			return "", err
		}
		encProtectedRaw, err := cose.BuildHeaderMap([]cborcodec.Entry{encAlgEntry})
		if err != nil {
			return "", err
		}

		var nonce []byte
		if e.cfg.deterministicNonce != nil {
			nonce = e.cfg.deterministicNonce
		} else {
			nonce, err = cryptoadapt.GenerateNonce()
			if err != nil {
				return "", err
			}
		}

		aad, err := cose.BuildEncStructure(encProtectedRaw)
		if err != nil {
			return "", err
		}

		ciphertext, err := encryptor.encryptor.Encrypt(encryptor.alg, nil, nonce, aad, sign1Wire)
		if err != nil {
			return "", err
		}

		ivEntry, err := cose.IVEntry(nonce)
		if err != nil {
			return "", err
		}
		wire, err = cose.BuildEncrypt0(encProtectedRaw, []cborcodec.Entry{ivEntry}, ciphertext)
		if err != nil {
			return "", err
		}
		log.WithFields(obslog.StageFields("C4.Encrypt0")).Debug("encrypt0 built")
	}

	// C2: zlib
	compressed, err := zlibcodec.Compress(wire)
	if err != nil {
		return "", perr.New(perr.Decompress, "C2", "compression failed", err)
	}
	log.WithFields(obslog.StageFields("C2")).Debug("zlib compressed")

	// C1: Base45
	text := base45.Encode(compressed)
	log.WithFields(obslog.StageFields("C1")).Debug("base45 encoded")

	return text, nil
}

func algIDForName(name string) (cose.AlgID, error) {
	switch name {
	case cryptoadapt.AlgEdDSA:
		return cose.AlgEdDSA, nil
	case cryptoadapt.AlgES256:
		return cose.AlgES256, nil
	case cryptoadapt.AlgA128GCM:
		return cose.AlgA128GCM, nil
	case cryptoadapt.AlgA256GCM:
		return cose.AlgA256GCM, nil
	default:
		return 0, perr.New(perr.EncodingConfig, "C8", "unrecognised algorithm name "+name, nil)
	}
}
