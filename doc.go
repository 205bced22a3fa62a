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

// Package claim169 implements the MOSIP Claim169 identity-credential QR
// codec: a seven-stage pipeline converting between the printable QR text
// form and a typed identity record, and back.
//
// Decode direction: Base45 -> zlib -> COSE_Encrypt0 (optional) ->
// COSE_Sign1 -> CWT -> Claim169. Encode direction runs the same stages in
// reverse. Both directions are exposed through fluent builders, Decoder and
// Encoder, whose chained option methods are validated once when Decode or
// Encode actually runs rather than as each option is set:
//
//	result, err := claim169.NewDecoder().
//		VerifyWithEd25519(issuerPublicKey).
//		Decode(qrText)
//
//	text, err := claim169.NewEncoder().
//		SignWithEd25519(issuerPrivateKey).
//		Encode(claim, meta)
//
// Decode169 and Encode169 are one-shot convenience wrappers around the same
// builders for callers that don't need to reuse a Decoder/Encoder across
// multiple payloads.
//
// This library performs no network I/O and keeps no persistent state: every
// operation depends only on its inputs, the configured crypto material,
// (for decode) the wall clock when timestamp validation is enabled, and (for
// encode) fresh randomness for AEAD nonces and ECDSA signatures. It does not log by default; attach a logger with WithLogger to
// receive structured, non-secret diagnostics.
//
// Callers holding decoded biometric or photo data past its immediate use
// should wrap the result in a ScopedResult and call Release when done, to
// overwrite those buffers rather than leave them for the garbage collector.
//
// Deterministic-nonce encoding, needed only to build reproducible test
// fixtures, lives in the separate claim169unsafe subpackage and must never
// be used outside tests.
package claim169
