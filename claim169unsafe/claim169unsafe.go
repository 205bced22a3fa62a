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

// Package claim169unsafe carries the parts of the encode surface that are
// unsafe for production use and exist purely so tests can produce
// byte-reproducible fixtures (Open Question #3 in DESIGN.md: deterministic
// nonces are test-only absent a spec update).
//
// Nothing here belongs in a QR-issuing service. A fixed AEAD nonce under a
// reused key is a full confidentiality/authenticity break, not a tuning knob.
package claim169unsafe

import "github.com/mosip/claim169-go"

// WithDeterministicNonce pins the Encrypt0 nonce an Encoder will use on its
// next Encode call, instead of the fresh nonce claim169.Encoder normally
// draws from crypto/rand. Returns enc for chaining alongside the rest of the
// Encoder builder surface.
func WithDeterministicNonce(enc *claim169.Encoder, nonce []byte) *claim169.Encoder {
	return enc.SetDeterministicNonceUnsafe(nonce)
}
