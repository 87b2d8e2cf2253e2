// Copyright 2025 The ReviewRelay Authors
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

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "sha256="

// VerifySignature checks the HMAC-SHA256 signature of a GitHub webhook
// payload against the shared secret. It returns true only for a valid
// signature and never panics.
//
// The header value is expected in the form "sha256=<hex-encoded-hmac>". The
// prefix is stripped from the received value and the comparison runs in
// constant time over the re-prefixed forms; a header carrying any other
// algorithm prefix fails to match.
func VerifySignature(payload []byte, signature string, secret []byte) bool {
	// Fail closed on anything unsigned or unsignable.
	if signature == "" || len(secret) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	received := signaturePrefix + strings.TrimPrefix(signature, signaturePrefix)

	return hmac.Equal([]byte(received), []byte(expected))
}
