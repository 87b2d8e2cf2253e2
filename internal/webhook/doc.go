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

// Package webhook receives GitHub webhook deliveries and turns pull request
// activity into queued review work.
//
// Webhook Security:
//
// Every delivery must carry a valid X-Hub-Signature-256 header containing an
// HMAC-SHA256 signature computed with the shared webhook secret. Deliveries
// with a missing or invalid signature are rejected with HTTP 401. The secret
// itself is never logged.
//
// Event Handling:
//
// Only pull_request events produce work, and only for the actions:
//   - opened: a new pull request was created
//   - synchronize: new commits were pushed to an open pull request
//
// Either action yields a work item carrying the PR's html_url and the default
// /review command, published to the downstream topic. Every other event or
// action is acknowledged with "Event ignored".
//
// Error Taxonomy:
//
// Failures map onto three response classes: validation (400) for malformed or
// missing fields, authentication (401) for signature problems, and
// configuration (500) for missing environment configuration. The handler
// boundary additionally converts panics into a structured 500 response so an
// invocation never faults.
package webhook
