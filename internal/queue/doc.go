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

// Package queue defines the work item exchanged between the webhook receiver
// and the agent consumer, plus the publisher that puts it on the wire.
//
// A WorkItem is serialized as:
//
//	{"pr_url": "https://github.com/owner/repo/pull/1", "commands": ["/review"]}
//
// The consumer side additionally accepts a singular "command" field and
// defaults to "/review" when neither form is present, so messages produced by
// earlier revisions of the webhook keep working.
//
// Publishing goes through the Publisher interface; the production
// implementation targets an SNS topic fanned out to the agent's SQS queue.
package queue
