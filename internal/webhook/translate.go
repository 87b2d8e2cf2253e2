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
	"encoding/json"

	"github.com/reviewrelay/reviewrelay/internal/queue"
)

// Translate inspects a decoded GitHub event and decides whether it produces
// downstream work.
//
// Only pull_request events with action "opened" or "synchronize" and a
// non-empty html_url yield a work item; everything else returns nil, which
// callers report as "ignored". A malformed payload is a validation error.
func Translate(eventType string, payload []byte) (*queue.WorkItem, error) {
	if eventType != "pull_request" {
		return nil, nil
	}

	var event PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, NewValidationError("Invalid JSON", err)
	}

	switch event.Action {
	case "opened", "synchronize":
	default:
		return nil, nil
	}

	if event.PullRequest.HTMLURL == "" {
		return nil, nil
	}

	return &queue.WorkItem{
		PRURL:    event.PullRequest.HTMLURL,
		Commands: []string{queue.DefaultCommand},
	}, nil
}
