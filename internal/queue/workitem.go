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

package queue

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultCommand is run against a pull request when a message names no command.
const DefaultCommand = "/review"

// WorkItem is the unit of work queued for asynchronous PR command execution.
type WorkItem struct {
	PRURL    string   `json:"pr_url"`
	Commands []string `json:"commands"`
}

// ErrMissingPRURL is returned when a queue message carries no pr_url.
var ErrMissingPRURL = errors.New("no pr_url found in message")

// ParseMessage decodes a queue record body into a WorkItem.
//
// Both message shapes produced over the life of the webhook are accepted: a
// "commands" list or a singular "command" string. If neither is present the
// work item defaults to DefaultCommand.
func ParseMessage(body []byte) (*WorkItem, error) {
	var msg struct {
		PRURL    string   `json:"pr_url"`
		Command  string   `json:"command"`
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("invalid JSON in message body: %w", err)
	}

	if msg.PRURL == "" {
		return nil, ErrMissingPRURL
	}

	commands := msg.Commands
	if len(commands) == 0 {
		if msg.Command != "" {
			commands = []string{msg.Command}
		} else {
			commands = []string{DefaultCommand}
		}
	}

	return &WorkItem{PRURL: msg.PRURL, Commands: commands}, nil
}
