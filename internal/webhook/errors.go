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
	"errors"
	"fmt"
	"net/http"
)

// Error is a webhook processing failure carrying the HTTP status to report.
// Stages of request handling convert their local failures into one of the
// three constructors below and stop; the handler maps the status into the
// Lambda response.
type Error struct {
	Err     error
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or missing required fields (HTTP 400).
func NewValidationError(message string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: err}
}

// NewAuthenticationError reports a missing or invalid signature (HTTP 401).
func NewAuthenticationError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NewConfigurationError reports missing required environment configuration
// (HTTP 500).
func NewConfigurationError(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// AsError extracts a webhook *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var whErr *Error
	if errors.As(err, &whErr) {
		return whErr, true
	}
	return nil, false
}
