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

package agent

import (
	"errors"
	"fmt"
)

// InputError reports a command or pull request URL the executor cannot
// accept. It maps to the "Invalid input" result class.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// NewInputError creates an InputError from a format string.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// IsInputError checks if an error is or wraps an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ExecError reports a failure inside the git provider or the analysis
// backend. It maps to the "Runtime error" result class.
type ExecError struct {
	Op  string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecError wraps a backend failure with the operation that produced it.
func NewExecError(op string, err error) *ExecError {
	return &ExecError{Op: op, Err: err}
}

// IsExecError checks if an error is or wraps an ExecError.
func IsExecError(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}
