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
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/config"
)

// CommandExecutor runs a single named command against a pull request and
// returns its raw output. Implementations signal invalid input with
// InputError and backend failures with ExecError; anything else is treated
// as unexpected.
type CommandExecutor interface {
	Run(ctx context.Context, prURL, command string) (string, error)
}

// Command result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// successOutput is reported when the executor produces no summary of its own.
const successOutput = "Command executed successfully. Check PR comments for feedback."

// CommandResult reports the outcome of one command against one PR.
type CommandResult struct {
	Command string `json:"command"`
	Status  string `json:"status"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Runner executes review commands and classifies their failures.
type Runner struct {
	executor CommandExecutor
	logger   *zap.Logger
}

// NewRunner creates a Runner. Construction fails when the provider token or
// the analysis backend API key is missing, since no command could ever
// succeed without them.
func NewRunner(cfg *config.Agent, executor CommandExecutor, logger *zap.Logger) (*Runner, error) {
	if cfg.UserToken == "" || cfg.ModelAPIKey == "" {
		return nil, errors.New("missing required environment variables: PR_AGENT_USER_TOKEN and PR_AGENT_OPENAI_KEY")
	}

	return &Runner{
		executor: executor,
		logger:   logger,
	}, nil
}

// Run executes a single command against the PR and reports the outcome.
// Failures are captured in the result, never returned.
func (r *Runner) Run(ctx context.Context, prURL, command string) CommandResult {
	output, err := r.executor.Run(ctx, prURL, command)
	if err == nil {
		if output == "" {
			output = successOutput
		}
		return CommandResult{Command: command, Status: StatusSuccess, Output: output}
	}

	r.logger.Warn("Command failed",
		zap.String("command", command),
		zap.String("pr_url", prURL),
		zap.Error(err))

	var message string
	switch {
	case IsInputError(err):
		message = "Invalid input: " + err.Error()
	case IsExecError(err):
		message = "Runtime error: " + err.Error()
	default:
		message = "Unexpected error: " + err.Error()
	}

	return CommandResult{Command: command, Status: StatusError, Error: message}
}

// ProcessCommands runs each command in input order. A failing command does
// not short-circuit the rest; the returned slice has one result per command.
func (r *Runner) ProcessCommands(ctx context.Context, prURL string, commands []string) []CommandResult {
	results := make([]CommandResult, 0, len(commands))
	for _, command := range commands {
		results = append(results, r.Run(ctx, prURL, command))
	}
	return results
}
