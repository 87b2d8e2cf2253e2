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

package review

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/agent"
	"github.com/reviewrelay/reviewrelay/internal/config"
)

// maxPatchBytes caps how much diff is sent to the analysis backend per PR.
const maxPatchBytes = 48 * 1024

// commandPrompt carries the per-command instruction for the analysis backend
// and the heading of the posted comment.
type commandPrompt struct {
	title       string
	instruction string
}

var commandPrompts = map[string]commandPrompt{
	"/review": {
		title: "PR Review",
		instruction: "You are an experienced code reviewer. Review the following pull request. " +
			"Point out bugs, security problems and risky changes first, then style issues. " +
			"Be specific and reference file names.",
	},
	"/describe": {
		title: "PR Description",
		instruction: "Summarize what the following pull request changes and why. " +
			"Write a short description suitable as the PR body, with a bullet list of the main changes.",
	},
	"/improve": {
		title: "Improvement Suggestions",
		instruction: "Suggest concrete improvements to the code changed in the following pull request. " +
			"Propose specific alternatives, not general advice.",
	},
}

// Executor is the production CommandExecutor: it fetches the PR and its diff
// from GitHub, asks the analysis backend for feedback, and posts the result
// as a PR comment.
type Executor struct {
	github GitHubClient
	model  ModelClient
	logger *zap.Logger
}

// NewExecutor wires the git provider and analysis backend from configuration.
// Only the github provider is supported.
func NewExecutor(cfg *config.Agent, logger *zap.Logger) (*Executor, error) {
	if cfg.Provider != "" && cfg.Provider != "github" {
		return nil, fmt.Errorf("unsupported git provider %q", cfg.Provider)
	}

	return &Executor{
		github: NewGitHubClient(cfg.UserToken),
		model:  NewChatClient(cfg.ModelBaseURL, cfg.ModelAPIKey, cfg.Model),
		logger: logger,
	}, nil
}

// Run executes one command against one pull request. Bad commands and URLs
// are input errors; provider and backend failures are exec errors.
func (e *Executor) Run(ctx context.Context, prURL, command string) (string, error) {
	prompt, ok := commandPrompts[command]
	if !ok {
		return "", agent.NewInputError("unsupported command %q", command)
	}

	ref, err := ParsePRURL(prURL)
	if err != nil {
		return "", err
	}

	pr, err := e.github.GetPullRequest(ctx, ref)
	if err != nil {
		return "", agent.NewExecError("fetch pull request", err)
	}

	files, err := e.github.GetChangedFiles(ctx, ref)
	if err != nil {
		return "", agent.NewExecError("list changed files", err)
	}

	e.logger.Info("Analyzing pull request",
		zap.String("command", command),
		zap.String("repo", ref.Owner+"/"+ref.Repo),
		zap.Int("number", ref.Number),
		zap.Int("files", len(files)))

	analysis, err := e.model.Complete(ctx, prompt.instruction, buildPrompt(pr, files))
	if err != nil {
		return "", agent.NewExecError("analysis backend", err)
	}

	comment := fmt.Sprintf("## %s\n\n%s", prompt.title, analysis)
	if err := e.github.CreateComment(ctx, ref, comment); err != nil {
		return "", agent.NewExecError("post comment", err)
	}

	return fmt.Sprintf("%s feedback posted to %s", command, prURL), nil
}

// buildPrompt renders the PR metadata and diff into the user message for the
// analysis backend, truncating oversized diffs.
func buildPrompt(pr *PullRequest, files []*ChangedFile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pull request #%d: %s\n", pr.Number, pr.Title)
	fmt.Fprintf(&b, "Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "Branch: %s -> %s\n", pr.HeadBranch, pr.BaseBranch)
	if pr.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", pr.Description)
	}

	b.WriteString("\nChanged files:\n")
	patchBudget := maxPatchBytes
	for _, file := range files {
		fmt.Fprintf(&b, "\n--- %s (%s, +%d -%d)\n", file.Filename, file.Status, file.Additions, file.Deletions)
		if file.Patch == "" {
			continue
		}

		patch := file.Patch
		if len(patch) > patchBudget {
			patch = patch[:patchBudget] + "\n[patch truncated]"
		}
		patchBudget -= len(patch)
		b.WriteString(patch)
		b.WriteString("\n")

		if patchBudget <= 0 {
			b.WriteString("\n[remaining patches omitted]\n")
			break
		}
	}

	return b.String()
}
