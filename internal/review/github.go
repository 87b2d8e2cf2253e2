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
	"math/rand"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
)

// GitHubClient is the subset of provider operations the executor needs.
type GitHubClient interface {
	// GetPullRequest retrieves metadata about a pull request
	GetPullRequest(ctx context.Context, ref PRRef) (*PullRequest, error)
	// GetChangedFiles retrieves the files changed in a pull request
	GetChangedFiles(ctx context.Context, ref PRRef) ([]*ChangedFile, error)
	// CreateComment posts a comment on a pull request
	CreateComment(ctx context.Context, ref PRRef, body string) error
}

// PullRequest represents the PR metadata fed to the analysis backend.
type PullRequest struct {
	Number      int
	Title       string
	Description string
	Author      string
	State       string
	BaseBranch  string
	HeadBranch  string
}

// ChangedFile represents a file changed in a pull request.
type ChangedFile struct {
	Filename  string
	Status    string // added, removed, modified, renamed
	Additions int
	Deletions int
	Patch     string
}

// RetryConfig defines the retry behavior for GitHub API calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type githubClient struct {
	client      *github.Client
	retryConfig *RetryConfig
}

// NewGitHubClient creates a GitHub client authenticated with the provider
// token.
func NewGitHubClient(token string) GitHubClient {
	var httpClient *http.Client
	if token != "" {
		httpClient = github.NewClient(nil).Client()
		httpClient.Transport = &github.BasicAuthTransport{
			Username: "token",
			Password: token,
		}
	}

	return &githubClient{
		client: github.NewClient(httpClient),
		retryConfig: &RetryConfig{
			MaxRetries:     3,
			InitialBackoff: 100 * time.Millisecond,
			MaxBackoff:     30 * time.Second,
		},
	}
}

func (c *githubClient) GetPullRequest(ctx context.Context, ref PRRef) (*PullRequest, error) {
	var pr *github.PullRequest

	err := c.executeWithRetry(ctx, func() error {
		var err error
		pr, _, err = c.client.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get pull request %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}

	result := &PullRequest{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		State:       pr.GetState(),
	}
	if pr.User != nil {
		result.Author = pr.User.GetLogin()
	}
	if pr.Base != nil {
		result.BaseBranch = pr.Base.GetRef()
	}
	if pr.Head != nil {
		result.HeadBranch = pr.Head.GetRef()
	}
	return result, nil
}

func (c *githubClient) GetChangedFiles(ctx context.Context, ref PRRef) ([]*ChangedFile, error) {
	allFiles := []*ChangedFile{}
	opts := &github.ListOptions{PerPage: 100}

	for {
		var files []*github.CommitFile
		var resp *github.Response

		err := c.executeWithRetry(ctx, func() error {
			var err error
			files, resp, err = c.client.PullRequests.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list changed files for %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
		}

		for _, file := range files {
			allFiles = append(allFiles, &ChangedFile{
				Filename:  file.GetFilename(),
				Status:    file.GetStatus(),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
				Patch:     file.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

func (c *githubClient) CreateComment(ctx context.Context, ref PRRef, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}

	err := c.executeWithRetry(ctx, func() error {
		_, _, err := c.client.Issues.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, comment)
		return err
	})
	if err != nil {
		return fmt.Errorf("create comment on %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}

	return nil
}

// executeWithRetry runs an operation with exponential backoff on retryable
// errors, respecting context cancellation between attempts.
func (c *githubClient) executeWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}

		if attempt == c.retryConfig.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", c.retryConfig.MaxRetries, lastErr)
}

// isRetryableError reports whether a GitHub API error is worth retrying:
// rate limits and transient server failures.
func isRetryableError(err error) bool {
	ghErr, ok := err.(*github.ErrorResponse)
	if !ok {
		return false
	}

	switch ghErr.Response.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	case http.StatusForbidden:
		return ghErr.Message == "API rate limit exceeded"
	}

	return false
}

// backoff doubles per attempt with ±20% jitter, capped at MaxBackoff.
func (c *githubClient) backoff(attempt int) time.Duration {
	base := float64(c.retryConfig.InitialBackoff) * float64(int(1)<<uint(attempt))
	jitter := (rand.Float64() * 0.4) - 0.2
	backoff := time.Duration(base * (1 + jitter))

	if backoff > c.retryConfig.MaxBackoff {
		backoff = c.retryConfig.MaxBackoff
	}
	return backoff
}
