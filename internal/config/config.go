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

// Package config builds explicit configuration structs from the process
// environment. Each Lambda reads its configuration once at cold start and
// passes it into its components; nothing else in the codebase touches
// os.Getenv.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// DefaultProvider is the git provider assumed when none is configured.
const DefaultProvider = "github"

// DefaultModelBaseURL is the OpenAI-compatible endpoint used when no
// override is configured.
const DefaultModelBaseURL = "https://api.openai.com/v1"

var dotenvOnce sync.Once

// Webhook holds configuration for the webhook receiver Lambda.
type Webhook struct {
	// WebhookSecret is the shared secret GitHub signs payloads with.
	// It must never be logged.
	WebhookSecret string
	// TopicARN is the SNS destination for work items. May be empty, in
	// which case publishing fails with a configuration error.
	TopicARN string
}

// Agent holds configuration for the queue consumer Lambda.
type Agent struct {
	// Provider names the git provider; only "github" is supported.
	Provider string
	// UserToken authenticates against the git provider.
	UserToken string
	// ModelAPIKey authenticates against the analysis backend.
	ModelAPIKey string
	// Model optionally overrides the backend's default model.
	Model string
	// ModelBaseURL points at an OpenAI-compatible API.
	ModelBaseURL string
}

// LoadWebhook reads the webhook receiver's configuration from the environment.
func LoadWebhook() *Webhook {
	loadDotenv()
	return &Webhook{
		WebhookSecret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
		TopicARN:      os.Getenv("SNS_TOPIC_ARN"),
	}
}

// LoadAgent reads the agent's configuration from the environment.
func LoadAgent() *Agent {
	loadDotenv()
	cfg := &Agent{
		Provider:     os.Getenv("PR_AGENT_PROVIDER"),
		UserToken:    os.Getenv("PR_AGENT_USER_TOKEN"),
		ModelAPIKey:  os.Getenv("PR_AGENT_OPENAI_KEY"),
		Model:        os.Getenv("PR_AGENT_OPENAI_MODEL"),
		ModelBaseURL: os.Getenv("PR_AGENT_OPENAI_BASE_URL"),
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.ModelBaseURL == "" {
		cfg.ModelBaseURL = DefaultModelBaseURL
	}
	return cfg
}

// loadDotenv pulls in a local .env file once, so `go run` mirrors the Lambda
// environment. Missing files are fine.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}
