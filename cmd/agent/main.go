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

// The agent Lambda consumes queued work items from SQS and runs each review
// command against its pull request.
package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/agent"
	"github.com/reviewrelay/reviewrelay/internal/config"
	"github.com/reviewrelay/reviewrelay/internal/logging"
	"github.com/reviewrelay/reviewrelay/internal/review"
)

func main() {
	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.LoadAgent()

	executor, err := review.NewExecutor(cfg, logger)
	if err != nil {
		logger.Fatal("Could not configure review executor", zap.Error(err))
	}

	runner, err := agent.NewRunner(cfg, executor, logger)
	if err != nil {
		logger.Fatal("Could not configure command runner", zap.Error(err))
	}

	handler := agent.NewHandler(runner, logger)

	lambda.Start(handler.Handle)
}
