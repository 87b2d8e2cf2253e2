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

// The webhook Lambda receives GitHub webhook deliveries through API Gateway,
// verifies their signatures and publishes review work items to SNS.
package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/config"
	"github.com/reviewrelay/reviewrelay/internal/logging"
	"github.com/reviewrelay/reviewrelay/internal/queue"
	"github.com/reviewrelay/reviewrelay/internal/webhook"
)

func main() {
	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.LoadWebhook()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal("Could not load AWS configuration", zap.Error(err))
	}

	publisher := queue.NewSNSPublisher(sns.NewFromConfig(awsCfg), cfg.TopicARN)
	handler := webhook.NewHandler(cfg, publisher, logger)

	lambda.Start(handler.Handle)
}
