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
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// ErrNoDestination is returned when publishing is attempted without a
// configured downstream topic.
var ErrNoDestination = errors.New("no destination topic configured")

// Publisher hands work items to the downstream queue.
type Publisher interface {
	// Publish enqueues a single work item.
	Publish(ctx context.Context, item *WorkItem) error
}

// SNSAPI is the subset of the SNS client used by SNSPublisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes work items to an SNS topic.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
}

// NewSNSPublisher creates a publisher targeting the given topic ARN.
// An empty topic ARN is permitted at construction; Publish reports
// ErrNoDestination when it is actually needed.
func NewSNSPublisher(client SNSAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
	}
}

// Publish serializes the work item and publishes it to the configured topic.
func (p *SNSPublisher) Publish(ctx context.Context, item *WorkItem) error {
	if p.topicARN == "" {
		return ErrNoDestination
	}

	message, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal work item: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(message)),
	})
	if err != nil {
		return fmt.Errorf("publish work item: %w", err)
	}

	return nil
}
