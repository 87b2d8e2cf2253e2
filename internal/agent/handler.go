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
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/queue"
)

// Response is the proxy-style response shape both Lambdas emit.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RecordResult groups the command results for one queue record.
type RecordResult struct {
	PRURL   string          `json:"pr_url"`
	Results []CommandResult `json:"results"`
}

// Handler consumes SQS batches of queued work items.
type Handler struct {
	runner *Runner
	logger *zap.Logger
}

// NewHandler creates the SQS consumer handler.
func NewHandler(runner *Runner, logger *zap.Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle processes every record in the batch. Record-level validation
// failures abort the invocation with a 400; per-command failures are
// captured in their CommandResult and never abort the batch.
func (h *Handler) Handle(ctx context.Context, event events.SQSEvent) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic while processing queue batch", zap.Any("panic", r))
			resp = jsonResponse(http.StatusInternalServerError, map[string]any{
				"message": "Runtime error",
				"error":   "internal failure while processing commands",
			})
			err = nil
		}
	}()

	if len(event.Records) == 0 {
		return jsonResponse(http.StatusBadRequest, map[string]any{
			"message": "Invalid event structure",
			"error":   "no records found in event",
		}), nil
	}

	outcomes := make([]RecordResult, 0, len(event.Records))
	for _, record := range event.Records {
		item, perr := queue.ParseMessage([]byte(record.Body))
		if perr != nil {
			h.logger.Warn("Rejecting queue record", zap.String("message_id", record.MessageId), zap.Error(perr))
			return jsonResponse(http.StatusBadRequest, map[string]any{
				"message": "Invalid request",
				"error":   perr.Error(),
			}), nil
		}

		h.logger.Info("Processing work item",
			zap.String("pr_url", item.PRURL),
			zap.Strings("commands", item.Commands))

		outcomes = append(outcomes, RecordResult{
			PRURL:   item.PRURL,
			Results: h.runner.ProcessCommands(ctx, item.PRURL, item.Commands),
		})
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"message": "PR command processed successfully",
		"results": outcomes,
	}), nil
}

func jsonResponse(status int, body map[string]any) Response {
	data, _ := json.Marshal(body)
	return Response{StatusCode: status, Body: string(data)}
}
