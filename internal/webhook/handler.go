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
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/config"
	"github.com/reviewrelay/reviewrelay/internal/queue"
)

const (
	signatureHeader = "X-Hub-Signature-256"
	eventTypeHeader = "X-GitHub-Event"
)

// Handler processes GitHub webhook deliveries forwarded by API Gateway.
//
// Handling is a linear pass: signature header, secret, event type header,
// signature verification, body decode, translation, publish. The first
// failing stage determines the response; nothing is retried.
type Handler struct {
	secret    []byte
	publisher queue.Publisher
	logger    *zap.Logger
}

// NewHandler creates a webhook handler.
func NewHandler(cfg *config.Webhook, publisher queue.Publisher, logger *zap.Logger) *Handler {
	return &Handler{
		secret:    []byte(cfg.WebhookSecret),
		publisher: publisher,
		logger:    logger,
	}
}

// Handle is the Lambda entrypoint for webhook deliveries. It always returns a
// well-formed JSON response; unexpected faults become a 500, never a Lambda
// invocation error.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic while processing webhook", zap.Any("panic", r))
			resp = errorResponse(http.StatusInternalServerError, "Internal server error")
			err = nil
		}
	}()

	h.logger.Info("Received webhook event",
		zap.String("event_type", headerValue(req.Headers, eventTypeHeader)))

	message, whErr := h.process(ctx, req)
	if whErr != nil {
		h.logger.Warn("Webhook error",
			zap.Int("status", whErr.Status),
			zap.String("message", whErr.Message),
			zap.Error(whErr.Err))
		return errorResponse(whErr.Status, whErr.Message), nil
	}

	return successResponse(message), nil
}

func (h *Handler) process(ctx context.Context, req events.APIGatewayProxyRequest) (string, *Error) {
	signature := headerValue(req.Headers, signatureHeader)
	if signature == "" {
		return "", NewAuthenticationError("Missing signature")
	}

	if len(h.secret) == 0 {
		return "", NewConfigurationError("Missing GITHUB_WEBHOOK_SECRET environment variable")
	}

	eventType := headerValue(req.Headers, eventTypeHeader)
	if eventType == "" {
		return "", NewValidationError("Missing event type", nil)
	}

	body, err := requestBody(req)
	if err != nil {
		return "", NewValidationError("Invalid request body", err)
	}

	if !VerifySignature(body, signature, h.secret) {
		h.logger.Warn("Invalid signature", zap.Int("body_length", len(body)))
		return "", NewAuthenticationError("Invalid signature")
	}

	item, terr := Translate(eventType, body)
	if terr != nil {
		if whErr, ok := AsError(terr); ok {
			return "", whErr
		}
		return "", NewValidationError("Invalid event data", terr)
	}
	if item == nil {
		return "Event ignored", nil
	}

	h.logger.Info("Publishing work item", zap.String("pr_url", item.PRURL))
	if err := h.publisher.Publish(ctx, item); err != nil {
		if errors.Is(err, queue.ErrNoDestination) {
			return "", NewConfigurationError("Missing SNS_TOPIC_ARN environment variable")
		}
		return "", &Error{Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
	}

	return "Event processed successfully", nil
}

// headerValue looks up a header tolerating the lowercased names API Gateway
// HTTP APIs produce.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// requestBody returns the raw payload bytes, decoding the base64 form API
// Gateway uses for binary bodies. Signature verification runs over these
// exact bytes.
func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func successResponse(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusOK, map[string]string{"message": message})
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": message})
}

func jsonResponse(status int, body map[string]string) events.APIGatewayProxyResponse {
	data, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
