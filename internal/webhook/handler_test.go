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
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/config"
	"github.com/reviewrelay/reviewrelay/internal/queue"
)

const testSecret = "test-webhook-secret"

// fakePublisher records published work items
type fakePublisher struct {
	items []*queue.WorkItem
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, item *queue.WorkItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, item)
	return nil
}

func setupHandler(t *testing.T) (*Handler, *fakePublisher) {
	t.Helper()

	publisher := &fakePublisher{}
	cfg := &config.Webhook{WebhookSecret: testSecret}
	return NewHandler(cfg, publisher, zap.NewNop()), publisher
}

func signedRequest(payload []byte) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"X-Hub-Signature-256": computeSignature(payload, testSecret),
			"X-GitHub-Event":      "pull_request",
		},
		Body: string(payload),
	}
}

func responseBody(t *testing.T, resp events.APIGatewayProxyResponse) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("response body %q is not valid JSON: %v", resp.Body, err)
	}
	return body
}

// TestHandle_OpenedPR verifies the full path: valid signature, opened PR,
// exactly one publish with the expected work item
func TestHandle_OpenedPR(t *testing.T) {
	handler, publisher := setupHandler(t)
	payload := []byte(`{"action":"opened","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`)

	resp, err := handler.Handle(context.Background(), signedRequest(payload))
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Handle returns %d, expected 200", resp.StatusCode)
	}
	if body := responseBody(t, resp); body["message"] != "Event processed successfully" {
		t.Errorf("message is %q, expected %q", body["message"], "Event processed successfully")
	}

	if len(publisher.items) != 1 {
		t.Fatalf("Handle published %d work items, expected 1", len(publisher.items))
	}
	item := publisher.items[0]
	if item.PRURL != "https://github.com/o/r/pull/1" {
		t.Errorf("published PRURL is %q, expected the event's html_url", item.PRURL)
	}
	if len(item.Commands) != 1 || item.Commands[0] != "/review" {
		t.Errorf("published Commands are %v, expected [/review]", item.Commands)
	}
}

// TestHandle_MissingSignature verifies 401 with no publish
func TestHandle_MissingSignature(t *testing.T) {
	handler, publisher := setupHandler(t)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{"X-GitHub-Event": "pull_request"},
		Body:    "{}",
	})
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 401 {
		t.Errorf("Handle returns %d, expected 401", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Missing signature") {
		t.Errorf("body %q does not mention the missing signature", resp.Body)
	}
	if len(publisher.items) != 0 {
		t.Errorf("Handle published %d work items despite auth failure", len(publisher.items))
	}
}

// TestHandle_InvalidSignature verifies 401 for a wrong signature
func TestHandle_InvalidSignature(t *testing.T) {
	handler, publisher := setupHandler(t)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"X-Hub-Signature-256": "sha256=0000000000000000000000000000000000000000000000000000000000000000",
			"X-GitHub-Event":      "pull_request",
		},
		Body: `{"action":"opened","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`,
	})
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 401 {
		t.Errorf("Handle returns %d, expected 401", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Invalid signature") {
		t.Errorf("body %q does not mention the invalid signature", resp.Body)
	}
	if len(publisher.items) != 0 {
		t.Error("Handle published despite invalid signature")
	}
}

// TestHandle_MissingSecret verifies 500 when no secret is configured
func TestHandle_MissingSecret(t *testing.T) {
	handler := NewHandler(&config.Webhook{}, &fakePublisher{}, zap.NewNop())

	resp, err := handler.Handle(context.Background(), signedRequest([]byte("{}")))
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 500 {
		t.Errorf("Handle returns %d, expected 500", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "GITHUB_WEBHOOK_SECRET") {
		t.Errorf("body %q does not name the missing configuration", resp.Body)
	}
}

// TestHandle_MissingEventType verifies 400 without X-GitHub-Event
func TestHandle_MissingEventType(t *testing.T) {
	handler, _ := setupHandler(t)
	payload := []byte("{}")

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{"X-Hub-Signature-256": computeSignature(payload, testSecret)},
		Body:    string(payload),
	})
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 400 {
		t.Errorf("Handle returns %d, expected 400", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Missing event type") {
		t.Errorf("body %q does not mention the missing event type", resp.Body)
	}
}

// TestHandle_MalformedBody verifies 400 for a signed but unparseable payload
func TestHandle_MalformedBody(t *testing.T) {
	handler, _ := setupHandler(t)

	resp, err := handler.Handle(context.Background(), signedRequest([]byte(`{not json`)))
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 400 {
		t.Errorf("Handle returns %d, expected 400", resp.StatusCode)
	}
}

// TestHandle_IgnoredEvent verifies the 200 "Event ignored" acknowledgement
func TestHandle_IgnoredEvent(t *testing.T) {
	handler, publisher := setupHandler(t)
	payload := []byte(`{"action":"closed","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`)

	resp, err := handler.Handle(context.Background(), signedRequest(payload))
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Handle returns %d, expected 200", resp.StatusCode)
	}
	if body := responseBody(t, resp); body["message"] != "Event ignored" {
		t.Errorf("message is %q, expected %q", body["message"], "Event ignored")
	}
	if len(publisher.items) != 0 {
		t.Error("Handle published a work item for a closed PR")
	}
}

// TestHandle_NoDestination verifies 500 when the topic ARN is missing
func TestHandle_NoDestination(t *testing.T) {
	publisher := &fakePublisher{err: queue.ErrNoDestination}
	handler := NewHandler(&config.Webhook{WebhookSecret: testSecret}, publisher, zap.NewNop())
	payload := []byte(`{"action":"opened","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`)

	resp, err := handler.Handle(context.Background(), signedRequest(payload))
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 500 {
		t.Errorf("Handle returns %d, expected 500", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "SNS_TOPIC_ARN") {
		t.Errorf("body %q does not name the missing destination", resp.Body)
	}
}

// TestHandle_Base64Body verifies that base64-encoded bodies are decoded
// before signature verification
func TestHandle_Base64Body(t *testing.T) {
	handler, publisher := setupHandler(t)
	payload := []byte(`{"action":"opened","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"X-Hub-Signature-256": computeSignature(payload, testSecret),
			"X-GitHub-Event":      "pull_request",
		},
		Body:            base64.StdEncoding.EncodeToString(payload),
		IsBase64Encoded: true,
	})
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Handle returns %d, expected 200", resp.StatusCode)
	}
	if len(publisher.items) != 1 {
		t.Errorf("Handle published %d work items, expected 1", len(publisher.items))
	}
}

// TestHandle_LowercaseHeaders verifies the header names API Gateway HTTP APIs
// deliver
func TestHandle_LowercaseHeaders(t *testing.T) {
	handler, publisher := setupHandler(t)
	payload := []byte(`{"action":"opened","pull_request":{"html_url":"https://github.com/o/r/pull/1"}}`)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"x-hub-signature-256": computeSignature(payload, testSecret),
			"x-github-event":      "pull_request",
		},
		Body: string(payload),
	})
	if err != nil {
		t.Fatalf("Handle returns error: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Handle returns %d, expected 200", resp.StatusCode)
	}
	if len(publisher.items) != 1 {
		t.Errorf("Handle published %d work items, expected 1", len(publisher.items))
	}
}
