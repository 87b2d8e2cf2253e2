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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/reviewrelay/reviewrelay/internal/config"
)

// scriptedExecutor returns a canned response per command
type scriptedExecutor struct {
	responses map[string]error
	outputs   map[string]string
	calls     []string
}

func (s *scriptedExecutor) Run(_ context.Context, _, command string) (string, error) {
	s.calls = append(s.calls, command)
	return s.outputs[command], s.responses[command]
}

var _ = Describe("Runner", func() {
	var (
		executor *scriptedExecutor
		runner   *Runner
	)

	validConfig := func() *config.Agent {
		return &config.Agent{
			Provider:    "github",
			UserToken:   "test-token",
			ModelAPIKey: "test-key",
		}
	}

	BeforeEach(func() {
		executor = &scriptedExecutor{
			responses: map[string]error{},
			outputs:   map[string]string{},
		}

		var err error
		runner, err = NewRunner(validConfig(), executor, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("construction", func() {
		It("fails without a provider token", func() {
			cfg := validConfig()
			cfg.UserToken = ""

			_, err := NewRunner(cfg, executor, zap.NewNop())
			Expect(err).To(MatchError(ContainSubstring("PR_AGENT_USER_TOKEN")))
		})

		It("fails without a backend API key", func() {
			cfg := validConfig()
			cfg.ModelAPIKey = ""

			_, err := NewRunner(cfg, executor, zap.NewNop())
			Expect(err).To(MatchError(ContainSubstring("PR_AGENT_OPENAI_KEY")))
		})
	})

	Context("running a single command", func() {
		It("reports success with the executor's output", func() {
			executor.outputs["/review"] = "review posted"

			result := runner.Run(context.Background(), "https://github.com/o/r/pull/1", "/review")

			Expect(result.Status).To(Equal(StatusSuccess))
			Expect(result.Command).To(Equal("/review"))
			Expect(result.Output).To(Equal("review posted"))
			Expect(result.Error).To(BeEmpty())
		})

		It("reports the default output when the executor produces none", func() {
			result := runner.Run(context.Background(), "https://github.com/o/r/pull/1", "/review")

			Expect(result.Status).To(Equal(StatusSuccess))
			Expect(result.Output).To(ContainSubstring("Check PR comments for feedback"))
		})

		It("classifies input errors", func() {
			executor.responses["/bad"] = NewInputError("unsupported command %q", "/bad")

			result := runner.Run(context.Background(), "https://github.com/o/r/pull/1", "/bad")

			Expect(result.Status).To(Equal(StatusError))
			Expect(result.Error).To(HavePrefix("Invalid input:"))
			Expect(result.Output).To(BeEmpty())
		})

		It("classifies backend errors as runtime failures", func() {
			executor.responses["/review"] = NewExecError("fetch pull request", errors.New("502 from api"))

			result := runner.Run(context.Background(), "https://github.com/o/r/pull/1", "/review")

			Expect(result.Status).To(Equal(StatusError))
			Expect(result.Error).To(HavePrefix("Runtime error:"))
		})

		It("classifies everything else as unexpected", func() {
			executor.responses["/review"] = errors.New("something odd")

			result := runner.Run(context.Background(), "https://github.com/o/r/pull/1", "/review")

			Expect(result.Status).To(Equal(StatusError))
			Expect(result.Error).To(HavePrefix("Unexpected error:"))
		})
	})

	Context("processing a command sequence", func() {
		It("returns one result per command, in input order", func() {
			executor.responses["/bad"] = NewInputError("unsupported command %q", "/bad")

			results := runner.ProcessCommands(context.Background(),
				"https://github.com/o/r/pull/1", []string{"/review", "/bad"})

			Expect(results).To(HaveLen(2))
			Expect(results[0].Command).To(Equal("/review"))
			Expect(results[0].Status).To(Equal(StatusSuccess))
			Expect(results[1].Command).To(Equal("/bad"))
			Expect(results[1].Status).To(Equal(StatusError))
			Expect(results[1].Error).To(ContainSubstring("Invalid input"))
		})

		It("does not short-circuit on a failing command", func() {
			executor.responses["/review"] = NewExecError("post comment", errors.New("boom"))

			results := runner.ProcessCommands(context.Background(),
				"https://github.com/o/r/pull/1", []string{"/review", "/describe"})

			Expect(results).To(HaveLen(2))
			Expect(results[1].Status).To(Equal(StatusSuccess))
			Expect(executor.calls).To(Equal([]string{"/review", "/describe"}))
		})

		It("returns an empty, non-nil slice for no commands", func() {
			results := runner.ProcessCommands(context.Background(), "https://github.com/o/r/pull/1", nil)

			Expect(results).NotTo(BeNil())
			Expect(results).To(BeEmpty())
		})
	})
})
