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

// Package review implements the command executor behind the agent: it fetches
// a pull request and its diff from GitHub, sends them to an OpenAI-compatible
// analysis backend, and posts the produced feedback back to the PR as a
// comment.
//
// Supported commands:
//   - /review: a code review of the changes
//   - /describe: a summary description of the pull request
//   - /improve: concrete improvement suggestions for the changes
//
// GitHub calls are retried with exponential backoff on rate limiting and
// transient server errors. The analysis backend is called exactly once per
// command.
package review
