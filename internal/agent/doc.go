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

// Package agent consumes queued work items and runs review commands against
// pull requests.
//
// The Runner executes each command through a narrow CommandExecutor seam and
// classifies failures into three kinds: invalid input (a command or PR URL
// the executor cannot accept), runtime (a failure inside the provider or
// analysis backend), and unexpected (everything else). A failing command
// never aborts the remaining commands; each produces its own CommandResult
// and the results sequence stays aligned 1:1 with the input commands.
//
// Commands for one pull request run strictly sequentially. The executor is
// not assumed safe for concurrent calls against the same PR.
package agent
