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

package review

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/reviewrelay/reviewrelay/internal/agent"
)

// PRRef identifies a pull request by the components of its web URL.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePRURL extracts the owner, repository and number from a pull request's
// html_url, e.g. https://github.com/owner/repo/pull/123. Anything else is an
// input error.
func ParsePRURL(raw string) (PRRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return PRRef{}, agent.NewInputError("invalid pull request URL %q", raw)
	}

	host := strings.TrimPrefix(u.Host, "www.")
	if u.Scheme != "https" || host != "github.com" {
		return PRRef{}, agent.NewInputError("unsupported pull request host in %q", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "pull" {
		return PRRef{}, agent.NewInputError("URL %q is not a pull request URL", raw)
	}

	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return PRRef{}, agent.NewInputError("invalid pull request number in %q", raw)
	}

	return PRRef{Owner: parts[0], Repo: parts[1], Number: number}, nil
}
