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

// Package logging builds the structured logger shared by both Lambdas.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a production zap logger. An empty level selects info; anything
// zap can parse ("debug", "warn", ...) overrides it.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}

	return cfg.Build()
}
