// Copyright 2025 Poiesic Systems
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

package ai

import "context"

// Analyzer turns resume text into a career analysis document.
// Implementations must be thread-safe for concurrent use.
type Analyzer interface {
	// Analyze asks the model for a career analysis of resumeText.
	// A returned Analysis always holds a document that parses as JSON;
	// malformed model output is repaired rather than reported as an error.
	// Returns an error only if the model could not be called.
	Analyze(ctx context.Context, resumeText string) (*Analysis, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Analyzer returns the analysis service.
	// The returned Analyzer is safe for concurrent use.
	Analyzer() Analyzer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
