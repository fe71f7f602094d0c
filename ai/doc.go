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


// Package ai provides abstractions for the model that writes career analyses.
//
// The model is an external collaborator whose output is often malformed
// JSON. Implementations of Analyzer call the model and hand its output to
// the repair engine, so an Analysis always carries a parseable document
// along with the repair stage that produced it.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewAnalyzer) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockAnalyzer) return CONCRETE types to enable test assertions
// and behavior injection.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	analysis, err := provider.Analyzer().Analyze(ctx, resumeText)
//	if analysis.Degraded {
//	    // the document is the fallback skeleton or a partial salvage
//	}
package ai
