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

package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/repair"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// generator is the part of llms.Model the analyzer uses.
type generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Analyzer implements ai.Analyzer using OpenAI-compatible chat APIs.
type Analyzer struct {
	client      generator
	engine      *repair.Engine
	temperature float64
	maxAttempts int
	logger      *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyzer(config *ai.Config, engine *repair.Engine) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}
	return newAnalyzerWithClient(client, config, engine)
}

func newAnalyzerWithClient(client generator, config *ai.Config, engine *repair.Engine) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		var err error
		if engine, err = repair.NewEngine(); err != nil {
			return nil, err
		}
	}
	return &Analyzer{
		client:      client,
		engine:      engine,
		temperature: config.Temperature,
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates a new analyzer using the provided configuration.
// A nil engine uses the default repair engine.
//
// Returns ai.Analyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config, engine *repair.Engine) (ai.Analyzer, error) {
	return newAnalyzer(config, engine)
}

// Analyze asks the model for a career analysis of resumeText. Malformed
// output is repaired; output that can only be recovered in degraded form is
// regenerated up to MaxAttempts times, and the last attempt is returned.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) (*ai.Analysis, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, ai.ErrEmptyResume
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(resumeText)},
		},
	}

	var result *ai.Analysis
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(a.temperature), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt, "err", err)
			return nil, err
		}
		if len(response.Choices) < 1 {
			return nil, ai.ErrNoChoices
		}

		result = a.interpret(response.Choices[0].Content)
		result.Attempts = attempt
		if !result.Degraded && result.Stage != repair.StageEmpty {
			break
		}
		a.logger.Warn("model output could not be fully recovered",
			"attempt", attempt,
			"stage", result.Stage.String(),
			"parse_error", result.ParseError)
	}

	a.logger.Debug("analysis complete",
		"attempts", result.Attempts,
		"stage", result.Stage.String(),
		"degraded", result.Degraded)
	return result, nil
}

// interpret turns one completion into an Analysis.
func (a *Analyzer) interpret(content string) *ai.Analysis {
	raw := extractJSON(content)

	var parseErr error
	if !repair.Valid(raw) {
		parseErr = json.Unmarshal([]byte(raw), new(json.RawMessage))
	}

	res := a.engine.Diagnose(raw, parseErr)
	analysis := &ai.Analysis{
		Document: res.Text,
		Raw:      raw,
		Stage:    res.Stage,
		Degraded: res.Degraded,
	}
	if parseErr != nil {
		analysis.ParseError = parseErr.Error()
	}
	return analysis
}
