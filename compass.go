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

package compass

import (
	"log/slog"

	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/ai/openai"
	"github.com/poiesic/compass/analysis"
	"github.com/poiesic/compass/repair"
	"github.com/poiesic/compass/schema"
	"github.com/poiesic/compass/storage"
	"github.com/poiesic/compass/storage/badger"
)

// Service ties together the repair journal, the model provider, the repair
// engine and the schema validator.
type Service struct {
	backend   *badger.Backend
	repairs   storage.RepairRepository
	provider  ai.AIProvider
	engine    *repair.Engine
	validator *schema.Validator
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	engineOptions []repair.Option
	inMemory      bool
}

// WithAIConfig sets the model endpoint configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of an OpenAI-compatible one.
// The Service closes it on Close.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithEngineOptions configures the repair engine.
func WithEngineOptions(opts ...repair.Option) Option {
	return func(o *serviceOptions) {
		o.engineOptions = append(o.engineOptions, opts...)
	}
}

// InMemory keeps the journal in memory. The dir passed to Open is ignored.
func InMemory() Option {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// Open opens the repair journal in dir and wires the analysis stack.
func Open(dir string, opts ...Option) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	engine, err := repair.NewEngine(options.engineOptions...)
	if err != nil {
		return nil, err
	}

	validator, err := schema.NewCareerValidator()
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(dir, options.inMemory)
	if err != nil {
		return nil, err
	}

	repairs, err := badger.NewRepairRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig, engine)
		if err != nil {
			repairs.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:   backend,
		repairs:   repairs,
		provider:  provider,
		engine:    engine,
		validator: validator,
		logger:    slog.Default().With("component", "compass"),
	}, nil
}

// Close releases the provider and the journal.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repairs.Close(); err != nil {
		s.logger.Error("error closing repair repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) RepairRepository() storage.RepairRepository {
	return s.repairs
}

func (s *Service) Engine() *repair.Engine {
	return s.engine
}

func (s *Service) Validator() *schema.Validator {
	return s.validator
}

func (s *Service) Analyzer() ai.Analyzer {
	return s.provider.Analyzer()
}

// NewPipeline creates a batch pipeline that journals into this Service and
// validates against the career schema. opts are applied after those defaults.
func (s *Service) NewPipeline(opts ...analysis.Option) (*analysis.Pipeline, error) {
	opts = append([]analysis.Option{analysis.WithValidator(s.validator)}, opts...)
	return analysis.NewPipeline(s.repairs, s.provider.Analyzer(), opts...)
}
