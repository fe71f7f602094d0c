package mock

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/repair"
)

// MockAnalyzer is a test double for ai.Analyzer.
// It is safe for concurrent use.
type MockAnalyzer struct {
	// AnalyzeFunc allows custom behavior injection.
	// If nil, the raw output from RawFunc (or a fixed document) is repaired
	// and returned.
	AnalyzeFunc func(ctx context.Context, resumeText string) (*ai.Analysis, error)

	// RawFunc produces the pretend model output for a resume.
	RawFunc func(resumeText string) string

	mu        sync.Mutex
	callCount int
	engine    *repair.Engine
}

// DefaultDocument is returned by a MockAnalyzer with no custom behavior.
const DefaultDocument = `{"candidateProfile":{"workExperience":{"seniorityLevel":"mid-level"}},` +
	`"jobRecommendations":[{"roleTitle":"Software Engineer"}],` +
	`"overallEvaluation":{"jobFitScores":{"Software Engineer":80}}}`

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	engine, _ := repair.NewEngine()
	return &MockAnalyzer{engine: engine}
}

// WithRawOutput makes the analyzer pretend the model produced raw for every resume.
func (m *MockAnalyzer) WithRawOutput(raw string) *MockAnalyzer {
	m.RawFunc = func(string) string { return raw }
	return m
}

// WithAnalyzeFunc sets a custom Analyze function.
func (m *MockAnalyzer) WithAnalyzeFunc(fn func(ctx context.Context, resumeText string) (*ai.Analysis, error)) *MockAnalyzer {
	m.AnalyzeFunc = fn
	return m
}

// Analyze returns a repaired analysis of the pretend model output.
func (m *MockAnalyzer) Analyze(ctx context.Context, resumeText string) (*ai.Analysis, error) {
	m.mu.Lock()
	m.callCount++
	fn, rawFn := m.AnalyzeFunc, m.RawFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, resumeText)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, ai.ErrEmptyResume
	}

	raw := DefaultDocument
	if rawFn != nil {
		raw = rawFn(resumeText)
	}

	var parseErr error
	if !repair.Valid(raw) {
		parseErr = json.Unmarshal([]byte(raw), new(json.RawMessage))
	}
	res := m.engine.Diagnose(raw, parseErr)
	analysis := &ai.Analysis{
		Document: res.Text,
		Raw:      raw,
		Stage:    res.Stage,
		Degraded: res.Degraded,
		Attempts: 1,
	}
	if parseErr != nil {
		analysis.ParseError = parseErr.Error()
	}
	return analysis, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockAnalyzer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.AnalyzeFunc = nil
	m.RawFunc = nil
}
