// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Analyzer and
// ai.AIProvider for use in unit tests. The mocks run pretend model output
// through the real repair engine, so tests exercise recovery without an
// external model.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	analysis, err := provider.Analyzer().Analyze(ctx, "resume text")
//
//	// Pretend the model produced broken output
//	analyzer := mock.NewMockAnalyzer().WithRawOutput(`{"candidateProfile":{`)
//
//	// Check call counts
//	count := analyzer.CallCount()
package mock
