package analysis

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/ai/mock"
	"github.com/poiesic/compass/core"
	"github.com/poiesic/compass/repair"
	"github.com/poiesic/compass/schema"
	"github.com/poiesic/compass/storage"
	"github.com/poiesic/compass/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// modelOutputs maps resume text to what the pretend model returns for it.
var modelOutputs = map[string]string{
	"clean":   mock.DefaultDocument,
	"comma":   `{"a":1,}`,
	"garbage": `not json at all`,
}

func setupTestRepository(t *testing.T) (storage.RepairRepository, func()) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	return repo, func() {
		repo.Close()
		backend.Close()
	}
}

func newScriptedAnalyzer() *mock.MockAnalyzer {
	m := mock.NewMockAnalyzer()
	m.RawFunc = func(text string) string { return modelOutputs[text] }
	return m
}

func TestNewPipeline(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()
	analyzer := mock.NewMockAnalyzer()

	t.Run("valid pipeline", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, analyzer)
		require.NoError(t, err)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.pool)
		assert.Equal(t, 3, pipeline.maxAttempts)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, analyzer)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil analyzer", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrAnalyzerRequired, err)
	})
}

func TestPipeline_WithOptions(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()
	analyzer := mock.NewMockAnalyzer()

	t.Run("with pool size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, analyzer, WithPoolSize(0))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, 1, pipeline.pool.Cap())
	})

	t.Run("with invalid retry", func(t *testing.T) {
		_, err := NewPipeline(repo, analyzer, WithRetry(0, time.Second))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, analyzer, WithLogger(nil))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, slog.Default(), pipeline.logger)
	})
}

func TestPipeline_AnalyzeAll(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	validator, err := schema.NewCareerValidator()
	require.NoError(t, err)

	var progress bytes.Buffer
	analyzer := newScriptedAnalyzer()
	pipeline, err := NewPipeline(repo, analyzer,
		WithPoolSize(2),
		WithValidator(validator),
		WithProgress(&progress, 1),
		WithRetry(3, time.Millisecond),
	)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	outcomes, err := pipeline.AnalyzeAll(ctx, []Input{
		{Source: "clean.txt", Text: "clean"},
		{Source: "comma.txt", Text: "comma"},
		{Source: "garbage.txt", Text: "garbage"},
		{Source: "empty.txt", Text: ""},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	t.Run("clean output", func(t *testing.T) {
		o := outcomes[0]
		require.NoError(t, o.Err)
		assert.Equal(t, "clean.txt", o.Source)
		assert.Equal(t, repair.StageNone, o.Analysis.Stage)
		assert.NoError(t, o.SchemaErr)
		assert.Equal(t, "mid-level", o.Summary.SeniorityLevel)
		require.NotNil(t, o.Record)
		assert.Equal(t, core.IDFromContent(mock.DefaultDocument), o.Record.Id)
	})

	t.Run("repaired output violates schema", func(t *testing.T) {
		o := outcomes[1]
		require.NoError(t, o.Err)
		assert.Equal(t, `{"a":1}`, o.Analysis.Document)
		assert.ErrorIs(t, o.SchemaErr, schema.ErrSchemaViolation)
		assert.Equal(t, "lexical", o.Record.Stage)
		assert.NotEmpty(t, o.Record.ParseError)
	})

	t.Run("unrecoverable output", func(t *testing.T) {
		o := outcomes[2]
		require.NoError(t, o.Err)
		assert.True(t, o.Analysis.Degraded)
		assert.True(t, o.Summary.Degraded)
		assert.NoError(t, o.SchemaErr)
		assert.True(t, o.Record.Degraded)
	})

	t.Run("empty resume is not retried", func(t *testing.T) {
		o := outcomes[3]
		assert.ErrorIs(t, o.Err, ai.ErrEmptyResume)
		assert.Nil(t, o.Record)
		assert.Equal(t, 4, analyzer.CallCount())
	})

	t.Run("journal", func(t *testing.T) {
		counts, err := repo.CountByStage(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.StageCount{
			{Stage: "fallback", Count: 1},
			{Stage: "lexical", Count: 1},
			{Stage: "none", Count: 1},
		}, counts)
	})

	t.Run("progress", func(t *testing.T) {
		assert.Contains(t, progress.String(), "Analyzed: 4/4 (100.0%) repaired=2 degraded=1 failed=1")
	})
}

func TestPipeline_RetriesTransportErrors(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	analyzer := mock.NewMockAnalyzer()
	calls := 0
	analyzer.AnalyzeFunc = func(ctx context.Context, text string) (*ai.Analysis, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return &ai.Analysis{Document: mock.DefaultDocument, Raw: mock.DefaultDocument, Attempts: 1}, nil
	}

	pipeline, err := NewPipeline(repo, analyzer, WithPoolSize(1), WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	defer pipeline.Release()

	out := pipeline.Analyze(context.Background(), Input{Source: "a.txt", Text: "resume"})
	require.NoError(t, out.Err)
	assert.Equal(t, 3, analyzer.CallCount())
	assert.Equal(t, 1, out.Record.Attempts)
}

func TestPipeline_JournalsRepeatedOutput(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	pipeline, err := NewPipeline(repo, newScriptedAnalyzer(), WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	first := pipeline.Analyze(ctx, Input{Source: "a.txt", Text: "comma"})
	second := pipeline.Analyze(ctx, Input{Source: "b.txt", Text: "comma"})

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Record.Id, second.Record.Id)
	assert.Equal(t, 2, second.Record.Attempts)
	assert.Equal(t, "b.txt", second.Record.Source)
}

func TestPipeline_ContextCanceled(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	analyzer := newScriptedAnalyzer()
	pipeline, err := NewPipeline(repo, analyzer)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := pipeline.AnalyzeAll(ctx, []Input{{Source: "a.txt", Text: "clean"}})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
	assert.Zero(t, analyzer.CallCount())
}

func TestPipeline_ReleaseLeavesNoWorkers(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pipeline, err := NewPipeline(repo, newScriptedAnalyzer(), WithPoolSize(4))
	require.NoError(t, err)

	inputs := make([]Input, 16)
	for i := range inputs {
		inputs[i] = Input{Source: "r.txt", Text: "clean"}
	}
	_, err = pipeline.AnalyzeAll(context.Background(), inputs)
	require.NoError(t, err)

	pipeline.Release()
}
