package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/compass/ai"
	"github.com/poiesic/compass/core"
	"github.com/poiesic/compass/schema"
	"github.com/poiesic/compass/storage"
)

// Input is one resume to analyze.
type Input struct {
	Source string // File name or other label recorded in the journal
	Text   string
}

// Outcome is the result of analyzing one Input.
type Outcome struct {
	Source   string
	Analysis *ai.Analysis
	Record   *core.RepairRecord
	Summary  schema.Summary

	// SchemaErr is set when a validator is configured and the document
	// does not satisfy it.
	SchemaErr error

	// Err is set when no analysis could be produced.
	Err error
}

// Pipeline analyzes batches of resumes concurrently and journals every
// outcome.
type Pipeline struct {
	repairs     storage.RepairRepository
	analyzer    ai.Analyzer
	validator   *schema.Validator
	pool        *ants.Pool
	maxAttempts int
	baseDelay   time.Duration
	progress    io.Writer
	interval    int
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent analysis.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithRetry sets how often a failed model call is retried and the delay
// before the first retry. Default is 3 attempts starting at 500ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithValidator checks every analyzed document against v.
func WithValidator(v *schema.Validator) Option {
	return func(p *Pipeline) error {
		p.validator = v
		return nil
	}
}

// WithProgress reports progress to w every interval inputs.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.interval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new analysis pipeline.
func NewPipeline(repairs storage.RepairRepository, analyzer ai.Analyzer, opts ...Option) (*Pipeline, error) {
	if repairs == nil {
		return nil, ErrRepositoryRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repairs:     repairs,
		analyzer:    analyzer,
		pool:        pool,
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
		logger:      slog.Default().With("component", "analysis"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// AnalyzeAll analyzes inputs concurrently and returns one Outcome per input,
// in input order. Failures are reported per Outcome; the returned error is
// only set when ctx ends before the batch completes.
func (p *Pipeline) AnalyzeAll(ctx context.Context, inputs []Input) ([]Outcome, error) {
	outcomes := make([]Outcome, len(inputs))

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(inputs), p.interval)
		tracker.Start()
	}

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.Analyze(ctx, in)
			if tracker != nil {
				tracker.Record(outcomes[i])
			}
		})
		if err != nil {
			wg.Done()
			outcomes[i] = Outcome{Source: in.Source, Err: err}
			p.logger.Error("error submitting analysis", "source", in.Source, "err", err)
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}
	return outcomes, ctx.Err()
}

// Analyze analyzes a single input, retrying transport failures, then
// journals and validates the result.
func (p *Pipeline) Analyze(ctx context.Context, in Input) Outcome {
	out := Outcome{Source: in.Source}

	err := RetryWithBackoff(ctx, func() error {
		a, err := p.analyzer.Analyze(ctx, in.Text)
		if errors.Is(err, ai.ErrEmptyResume) || errors.Is(err, ai.ErrInvalidConfig) {
			return Permanent(err)
		}
		if err != nil {
			return err
		}
		out.Analysis = a
		return nil
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		p.logger.Error("error analyzing resume", "source", in.Source, "err", err)
		out.Err = err
		return out
	}

	a := out.Analysis
	record, err := p.repairs.SaveRepair(ctx, &core.RepairRecord{
		Source:     in.Source,
		Stage:      a.Stage.String(),
		Degraded:   a.Degraded,
		ParseError: a.ParseError,
		Raw:        a.Raw,
		Repaired:   a.Document,
	})
	if err != nil {
		// The analysis itself is still usable.
		p.logger.Error("error journaling repair", "source", in.Source, "err", err)
	}
	out.Record = record

	out.Summary = schema.Summarize(a.Document)
	if p.validator != nil {
		out.SchemaErr = p.validator.Validate(a.Document)
	}

	if a.Degraded {
		p.logger.Warn("analysis degraded", "source", in.Source, "stage", a.Stage)
	} else if a.Repaired() {
		p.logger.Debug("analysis repaired", "source", in.Source, "stage", a.Stage)
	}
	return out
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
