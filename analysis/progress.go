package analysis

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how far a batch of analyses has got and how many
// of them needed repair.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	repaired       int
	degraded       int
	failed         int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of inputs to analyze
// reportInterval: report progress every N inputs
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.repaired = 0
	p.degraded = 0
	p.failed = 0
	p.lastReported = 0
}

// Record counts one finished outcome.
func (p *ProgressTracker) Record(o Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if p.current < p.total {
		p.current++
	}
	switch {
	case o.Err != nil:
		p.failed++
	case o.Analysis != nil && o.Analysis.Degraded:
		p.degraded++
		p.repaired++
	case o.Analysis != nil && o.Analysis.Repaired():
		p.repaired++
	}

	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish marks the batch as complete and prints final progress.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
}

// Counts returns the number of repaired, degraded and failed outcomes so far.
func (p *ProgressTracker) Counts() (repaired, degraded, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repaired, p.degraded, p.failed
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	rate := float64(p.current) / time.Since(p.startTime).Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rAnalyzed: %d/%d (%.1f%%) repaired=%d degraded=%d failed=%d - %.1f resumes/s",
		p.current, p.total, percentage, p.repaired, p.degraded, p.failed, rate)
}
