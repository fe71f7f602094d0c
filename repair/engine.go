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

package repair

import (
	"log/slog"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// Stage identifies the pipeline step that produced a repair result.
type Stage int

const (
	// StageNone means the input already parsed and was returned unchanged.
	StageNone Stage = iota
	// StageEmpty means the input was empty and "{}" was returned.
	StageEmpty
	StageLexical
	StageTruncation
	StagePositional
	StageAggressive
	StageLibrary
	StageSalvage
	StageProfile
	// StageFallback means every stage failed and the skeleton was returned.
	StageFallback
)

var stageNames = [...]string{
	StageNone:       "none",
	StageEmpty:      "empty",
	StageLexical:    "lexical",
	StageTruncation: "truncation",
	StagePositional: "positional",
	StageAggressive: "aggressive",
	StageLibrary:    "library",
	StageSalvage:    "salvage",
	StageProfile:    "profile",
	StageFallback:   "fallback",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// ParseStage returns the Stage with the given name.
func ParseStage(name string) (Stage, bool) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), true
		}
	}
	return StageNone, false
}

// Lossy reports whether a result from this stage may have dropped content.
func (s Stage) Lossy() bool {
	return s >= StageSalvage
}

// Result is the outcome of a repair.
type Result struct {
	// Text always parses as JSON.
	Text string
	// Stage is the step whose output was accepted.
	Stage Stage
	// Degraded is set when significant content may have been discarded.
	Degraded bool
}

// Engine runs the repair pipeline. It holds no mutable state after
// construction and is safe for concurrent use.
type Engine struct {
	shape    Shape
	dialect  Dialect
	logger   *slog.Logger
	library  bool
	skeleton string
	notePath string
	stages   []stage
}

// Option configures an Engine.
type Option func(*Engine) error

// WithShape sets the expected document shape used by the profile stage and
// the fallback skeleton. Default is DefaultShape().
func WithShape(shape Shape) Option {
	return func(e *Engine) error {
		if err := shape.Validate(); err != nil {
			return err
		}
		e.shape = shape
		return nil
	}
}

// WithDialect sets how parse error messages are read.
// Default is DefaultDialect.
func WithDialect(d Dialect) Option {
	return func(e *Engine) error {
		if d == nil {
			d = DefaultDialect
		}
		e.dialect = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default() at the time of each call.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithLibraryStage enables a pass through github.com/kaptinlin/jsonrepair
// between the aggressive and salvage stages.
func WithLibraryStage() Option {
	return func(e *Engine) error {
		e.library = true
		return nil
	}
}

// NewEngine creates an engine with the given options applied.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		shape:   DefaultShape(),
		dialect: DefaultDialect,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.skeleton = e.shape.skeleton()
	e.notePath = gjson.Escape(e.shape.NoteField) + "." + gjson.Escape(e.shape.NoteList)
	e.stages = e.buildStages()
	return e, nil
}

var defaultEngine, _ = NewEngine()

// Repair repairs text with a default engine. See Engine.Repair.
func Repair(text string, err error) string {
	return defaultEngine.Repair(text, err)
}

// Repair returns text, repaired if necessary, as a string that parses as
// JSON. err is the failure of an earlier parse attempt and may be nil; only
// its message is consulted.
func (e *Engine) Repair(text string, err error) string {
	return e.Diagnose(text, err).Text
}

// Skeleton returns the fallback document.
func (e *Engine) Skeleton() string {
	return e.skeleton
}

// IsDegraded reports whether doc carries the fallback diagnostic note in the
// shape's note list. The note text appearing anywhere else does not count.
func (e *Engine) IsDegraded(doc string) bool {
	notes := gjson.Get(doc, e.notePath)
	if !notes.IsArray() {
		return false
	}
	for _, n := range notes.Array() {
		if n.Type == gjson.String && n.Str == e.shape.Note {
			return true
		}
	}
	return false
}

// pass is the per-call state shared by the stages.
type pass struct {
	raw       string
	truncated bool
	offset    int
	hasOffset bool
	lastErr   error
}

type stage struct {
	name    Stage
	enabled func(p *pass) bool
	apply   func(p *pass, in string) string
}

func (e *Engine) buildStages() []stage {
	truncated := func(p *pass) bool { return p.truncated }

	stages := []stage{
		{name: StageLexical, apply: func(_ *pass, in string) string {
			return fixLexical(in)
		}},
		{name: StageTruncation, enabled: truncated, apply: func(_ *pass, in string) string {
			return completeTail(in)
		}},
		{name: StagePositional, enabled: func(p *pass) bool { return p.truncated && p.hasOffset },
			apply: func(p *pass, in string) string {
				return patchAtOffset(in, p.offset)
			}},
		{name: StageAggressive, apply: func(_ *pass, in string) string {
			return fixAggressive(in)
		}},
	}
	if e.library {
		stages = append(stages, stage{name: StageLibrary, apply: func(_ *pass, in string) string {
			out, err := jsonrepair.JSONRepair(in)
			if err != nil {
				return in
			}
			return out
		}})
	}
	return append(stages,
		stage{name: StageSalvage, apply: func(p *pass, in string) string {
			offset, ok := e.dialect.Offset(message(p.lastErr))
			if !ok {
				return in
			}
			return salvage(in, offset)
		}},
		stage{name: StageProfile, apply: func(p *pass, in string) string {
			member, ok := e.shape.extractAnchor(p.raw)
			if !ok {
				return in
			}
			return e.shape.composite(member)
		}},
	)
}

// Diagnose repairs text like Repair and reports which stage succeeded.
func (e *Engine) Diagnose(text string, err error) Result {
	if text == "" {
		return Result{Text: "{}", Stage: StageEmpty}
	}
	initial := strictParse(text)
	if initial == nil {
		return Result{Text: text, Stage: StageNone}
	}

	p := e.newPass(text, message(err), initial)
	logger := e.log()
	working := text
	for _, st := range e.stages {
		if st.enabled != nil && !st.enabled(p) {
			continue
		}
		working = e.run(st, p, working)
		perr := strictParse(working)
		if perr == nil {
			logger.Debug("json repaired", "stage", st.name.String(), "bytes", len(working))
			return Result{Text: working, Stage: st.name, Degraded: st.name.Lossy()}
		}
		p.lastErr = perr
		logger.Debug("repair stage did not produce valid json", "stage", st.name.String(), "err", perr)
	}

	logger.Warn("json repair exhausted all stages, returning skeleton", "bytes", len(text))
	return Result{Text: e.skeleton, Stage: StageFallback, Degraded: true}
}

// newPass reads the caller's error message first and falls back to the
// engine's own parse error for anything the caller's message lacks.
func (e *Engine) newPass(text, callerMsg string, initial error) *pass {
	ownMsg := initial.Error()
	p := &pass{
		raw:       text,
		truncated: e.dialect.Truncated(callerMsg) || e.dialect.Truncated(ownMsg),
		lastErr:   initial,
	}
	if off, ok := e.dialect.Offset(callerMsg); ok {
		p.offset, p.hasOffset = off, true
	} else if off, ok := e.dialect.Offset(ownMsg); ok {
		p.offset, p.hasOffset = off, true
	}
	return p
}

// run executes one stage. A panicking stage counts as making no change.
func (e *Engine) run(st stage, p *pass, in string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.log().Error("repair stage panicked", "stage", st.name.String(), "panic", r)
			out = in
		}
	}()
	return st.apply(p, in)
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}
