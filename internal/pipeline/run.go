// Package pipeline runs one generation for one model: load, flatten, trace
// replay and emission, with stage timings and progress events.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"modelgen/internal/calltrace"
	"modelgen/internal/codegen"
	"modelgen/internal/diag"
	"modelgen/internal/emit"
	"modelgen/internal/flatten"
	"modelgen/internal/ir"
	"modelgen/internal/merge"
	"modelgen/internal/model"
	"modelgen/internal/modelfile"
	"modelgen/internal/trace"
)

// DefaultMaxDiagnostics caps the diagnostics kept per run.
const DefaultMaxDiagnostics = 256

// Request configures a run.
type Request struct {
	// ModelPath is the model file; it also derives the output directory.
	ModelPath string
	// Project skips loading when set. Its Path is used when ModelPath is empty.
	Project *model.Project

	Emit     emit.Options
	Strategy merge.Strategy
	Update   bool
	// CheckOnly stops after the trace stage.
	CheckOnly bool

	MaxDiagnostics int
	Progress       ProgressSink
	Logger         *zap.Logger
}

// Result captures what a run produced.
type Result struct {
	Project     *model.Project
	Classifiers []model.Classifier
	Table       *ir.Table
	Diagnostics *diag.Bag
	Trace       calltrace.Result
	// Written is the generator count, codegen.NoOutput when nothing was attempted.
	Written int
	Paths   []string
	Timings Timings
}

// Run executes the pipeline. Load failures are returned as errors;
// per-classifier generation failures only lower Result.Written.
func Run(ctx context.Context, req *Request) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return res, errors.New("missing pipeline request")
	}
	log := req.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	res.Diagnostics = diag.NewBag(maxDiag)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Diagnostics})

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeRun, "run:"+req.ModelPath, trace.CurrentSpan(ctx).SpanID)
	defer runSpan.End("")

	// load
	send(req.Progress, Event{Project: req.ModelPath, Stage: StageLoad, Status: StatusWorking})
	stage := trace.Begin(tracer, trace.ScopeStage, string(StageLoad), runSpan.ID())
	start := time.Now()
	p := req.Project
	if p == nil {
		if req.ModelPath == "" {
			stage.End("no model")
			return res, errors.New("missing model path")
		}
		var err error
		p, err = modelfile.Load(req.ModelPath, rep)
		if err != nil {
			stage.End(err.Error())
			res.Timings.Set(StageLoad, time.Since(start))
			send(req.Progress, Event{Project: req.ModelPath, Stage: StageLoad, Status: StatusError, Err: err})
			return res, fmt.Errorf("load model: %w", err)
		}
	}
	projectPath := req.ModelPath
	if projectPath == "" {
		projectPath = p.Path
	}
	res.Project = p
	res.Timings.Set(StageLoad, stage.End(""))
	log.Debug("model loaded",
		zap.String("model", projectPath),
		zap.Int("classes", len(p.Classes)),
		zap.Int("interfaces", len(p.Interfaces)),
		zap.Int("class_diagrams", len(p.ClassDiagrams)),
		zap.Int("sequence_diagrams", len(p.SequenceDiagrams)),
	)

	// flatten
	send(req.Progress, Event{Project: projectPath, Stage: StageFlatten, Status: StatusWorking})
	res.Table = ir.NewTable()
	f := flatten.New(res.Table, rep)
	stage = trace.Begin(tracer, trace.ScopeStage, string(StageFlatten), runSpan.ID())
	for _, d := range p.ClassDiagrams {
		unit := trace.Begin(tracer, trace.ScopeUnit, "diagram:"+d.Name, stage.ID())
		f.Structure(d)
		unit.End("")
	}
	res.Timings.Set(StageFlatten, stage.End(""))

	// trace
	send(req.Progress, Event{Project: projectPath, Stage: StageTrace, Status: StatusWorking})
	stage = trace.Begin(tracer, trace.ScopeStage, string(StageTrace), runSpan.ID())
	for _, d := range p.SequenceDiagrams {
		unit := trace.Begin(tracer, trace.ScopeUnit, "trace:"+d.Name, stage.ID())
		tr := f.Trace(d)
		res.Trace.Accepted += tr.Accepted
		res.Trace.Rejected += tr.Rejected
		unit.WithExtra("accepted", strconv.Itoa(tr.Accepted)).
			WithExtra("rejected", strconv.Itoa(tr.Rejected)).
			End("")
	}
	res.Timings.Set(StageTrace, stage.End(""))
	res.Classifiers = f.Classifiers()

	if req.CheckOnly {
		return res, nil
	}

	// emit
	stage = trace.Begin(tracer, trace.ScopeStage, string(StageEmit), runSpan.ID())
	emitQueued(req.Progress, projectPath, res.Classifiers)
	gen := codegen.New(res.Table, codegen.Config{
		Emit:     req.Emit,
		Strategy: req.Strategy,
		Logger:   log,
		Observer: observer{sink: req.Progress, project: projectPath},
	})
	stageCtx := trace.WithSpanContext(ctx, trace.SpanContext{SpanID: stage.ID()})
	res.Written = gen.GenerateCode(stageCtx, res.Classifiers, req.Update, projectPath)
	res.Paths = gen.Written()
	res.Timings.Set(StageEmit, stage.WithExtra("written", strconv.Itoa(res.Written)).End(""))
	log.Info("generation finished",
		zap.String("model", projectPath),
		zap.Int("written", res.Written),
		zap.Int("classifiers", len(res.Classifiers)),
		zap.Duration("elapsed", res.Timings.Total()),
	)
	return res, nil
}
