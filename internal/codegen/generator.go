package codegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"modelgen/internal/emit"
	"modelgen/internal/ir"
	"modelgen/internal/merge"
	"modelgen/internal/model"
	"modelgen/internal/trace"
)

// NoOutput is returned by GenerateCode when nothing could be attempted.
const NoOutput = -1

// ErrInvalidName reports a classifier whose name cannot name a file.
var ErrInvalidName = errors.New("invalid classifier name")

// Observer is notified around every classifier.
type Observer interface {
	Started(name string)
	Finished(name, path string, err error, elapsed time.Duration)
}

// Config configures a Generator.
type Config struct {
	Emit     emit.Options
	Strategy merge.Strategy
	Logger   *zap.Logger
	Observer Observer
}

// Generator renders and writes classifiers for one run.
type Generator struct {
	table    *ir.Table
	emitter  *emit.Emitter
	strategy merge.Strategy
	log      *zap.Logger
	obs      Observer
	written  []string
}

// New returns a generator reading IR from table.
func New(table *ir.Table, cfg Config) *Generator {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		table:    table,
		emitter:  emit.New(table, cfg.Emit),
		strategy: cfg.Strategy,
		log:      log,
		obs:      cfg.Observer,
	}
}

// Written returns the paths written by the last GenerateCode call.
func (g *Generator) Written() []string {
	return append([]string(nil), g.written...)
}

// GenerateCode writes one file per classifier and returns how many were
// written. It returns NoOutput when projectPath is empty or the first
// classifier has no name. A failing classifier is logged and skipped; the
// batch continues until ctx is cancelled.
func (g *Generator) GenerateCode(ctx context.Context, classifiers []model.Classifier, update bool, projectPath string) int {
	g.written = g.written[:0]
	if strings.TrimSpace(projectPath) == "" {
		g.log.Warn("no project path; nothing generated")
		return NoOutput
	}
	if len(classifiers) == 0 {
		return 0
	}
	if strings.TrimSpace(model.NameOf(classifiers[0])) == "" {
		g.log.Warn("first classifier has no name; nothing generated", zap.String("project", projectPath))
		return NoOutput
	}

	dir := model.OutputDir(projectPath)
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	count := 0
	for _, c := range classifiers {
		if err := ctx.Err(); err != nil {
			g.log.Warn("generation cancelled", zap.Int("written", count), zap.Error(err))
			break
		}
		name := model.NameOf(c)
		if g.obs != nil {
			g.obs.Started(name)
		}
		span := trace.Begin(tracer, trace.ScopeUnit, "emit:"+name, parent)
		start := time.Now()
		path, err := g.generate(c, dir, update)
		elapsed := time.Since(start)
		if err != nil {
			span.End(err.Error())
			if errors.Is(err, ErrInvalidName) {
				g.log.Warn("skipping classifier", zap.String("name", name), zap.Error(err))
			} else {
				g.log.Error("generation failed", zap.String("classifier", name), zap.String("path", path), zap.Error(err))
			}
		} else {
			span.WithExtra("path", path).End("")
			g.written = append(g.written, path)
			count++
		}
		if g.obs != nil {
			g.obs.Finished(name, path, err, elapsed)
		}
	}
	return count
}

func (g *Generator) generate(c model.Classifier, dir string, update bool) (string, error) {
	name := model.NameOf(c)
	if !emit.IsIdentifier(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	path := filepath.Join(dir, g.emitter.FileName(c))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("create output directory: %w", err)
	}

	lines := g.emitter.Render(c)
	var old []byte
	if update {
		var err error
		if old, err = readExisting(path); err != nil {
			return path, fmt.Errorf("read previous file: %w", err)
		}
		lines = g.merge(c, path, lines, old)
	}

	data := []byte(g.emitter.Text(lines))
	if old != nil && bytes.Equal(old, data) {
		return path, nil
	}
	if err := writeAtomic(path, data); err != nil {
		return path, fmt.Errorf("write: %w", err)
	}
	return path, nil
}

func (g *Generator) merge(c model.Classifier, path string, fresh []string, old []byte) []string {
	if len(old) == 0 {
		return fresh
	}
	prev := merge.SplitLines(string(old))
	ctx := merge.ContextFor(g.emitter, c)
	out, err := merge.Merge(g.strategy, fresh, prev, ctx)
	if err == nil {
		return out
	}
	g.log.Warn("user regions unreadable; falling back to line merge", zap.String("path", path), zap.Error(err))
	out, _ = merge.Merge(merge.StrategyLines, fresh, prev, ctx)
	return out
}
