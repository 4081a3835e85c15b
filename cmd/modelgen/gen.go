package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"modelgen/internal/codegen"
	"modelgen/internal/logs"
	"modelgen/internal/pipeline"
	"modelgen/internal/watch"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [model...]",
	Short: "Generate sources from design models",
	Long: `Generate one source file per class and interface of each model. Without
arguments the model named by modelgen.toml is used. Files are written to a
directory named after the model, next to it.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().Bool("update", false, "merge into existing files, keeping hand-written lines")
	genCmd.Flags().String("merge", "lines", "merge strategy for --update (lines|fenced)")
	genCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	genCmd.Flags().Int("jobs", 0, "max models generated in parallel (0=auto)")
	genCmd.Flags().String("newline", "auto", "line terminator (auto|lf|crlf)")
	genCmd.Flags().Int("indent", 4, "spaces per indentation level")
	genCmd.Flags().String("ext", ".java", "extension of generated files")
	genCmd.Flags().Bool("watch", false, "regenerate whenever a model file changes")
}

type genOutcome struct {
	model string
	res   pipeline.Result
	err   error
}

func runGen(cmd *cobra.Command, args []string) error {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	view, err := parseProgressView(uiValue)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	quiet, err := quietFlag(cmd)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	watchMode, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	settings, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}

	generate := func(models []string, sink pipeline.ProgressSink) []genOutcome {
		outcomes := make([]genOutcome, len(models))
		var g errgroup.Group
		g.SetLimit(jobs)
		for i, model := range models {
			g.Go(func() error {
				res, err := pipeline.Run(cmd.Context(), &pipeline.Request{
					ModelPath:      model,
					Emit:           settings.Emit,
					Strategy:       settings.Strategy,
					Update:         settings.Update,
					MaxDiagnostics: maxDiagnostics,
					Progress:       sink,
					Logger:         logs.L(),
				})
				outcomes[i] = genOutcome{model: model, res: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		return outcomes
	}

	var outcomes []genOutcome
	if view.interactive(quiet, os.Stdout) {
		err = runWithUI("modelgen gen", func(sink pipeline.ProgressSink) error {
			outcomes = generate(settings.Models, sink)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		outcomes = generate(settings.Models, nil)
	}
	out := cmd.OutOrStdout()
	reportErr := reportGen(out, cmd.ErrOrStderr(), settings.Root, outcomes, quiet, showTimings)
	if !watchMode {
		return reportErr
	}
	if reportErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), reportErr)
	}

	if !quiet {
		fmt.Fprintln(out, "watching for changes (interrupt to stop)")
	}
	return watch.Run(cmd.Context(), watch.Config{Paths: settings.Models, Logger: logs.L()}, func(changed []string) {
		if err := reportGen(out, cmd.ErrOrStderr(), settings.Root, generate(changed, nil), quiet, showTimings); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
}

// reportGen prints diagnostics and one summary line per model in argument
// order. It returns the load errors joined.
func reportGen(out, errOut io.Writer, root string, outcomes []genOutcome, quiet, showTimings bool) error {
	var errs []error
	for _, o := range outcomes {
		display := formatPathForOutput(root, o.model)
		if o.res.Diagnostics != nil {
			printDiagnostics(errOut, o.res.Diagnostics, quiet)
		}
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", display, o.err))
			continue
		}
		if showTimings {
			printStageTimings(out, o.res.Timings)
		}
		if quiet {
			continue
		}
		switch o.res.Written {
		case codegen.NoOutput:
			fmt.Fprintf(out, "%s: nothing to generate\n", display)
		default:
			fmt.Fprintf(out, "generated %d file(s) for %s\n", o.res.Written, display)
			if failed := len(o.res.Classifiers) - o.res.Written; failed > 0 {
				fmt.Fprintf(out, "  %d classifier(s) skipped, see the log\n", failed)
			}
		}
	}
	return errors.Join(errs...)
}
