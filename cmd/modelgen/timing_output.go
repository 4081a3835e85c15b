package main

import (
	"fmt"
	"io"
	"time"

	"modelgen/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	labels := map[pipeline.Stage]string{
		pipeline.StageLoad:    "loaded",
		pipeline.StageFlatten: "flattened",
		pipeline.StageTrace:   "traced",
		pipeline.StageEmit:    "emitted",
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", labels[stage], toMillis(timings.Duration(stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
