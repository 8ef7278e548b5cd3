package main

import (
	"fmt"
	"io"
	"time"

	"trueup/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings, includeFix bool) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(pipeline.StageFormat) {
		_, printErr = fmt.Fprintf(out, "formatted %.1f ms\n", toMillis(timings.Duration(pipeline.StageFormat)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageDecode) || timings.Has(pipeline.StageResolve) {
		resolved := timings.Sum(pipeline.StageDecode, pipeline.StageResolve)
		_, printErr = fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(resolved))
		if printErr != nil {
			panic(printErr)
		}
	}
	if includeFix && timings.Has(pipeline.StageFix) {
		_, printErr = fmt.Fprintf(out, "fixed %.1f ms\n", toMillis(timings.Duration(pipeline.StageFix)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
