package pipeline

import (
	"context"
	"fmt"
	"time"

	"trueup/internal/driver"
	"trueup/internal/observ"
)

// VerifyRequest configures the shared verification pipeline.
type VerifyRequest struct {
	Formatter      driver.Formatter
	Files          []string
	BaseDir        string
	MaxDiagnostics int
	Fix            bool
	Progress       ProgressSink
	Timer          *observ.Timer
}

// VerifyResult captures verification artefacts and stage timings.
type VerifyResult struct {
	Check   *driver.CheckResult
	Fix     *driver.FixResult
	Timings Timings
}

// Verify runs the check or fix pipeline over the already collected batch,
// forwarding stage progress to req.Progress.
func Verify(ctx context.Context, req *VerifyRequest) (VerifyResult, error) {
	var result VerifyResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing verify request")
	}
	if req.Formatter == nil {
		return result, fmt.Errorf("missing formatter")
	}

	displayFiles := normalizeProgressFiles(req.Files, req.BaseDir)
	if req.Progress != nil && len(displayFiles) > 0 {
		emitQueued(req.Progress, displayFiles)
	}
	phase := &phaseObserver{
		sink:    req.Progress,
		files:   displayFiles,
		timings: &result.Timings,
	}

	opts := driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		BaseDir:        req.BaseDir,
		Timer:          req.Timer,
		Observer:       phase.OnPhase,
	}

	if req.Fix {
		fixRes, err := driver.RunFix(ctx, req.Formatter, req.Files, opts)
		if err != nil {
			emitStage(req.Progress, displayFiles, phase.errorStage(StageFix), StatusError, err, 0)
			return result, err
		}
		result.Fix = fixRes
		emitStage(req.Progress, displayFiles, StageFix, StatusDone, nil, result.Timings.Duration(StageFix))
		return result, nil
	}

	checkRes, err := driver.RunCheck(ctx, req.Formatter, req.Files, opts)
	if err != nil {
		emitStage(req.Progress, displayFiles, phase.errorStage(StageFormat), StatusError, err, 0)
		return result, err
	}
	result.Check = checkRes
	emitStage(req.Progress, displayFiles, StageResolve, StatusDone, nil,
		result.Timings.Sum(StageFormat, StageDecode, StageResolve))
	return result, nil
}

// phaseObserver мапит фазы драйвера на стадии прогресса и копит тайминги.
type phaseObserver struct {
	sink    ProgressSink
	files   []string
	timings *Timings
	started Stage
}

// OnPhase updates the progress UI based on driver phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil {
		return
	}
	stage, ok := stageForPhase(ev.Name)
	if !ok {
		return
	}
	switch ev.Status {
	case driver.PhaseStart:
		p.started = stage
		if p.sink != nil {
			emitStage(p.sink, p.files, stage, StatusWorking, nil, 0)
		}
	case driver.PhaseEnd:
		p.timings.Set(stage, ev.Elapsed)
	}
}

// errorStage returns the stage a failure should be attributed to.
func (p *phaseObserver) errorStage(fallback Stage) Stage {
	if p == nil || p.started == "" {
		return fallback
	}
	return p.started
}

func stageForPhase(name string) (Stage, bool) {
	switch name {
	case "format":
		return StageFormat, true
	case "decode":
		return StageDecode, true
	case "resolve":
		return StageResolve, true
	case "fix":
		return StageFix, true
	}
	return "", false
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageFormat, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
