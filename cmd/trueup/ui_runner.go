package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"trueup/internal/pipeline"
	"trueup/internal/ui"
)

type verifyOutcome struct {
	result pipeline.VerifyResult
	err    error
}

// runVerifyWithUI runs the verification pipeline behind a progress display.
// Diagnostic rendering happens after the program exits, from the returned
// result.
func runVerifyWithUI(ctx context.Context, title string, files []string, req *pipeline.VerifyRequest) (pipeline.VerifyResult, error) {
	if req == nil {
		return pipeline.VerifyResult{}, fmt.Errorf("missing verify request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan verifyOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Verify(ctx, &reqCopy)
		outcomeCh <- verifyOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
