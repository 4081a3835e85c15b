package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"modelgen/internal/pipeline"
	"modelgen/internal/ui"
)

// runWithUI runs work in the background, feeding its progress events into
// the progress view until work returns.
func runWithUI(title string, work func(sink pipeline.ProgressSink) error) error {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(pipeline.ChannelSink{Ch: events})
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so work never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	err := <-outcome
	if uiErr != nil {
		return uiErr
	}
	return err
}
