package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps a progressbar instance for deterministic progress display.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar with the given total and description.
func NewProgressBar(total int64, description string) *ProgressBar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Set moves the progress bar to the given position.
func (p *ProgressBar) Set(current int64) {
	_ = p.bar.Set64(current)
}

// Finish completes the progress bar.
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

// Spinner wraps a spinner instance for indeterminate progress display.
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	return &Spinner{spinner: s}
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	s.spinner.Start()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// UpdateMessage updates the spinner's message.
func (s *Spinner) UpdateMessage(message string) {
	s.spinner.Suffix = " " + message
}
