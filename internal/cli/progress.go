package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
)

// BatchProgress reports how many statements of a batch have been written.
type BatchProgress struct {
	bar   *progressbar.ProgressBar
	done  atomic.Int64
	total int
}

// NewBatchProgress creates a progress bar for total statements on writer.
func NewBatchProgress(writer io.Writer, total int) *BatchProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Generating statements...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &BatchProgress{bar: bar, total: total}
}

// Increment marks one more statement as written. Done may be called from
// another goroutine while the batch runs.
func (p *BatchProgress) Increment() {
	p.done.Add(1)
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Done returns how many statements have been written.
func (p *BatchProgress) Done() int {
	return int(p.done.Load())
}

// Finish completes the bar.
func (p *BatchProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
