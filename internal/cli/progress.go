package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
)

// CLIProgressReporter implements hierarchy.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	w              io.Writer
	quiet          bool
	fileBar        *progressbar.ProgressBar
	totalFiles     int
	processedFiles int
}

// NewCLIProgressReporter creates a reporter drawing on w. A quiet reporter
// draws nothing.
func NewCLIProgressReporter(w io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		w:     w,
		quiet: quiet,
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	c.totalFiles = totalFiles
	c.processedFiles = 0

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Extracting entities"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.w)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.processedFiles++
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *hierarchy.BuildStats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.w, "✓ Hierarchy built: %d entities from %d files in %.1fs\n",
		stats.Entities, stats.FilesParsed, stats.Duration.Seconds())
	if stats.FilesSkipped > 0 {
		fmt.Fprintf(c.w, "  Skipped files: %d\n", stats.FilesSkipped)
	}
	if stats.CacheHits > 0 {
		fmt.Fprintf(c.w, "  Cache hits:    %d\n", stats.CacheHits)
	}
}
