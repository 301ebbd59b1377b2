package hierarchy

import (
	"io"
	"log/slog"
	"time"
)

// BuildStats describes one Build call.
type BuildStats struct {
	ProjectType     string
	FilesDiscovered int
	FilesParsed     int
	FilesSkipped    int
	CacheHits       int
	Entities        int
	Duration        time.Duration
}

// ProgressReporter provides callbacks for reporting build progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called once the matching files are known.
	OnDiscoveryComplete(totalFiles int)

	// OnFileProcessed is called after each file is extracted (or skipped).
	OnFileProcessed(path string)

	// OnComplete is called when the build finishes.
	OnComplete(stats *BuildStats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessed(path string)        {}
func (n *NoOpProgressReporter) OnComplete(stats *BuildStats)       {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
