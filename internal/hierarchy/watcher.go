package hierarchy

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events to
// settle before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher rebuilds a project's hierarchy whenever one of its source files
// changes. Every rebuild is an independent Build call.
type Watcher struct {
	builder     *Builder
	rootDir     string
	projectType string
	extensions  map[string]bool
	debounce    time.Duration
	onBuild     func(Map, error)
	watcher     *fsnotify.Watcher
	logger      *slog.Logger

	// dirs holds the directories added to watcher. Only Run touches it after
	// construction.
	dirs map[string]bool
}

// NewWatcher creates a watcher for rootDir. onBuild receives the result of
// every rebuild. The project type must resolve; the root must exist.
func NewWatcher(b *Builder, rootDir, projectType string, debounce time.Duration, onBuild func(Map, error)) (*Watcher, error) {
	ex, err := b.registry.Resolve(projectType)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
		return nil, &RootDirectoryNotFoundError{Path: rootDir}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		builder:     b,
		rootDir:     rootDir,
		projectType: projectType,
		extensions:  make(map[string]bool),
		debounce:    debounce,
		onBuild:     onBuild,
		watcher:     fw,
		logger:      b.logger,
		dirs:        make(map[string]bool),
	}
	for _, ext := range ex.Extensions() {
		w.extensions[ext] = true
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, rebuilding after each debounced burst of relevant events,
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if w.isWatchableDir(event.Name) {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if !w.isRelevant(event) {
				continue
			}
			pending[event.Name] = true

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			w.logger.Debug("rebuilding hierarchy", "changed_files", len(pending))
			pending = make(map[string]bool)
			m, err := w.builder.Build(w.rootDir, w.projectType)
			if w.onBuild != nil {
				w.onBuild(m, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// isRelevant reports whether event touches a source file of the project type
// or adds or removes a watched directory. Other files, such as the journal
// SQLite keeps next to an export, never trigger a rebuild. Run adds a created
// directory to dirs before asking.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if w.dirs[event.Name] {
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			delete(w.dirs, event.Name)
			return true
		}
		return event.Op&fsnotify.Create != 0
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if !w.extensions[filepath.Ext(event.Name)] {
		return false
	}
	rel, err := filepath.Rel(w.rootDir, event.Name)
	return err == nil && !w.builder.ignore.MatchFile(rel)
}

func (w *Watcher) isWatchableDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	rel, err := filepath.Rel(w.rootDir, path)
	return err == nil && !w.builder.ignore.MatchDir(rel)
}

// addDirectoriesRecursively adds root and every non-ignored directory below it.
func (w *Watcher) addDirectoriesRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.rootDir, path); relErr == nil && rel != "." && w.builder.ignore.MatchDir(rel) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirs[path] = true
		return nil
	})
}
