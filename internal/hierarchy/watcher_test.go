package hierarchy

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dirmap/internal/pathmatch"
)

// Test Plan for Watcher:
// - NewWatcher rejects unknown project types and missing roots
// - Writing a source file triggers one rebuild after the debounce
// - A burst of writes is debounced into a single rebuild
// - Files in new directories are picked up
// - Irrelevant extensions and ignored folders do not trigger rebuilds,
//   including removals
// - Files an export writes and removes in the root never cause another rebuild
// - Adding or removing a watched directory triggers a rebuild
// - Cancelling the context stops Run

func TestNewWatcher_Errors(t *testing.T) {
	t.Parallel()

	b := NewBuilder(NewDefaultRegistry())

	_, err := NewWatcher(b, t.TempDir(), "cobol", 0, nil)
	assert.ErrorIs(t, err, ErrNoParserForType)

	_, err = NewWatcher(b, filepath.Join(t.TempDir(), "absent"), "verilog", 0, nil)
	assert.ErrorIs(t, err, ErrRootDirectoryNotFound)
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"top.v": "module top(input clk);\nendmodule\n"})

	builds := make(chan Map, 10)
	w, err := NewWatcher(NewBuilder(NewDefaultRegistry()), root, "verilog", 50*time.Millisecond, func(m Map, err error) {
		assert.NoError(t, err)
		builds <- m
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// New directory first so it is watched before files land in it
	require.NoError(t, os.Mkdir(filepath.Join(root, "rtl"), 0755))
	time.Sleep(200 * time.Millisecond)

	// Burst of writes, then a file in the new directory
	for i := 0; i < 3; i++ {
		writeTree(t, root, map[string]string{"top.v": "module top(input clk);\n  alu u(.clk(clk));\nendmodule\n"})
	}
	writeTree(t, root, map[string]string{"rtl/alu.v": "module alu(input clk);\n  adder a(.clk(clk));\nendmodule\n"})

	// rtl/alu.v sorts before top.v, so alu is also a root
	want := Map{
		"alu": {"adder": {}},
		"top": {"alu": {"adder": {}}},
	}

	var last Map
	require.Eventually(t, func() bool {
		for {
			select {
			case m := <-builds:
				last = m
			default:
				return last != nil && last.Equal(want)
			}
		}
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWatcher_IsRelevant(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))

	b := NewBuilder(NewDefaultRegistry(), WithIgnore(pathmatch.MustNew([]string{"build"})))
	w, err := NewWatcher(b, root, "python", 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.True(t, w.dirs[root])
	assert.True(t, w.dirs[filepath.Join(root, "src")])
	assert.False(t, w.dirs[filepath.Join(root, "build")])

	ev := func(name string, op fsnotify.Op) fsnotify.Event {
		return fsnotify.Event{Name: filepath.Join(root, name), Op: op}
	}

	// Source files
	assert.True(t, w.isRelevant(ev("a.py", fsnotify.Write)))
	assert.True(t, w.isRelevant(ev(filepath.Join("src", "b.py"), fsnotify.Create)))
	assert.True(t, w.isRelevant(ev("a.py", fsnotify.Remove)))
	assert.True(t, w.isRelevant(ev("a.py", fsnotify.Rename)))
	assert.False(t, w.isRelevant(ev("a.py", fsnotify.Chmod)))

	// Other files, in any operation
	assert.False(t, w.isRelevant(ev("notes.md", fsnotify.Write)))
	assert.False(t, w.isRelevant(ev("out.db-journal", fsnotify.Create)))
	assert.False(t, w.isRelevant(ev("out.db-journal", fsnotify.Remove)))
	assert.False(t, w.isRelevant(ev("gone", fsnotify.Remove)))

	// Ignored folders
	assert.False(t, w.isRelevant(ev(filepath.Join("build", "gen.py"), fsnotify.Write)))
	assert.False(t, w.isRelevant(ev(filepath.Join("build", "gen.py"), fsnotify.Remove)))
	assert.False(t, w.isRelevant(ev("build", fsnotify.Remove)))

	// Watched directories
	assert.True(t, w.isRelevant(ev("src", fsnotify.Remove)))
	assert.False(t, w.dirs[filepath.Join(root, "src")])
	assert.False(t, w.isRelevant(ev("src", fsnotify.Remove)))

	require.NoError(t, os.Mkdir(filepath.Join(root, "lib"), 0755))
	assert.False(t, w.isWatchableDir(filepath.Join(root, "build")))
	assert.True(t, w.isWatchableDir(filepath.Join(root, "lib")))
	assert.False(t, w.isWatchableDir(filepath.Join(root, "a.py")))
	require.NoError(t, w.addDirectoriesRecursively(filepath.Join(root, "lib")))
	assert.True(t, w.isRelevant(ev("lib", fsnotify.Create)))
}

func TestWatcher_ExportSideFilesDoNotRetrigger(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"top.v": "module top(input clk);\nendmodule\n"})
	journal := filepath.Join(root, "out.db-journal")

	var builds atomic.Int32
	w, err := NewWatcher(NewBuilder(NewDefaultRegistry()), root, "verilog", 50*time.Millisecond, func(m Map, err error) {
		assert.NoError(t, err)
		builds.Add(1)
		// What a SQLite export does next to its database
		assert.NoError(t, os.WriteFile(journal, []byte("journal"), 0644))
		assert.NoError(t, os.Remove(journal))
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeTree(t, root, map[string]string{"top.v": "module top(input clk);\n  alu u(.clk(clk));\nendmodule\n"})

	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	// Several debounce periods, long enough for a feedback loop to show
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
