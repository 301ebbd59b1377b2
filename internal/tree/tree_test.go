package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
)

// Test Plan for Walk and Nested:
// - Walk lists directories with a trailing slash, files before subdirectories
// - Excluded extensions and folders are reported with their full path
// - Glob folder patterns exclude nested paths
// - A missing root is RootDirectoryNotFound
// - Nested mirrors the listing as a hierarchy with files as leaves

func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	for _, rel := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

func TestWalk_Lines(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "b.txt", "a.txt", "src/main.py", "src/util/io.py", "docs/readme.md")

	listing, err := Walk(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"proj/",
		"    a.txt",
		"    b.txt",
		"    docs/",
		"        readme.md",
		"    src/",
		"        main.py",
		"        util/",
		"            io.py",
	}, listing.Lines)
	assert.Empty(t, listing.SkippedFiles)
	assert.Empty(t, listing.SkippedFolders)
}

func TestWalk_Excludes(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "main.py", "main.pyc", "__pycache__/main.cpython.pyc", "src/lib.py")

	listing, err := Walk(root, Options{
		ExcludeExtensions: []string{".pyc"},
		ExcludeFolders:    []string{"__pycache__"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"proj/",
		"    main.py",
		"    src/",
		"        lib.py",
	}, listing.Lines)
	assert.Equal(t, []string{filepath.Join(root, "main.pyc")}, listing.SkippedFiles)
	assert.Equal(t, []string{filepath.Join(root, "__pycache__")}, listing.SkippedFolders)
}

func TestWalk_GlobFolders(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "top.v", "gen/out/regs.v", "rtl/gen/keep.v")

	listing, err := Walk(root, Options{ExcludeFolders: []string{"gen/**"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"proj/",
		"    top.v",
		"    rtl/",
		"        gen/",
		"            keep.v",
	}, listing.Lines)
	assert.Equal(t, []string{filepath.Join(root, "gen")}, listing.SkippedFolders)
}

func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Walk(filepath.Join(t.TempDir(), "absent"), Options{})
	assert.ErrorIs(t, err, hierarchy.ErrRootDirectoryNotFound)

	_, err = Nested(filepath.Join(t.TempDir(), "absent"), Options{})
	assert.ErrorIs(t, err, hierarchy.ErrRootDirectoryNotFound)
}

func TestNested(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.txt", "skip.log", "src/main.py", "node_modules/x/index.js")

	h, err := Nested(root, Options{
		ExcludeExtensions: []string{".log"},
		ExcludeFolders:    []string{"node_modules"},
	})
	require.NoError(t, err)

	assert.True(t, h.Equal(hierarchy.Map{
		"proj": {
			"a.txt": {},
			"src":   {"main.py": {}},
		},
	}), "got %v", h)
}
