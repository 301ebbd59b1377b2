// Package tree renders a plain directory listing with exclude lists.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/pathmatch"
)

// Indent is the per-level indentation of a listing line.
const Indent = "    "

// Options controls what a walk leaves out.
type Options struct {
	// ExcludeExtensions lists file extensions (".pyc") to skip.
	ExcludeExtensions []string

	// ExcludeFolders lists folder names ("node_modules") or glob patterns
	// ("build/**") to skip without descending.
	ExcludeFolders []string
}

// Listing is the result of a walk.
type Listing struct {
	Lines          []string
	SkippedFiles   []string
	SkippedFolders []string
}

type walker struct {
	root    string
	exts    map[string]bool
	folders *pathmatch.Matcher
	listing *Listing
}

func newWalker(root string, opts Options) (*walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, &hierarchy.RootDirectoryNotFoundError{Path: abs}
	}

	folders, err := pathmatch.New(opts.ExcludeFolders)
	if err != nil {
		return nil, err
	}

	exts := make(map[string]bool, len(opts.ExcludeExtensions))
	for _, ext := range opts.ExcludeExtensions {
		exts[ext] = true
	}

	return &walker{root: abs, exts: exts, folders: folders, listing: &Listing{}}, nil
}

// Walk lists root depth-first: a "name/" line per directory, its files
// (sorted) indented one level deeper, then its subdirectories (sorted).
// Excluded files and folders are reported in the Skipped lists with their
// full path.
func Walk(root string, opts Options) (*Listing, error) {
	w, err := newWalker(root, opts)
	if err != nil {
		return nil, err
	}
	w.walkDir(w.root, 0)
	return w.listing, nil
}

func (w *walker) walkDir(dir string, level int) {
	w.listing.Lines = append(w.listing.Lines, strings.Repeat(Indent, level)+filepath.Base(dir)+"/")

	files, dirs := w.readDir(dir)
	for _, name := range files {
		w.listing.Lines = append(w.listing.Lines, strings.Repeat(Indent, level+1)+name)
	}
	for _, name := range dirs {
		w.walkDir(filepath.Join(dir, name), level+1)
	}
}

// readDir splits dir's entries into kept files and kept subdirectories,
// recording the excluded ones.
func (w *walker) readDir(dir string) (files, dirs []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		rel, _ := filepath.Rel(w.root, full)

		if entry.IsDir() {
			if w.folders.MatchDir(rel) {
				w.listing.SkippedFolders = append(w.listing.SkippedFolders, full)
				continue
			}
			dirs = append(dirs, entry.Name())
			continue
		}

		if w.exts[filepath.Ext(entry.Name())] {
			w.listing.SkippedFiles = append(w.listing.SkippedFiles, full)
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	sort.Strings(dirs)
	return files, dirs
}

// Nested returns the directory structure as a hierarchy: the root directory
// name maps to its entries, directories map to their entries, files are
// leaves. The same exclusions as Walk apply.
func Nested(root string, opts Options) (hierarchy.Map, error) {
	w, err := newWalker(root, opts)
	if err != nil {
		return nil, err
	}
	return hierarchy.Map{filepath.Base(w.root): w.nest(w.root)}, nil
}

func (w *walker) nest(dir string) hierarchy.Map {
	node := hierarchy.Map{}
	files, dirs := w.readDir(dir)
	for _, name := range files {
		node[name] = hierarchy.Map{}
	}
	for _, name := range dirs {
		node[name] = w.nest(filepath.Join(dir, name))
	}
	return node
}
