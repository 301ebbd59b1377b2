// Package pathmatch decides which folders and files a walk should leave out.
package pathmatch

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Matcher matches relative slash-separated paths against exclude rules.
// A rule without glob metacharacters matches any path element with that
// exact name ("node_modules"); anything else is a glob matched against the
// relative path ("build/**", "**/*.gen.go").
type Matcher struct {
	names    map[string]bool
	patterns []compiledPattern
}

// New compiles the given rules. Empty rules are ignored.
func New(rules []string) (*Matcher, error) {
	m := &Matcher{names: make(map[string]bool)}
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		if !strings.ContainsAny(rule, "*?[{") {
			m.names[strings.TrimSuffix(rule, "/")] = true
			continue
		}
		g, err := glob.Compile(rule, '/')
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, compiledPattern{pattern: rule, glob: g})
	}
	return m, nil
}

// MustNew is New for rules known to be valid.
func MustNew(rules []string) *Matcher {
	m, err := New(rules)
	if err != nil {
		panic(err)
	}
	return m
}

// MatchDir reports whether the directory at relPath should be skipped.
func (m *Matcher) MatchDir(relPath string) bool {
	if m == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if m.matchesName(relPath) {
		return true
	}
	// "node_modules/**" should also exclude the node_modules directory itself
	return m.matchesAny(relPath) || m.matchesAny(relPath+"/**")
}

// MatchFile reports whether the file at relPath should be skipped.
func (m *Matcher) MatchFile(relPath string) bool {
	if m == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	return m.matchesName(relPath) || m.matchesAny(relPath)
}

// matchesAny checks if a path matches any of the compiled patterns.
func (m *Matcher) matchesAny(path string) bool {
	for _, cp := range m.patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: a root-level path also matches "**/"-prefixed patterns,
	// so "**/*.tmp" covers both "a.tmp" and "dir/a.tmp".
	if !strings.Contains(path, "/") {
		for _, cp := range m.patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}
	return false
}

// matchesName reports whether any element of path is an excluded name.
func (m *Matcher) matchesName(path string) bool {
	if len(m.names) == 0 {
		return false
	}
	for _, elem := range strings.Split(path, "/") {
		if m.names[elem] {
			return true
		}
	}
	return false
}
