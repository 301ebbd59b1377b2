package parsers

import (
	"regexp"
	"sort"
	"strings"
)

// declSpan is one declaration and the text that belongs to it: everything
// after the declaration match up to the start of the next declaration.
type declSpan struct {
	name string
	kind string
	body string
}

// splitDeclarations finds every match of decl in src and cuts src into spans.
// nameOf pulls the declared name and kind out of a submatch slice; an empty
// name drops the match.
func splitDeclarations(src string, decl *regexp.Regexp, nameOf func(src string, m []int) (string, string)) []declSpan {
	matches := decl.FindAllStringSubmatchIndex(src, -1)
	spans := make([]declSpan, 0, len(matches))
	for i, m := range matches {
		name, kind := nameOf(src, m)
		if name == "" {
			continue
		}
		end := len(src)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		spans = append(spans, declSpan{name: name, kind: kind, body: src[m[1]:end]})
	}
	return spans
}

// group returns submatch n of m, or "" when it did not participate.
func group(src string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return src[m[2*n]:m[2*n+1]]
}

// uniqueSorted drops duplicates and empties and sorts the rest.
func uniqueSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// splitList splits a comma separated type list and trims each element.
func splitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cComment matches whichever comment opens first, so "/*" inside a line
// comment does not start a block.
var cComment = regexp.MustCompile(`//[^\n]*|(?s)/\*.*?\*/`)

// stripCComments blanks out // and /* */ comments while keeping line breaks,
// so patterns never match inside commented-out code.
func stripCComments(src string) string {
	return cComment.ReplaceAllStringFunc(src, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
}
