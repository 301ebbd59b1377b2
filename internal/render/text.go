// Package render writes a directory listing or a hierarchy.Map to the output
// formats dirmap supports.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/tree"
)

// WriteText writes the hierarchy when h is non-empty, the listing lines
// otherwise, then a summary of skipped items.
func WriteText(w io.Writer, listing *tree.Listing, h hierarchy.Map) error {
	bw := bufio.NewWriter(w)
	for _, line := range textLines(listing, h) {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

// textLines is the text report line by line. The PDF renderer draws the same
// lines.
func textLines(listing *tree.Listing, h hierarchy.Map) []string {
	var lines []string

	if len(h) > 0 {
		lines = append(lines, "Project Hierarchy:", "==================", "")
		lines = appendHierarchyLines(lines, h, 0)
		lines = append(lines, "")
	} else if listing != nil {
		lines = append(lines, listing.Lines...)
	}

	if listing != nil && (len(listing.SkippedFiles) > 0 || len(listing.SkippedFolders) > 0) {
		lines = append(lines, "", "Skipped Items:", strings.Repeat("=", 20))

		if len(listing.SkippedFiles) > 0 {
			lines = append(lines, "", "Skipped Files:")
			for _, f := range listing.SkippedFiles {
				lines = append(lines, "  "+f)
			}
		}
		if len(listing.SkippedFolders) > 0 {
			lines = append(lines, "", "Skipped Folders:")
			for _, f := range listing.SkippedFolders {
				lines = append(lines, "  "+f)
			}
		}
	}
	return lines
}

// appendHierarchyLines adds "name/" per node, four spaces per level, keys
// sorted at every level.
func appendHierarchyLines(lines []string, h hierarchy.Map, level int) []string {
	indent := strings.Repeat(tree.Indent, level)
	for _, name := range h.Keys() {
		lines = append(lines, indent+name+"/")
		lines = appendHierarchyLines(lines, h[name], level+1)
	}
	return lines
}
