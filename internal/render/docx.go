package render

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/tree"
)

// maxHeadingLevel is the deepest heading style a Word document defines.
const maxHeadingLevel = 9

// WriteDOCX saves a Word document to path: the hierarchy as nested headings
// when h is non-empty, the listing as bullets otherwise, then the skipped
// items.
func WriteDOCX(path string, listing *tree.Listing, h hierarchy.Map) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := doc.AddHeading("Directory Structure", 0); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}

	if len(h) > 0 {
		if _, err := doc.AddHeading("Project Hierarchy", 1); err != nil {
			return fmt.Errorf("failed to add heading: %w", err)
		}
		if err := addHierarchyHeadings(doc, h, 0); err != nil {
			return err
		}
	} else if listing != nil {
		for _, line := range listing.Lines {
			style := "List Bullet 2"
			if len(line) > 0 && line[len(line)-1] == '/' {
				style = "List Bullet"
			}
			doc.AddParagraph(line).Style(style)
		}
	}

	if listing != nil && (len(listing.SkippedFiles) > 0 || len(listing.SkippedFolders) > 0) {
		if _, err := doc.AddHeading("Skipped Items", 1); err != nil {
			return fmt.Errorf("failed to add heading: %w", err)
		}
		sections := []struct {
			title string
			paths []string
		}{
			{"Skipped Files:", listing.SkippedFiles},
			{"Skipped Folders:", listing.SkippedFolders},
		}
		for _, section := range sections {
			if len(section.paths) == 0 {
				continue
			}
			if _, err := doc.AddHeading(section.title, 2); err != nil {
				return fmt.Errorf("failed to add heading: %w", err)
			}
			for _, p := range section.paths {
				doc.AddParagraph(p).Style("List Bullet 2")
			}
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// addHierarchyHeadings adds "name/" per node, one heading level deeper per
// hierarchy level, capped at the deepest heading style.
func addHierarchyHeadings(doc *docx.RootDoc, h hierarchy.Map, level int) error {
	heading := uint(min(level+1, maxHeadingLevel))
	for _, name := range h.Keys() {
		if _, err := doc.AddHeading(name+"/", heading); err != nil {
			return fmt.Errorf("failed to add heading %s: %w", name, err)
		}
		if err := addHierarchyHeadings(doc, h[name], level+1); err != nil {
			return err
		}
	}
	return nil
}
