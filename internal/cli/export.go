package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/dirmap/internal/config"
	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/render"
	"github.com/mvp-joe/dirmap/internal/tree"
)

// exporter writes one run's outputs, <output>.<ext> per configured format
// and <output>_hierarchy.json when hierarchy extraction is enabled.
type exporter struct {
	cfg      *config.Config
	rootDir  string
	treeOpts tree.Options
	out      io.Writer
	quiet    bool

	// directPDF draws the PDF straight from the hierarchy instead of from
	// the text report. Only applies with hierarchy extraction enabled.
	directPDF bool
}

// export walks the tree and writes every configured format. h is nil when
// hierarchy extraction is disabled; structured formats then carry the nested
// directory structure instead.
func (e *exporter) export(h hierarchy.Map) error {
	listing, err := tree.Walk(e.rootDir, e.treeOpts)
	if err != nil {
		return err
	}

	structured := h
	if !e.cfg.Hierarchy.Enable {
		structured, err = tree.Nested(e.rootDir, e.treeOpts)
		if err != nil {
			return err
		}
	}

	base := e.cfg.Output
	for _, format := range config.SupportedFormats {
		if !e.cfg.HasFormat(format) {
			continue
		}

		var path string
		switch format {
		case "txt":
			path = base + ".txt"
			err = writeFile(path, func(w io.Writer) error {
				return render.WriteText(w, listing, h)
			})
		case "json":
			path = base + ".json"
			err = writeFile(path, func(w io.Writer) error {
				return render.WriteJSON(w, structured)
			})
		case "yaml":
			path = base + ".yaml"
			err = writeFile(path, func(w io.Writer) error {
				return render.WriteYAML(w, structured)
			})
		case "sqlite":
			path = base + ".db"
			err = e.writeSQLite(path, structured)
		case "docx":
			path = base + ".docx"
			err = render.WriteDOCX(path, listing, h)
		case "pdf":
			path = base + ".pdf"
			err = writeFile(path, func(w io.Writer) error {
				if e.directPDF && e.cfg.Hierarchy.Enable {
					return render.WritePDFHierarchy(w, h)
				}
				return render.WritePDF(w, listing, h)
			})
		}
		if err != nil {
			return err
		}
		e.report("Exported directory structure to %s\n", path)
	}

	if e.cfg.Hierarchy.Enable {
		path := base + "_hierarchy.json"
		if err := writeFile(path, func(w io.Writer) error {
			return render.WriteJSON(w, h)
		}); err != nil {
			return err
		}
		e.report("Exported hierarchy to %s\n", path)
	}
	return nil
}

func (e *exporter) writeSQLite(path string, m hierarchy.Map) error {
	projectType := "directory"
	if e.cfg.Hierarchy.Enable {
		projectType = e.cfg.Hierarchy.ProjectType
	}

	w, err := render.NewSQLiteWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = w.Write(render.RunInfo{RootDir: e.rootDir, ProjectType: projectType}, m)
	return err
}

func (e *exporter) report(format string, args ...any) {
	if e.quiet {
		return
	}
	fmt.Fprintf(e.out, format, args...)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
