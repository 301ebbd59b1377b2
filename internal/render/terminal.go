package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
)

var (
	rootStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	leafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	guideStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// WriteTerminal draws h as a box-drawing tree. With color false the output
// is plain text.
func WriteTerminal(w io.Writer, h hierarchy.Map, color bool) error {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	var draw func(node hierarchy.Map, prefix string)
	draw = func(node hierarchy.Map, prefix string) {
		keys := node.Keys()
		for i, name := range keys {
			last := i == len(keys)-1
			connector, next := "├── ", "│   "
			if last {
				connector, next = "└── ", "    "
			}

			label := style(leafStyle, name)
			if len(node[name]) > 0 {
				label = style(branchStyle, name)
			}
			b.WriteString(style(guideStyle, prefix+connector) + label + "\n")
			draw(node[name], prefix+next)
		}
	}

	for _, name := range h.Keys() {
		b.WriteString(style(rootStyle, name) + "\n")
		draw(h[name], "")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}
