// Package render prints patch sets to a terminal, one line per patch,
// color-coded by patch kind.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ryanjanoconnell/httpdiff/internal/compare"
)

var kindColors = map[compare.Kind]*color.Color{
	compare.KindInsert:  color.New(color.FgGreen),
	compare.KindDelete:  color.New(color.FgRed),
	compare.KindUpdate:  color.New(color.FgYellow),
	compare.KindReorder: color.New(color.FgCyan),
}

// Renderer writes human-readable patch output. Colors follow the global
// fatih/color switch, so NO_COLOR and non-TTY output degrade to plain text.
type Renderer struct {
	w io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Facet prints all patches recorded for one facet, grouped by kind.
func (r *Renderer) Facet(name string, ps *compare.PatchSet) {
	if ps.Empty() {
		return
	}
	fmt.Fprintf(r.w, "%s:\n", name)
	for _, p := range ps.Deletes {
		r.patch(name, p)
	}
	for _, p := range ps.Inserts {
		r.patch(name, p)
	}
	for _, p := range ps.Updates {
		r.patch(name, p)
	}
	for _, p := range ps.Reorders {
		r.patch(name, p)
	}
}

func (r *Renderer) patch(facet string, p compare.Patch) {
	label := kindColors[p.Kind].Sprintf("%-7s", string(p.Kind))
	path := displayPath(facet, p.Path)
	switch p.Kind {
	case compare.KindReorder:
		fmt.Fprintf(r.w, "  %s %s: position %v -> %v\n", label, path, p.Old, p.New)
	default:
		fmt.Fprintf(r.w, "  %s %s: %s -> %s\n", label, path, formatValue(p.Old), formatValue(p.New))
	}
}

// displayPath joins the facet name and patch path into a dotted string.
func displayPath(facet string, path []string) string {
	if len(path) == 0 {
		return facet
	}
	return facet + "." + strings.Join(path, ".")
}

func formatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
