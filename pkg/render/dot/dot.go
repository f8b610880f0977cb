// Package dot describes a region as a Graphviz graph: one cluster per row,
// items left to right inside it, rows stacked top to bottom.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Options configures the DOT description.
type Options struct {
	// Detailed adds size, row and position to item labels.
	Detailed bool
	// Packing sizes items and sets the row capacity shown in cluster labels.
	Packing region.PackingConfig
}

// ToDOT converts r to Graphviz DOT. Empty rows become a single dashed
// placeholder node so they remain visible.
func ToDOT(r region.Region, opts Options) string {
	maxSize := opts.Packing.MaxSize
	if maxSize <= 0 {
		maxSize = region.DefaultMaxSize
	}
	sizes := r.RowSizes(opts.Packing)

	var buf bytes.Buffer
	buf.WriteString("digraph region {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [style=invis];\n")
	buf.WriteString("\n")

	var heads []string
	for i, row := range r {
		n := i + 1
		fmt.Fprintf(&buf, "  subgraph \"cluster_row_%d\" {\n", n)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("row %d (%g/%g)", n, sizes[i], maxSize))
		buf.WriteString("    style=rounded;\n")

		var ids []string
		if len(row) == 0 {
			id := fmt.Sprintf("empty_%d", n)
			fmt.Fprintf(&buf, "    %q [label=\"empty\", style=\"rounded,dashed\"];\n", id)
			ids = append(ids, id)
		}
		for _, it := range row {
			id := "item_" + it.ID
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id, fmtLabel(it, opts.Detailed))
			ids = append(ids, id)
		}
		if len(ids) > 1 {
			fmt.Fprintf(&buf, "    %s;\n", quoteJoin(ids, " -> "))
		}
		buf.WriteString("  }\n")
		heads = append(heads, ids[0])
	}

	if len(heads) > 1 {
		buf.WriteString("\n")
		for i := 1; i < len(heads); i++ {
			fmt.Fprintf(&buf, "  { rank=same; %q; %q; }\n", heads[i-1], heads[i])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(it region.Item, detailed bool) string {
	label := it.ID
	if title, ok := it.Payload["title"].(string); ok && title != "" {
		label = title
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nsize: %g\nrow: %d pos: %d", label, it.Size, it.Row, it.Position)
}

func quoteJoin(ids []string, sep string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return strings.Join(quoted, sep)
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
