package graph

import (
	"fmt"
	"sort"
	"strings"
)

// RenderSVG draws a frame as a standalone SVG document, mainly for
// exporting the current graph. Elements are emitted in paint order so
// engaged nodes end up on top, matching the live view's layering.
func RenderSVG(frame Frame, dims Dimensions) []byte {
	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		dims.Width, dims.Height, dims.Width, dims.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="#0b0e1a"/>` + "\n")

	for _, e := range frame.Edges {
		fmt.Fprintf(&b,
			`<path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" fill="none" stroke="#7aa2ff" stroke-width="%.1f" stroke-opacity="%.2f"/>`+"\n",
			e.X1, e.Y1, e.CX, e.CY, e.X2, e.Y2, e.Width, e.Opacity)
	}

	type circle struct {
		x, y, r float64
		fill    string
		label   string
		layer   int
	}
	circles := make([]circle, 0, len(frame.Roots)+len(frame.Nodes))
	for _, r := range frame.Roots {
		circles = append(circles, circle{r.X, r.Y, r.Radius, "#f2b36b", r.Paper.Title, r.Layer})
	}
	for _, n := range frame.Nodes {
		circles = append(circles, circle{n.X, n.Y, n.Radius, "#6bc1f2", n.Paper.Title, n.Layer})
	}
	sort.SliceStable(circles, func(i, j int) bool { return circles[i].layer < circles[j].layer })

	for _, c := range circles {
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", c.x, c.y, c.r, c.fill)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#e8ecf8">%s</text>`+"\n",
			c.x, c.y+c.r+14, escapeXML(truncateLabel(c.label, 40)))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
