package graph

import "math"

// Dimensions is the pixel size of the drawing surface.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const (
	minNodeRadius  = 25.0 // weakest result node
	strengthRadius = 30.0 // extra radius of the strongest node
	engagedBump    = 5.0  // hover/active radius increase
	rootNodeRadius = 34.0 // roots have no score, fixed size

	edgeBaseWidth  = 2.0
	edgeSpanWidth  = 6.0
	curveBaseBend  = 18.0
	curveBendSwing = 6.0
)

// ResultNode is one rendered result paper: its animated position, its
// relevance-scaled radius and everything the renderer needs to draw the
// node and its popover.
type ResultNode struct {
	ID          NodeID  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Score       float64 `json:"score"`
	Strength    float64 `json:"strength"`
	Layer       int     `json:"layer"`
	MenuVisible bool    `json:"menuVisible"`
	Paper       Paper   `json:"paper"`
}

// RootNode is one rendered context paper near the graph center.
type RootNode struct {
	ID          NodeID  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Layer       int     `json:"layer"`
	MenuVisible bool    `json:"menuVisible"`
	Paper       Paper   `json:"paper"`
}

// Edge is a quadratic curve from the root-cluster center to a result
// node. Stroke width and opacity encode the node's relevance strength.
type Edge struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	CX      float64 `json:"cx"`
	CY      float64 `json:"cy"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Frame is one fully resolved picture of the graph: node positions at a
// given clock time, paint layers, menu flags and edges. It is what the
// renderer consumes and what the frame stream serializes.
type Frame struct {
	Time          float64      `json:"time"`
	Roots         []RootNode   `json:"roots"`
	Nodes         []ResultNode `json:"nodes"`
	Edges         []Edge       `json:"edges"`
	SelectedPaper *Paper       `json:"selectedPaper,omitempty"`
}

// nodeRadius applies the shared visual contract: 25px for the weakest
// paper in the set, 55px for the strongest, +5 while engaged.
func nodeRadius(strength float64, engaged bool) float64 {
	r := minNodeRadius + strength*strengthRadius
	if engaged {
		r += engagedBump
	}
	return r
}

// edgeStyle derives stroke width and opacity from strength. Single-root
// graphs draw slightly bolder edges since there is less on screen.
func edgeStyle(strength float64, singleRoot bool) (width, opacity float64) {
	width = edgeBaseWidth + strength*edgeSpanWidth
	if singleRoot {
		opacity = 0.2 + strength*0.5
	} else {
		opacity = 0.1 + strength*0.4
	}
	return width, opacity
}

// BuildFrame resolves the frame-invariant layout into screen space at
// clock time t. It is a pure function of its inputs; calling it twice
// with the same arguments yields the same frame. A zero-sized surface
// yields a frame with all geometry collapsed onto the origin rather
// than an error.
func BuildFrame(layout []LayoutNode, roots []Paper, dims Dimensions, t float64, state InteractionState) Frame {
	frame := Frame{Time: t, SelectedPaper: state.SelectedPaper}

	cx := dims.Width / 2
	cy := dims.Height / 2
	maxRadius := math.Min(dims.Width, dims.Height) / 2

	offsets := RootOffsets(len(roots))
	frame.Roots = make([]RootNode, len(roots))
	for i, p := range roots {
		id := RootNodeID(i)
		frame.Roots[i] = RootNode{
			ID:          id,
			X:           cx + offsets[i].X,
			Y:           cy + offsets[i].Y,
			Radius:      rootNodeRadius,
			Layer:       state.PaintLayer(id),
			MenuVisible: state.MenuVisible(id),
			Paper:       p,
		}
	}

	results := make([]Paper, len(layout))
	for i, n := range layout {
		results[i] = n.Paper
	}
	sr := NormalizeScores(results)
	singleRoot := len(roots) <= 1

	frame.Nodes = make([]ResultNode, len(layout))
	frame.Edges = make([]Edge, len(layout))
	for i, n := range layout {
		id := ResultNodeID(i)
		dx, dy := Drift(t, i)
		x := cx + math.Cos(n.Angle)*n.Distance*maxRadius + dx
		y := cy + math.Sin(n.Angle)*n.Distance*maxRadius + dy
		strength := sr.Strength(n.Paper.RelevanceScore)

		frame.Nodes[i] = ResultNode{
			ID:          id,
			X:           x,
			Y:           y,
			Radius:      nodeRadius(strength, state.Engaged(id)),
			Score:       n.Paper.RelevanceScore,
			Strength:    strength,
			Layer:       state.PaintLayer(id),
			MenuVisible: state.MenuVisible(id),
			Paper:       n.Paper,
		}
		frame.Edges[i] = buildEdge(cx, cy, x, y, strength, i, t, singleRoot)
	}

	return frame
}

// buildEdge bends the root-to-node chord perpendicular to itself. The
// bend direction alternates with node parity and its magnitude
// oscillates with the clock, which makes the whole edge bundle breathe.
func buildEdge(x1, y1, x2, y2, strength float64, i int, t float64, singleRoot bool) Edge {
	chordX := x2 - x1
	chordY := y2 - y1
	length := math.Hypot(chordX, chordY)

	bend := curveBaseBend + curveBendSwing*math.Sin(t+float64(i))
	if i%2 == 1 {
		bend = -bend
	}

	// Perpendicular unit vector; degenerate chords get a straight edge.
	var px, py float64
	if length > 0 {
		px = -chordY / length
		py = chordX / length
	}

	width, opacity := edgeStyle(strength, singleRoot)
	return Edge{
		X1:      x1,
		Y1:      y1,
		CX:      (x1+x2)/2 + px*bend,
		CY:      (y1+y2)/2 + py*bend,
		X2:      x2,
		Y2:      y2,
		Width:   width,
		Opacity: opacity,
	}
}
