package graph

import "math"

// Offset is a position relative to the graph's geometric center, in
// pixels at reference scale.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	rootPairSpread   = 25.0 // half-distance between two roots
	rootCircleRadius = 30.0 // ring radius for three or more roots
)

// RootOffsets places n root papers in a small sub-cluster around the
// center: a single root sits exactly on the center, two roots sit left
// and right of it, three or more spread evenly on a fixed ring. The
// cluster's center of gravity stays on the graph center for every n, so
// edge drawing can anchor there regardless of root count.
func RootOffsets(n int) []Offset {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []Offset{{X: 0, Y: 0}}
	case n == 2:
		return []Offset{{X: -rootPairSpread, Y: 0}, {X: rootPairSpread, Y: 0}}
	}

	offsets := make([]Offset, n)
	for i := range offsets {
		angle := 2 * math.Pi * float64(i) / float64(n)
		offsets[i] = Offset{
			X: rootCircleRadius * math.Cos(angle),
			Y: rootCircleRadius * math.Sin(angle),
		}
	}
	return offsets
}
