package graph

import (
	"math"
	"math/rand/v2"
)

// LayoutConfig holds the tunables of the radial rejection sampler. The
// defaults are empirical: they keep result nodes inside an annulus
// around the root cluster and declutter most five-to-ten node layouts
// within the attempt budget.
type LayoutConfig struct {
	MinDistance float64 // inner annulus bound, fraction of max radius
	MaxDistance float64 // outer annulus bound, fraction of max radius
	AngleGap    float64 // minimum angular separation in radians
	DistanceGap float64 // minimum radial separation, fraction of max radius
	MaxAttempts int     // rejection sampling budget per node
}

// DefaultLayoutConfig returns the standard sampler tuning.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MinDistance: 0.50,
		MaxDistance: 0.90,
		AngleGap:    0.5,
		DistanceGap: 0.2,
		MaxAttempts: 150,
	}
}

// LayoutNode is the frame-invariant polar position assigned to one
// result paper. Angle and Distance stay fixed for the lifetime of a
// result list so that per-frame drift reads as jitter around a point,
// not as re-layout.
type LayoutNode struct {
	Angle    float64 // radians, [0, 2π)
	Distance float64 // fraction of max radius
	Paper    Paper
}

// Sampler assigns radial positions to result papers via bounded
// rejection sampling. Layouts are randomized: two calls with the same
// input produce different but equally valid placements.
type Sampler struct {
	cfg LayoutConfig
	rng *rand.Rand
}

// NewSampler creates a sampler with the given tuning. A nil source
// seeds from the global generator, which is what production uses; tests
// pass a fixed source for reproducibility.
func NewSampler(cfg LayoutConfig, src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{cfg: cfg, rng: rand.New(src)}
}

// Layout assigns each paper a polar position inside the configured
// annulus. A candidate is accepted when every previously placed node is
// either angularly or radially clear of it; after MaxAttempts the last
// candidate is accepted regardless, so the layout is best-effort
// decluttered, never guaranteed collision-free. Exactly one node is
// returned per input paper, in input order.
func (s *Sampler) Layout(papers []Paper) []LayoutNode {
	nodes := make([]LayoutNode, 0, len(papers))
	for _, paper := range papers {
		var angle, distance float64
		for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
			angle = s.rng.Float64() * 2 * math.Pi
			distance = s.cfg.MinDistance + s.rng.Float64()*(s.cfg.MaxDistance-s.cfg.MinDistance)
			if s.clears(nodes, angle, distance) {
				break
			}
		}
		nodes = append(nodes, LayoutNode{Angle: angle, Distance: distance, Paper: paper})
	}
	return nodes
}

func (s *Sampler) clears(placed []LayoutNode, angle, distance float64) bool {
	for _, n := range placed {
		if angularGap(n.Angle, angle) <= s.cfg.AngleGap && math.Abs(n.Distance-distance) <= s.cfg.DistanceGap {
			return false
		}
	}
	return true
}

// angularGap returns the smaller arc between two angles.
func angularGap(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
