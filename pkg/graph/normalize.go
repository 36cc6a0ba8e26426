package graph

// ScoreRange describes the spread of relevance scores within one result
// set. Range is never zero so strength computation cannot divide by zero.
type ScoreRange struct {
	Min   float64
	Max   float64
	Range float64
}

// NormalizeScores computes the score range of a result set. An empty
// list yields the full 0-100 range as a safe default. When every score
// is identical the range collapses to 1 so that all strengths come out
// as 0 rather than NaN.
func NormalizeScores(papers []Paper) ScoreRange {
	if len(papers) == 0 {
		return ScoreRange{Min: 0, Max: 100, Range: 100}
	}

	min := papers[0].RelevanceScore
	max := papers[0].RelevanceScore
	for _, p := range papers[1:] {
		if p.RelevanceScore < min {
			min = p.RelevanceScore
		}
		if p.RelevanceScore > max {
			max = p.RelevanceScore
		}
	}

	r := max - min
	if r == 0 {
		r = 1
	}
	return ScoreRange{Min: min, Max: max, Range: r}
}

// Strength maps a raw 0-100 relevance score onto [0,1] relative to the
// range. The weakest paper in the set maps to 0, the strongest to 1.
func (sr ScoreRange) Strength(score float64) float64 {
	s := (score - sr.Min) / sr.Range
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
