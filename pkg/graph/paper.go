package graph

// Paper is a single research paper as returned by the analysis model.
// The JSON shape is the contract with the AI collaborator and the
// frontend and must not change: labOrInstitution is optional, all other
// fields are always present. RelevanceScore is the model's raw 0-100
// relevance estimate relative to the current context.
type Paper struct {
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Year             int      `json:"year"`
	Summary          string   `json:"summary"`
	Reason           string   `json:"reason"`
	LabOrInstitution string   `json:"labOrInstitution,omitempty"`
	RelevanceScore   float64  `json:"relevanceScore"`
}

// ContextSet is the ordered list of papers anchoring the current search.
// Insertion order is significance order with the original root first.
// Papers are identified by title; the set never holds two papers with
// the same title.
type ContextSet struct {
	papers []Paper
}

// NewContextSet creates a context set rooted at the given paper.
func NewContextSet(root Paper) *ContextSet {
	return &ContextSet{papers: []Paper{root}}
}

// Add appends a paper to the context. It reports whether the paper was
// added; a paper whose title is already present is silently ignored.
func (cs *ContextSet) Add(paper Paper) bool {
	for _, p := range cs.papers {
		if p.Title == paper.Title {
			return false
		}
	}
	cs.papers = append(cs.papers, paper)
	return true
}

// Reset discards the current context and restarts it at the given paper.
// Used when the user pivots the search onto a node.
func (cs *ContextSet) Reset(root Paper) {
	cs.papers = []Paper{root}
}

// Papers returns a copy of the context papers in significance order.
func (cs *ContextSet) Papers() []Paper {
	out := make([]Paper, len(cs.papers))
	copy(out, cs.papers)
	return out
}

// Titles returns the context paper titles in significance order.
func (cs *ContextSet) Titles() []string {
	titles := make([]string, len(cs.papers))
	for i, p := range cs.papers {
		titles[i] = p.Title
	}
	return titles
}

// Len returns the number of papers in the context.
func (cs *ContextSet) Len() int {
	return len(cs.papers)
}
