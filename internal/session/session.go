package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sciorbit/orbit/pkg/graph"
)

// frameInterval is the animation tick cadence, matching a 60Hz display.
const frameInterval = time.Second / 60

// streamEvery throttles the frame stream to every n-th tick; the clock
// still advances at full rate so drift speed is unchanged.
const streamEvery = 3

// Snapshot is a consistent view of a session for the snapshot endpoint.
type Snapshot struct {
	ID             string           `json:"id"`
	ContextSummary string           `json:"contextSummary"`
	ContextPapers  []graph.Paper    `json:"contextPapers"`
	Results        []graph.Paper    `json:"results"`
	Dimensions     graph.Dimensions `json:"dimensions"`
	Frame          graph.Frame      `json:"frame"`
}

// state is everything a session owns. It is only ever touched by the
// session's run goroutine; every mutation and read goes through the
// command channel, so no lock is needed.
type state struct {
	contextSet  *graph.ContextSet
	summary     string
	results     []graph.Paper
	layout      []graph.LayoutNode
	dims        graph.Dimensions
	interaction graph.InteractionState
	clock       graph.Clock
	sampler     *graph.Sampler

	subscribers map[int]chan graph.Frame
	nextSubID   int
}

// Session hosts one graph view: the running context set, the current
// result layout, interaction state and the animation clock. All access
// is serialized through a single owner goroutine; the frame ticker and
// user events interleave there, which reproduces the cooperative
// single-threaded model of the view it drives.
type Session struct {
	ID string

	commands  chan func(*state)
	done      chan struct{}
	closeOnce sync.Once

	lastSeen atomic.Int64 // unix nanos, for idle expiry
}

// New creates a session rooted at the given paper with the given result
// list and starts its owner goroutine.
func New(id string, root graph.Paper, dims graph.Dimensions) *Session {
	s := &Session{
		ID:       id,
		commands: make(chan func(*state), 16),
		done:     make(chan struct{}),
	}
	s.touch()

	st := &state{
		contextSet:  graph.NewContextSet(root),
		dims:        dims,
		sampler:     graph.NewSampler(graph.DefaultLayoutConfig(), nil),
		subscribers: make(map[int]chan graph.Frame),
	}
	go s.run(st)
	return s
}

// run is the single owner of the session state. The frame tick and
// queued commands interleave here; a command that recomputes the layout
// therefore always completes before the next frame is built.
func (s *Session) run(st *state) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-s.done:
			for _, sub := range st.subscribers {
				close(sub)
			}
			return
		case cmd := <-s.commands:
			cmd(st)
		case <-ticker.C:
			st.clock.Tick()
			tick++
			if len(st.subscribers) == 0 || tick%streamEvery != 0 {
				continue
			}
			// A live frame stream keeps the session out of the idle sweep.
			s.touch()
			frame := buildFrame(st)
			for _, sub := range st.subscribers {
				// Slow consumers drop frames instead of stalling the loop.
				select {
				case sub <- frame:
				default:
				}
			}
		}
	}
}

func buildFrame(st *state) graph.Frame {
	return graph.BuildFrame(st.layout, st.contextSet.Papers(), st.dims, st.clock.Now(), st.interaction)
}

// do runs fn on the owner goroutine and waits for it. It reports false
// when the session is already closed.
func (s *Session) do(fn func(*state)) bool {
	s.touch()
	ran := make(chan struct{})
	select {
	case s.commands <- func(st *state) {
		fn(st)
		close(ran)
	}:
	case <-s.done:
		return false
	}
	select {
	case <-ran:
		return true
	case <-s.done:
		return false
	}
}

// SetResults installs a new result list and summary. The layout is
// resampled immediately and the interaction state resets: the list
// identity changed, so hover, active and the detail overlay no longer
// refer to anything on screen.
func (s *Session) SetResults(papers []graph.Paper, summary string) {
	s.do(func(st *state) {
		st.results = papers
		st.summary = summary
		st.layout = st.sampler.Layout(papers)
		st.interaction = graph.InteractionState{}
	})
}

// ResetContext pivots the session onto a new root paper. Results are
// cleared until the next SetResults.
func (s *Session) ResetContext(root graph.Paper) {
	s.do(func(st *state) {
		st.contextSet.Reset(root)
		st.results = nil
		st.layout = nil
		st.summary = ""
		st.interaction = graph.InteractionState{}
	})
}

// AddContext appends a paper to the context set. It reports whether the
// paper was added; duplicates by title are a silent no-op.
func (s *Session) AddContext(paper graph.Paper) bool {
	added := false
	s.do(func(st *state) {
		added = st.contextSet.Add(paper)
	})
	return added
}

// ContextTitles returns the context titles in significance order.
func (s *Session) ContextTitles() []string {
	var titles []string
	s.do(func(st *state) {
		titles = st.contextSet.Titles()
	})
	return titles
}

// ApplyEvent feeds one interaction event through the reducer and
// returns the effect, if any, for the caller to act on.
func (s *Session) ApplyEvent(ev graph.Event) graph.Effect {
	var effect graph.Effect
	s.do(func(st *state) {
		st.interaction, effect = graph.Reduce(st.interaction, ev)
	})
	return effect
}

// Resize updates the drawing surface dimensions.
func (s *Session) Resize(dims graph.Dimensions) {
	s.do(func(st *state) {
		st.dims = dims
	})
}

// Frame builds the frame for the current clock time.
func (s *Session) Frame() graph.Frame {
	var frame graph.Frame
	s.do(func(st *state) {
		frame = buildFrame(st)
	})
	return frame
}

// Snapshot returns a consistent full view of the session.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.do(func(st *state) {
		snap = Snapshot{
			ID:             s.ID,
			ContextSummary: st.summary,
			ContextPapers:  st.contextSet.Papers(),
			Results:        st.results,
			Dimensions:     st.dims,
			Frame:          buildFrame(st),
		}
	})
	return snap
}

// Subscribe registers a frame stream. The returned cancel func must be
// called when the consumer goes away; the channel is closed either then
// or when the session closes.
func (s *Session) Subscribe() (<-chan graph.Frame, func()) {
	ch := make(chan graph.Frame, 1)
	id := -1
	ok := s.do(func(st *state) {
		id = st.nextSubID
		st.nextSubID++
		st.subscribers[id] = ch
	})
	if !ok {
		close(ch)
		return ch, func() {}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.do(func(st *state) {
				if sub, found := st.subscribers[id]; found {
					delete(st.subscribers, id)
					close(sub)
				}
			})
		})
	}
	return ch, cancel
}

// Close stops the owner goroutine and its ticker and closes all frame
// subscribers. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// IdleSince reports how long ago the session was last used.
func (s *Session) IdleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}
