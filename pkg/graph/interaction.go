package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeID identifies a node in the current graph view. Result nodes use
// their list index ("0", "1", ...), root nodes a separate "root-<i>"
// namespace so the two cannot collide when both are on screen.
type NodeID string

// ResultNodeID returns the id of the i-th result node.
func ResultNodeID(i int) NodeID {
	return NodeID(strconv.Itoa(i))
}

// RootNodeID returns the id of the i-th root node.
func RootNodeID(i int) NodeID {
	return NodeID(fmt.Sprintf("root-%d", i))
}

// IsRoot reports whether the id belongs to the root namespace.
func (id NodeID) IsRoot() bool {
	return strings.HasPrefix(string(id), "root-")
}

// InteractionState tracks which node is hovered, which is active (last
// clicked, showing its action menu) and which paper is open in the
// detail overlay. SelectedPaper is orthogonal to hover/active: it is
// driven by an explicit info action and survives hover changes. The
// zero value is the fully idle state.
type InteractionState struct {
	HoveredID     NodeID
	ActiveID      NodeID
	SelectedPaper *Paper
}

// Event is a single user interaction fed to Reduce.
type Event interface{ isEvent() }

// PointerEnter fires when the pointer enters a node.
type PointerEnter struct{ ID NodeID }

// PointerLeave fires when the pointer leaves a node.
type PointerLeave struct{ ID NodeID }

// ClickNode fires on a single click on a node.
type ClickNode struct{ ID NodeID }

// ClickBackground fires on a click that hits no node.
type ClickBackground struct{}

// DoubleClick fires on a double click on a node and pivots the search.
type DoubleClick struct{ Paper Paper }

// ShowInfo opens the detail overlay for a paper.
type ShowInfo struct{ Paper Paper }

// DismissInfo closes the detail overlay.
type DismissInfo struct{}

// AddToContext asks for a result paper to join the context set.
type AddToContext struct{ Paper Paper }

func (PointerEnter) isEvent()    {}
func (PointerLeave) isEvent()    {}
func (ClickNode) isEvent()       {}
func (ClickBackground) isEvent() {}
func (DoubleClick) isEvent()     {}
func (ShowInfo) isEvent()        {}
func (DismissInfo) isEvent()     {}
func (AddToContext) isEvent()    {}

// Effect is a side request the reducer hands back to its caller instead
// of performing itself: pivoting the search or growing the context both
// need the AI collaborator, which the engine never calls.
type Effect interface{ isEffect() }

// PivotRequest asks the caller to start a new search rooted at Paper.
type PivotRequest struct{ Paper Paper }

// AddRequest asks the caller to append Paper to the context set.
// Duplicate screening happens at the context-set boundary, not here.
type AddRequest struct{ Paper Paper }

func (PivotRequest) isEffect() {}
func (AddRequest) isEffect()   {}

// Reduce applies one event to the interaction state and returns the new
// state plus an optional effect. It is pure: callers own when and how
// state is stored.
func Reduce(s InteractionState, ev Event) (InteractionState, Effect) {
	switch e := ev.(type) {
	case PointerEnter:
		s.HoveredID = e.ID
	case PointerLeave:
		// A leave from a node we already left (event reordering) must
		// not clobber the hover another node now owns.
		if s.HoveredID == e.ID {
			s.HoveredID = ""
		}
	case ClickNode:
		s.ActiveID = e.ID
	case ClickBackground:
		s.ActiveID = ""
		s.SelectedPaper = nil
	case DoubleClick:
		return s, PivotRequest{Paper: e.Paper}
	case ShowInfo:
		p := e.Paper
		s.SelectedPaper = &p
	case DismissInfo:
		s.SelectedPaper = nil
	case AddToContext:
		return s, AddRequest{Paper: e.Paper}
	}
	return s, nil
}

// MenuVisible reports whether the action menu of the given node should
// be shown: a node shows its menu while hovered or active.
func (s InteractionState) MenuVisible(id NodeID) bool {
	return s.HoveredID == id || s.ActiveID == id
}

// Engaged reports whether the node is hovered or active, which drives
// both the +5px radius bump and the raised paint layer.
func (s InteractionState) Engaged(id NodeID) bool {
	return s.HoveredID == id || s.ActiveID == id
}

// PaintLayer resolves the z-order of a node. Painting goes bottom to
// top: idle roots, idle results, engaged results, engaged roots. An
// engaged node's popover is therefore never occluded by idle siblings,
// and roots win when both kinds are engaged at once.
func (s InteractionState) PaintLayer(id NodeID) int {
	engaged := s.Engaged(id)
	switch {
	case id.IsRoot() && !engaged:
		return 0
	case !id.IsRoot() && !engaged:
		return 1
	case !id.IsRoot():
		return 2
	default:
		return 3
	}
}
