// Package tree implements the lazy Fish game tree: successor enumeration
// over a MovePenguins-phase state, with depth-bounded BFS and preorder
// walks. No node caches its children centrally; each child is produced on
// demand and owns its own state.
package tree

import (
	"fmt"
	"iter"

	"github.com/hailam/fish/internal/fish"
)

// Node wraps a state known to be in MovePenguins phase, together with the
// action that produced it (nil at the root) and its depth from the root.
type Node struct {
	State    *fish.State
	Incoming *fish.Action // nil at the root or after a forced skip
	Depth    int

	moves    []fish.Action
	terminal bool
}

// New wraps state as the root of a game tree. state must be in
// MovePenguins phase.
func New(state *fish.State) (*Node, error) {
	if state.Phase != fish.MovePenguins {
		return nil, fmt.Errorf("tree: cannot build a tree over a %s-phase state", state.Phase)
	}
	n := &Node{State: state, Depth: 0}
	n.moves = state.PossibleMoves(state.Turn)
	n.terminal = len(n.moves) == 0 && !state.AnyPlayerCanMove()
	return n, nil
}

func wrapChild(state *fish.State, incoming *fish.Action, depth int) *Node {
	n := &Node{State: state, Incoming: incoming, Depth: depth}
	n.moves = state.PossibleMoves(state.Turn)
	n.terminal = len(n.moves) == 0 && !state.AnyPlayerCanMove()
	return n
}

// PossibleMoves returns the current turn's legal actions at this node, in
// no particular order.
func (n *Node) PossibleMoves() []fish.Action { return n.moves }

// Terminal reports whether no player in the state can move.
func (n *Node) Terminal() bool { return n.terminal }

// ValidateAndApply checks that action is legal at this node and, if so,
// returns the resulting state.
func (n *Node) ValidateAndApply(action fish.Action) (*fish.State, error) {
	if !n.contains(action) {
		return nil, fmt.Errorf("tree: %v is not a legal move for %s", action, n.State.Turn)
	}
	return n.State.MovePenguin(n.State.Turn, action.From, action.To)
}

// ValidateAndComputeNode is ValidateAndApply but returns the wrapped child
// node instead of the bare state.
func (n *Node) ValidateAndComputeNode(action fish.Action) (*Node, error) {
	next, err := n.ValidateAndApply(action)
	if err != nil {
		return nil, err
	}
	return wrapChild(next, &action, n.Depth+1), nil
}

func (n *Node) contains(action fish.Action) bool {
	for _, m := range n.moves {
		if m == action {
			return true
		}
	}
	return false
}

// DirectChildren yields this node's immediate children. For each possible
// move it yields the resulting state wrapped at Depth+1. If there are no
// possible moves but some other player can still move, it yields exactly
// one "skip" child whose Turn has advanced and nothing else changed. If no
// player can move at all, it yields nothing.
func (n *Node) DirectChildren() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if len(n.moves) == 0 {
			if n.State.AnyPlayerCanMove() {
				skip := wrapChild(n.State.IncreaseTurn(), nil, n.Depth+1)
				yield(skip)
			}
			return
		}
		for _, action := range n.moves {
			next, err := n.State.MovePenguin(n.State.Turn, action.From, action.To)
			if err != nil {
				// possible_moves was computed from the same state, so this
				// cannot fail; surfacing it silently would hide a bug.
				panic(fmt.Sprintf("tree: possible move %v rejected: %v", action, err))
			}
			act := action
			child := wrapChild(next, &act, n.Depth+1)
			if !yield(child) {
				return
			}
		}
	}
}

// BFS yields nodes level-by-level, starting at this node, up to and
// including the given depth (measured from this node, i.e. this node is
// level 0).
func (n *Node) BFS(depth int) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		level := []*Node{n}
		for d := 0; d <= depth; d++ {
			var next []*Node
			for _, node := range level {
				if !yield(node) {
					return
				}
				if d == depth {
					continue
				}
				for child := range node.DirectChildren() {
					next = append(next, child)
				}
			}
			level = next
			if len(level) == 0 {
				return
			}
		}
	}
}

// Preorder yields this node, then recursively the preorder walk of each
// child's subtree, up to the given depth (measured from this node).
func (n *Node) Preorder(depth int) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.preorder(depth, yield)
	}
}

func (n *Node) preorder(depth int, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	if depth == 0 {
		return true
	}
	for child := range n.DirectChildren() {
		if !child.preorder(depth-1, yield) {
			return false
		}
	}
	return true
}
