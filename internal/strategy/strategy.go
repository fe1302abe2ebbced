// Package strategy exposes the two pure decision functions a player (local
// or remote) needs: where to place the next penguin, and which action an
// N-ply maximin search picks for the player on the move. Grounded on the
// teacher's Searcher (internal/engine/search.go in the source chess
// engine): a throwaway search object walks a depth-bounded tree and reads
// back the best move, adapted here from symmetric negamax to the spec's
// asymmetric maximin (the maximizer is fixed at the root's turn for the
// whole search, not flipped every ply).
package strategy

import (
	"fmt"

	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/tree"
)

// FindNextPlacement returns the first present, unoccupied coordinate in
// row-major order. It errors if the board has none left.
func FindNextPlacement(state *fish.State) (coord.Coord, error) {
	occ := state.Occupied()
	for _, c := range state.Board.AllCoords() {
		t, err := state.Board.TileAt(c)
		if err != nil {
			continue
		}
		if t.Present && !occ[c] {
			return c, nil
		}
	}
	return coord.Coord{}, fmt.Errorf("strategy: no present, unoccupied coordinate left to place on")
}

// searcher carries the fixed maximizer color through a bounded recursive
// walk of the game tree, mirroring the teacher's Searcher struct: one
// object per search, holding the state that doesn't change call to call.
type searcher struct {
	maximizer fish.Color
}

// FindNextMove runs an N-ply maximin search rooted at state (which must be
// in MovePenguins phase) and returns the root turn's best action. N counts
// the maximizer's moves, not plies: the search looks N moves ahead for the
// maximizer, generating (N-1)*players plies below the root's own ply.
func FindNextMove(state *fish.State, n int) (fish.Action, error) {
	root, err := tree.New(state)
	if err != nil {
		return fish.Action{}, err
	}
	if len(root.PossibleMoves()) == 0 {
		return fish.Action{}, fmt.Errorf("strategy: no legal move for %s", state.Turn)
	}

	s := &searcher{maximizer: state.Turn}
	plies := playerCount(state) * (n - 1)

	var bestAction fish.Action
	bestValue := -1
	first := true

	for child := range root.DirectChildren() {
		// DirectChildren never emits a skip here since PossibleMoves is
		// non-empty for the root turn.
		value := s.minimax(child, plies)
		action := *child.Incoming
		if first || value > bestValue || (value == bestValue && fish.Less(action, bestAction)) {
			bestValue = value
			bestAction = action
			first = false
		}
	}
	return bestAction, nil
}

func playerCount(state *fish.State) int {
	return len(state.Players())
}

// minimax evaluates node at the given remaining-plies budget. At nodes
// where the turn belongs to the maximizer, it picks the action maximizing
// the child's value; otherwise it picks the action minimizing the
// maximizer's eventual value. A forced skip child counts as one ply.
func (s *searcher) minimax(node *tree.Node, pliesLeft int) int {
	if pliesLeft <= 0 || node.Terminal() {
		return s.evaluate(node)
	}

	maximizing := node.State.Turn == s.maximizer
	first := true
	best := 0

	for child := range node.DirectChildren() {
		value := s.minimax(child, pliesLeft-1)
		if first {
			best = value
			first = false
			continue
		}
		if maximizing {
			if value > best {
				best = value
			}
		} else {
			if value < best {
				best = value
			}
		}
	}
	if first {
		// No children and not flagged terminal cannot happen: DirectChildren
		// always yields something unless the node is terminal.
		return s.evaluate(node)
	}
	return best
}

// evaluate returns the maximizer's fish count at node's state, the only
// evaluation the spec defines (at a depth limit or a terminal node).
func (s *searcher) evaluate(node *tree.Node) int {
	info, ok := node.State.PlayerInfo(s.maximizer)
	if !ok {
		return 0
	}
	return int(info.Score)
}
