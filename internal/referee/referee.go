// Package referee owns one game's lifecycle: color announcement, placement,
// movement, and end, dispatching to players through a capability-set
// interface so a remote socket-backed player and an in-process one are
// handled identically. Grounded on the teacher's uci.Run main loop
// (internal/uci/uci.go): read one request, handle it synchronously, mutate
// owned state, repeat — adapted here from a single local stdin/stdout loop
// into polling N PlayerInterface values in turn order.
package referee

import (
	"log"
	"sort"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/tree"
	"github.com/pkg/errors"
)

// PlayerInterface is the capability set a player implementation (local or
// remote) must satisfy. Every method is fallible in a way the referee can
// pattern-match on instead of relying on exceptions as control flow: the
// notification-style calls return an "acknowledged" bool, and the
// decision-style calls return a structured value plus error.
type PlayerInterface interface {
	Start() bool
	AssignColor(c fish.Color) bool
	Opponents(cs []fish.Color) bool
	Place(state *fish.State) (coord.Coord, error)
	Move(state *fish.State, previous []fish.Action) (fish.Action, error)
	NotifyWinners(winners []fish.Color) bool
	End(isWinner bool) bool
}

// Entry pairs a player implementation with its age rank. The Manager (and a
// caller driving a single game directly) is responsible for sorting a pool
// of entries by age before handing them to New.
type Entry struct {
	Player PlayerInterface
	Age    int
}

// Outcome names the color a PlayerInterface played as within one game, so
// callers (the Manager in particular) can map a per-game result back to the
// original Entry across rounds, where colors are reassigned every game.
type Outcome struct {
	Entry Entry
	Color fish.Color
}

// Result reports one game's conclusion.
type Result struct {
	Winners  []Outcome
	Cheating []Outcome
	Failing  []Outcome
	State    *fish.State
}

// Referee runs one game for a fixed, age-ordered list of players.
type Referee struct {
	entries  []Entry
	colorOf  map[fish.Color]Entry
	cheating []Outcome
	failing  []Outcome
}

// New constructs a Referee for players, already sorted by age. len(players)
// must be 2-4; colors are assigned red, white, brown, black in that order,
// fixed for the Referee's whole lifetime regardless of which entry point
// runs the game.
func New(players []Entry) (*Referee, error) {
	if len(players) < 2 || len(players) > 4 {
		return nil, errors.Errorf("referee: a game needs 2 to 4 players, got %d", len(players))
	}
	colorOf := make(map[fish.Color]Entry, len(players))
	for i, e := range players {
		colorOf[fish.Colors[i]] = e
	}
	return &Referee{entries: players, colorOf: colorOf}, nil
}

// InitializeAndRunGame assigns colors, announces them, then runs placement
// and movement to completion on a fresh board.
func (r *Referee) InitializeAndRunGame(b *board.Board) (*Result, error) {
	survivors := r.announce()
	if len(survivors) < 2 {
		return r.concludeWithoutState(survivors), nil
	}
	colors := make([]fish.Color, len(survivors))
	for i, o := range survivors {
		colors[i] = o.Color
	}
	state, err := fish.New(b, colors)
	if err != nil {
		return nil, errors.Wrap(err, "referee: building initial state")
	}
	return r.run(state)
}

// InitializeAndRunFromGameState skips color assignment and placement,
// running movement to completion over an already-populated state. Used to
// resume a game (e.g. from a JSON harness fixture) past the placement
// phase.
func (r *Referee) InitializeAndRunFromGameState(state *fish.State) (*Result, error) {
	for _, p := range state.Players() {
		// Entries and state colors must agree; callers build both from the
		// same color assignment.
		if _, ok := r.colorOf[p.Color]; !ok {
			return nil, errors.Errorf("referee: state contains color %s with no matching player entry", p.Color)
		}
	}
	return r.run(state)
}

// announce tells each player (in age order) its color and its opponents'
// colors. A falsy acknowledgment marks that player failing and it never
// enters the game.
func (r *Referee) announce() []Outcome {
	var survivors []Outcome
	for i, e := range r.entries {
		color := fish.Colors[i]
		if !e.Player.Start() {
			r.markFailing(Outcome{Entry: e, Color: color})
			continue
		}
		if !e.Player.AssignColor(color) {
			r.markFailing(Outcome{Entry: e, Color: color})
			continue
		}
		survivors = append(survivors, Outcome{Entry: e, Color: color})
	}
	for _, o := range survivors {
		var opponents []fish.Color
		for _, other := range survivors {
			if other.Color != o.Color {
				opponents = append(opponents, other.Color)
			}
		}
		if !o.Entry.Player.Opponents(opponents) {
			r.markFailing(o)
			survivors = removeOutcome(survivors, o.Color)
		}
	}
	return survivors
}

// run drives placement (if the state is still in PlacePenguins) and then
// movement to completion, returning the final Result.
func (r *Referee) run(state *fish.State) (*Result, error) {
	var err error
	if state.Phase == fish.PlacePenguins {
		state, err = r.runPlacement(state)
		if err != nil {
			return nil, err
		}
	}
	if len(state.Players()) < 2 {
		return r.conclude(state), nil
	}
	state, err = r.runMovement(state)
	if err != nil {
		return nil, err
	}
	return r.conclude(state), nil
}

func (r *Referee) runPlacement(state *fish.State) (*fish.State, error) {
	quota := state.Quota()
	for {
		if len(state.Players()) < 2 {
			return state, nil
		}
		if allPlaced(state, quota) {
			break
		}
		info, ok := state.PlayerInfo(state.Turn)
		if !ok {
			return nil, errors.New("referee: current turn names no surviving player")
		}
		if len(info.Penguins) >= quota {
			state = state.IncreaseTurn()
			continue
		}
		entry, ok := r.colorOf[state.Turn]
		if !ok {
			return nil, errors.Errorf("referee: no player entry for color %s", state.Turn)
		}
		at, err := entry.Player.Place(state)
		if err != nil {
			log.Printf("[Referee] %s failed to produce a placement: %v", state.Turn, err)
			state = r.eject(state, state.Turn, false)
			continue
		}
		next, err := state.PlacePenguin(state.Turn, at)
		if err != nil {
			log.Printf("[Referee] %s proposed an illegal placement %v: %v", state.Turn, at, err)
			state = r.eject(state, state.Turn, true)
			continue
		}
		state = next
	}
	next, err := state.SetPhase(fish.MovePenguins)
	if err != nil {
		return nil, errors.Wrap(err, "referee: entering movement phase")
	}
	return next, nil
}

func allPlaced(state *fish.State, quota int) bool {
	for _, p := range state.Players() {
		if len(p.Penguins) < quota {
			return false
		}
	}
	return true
}

func (r *Referee) runMovement(state *fish.State) (*fish.State, error) {
	node, err := tree.New(state)
	if err != nil {
		return nil, errors.Wrap(err, "referee: building game tree")
	}
	var history []fish.Action
	for !node.Terminal() {
		if len(node.PossibleMoves()) == 0 {
			state = state.IncreaseTurn()
			node, err = tree.New(state)
			if err != nil {
				return nil, errors.Wrap(err, "referee: rebuilding game tree after a skip")
			}
			continue
		}
		entry, ok := r.colorOf[state.Turn]
		if !ok {
			return nil, errors.Errorf("referee: no player entry for color %s", state.Turn)
		}
		action, err := entry.Player.Move(state, history)
		if err != nil {
			log.Printf("[Referee] %s failed to produce a move: %v", state.Turn, err)
			state = r.eject(state, state.Turn, false)
			node, err = tree.New(state)
			if err != nil {
				return nil, errors.Wrap(err, "referee: rebuilding game tree after an ejection")
			}
			continue
		}
		next, err := node.ValidateAndApply(action)
		if err != nil {
			log.Printf("[Referee] %s proposed an illegal move %v: %v", state.Turn, action, err)
			state = r.eject(state, state.Turn, true)
			node, err = tree.New(state)
			if err != nil {
				return nil, errors.Wrap(err, "referee: rebuilding game tree after an ejection")
			}
			continue
		}
		history = append(history, action)
		state = next
		node, err = tree.New(state)
		if err != nil {
			return nil, errors.Wrap(err, "referee: rebuilding game tree after a move")
		}
	}
	return state, nil
}

// eject removes color from state (rebuilding the tree is the caller's job
// for movement phase; this only touches state and the kicked registry),
// and appends it to the cheating or failing bucket.
func (r *Referee) eject(state *fish.State, color fish.Color, cheating bool) *fish.State {
	entry := r.colorOf[color]
	o := Outcome{Entry: entry, Color: color}
	if cheating {
		r.markCheating(o)
	} else {
		r.markFailing(o)
	}
	return state.Eject(color)
}

func (r *Referee) markFailing(o Outcome) { r.failing = append(r.failing, o) }
func (r *Referee) markCheating(o Outcome) { r.cheating = append(r.cheating, o) }

// conclude finalizes state, computes winners, and notifies every surviving
// player. An unacknowledged notification is recorded as failing without
// changing the already-computed winner list.
func (r *Referee) conclude(state *fish.State) *Result {
	state = state.Finalize()
	survivors := state.Players()
	var winners []Outcome
	if len(survivors) > 0 {
		max := survivors[0].Score
		for _, p := range survivors {
			if p.Score > max {
				max = p.Score
			}
		}
		for _, p := range survivors {
			if p.Score == max {
				winners = append(winners, Outcome{Entry: r.colorOf[p.Color], Color: p.Color})
			}
		}
	}
	winnerColors := make([]fish.Color, len(winners))
	for i, w := range winners {
		winnerColors[i] = w.Color
	}
	for _, p := range survivors {
		entry := r.colorOf[p.Color]
		if !entry.Player.NotifyWinners(winnerColors) {
			r.markFailing(Outcome{Entry: entry, Color: p.Color})
		}
	}
	r.sortBuckets()
	return &Result{Winners: winners, Cheating: r.cheating, Failing: r.failing, State: state}
}

// concludeWithoutState handles the degenerate case where color
// announcement itself leaves fewer than two players: there is no game to
// build a GameState for, so the sole survivor (if any) wins trivially.
func (r *Referee) concludeWithoutState(survivors []Outcome) *Result {
	r.sortBuckets()
	return &Result{Winners: survivors, Cheating: r.cheating, Failing: r.failing, State: nil}
}

func (r *Referee) sortBuckets() {
	sort.Slice(r.cheating, func(i, j int) bool { return r.cheating[i].Color < r.cheating[j].Color })
	sort.Slice(r.failing, func(i, j int) bool { return r.failing[i].Color < r.failing[j].Color })
}

func removeOutcome(outcomes []Outcome, color fish.Color) []Outcome {
	out := outcomes[:0:0]
	for _, o := range outcomes {
		if o.Color != color {
			out = append(out, o)
		}
	}
	return out
}
