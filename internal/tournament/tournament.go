// Package tournament implements the Manager: it pools age-sorted players
// into games round after round until a stable champion set remains,
// delegating each game to a referee.Referee and reassigning colors fresh
// every round.
package tournament

import (
	"sort"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/referee"
	"github.com/pkg/errors"
)

// DefaultMaxGameSize is the largest number of players one referee seats,
// per spec: 4.
const DefaultMaxGameSize = 4

// Participant is one tournament entrant: a player implementation and its
// age rank, carried across rounds under fresh per-round colors.
type Participant struct {
	Player referee.PlayerInterface
	Age    int
}

// BoardFactory produces the board a single game of n players will be
// played on. Manager calls it once per game, every round.
type BoardFactory func(n int) (*board.Board, error)

// Result is the tournament's final report.
type Result struct {
	Champions []Participant
	Losers    []Participant
	Rounds    int
	// Cheating and Failing are the total count of ejections of each kind
	// across every game of every round, for the server's completion summary.
	Cheating int
	Failing  int
}

// Manager runs a tournament over pool, a minimum of 2 age-sorted players.
type Manager struct {
	pool        []Participant
	maxGameSize int
	boards      BoardFactory
	// Observer, if non-nil, is invoked once per completed round with the
	// round number (1-based) and the colors its winners played as, across
	// all of that round's games combined.
	Observer func(round int, winners []fish.Color)

	totalCheating int
	totalFailing  int
}

// New constructs a Manager. pool must already be sorted by age; maxGameSize
// <= 0 defaults to DefaultMaxGameSize.
func New(pool []Participant, maxGameSize int, boards BoardFactory) (*Manager, error) {
	if len(pool) < 2 {
		return nil, errors.New("tournament: a tournament needs at least 2 players")
	}
	if maxGameSize <= 0 {
		maxGameSize = DefaultMaxGameSize
	}
	if maxGameSize < 2 {
		return nil, errors.New("tournament: max game size must be at least 2")
	}
	if boards == nil {
		return nil, errors.New("tournament: a board factory is required")
	}
	sorted := make([]Participant, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })
	return &Manager{pool: sorted, maxGameSize: maxGameSize, boards: boards}, nil
}

// Allocate partitions pool into games following the spec's greedy
// M-per-game rule: assign M players per game from the front until the
// remainder R is less than M. R == 0 needs nothing further. R == 1
// dissolves the last allocated game of M, combines it with the singleton
// into M+1, and re-partitions that group with size M-1, recursing until
// exhausted. Otherwise (2 <= R < M) the remainder becomes its own game.
func Allocate(pool []Participant, m int) [][]Participant {
	p := len(pool)
	if p <= m {
		return [][]Participant{pool}
	}
	var games [][]Participant
	i := 0
	for p-i >= m {
		games = append(games, pool[i:i+m])
		i += m
	}
	remainder := pool[i:]
	switch len(remainder) {
	case 0:
		return games
	case 1:
		last := games[len(games)-1]
		games = games[:len(games)-1]
		combined := make([]Participant, 0, len(last)+1)
		combined = append(combined, last...)
		combined = append(combined, remainder...)
		games = append(games, Allocate(combined, m-1)...)
		return games
	default:
		return append(games, remainder)
	}
}

// Run drives the tournament to completion: allocate, play, collect
// winners, repeat until one of the termination conditions fires, then
// notify every original participant of the final verdict.
func (m *Manager) Run() (*Result, error) {
	pool := m.pool
	round := 0
	var champions []Participant
	for {
		if len(pool) <= 1 {
			champions = pool
			break
		}
		round++
		lastRound := len(pool) <= m.maxGameSize
		games := Allocate(pool, m.maxGameSize)
		winners, winnerColors, cheating, failing, err := m.runRound(games)
		if err != nil {
			return nil, errors.Wrapf(err, "tournament: round %d", round)
		}
		m.totalCheating += cheating
		m.totalFailing += failing
		if m.Observer != nil {
			m.Observer(round, winnerColors)
		}
		if lastRound {
			champions = winners
			break
		}
		if sameParticipants(winners, pool) {
			champions = winners
			break
		}
		pool = sortByAge(winners)
	}
	result := m.report(champions)
	result.Rounds = round
	result.Cheating = m.totalCheating
	result.Failing = m.totalFailing
	return result, nil
}

func (m *Manager) runRound(games [][]Participant) (winners []Participant, winnerColors []fish.Color, cheating, failing int, err error) {
	for _, game := range games {
		entries := make([]referee.Entry, len(game))
		for i, p := range game {
			entries[i] = referee.Entry{Player: p.Player, Age: p.Age}
		}
		ref, err := referee.New(entries)
		if err != nil {
			return nil, nil, 0, 0, errors.Wrap(err, "building referee")
		}
		b, err := m.boards(len(game))
		if err != nil {
			return nil, nil, 0, 0, errors.Wrap(err, "building game board")
		}
		result, err := ref.InitializeAndRunGame(b)
		if err != nil {
			return nil, nil, 0, 0, errors.Wrap(err, "running game")
		}
		for _, o := range result.Winners {
			winners = append(winners, Participant{Player: o.Entry.Player, Age: o.Entry.Age})
			winnerColors = append(winnerColors, o.Color)
		}
		cheating += len(result.Cheating)
		failing += len(result.Failing)
	}
	return winners, winnerColors, cheating, failing, nil
}

// report notifies every original participant whether it ended among the
// champions, demoting an unacknowledged champion to a loser.
func (m *Manager) report(champions []Participant) *Result {
	champSet := make(map[referee.PlayerInterface]bool, len(champions))
	for _, c := range champions {
		champSet[c.Player] = true
	}
	var finalChampions, losers []Participant
	for _, p := range m.pool {
		isWinner := champSet[p.Player]
		if !p.Player.End(isWinner) && isWinner {
			losers = append(losers, p)
			continue
		}
		if isWinner {
			finalChampions = append(finalChampions, p)
		} else {
			losers = append(losers, p)
		}
	}
	return &Result{Champions: finalChampions, Losers: losers, Rounds: 0}
}

func sameParticipants(a, b []Participant) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[referee.PlayerInterface]bool, len(a))
	for _, p := range a {
		set[p.Player] = true
	}
	for _, p := range b {
		if !set[p.Player] {
			return false
		}
	}
	return true
}

func sortByAge(in []Participant) []Participant {
	out := make([]Participant, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Age < out[j].Age })
	return out
}
