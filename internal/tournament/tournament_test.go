package tournament

import (
	"testing"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/referee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted is a minimal referee.PlayerInterface used only to control End's
// acknowledgment in report() tests; its Place/Move are never expected to be
// called here.
type scripted struct {
	endAck bool
}

func (s *scripted) Start() bool                         { return true }
func (s *scripted) AssignColor(fish.Color) bool          { return true }
func (s *scripted) Opponents([]fish.Color) bool          { return true }
func (s *scripted) NotifyWinners([]fish.Color) bool      { return true }
func (s *scripted) End(isWinner bool) bool               { return s.endAck }
func (s *scripted) Place(*fish.State) (coord.Coord, error) {
	return coord.Coord{}, nil
}
func (s *scripted) Move(*fish.State, []fish.Action) (fish.Action, error) {
	return fish.Action{}, nil
}

func mkPool(n int) []Participant {
	pool := make([]Participant, n)
	for i := range pool {
		pool[i] = Participant{Player: &scripted{endAck: true}, Age: i}
	}
	return pool
}

func sizesOf(games [][]Participant) []int {
	out := make([]int, len(games))
	for i, g := range games {
		out[i] = len(g)
	}
	return out
}

func TestAllocateMatchesSpecShapes(t *testing.T) {
	cases := []struct {
		pool int
		m    int
		want []int
	}{
		{2, 4, []int{2}},
		{4, 4, []int{4}},
		{8, 4, []int{4, 4}},
		{6, 4, []int{4, 2}},
		{10, 4, []int{4, 4, 2}},
		{5, 4, []int{3, 2}},
		{9, 4, []int{4, 3, 2}},
		{13, 4, []int{4, 4, 3, 2}},
	}
	for _, c := range cases {
		games := Allocate(mkPool(c.pool), c.m)
		got := sizesOf(games)
		assert.Equalf(t, c.want, got, "Allocate(pool=%d, m=%d) game sizes", c.pool, c.m)
		total := 0
		for _, n := range got {
			total += n
		}
		assert.Equalf(t, c.pool, total, "Allocate(pool=%d, m=%d) total seats", c.pool, c.m)
	}
}

func TestAllocateNeverProducesASingletonGame(t *testing.T) {
	for pool := 2; pool <= 20; pool++ {
		games := Allocate(mkPool(pool), 4)
		for _, g := range games {
			assert.NotEqualf(t, 1, len(g), "pool=%d produced a singleton game, want R==1 always dissolved", pool)
			assert.LessOrEqualf(t, len(g), 4, "pool=%d produced an oversized game", pool)
		}
	}
}

func TestReportDemotesUnacknowledgedChampion(t *testing.T) {
	winnerAcked := &scripted{endAck: true}
	winnerUnacked := &scripted{endAck: false}
	loser := &scripted{endAck: true}
	pool := []Participant{
		{Player: winnerAcked, Age: 0},
		{Player: winnerUnacked, Age: 1},
		{Player: loser, Age: 2},
	}
	m, err := New(pool, 4, func(int) (*board.Board, error) { return board.Uniform(2, 2, 1), nil })
	require.NoError(t, err)
	champions := []Participant{pool[0], pool[1]}

	result := m.report(champions)
	require.Len(t, result.Champions, 1)
	assert.Equal(t, winnerAcked, result.Champions[0].Player)
	require.Len(t, result.Losers, 2, "want winnerUnacked and loser")

	var losers []referee.PlayerInterface
	for _, p := range result.Losers {
		losers = append(losers, p.Player)
	}
	assert.Contains(t, losers, referee.PlayerInterface(winnerUnacked))
	assert.Contains(t, losers, referee.PlayerInterface(loser))
}

func TestRunCompletesWithIdenticalLocalPlayers(t *testing.T) {
	pool := make([]Participant, 4)
	for i := range pool {
		pool[i] = Participant{Player: &referee.LocalPlayer{Depth: 1}, Age: i}
	}
	boards := func(n int) (*board.Board, error) { return board.Uniform(4, 4, 1), nil }
	m, err := New(pool, 4, boards)
	require.NoError(t, err)
	var rounds []int
	m.Observer = func(round int, winners []fish.Color) {
		rounds = append(rounds, round)
	}
	result, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, len(pool), len(result.Champions)+len(result.Losers))
	assert.NotEmpty(t, result.Champions, "want at least one champion")
	assert.NotZero(t, result.Rounds, "want at least one round recorded")
	assert.Len(t, rounds, result.Rounds, "observer should fire once per round")
}

func TestNewRejectsTooFewPlayers(t *testing.T) {
	boards := func(int) (*board.Board, error) { return board.Uniform(2, 2, 1), nil }
	_, err := New(mkPool(1), 4, boards)
	require.Error(t, err, "want an error for a pool of 1")
}
