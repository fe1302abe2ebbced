package remote

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/hailam/fish/internal/board"
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/stretchr/testify/require"
)

func TestCallRoundTrip(t *testing.T) {
	original := call{Method: "playing-with", Args: []any{[]string{"white", "brown"}}}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var got call
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "playing-with", got.Method)

	var names []string
	require.NoError(t, decodeArg(got.Args, 0, &names))
	require.Equal(t, []string{"white", "brown"}, names)
}

func TestDecodeArgOutOfRange(t *testing.T) {
	require.Error(t, decodeArg(nil, 0, new(string)), "want an error when the argument index does not exist")
}

// scriptedClientPlayer is a deterministic remote.Player used only to drive
// the client side of a loopback protocol test.
type scriptedClientPlayer struct {
	assignedColor fish.Color
	notified      []fish.Color
	ended         []bool
}

func (s *scriptedClientPlayer) Start() bool                   { return true }
func (s *scriptedClientPlayer) AssignColor(c fish.Color) bool { s.assignedColor = c; return true }
func (s *scriptedClientPlayer) Opponents([]fish.Color) bool   { return true }
func (s *scriptedClientPlayer) Place(state *fish.State) (coord.Coord, error) {
	return state.Board.AllCoords()[0], nil
}
func (s *scriptedClientPlayer) Move(state *fish.State, previous []fish.Action) (fish.Action, error) {
	moves := state.PossibleMoves(state.Turn)
	return moves[0], nil
}
func (s *scriptedClientPlayer) NotifyWinners(winners []fish.Color) bool {
	s.notified = winners
	return true
}
func (s *scriptedClientPlayer) End(isWinner bool) bool {
	s.ended = append(s.ended, isWinner)
	return true
}

// TestProxyClientLoopback drives a Proxy (server side) against a Client
// (local-decision side) over an in-memory net.Pipe, exercising every
// capability the remote protocol carries except Move (take-turn).
func TestProxyClientLoopback(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	player := &scriptedClientPlayer{}
	// dialConn's handshake write blocks on net.Pipe until something reads
	// it, so it (and the client's whole run loop) must start concurrently
	// with the server-side reads below, not before them.
	done := make(chan error, 1)
	go func() {
		client, err := dialConn(clientConn, "tester", player)
		if err != nil {
			done <- err
			return
		}
		done <- client.Run()
	}()

	// The handshake's name read happens on the server side of a real
	// accept loop; here the test drives the Proxy directly, so it must
	// drain the client's opening name value itself before using Proxy's
	// own decoder for the rest of the exchange.
	dec := json.NewDecoder(serverConn)
	var name string
	require.NoError(t, dec.Decode(&name), "reading handshake name")
	require.Equal(t, "tester", name)
	p := NewProxy(serverConn, name, dec)

	require.True(t, p.Start())
	require.True(t, p.AssignColor(fish.Red))
	require.Equal(t, fish.Red, player.assignedColor)
	require.True(t, p.Opponents([]fish.Color{fish.White}))

	b := board.Uniform(3, 3, 1)
	state, err := fish.New(b, []fish.Color{fish.Red, fish.White})
	require.NoError(t, err)
	at, err := p.Place(state)
	require.NoError(t, err)
	_, err = state.PlacePenguin(fish.Red, at)
	require.NoError(t, err, "server-side placement should accept the client's reported coordinate")

	// Per-game winner notification and tournament end share the ["end",
	// [isWinner]] wire shape, so the client sees both as End calls.
	require.True(t, p.NotifyWinners([]fish.Color{fish.Red}))
	require.Equal(t, []bool{true}, player.ended)

	require.True(t, p.End(true))
	require.Equal(t, []bool{true, true}, player.ended)

	// Closing the server side makes the client's next Decode see io.EOF,
	// so Run returns; returning (not hanging) is the success condition.
	serverConn.Close()
	<-done
}
