package remote

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/wire"
)

// Player is what a Client needs from a local decision-maker: placement and
// movement logic plus the five ack-style notifications. It has the same
// method set as referee.PlayerInterface, so a referee.LocalPlayer satisfies
// it.
type Player interface {
	Start() bool
	AssignColor(c fish.Color) bool
	Opponents(cs []fish.Color) bool
	Place(state *fish.State) (coord.Coord, error)
	Move(state *fish.State, previous []fish.Action) (fish.Action, error)
	NotifyWinners(winners []fish.Color) bool
	End(isWinner bool) bool
}

// Client dials a fish-server and drives player's decisions against the
// wire protocol until the connection closes.
type Client struct {
	conn   net.Conn
	dec    *json.Decoder
	player Player
}

// Dial connects to addr, sends name as the first JSON value (the wire
// protocol's handshake), and returns a Client ready to Run.
func Dial(addr, name string, player Player) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("remote: dialing %s: %w", addr, err)
	}
	return dialConn(conn, name, player)
}

// dialConn performs the handshake over an already-established conn. Split
// out from Dial so tests can exercise the protocol over an in-memory
// net.Pipe instead of a real TCP dial.
func dialConn(conn net.Conn, name string, player Player) (*Client, error) {
	enc := json.NewEncoder(conn)
	if err := enc.Encode(name); err != nil {
		conn.Close()
		return nil, fmt.Errorf("remote: sending name: %w", err)
	}
	return &Client{conn: conn, dec: json.NewDecoder(bufio.NewReader(conn)), player: player}, nil
}

// Run reads server calls and replies until the connection closes or a
// protocol error occurs.
func (c *Client) Run() error {
	defer c.conn.Close()
	for {
		var req call
		if err := c.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("remote: reading server call: %w", err)
		}
		if err := c.handle(req); err != nil {
			return err
		}
	}
}

func (c *Client) handle(req call) error {
	switch req.Method {
	case "start":
		c.player.Start()
		return c.reply(voidAck)
	case "playing-as":
		var colorName string
		if err := decodeArg(req.Args, 0, &colorName); err != nil {
			return err
		}
		color, err := fish.ParseColor(colorName)
		if err != nil {
			return fmt.Errorf("remote: %w", err)
		}
		c.player.AssignColor(color)
		return c.reply(voidAck)
	case "playing-with":
		var names []string
		if err := decodeArg(req.Args, 0, &names); err != nil {
			return err
		}
		colors := make([]fish.Color, len(names))
		for i, n := range names {
			color, err := fish.ParseColor(n)
			if err != nil {
				return fmt.Errorf("remote: %w", err)
			}
			colors[i] = color
		}
		c.player.Opponents(colors)
		return c.reply(voidAck)
	case "setup":
		var w wire.State
		if err := decodeArg(req.Args, 0, &w); err != nil {
			return err
		}
		state, err := wire.ParseState(w, fish.PlacePenguins)
		if err != nil {
			return fmt.Errorf("remote: %w", err)
		}
		at, err := c.player.Place(state)
		if err != nil {
			log.Printf("[Remote client] placement failed: %v", err)
			return err
		}
		return c.reply(wire.FromInternal(at))
	case "take-turn":
		var w wire.State
		if err := decodeArg(req.Args, 0, &w); err != nil {
			return err
		}
		var prevWire []wire.Action
		if err := decodeArg(req.Args, 1, &prevWire); err != nil {
			return err
		}
		state, err := wire.ParseState(w, fish.MovePenguins)
		if err != nil {
			return fmt.Errorf("remote: %w", err)
		}
		previous := make([]fish.Action, len(prevWire))
		for i, a := range prevWire {
			previous[i] = a.ToInternal()
		}
		action, err := c.player.Move(state, previous)
		if err != nil {
			log.Printf("[Remote client] move failed: %v", err)
			return err
		}
		return c.reply(wire.ActionFromInternal(action))
	case "end":
		var isWinner bool
		if err := decodeArg(req.Args, 0, &isWinner); err != nil {
			return err
		}
		c.player.End(isWinner)
		return c.reply(voidAck)
	default:
		return fmt.Errorf("remote: unknown call %q", req.Method)
	}
}

func (c *Client) reply(v any) error {
	return json.NewEncoder(c.conn).Encode(v)
}

func decodeArg(args []any, i int, v any) error {
	if i >= len(args) {
		return fmt.Errorf("remote: call has no argument %d", i)
	}
	raw, ok := args[i].(json.RawMessage)
	if !ok {
		return fmt.Errorf("remote: argument %d is not raw JSON", i)
	}
	return json.Unmarshal(raw, v)
}
