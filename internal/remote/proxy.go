package remote

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/hailam/fish/internal/coord"
	"github.com/hailam/fish/internal/fish"
	"github.com/hailam/fish/internal/wire"
	"github.com/pkg/errors"
)

// exchangeTimeout bounds every request/response round trip with a remote
// player (spec §4.7/§5: 10s per exchange).
const exchangeTimeout = 10 * time.Second

// Proxy implements referee.PlayerInterface over a net.Conn, translating
// every capability into the [method, args] wire shape and treating a
// timeout, malformed reply, or missing "void" acknowledgment as failure.
// Grounded on the teacher's http.Client{Timeout: ...} discipline
// (internal/tablebase/lichess.go): always carry an explicit deadline,
// adapted here to net.Conn.SetDeadline since the transport is a raw socket.
type Proxy struct {
	ID   uuid.UUID
	Name string

	conn  net.Conn
	dec   *json.Decoder
	color fish.Color
}

// NewProxy wraps conn, reusing dec (already positioned past the client's
// opening name handshake, so no buffered bytes are lost) as the proxy's
// decoder for the rest of the connection's life.
func NewProxy(conn net.Conn, name string, dec *json.Decoder) *Proxy {
	return &Proxy{
		ID:   uuid.New(),
		Name: name,
		conn: conn,
		dec:  dec,
	}
}

func (p *Proxy) send(method string, args ...any) error {
	if err := p.conn.SetWriteDeadline(time.Now().Add(exchangeTimeout)); err != nil {
		return errors.Wrap(err, "remote: setting write deadline")
	}
	enc := json.NewEncoder(p.conn)
	if err := enc.Encode(call{Method: method, Args: args}); err != nil {
		return errors.Wrapf(err, "remote: sending %s", method)
	}
	return nil
}

func (p *Proxy) setReadDeadline() error {
	return p.conn.SetReadDeadline(time.Now().Add(exchangeTimeout))
}

// expectVoid sends method(args) and requires the literal "void" string
// back within the exchange deadline.
func (p *Proxy) expectVoid(method string, args ...any) bool {
	if err := p.send(method, args...); err != nil {
		log.Printf("[Remote %s] %s: %v", p.ID, method, err)
		return false
	}
	if err := p.setReadDeadline(); err != nil {
		log.Printf("[Remote %s] %s: %v", p.ID, method, err)
		return false
	}
	var ack string
	if err := p.dec.Decode(&ack); err != nil {
		log.Printf("[Remote %s] %s: reading acknowledgment: %v", p.ID, method, err)
		return false
	}
	if ack != voidAck {
		log.Printf("[Remote %s] %s: got %q, want %q", p.ID, method, ack, voidAck)
		return false
	}
	return true
}

func (p *Proxy) Start() bool {
	return p.expectVoid("start", true)
}

func (p *Proxy) AssignColor(c fish.Color) bool {
	p.color = c
	return p.expectVoid("playing-as", c.String())
}

func (p *Proxy) Opponents(cs []fish.Color) bool {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return p.expectVoid("playing-with", names)
}

func (p *Proxy) Place(state *fish.State) (coord.Coord, error) {
	w := wire.SerializeState(state)
	if err := p.send("setup", w); err != nil {
		return coord.Coord{}, err
	}
	if err := p.setReadDeadline(); err != nil {
		return coord.Coord{}, err
	}
	var c wire.Coord
	if err := p.dec.Decode(&c); err != nil {
		return coord.Coord{}, fmt.Errorf("remote: reading placement reply: %w", err)
	}
	return c.ToInternal(), nil
}

func (p *Proxy) Move(state *fish.State, previous []fish.Action) (fish.Action, error) {
	w := wire.SerializeState(state)
	prev := make([]wire.Action, len(previous))
	for i, a := range previous {
		prev[i] = wire.ActionFromInternal(a)
	}
	if err := p.send("take-turn", w, prev); err != nil {
		return fish.Action{}, err
	}
	if err := p.setReadDeadline(); err != nil {
		return fish.Action{}, err
	}
	var a wire.Action
	if err := p.dec.Decode(&a); err != nil {
		return fish.Action{}, fmt.Errorf("remote: reading move reply: %w", err)
	}
	return a.ToInternal(), nil
}

func (p *Proxy) NotifyWinners(winners []fish.Color) bool {
	isWinner := false
	for _, c := range winners {
		if c == p.color {
			isWinner = true
			break
		}
	}
	return p.expectVoid("end", isWinner)
}

func (p *Proxy) End(isWinner bool) bool {
	return p.expectVoid("end", isWinner)
}

// Close releases the underlying connection.
func (p *Proxy) Close() error { return p.conn.Close() }
