package remote

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/hailam/fish/internal/tournament"
	"github.com/pkg/errors"
)

// acceptWindow is one listening window (spec §4.7: 30s, extended once if
// fewer than minPlayers connected).
const acceptWindow = 30 * time.Second

// minPlayers is the tournament's minimum client count (spec §4.7: 5).
const minPlayers = 5

// maxPlayers caps total accepted connections (spec §4.7: 10).
const maxPlayers = 10

// maxNameLen is the longest a client-declared name may be (spec §4.7).
const maxNameLen = 12

// Server accepts fish-client connections and, once enough have joined,
// runs a tournament.Manager over them.
type Server struct {
	Boards      tournament.BoardFactory
	MaxGameSize int

	listener net.Listener
}

// Listen binds addr ("host:port" or ":port").
func Listen(addr string) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "remote: binding listener")
	}
	return &Server{listener: l}, nil
}

// Addr returns the bound address, useful when addr was ":0".
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Close releases the listener.
func (s *Server) Close() error { return s.listener.Close() }

// Run accepts connections across one or two windows, then plays the
// tournament to completion. It returns an error if fewer than minPlayers
// ever connected.
func (s *Server) Run() (*tournament.Result, error) {
	conns := s.acceptClients()
	if len(conns) < minPlayers {
		for _, p := range conns {
			p.Close()
		}
		return nil, fmt.Errorf("remote: only %d client(s) connected, need at least %d", len(conns), minPlayers)
	}

	pool := make([]tournament.Participant, len(conns))
	for i, p := range conns {
		pool[i] = tournament.Participant{Player: p, Age: i}
	}
	m, err := tournament.New(pool, s.MaxGameSize, s.Boards)
	if err != nil {
		return nil, errors.Wrap(err, "remote: building tournament")
	}
	return m.Run()
}

// acceptClients runs one accept window, and a second only if fewer than
// minPlayers joined during the first; a window ends early once maxPlayers
// have joined in total.
func (s *Server) acceptClients() []*Proxy {
	var conns []*Proxy
	for window := 0; window < 2 && len(conns) < maxPlayers; window++ {
		conns = append(conns, s.acceptOneWindow(acceptWindow, maxPlayers-len(conns))...)
		if len(conns) >= minPlayers {
			break
		}
	}
	return conns
}

func (s *Server) acceptOneWindow(d time.Duration, slots int) []*Proxy {
	deadline := time.Now().Add(d)
	var conns []*Proxy
	for len(conns) < slots {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return conns
		}
		if tl, ok := s.listener.(*net.TCPListener); ok {
			tl.SetDeadline(time.Now().Add(remaining))
		}
		conn, err := s.listener.Accept()
		if err != nil {
			return conns
		}
		p, err := handshake(conn)
		if err != nil {
			log.Printf("[Remote] rejecting connection: %v", err)
			conn.Close()
			continue
		}
		log.Printf("[Remote %s] %q joined", p.ID, p.Name)
		conns = append(conns, p)
	}
	return conns
}

// handshake reads the client's opening name string and wraps the
// connection in a Proxy.
func handshake(conn net.Conn) (*Proxy, error) {
	conn.SetReadDeadline(time.Now().Add(exchangeTimeout))
	dec := json.NewDecoder(bufio.NewReader(conn))
	var name string
	if err := dec.Decode(&name); err != nil {
		return nil, fmt.Errorf("remote: reading client name: %w", err)
	}
	if len(name) < 1 || len(name) > maxNameLen {
		return nil, fmt.Errorf("remote: client name %q must be 1..%d characters", name, maxNameLen)
	}
	return NewProxy(conn, name, dec), nil
}
