// Package remote implements the JSON-over-TCP protocol: a server-side Proxy
// that makes a socket look like a referee.PlayerInterface, and a client
// dialer that drives a local strategy over the same wire shapes. Every
// server-to-client call is a two-element array [method, args]; every
// non-setup/take-turn reply is the literal string "void".
package remote

import (
	"encoding/json"
	"fmt"
)

// call is the wire shape of one server -> client message: a JSON array
// whose first element is the method name and whose second is its argument
// list.
type call struct {
	Method string
	Args   []any
}

// MarshalJSON renders call as the two-element [method, args] array.
func (c call) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Method, c.Args})
}

// UnmarshalJSON parses a [method, args] array into c. args is kept as a raw
// array so callers can decode each element against the shape they expect.
func (c *call) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("remote: call is not a two-element array: %w", err)
	}
	if err := json.Unmarshal(raw[0], &c.Method); err != nil {
		return fmt.Errorf("remote: call method is not a string: %w", err)
	}
	var args []json.RawMessage
	if err := json.Unmarshal(raw[1], &args); err != nil {
		return fmt.Errorf("remote: call args is not an array: %w", err)
	}
	c.Args = make([]any, len(args))
	for i, a := range args {
		c.Args[i] = a
	}
	return nil
}

// voidAck is the literal client acknowledgment for every call that isn't
// setup or take-turn.
const voidAck = "void"
