// Command fish-client connects to a fish-server and plays the tournament
// with a local maximin search, until the server closes the connection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hailam/fish/internal/referee"
	"github.com/hailam/fish/internal/remote"
)

var (
	host  = flag.String("host", "127.0.0.1", "fish-server host")
	port  = flag.Int("port", 16005, "fish-server port")
	name  = flag.String("name", "player", "name announced to the server (1-12 characters)")
	depth = flag.Int("depth", 2, "ply depth for the move search")
)

func main() {
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	player := &referee.LocalPlayer{Depth: *depth}
	client, err := remote.Dial(addr, *name, player)
	if err != nil {
		log.Fatalf("fish-client: %v", err)
	}

	if err := client.Run(); err != nil {
		log.Printf("fish-client: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
