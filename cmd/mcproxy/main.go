// Command mcproxy runs the Minecraft Java-Edition reverse proxy: it
// terminates the client-facing protocol, authenticates the player, and
// bridges Play-state traffic to a configured backend server.
package main

import (
	"flag"
	"log"
	"net"
	"os"

	"github.com/mcproxy/mcproxy/config"
	"github.com/mcproxy/mcproxy/packets"
	"github.com/mcproxy/mcproxy/protocol"
	"github.com/mcproxy/mcproxy/session"
)

func main() {
	configPath := flag.String("config", "mcproxy.yaml", "path to the YAML config file")
	flag.Parse()

	logger := log.New(os.Stderr, "mcproxy: ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	registry, err := protocol.Build(packets.Declarations())
	if err != nil {
		logger.Fatal(err)
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Printf("listening on %s", cfg.ListenAddr)

	handler := &session.Handler{Registry: registry, Config: cfg, Logger: logger}

	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Printf("accept: %v", err)
			continue
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		go handler.Serve(conn)
	}
}
