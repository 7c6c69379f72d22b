package session

import (
	"bytes"
	"fmt"
	"net"

	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// Connection is one side of a proxied link: a framed, possibly encrypted
// and compressed byte stream, plus the (State, Version, Direction) needed
// to look packets up in the registry (§4.6).
//
// A Connection's receive methods are called from exactly one goroutine and
// its send methods from exactly one goroutine (possibly a different one,
// when bridging two connections) — the same split the original source
// models with separate ReadHalf/WriteHalf types, relying here instead on
// net.Conn's own support for a concurrent reader and writer.
type Connection struct {
	conn      *protocol.Conn
	framer    *protocol.Framer
	registry  *protocol.Registry
	state   protocol.State
	version protocol.Version
	// direction is which way the packets THIS connection receives travel —
	// Serverbound for the client-facing leg, Clientbound for the
	// backend-facing leg. Sends look the opposite direction up.
	direction protocol.Direction
	pending   [][]byte
}

// NewConnection wraps netConn for one direction of traffic, starting in
// Handshake state with no framing transforms enabled. version starts at
// Unknown — the registry maps Unknown to the earliest (wire-stable)
// Handshake/Status/Login ids, which is exactly what a connection needs
// before SetVersion is called from the parsed Handshake itself.
func NewConnection(netConn net.Conn, registry *protocol.Registry, dir protocol.Direction) *Connection {
	conn := protocol.NewConn(netConn)
	return &Connection{
		conn:      conn,
		framer:    protocol.NewFramer(conn),
		registry:  registry,
		state:     protocol.StateHandshake,
		direction: dir,
	}
}

func (c *Connection) State() protocol.State       { return c.state }
func (c *Connection) Version() protocol.Version   { return c.version }
func (c *Connection) Direction() protocol.Direction { return c.direction }

// ChangeState switches the state used for subsequent registry lookups.
func (c *Connection) ChangeState(s protocol.State) { c.state = s }

// SetVersion fixes the version used for subsequent registry lookups and
// version-gated packet shapes, set once the Handshake packet is parsed.
func (c *Connection) SetVersion(v protocol.Version) { c.version = v }

// EnableCompression turns on zlib framing above threshold, at the given
// zlib level, for every frame from this point on.
func (c *Connection) EnableCompression(threshold, level int) {
	c.framer.EnableCompression(threshold, level)
}

// EnableEncryption turns on AES-128/CFB8 with key = IV = secret.
func (c *Connection) EnableEncryption(secret []byte) error { return c.conn.EnableEncryption(secret) }

// RecvRaw blocks for the next frame and splits it into a packet id and
// body, performing no further interpretation.
func (c *Connection) RecvRaw() (protocol.RawPacket, error) {
	frame, err := c.framer.ReadFrame()
	if err != nil {
		return protocol.RawPacket{}, err
	}
	buf := ns.NewReader(frame)
	id, err := buf.ReadVarInt()
	if err != nil {
		return protocol.RawPacket{}, fmt.Errorf("session: read packet id: %w", err)
	}
	body, err := buf.ReadRemaining()
	if err != nil {
		return protocol.RawPacket{}, fmt.Errorf("session: read packet body: %w", err)
	}
	return protocol.RawPacket{ID: id, Body: body}, nil
}

// RecvDispatched reads the next frame and, if its id is declared for the
// current (State, Version, Direction), decodes it into its typed form. If
// the id is undeclared, ok is false and raw is returned unparsed — the
// caller's default is to forward it opaquely (§4.9).
func (c *Connection) RecvDispatched() (kind protocol.Kind, typed protocol.Packet, raw protocol.RawPacket, ok bool, err error) {
	raw, err = c.RecvRaw()
	if err != nil {
		return "", nil, protocol.RawPacket{}, false, err
	}
	kind, newPacket, found := c.registry.Lookup(c.state, c.version, c.direction, raw.ID)
	if !found {
		return "", nil, raw, false, nil
	}
	typed = newPacket()
	if err := raw.Decode(typed, c.version); err != nil {
		return "", nil, raw, false, err
	}
	return kind, typed, raw, true, nil
}

func rawFrame(p protocol.RawPacket) []byte {
	return append(p.ID.ToBytes(), p.Body...)
}

// SendRaw writes p immediately as one frame.
func (c *Connection) SendRaw(p protocol.RawPacket) error {
	return c.framer.WriteFrame(rawFrame(p))
}

// QueueRaw frames p but defers the write until Flush, so several packets
// can reach the wire in one syscall.
func (c *Connection) QueueRaw(p protocol.RawPacket) error {
	frame, err := c.framer.FrameBytes(rawFrame(p))
	if err != nil {
		return err
	}
	c.pending = append(c.pending, frame)
	return nil
}

// Flush writes every queued frame in one Write call and clears the queue.
func (c *Connection) Flush() error {
	if len(c.pending) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, f := range c.pending {
		buf.Write(f)
	}
	c.pending = c.pending[:0]
	_, err := c.conn.Write(buf.Bytes())
	return err
}

// SendTyped encodes p under kind's registered id and writes it immediately.
func (c *Connection) SendTyped(kind protocol.Kind, p protocol.Packet) error {
	raw, err := c.encodeTyped(kind, p)
	if err != nil {
		return err
	}
	return c.SendRaw(raw)
}

// QueueTyped encodes p under kind's registered id and defers the write.
func (c *Connection) QueueTyped(kind protocol.Kind, p protocol.Packet) error {
	raw, err := c.encodeTyped(kind, p)
	if err != nil {
		return err
	}
	return c.QueueRaw(raw)
}

// encodeTyped looks the id up under the opposite of c.direction: a
// Connection's direction names what it receives (the registry view
// RecvDispatched uses), so what it sends belongs to the other table —
// the client connection receives Serverbound and sends Clientbound, the
// backend connection receives Clientbound and sends Serverbound.
func (c *Connection) encodeTyped(kind protocol.Kind, p protocol.Packet) (protocol.RawPacket, error) {
	id, err := c.registry.IDFor(c.state, c.version, c.direction.Opposite(), kind)
	if err != nil {
		return protocol.RawPacket{}, err
	}
	return protocol.EncodeRaw(id, p, c.version)
}

// RecvTyped reads the next frame and decodes it into p, used where the
// caller already knows the shape to expect (e.g. the fixed Handshake-state
// exchange). The frame's id must match kind's registered id in the current
// (State, Version, Direction); a mismatch is a fatal schema error (§7)
// rather than a silent misparse.
func RecvTyped(c *Connection, kind protocol.Kind, p protocol.Packet) error {
	raw, err := c.RecvRaw()
	if err != nil {
		return err
	}
	want, err := c.registry.IDFor(c.state, c.version, c.direction, kind)
	if err != nil {
		return err
	}
	if raw.ID != want {
		return fmt.Errorf("session: expected %s (id %d), got id %d", kind, want, raw.ID)
	}
	return raw.Decode(p, c.version)
}

// Close closes the underlying connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
