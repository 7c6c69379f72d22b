package protocol

import (
	"fmt"

	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// Packet is satisfied by every fully-parsed packet kind in the catalogue.
// A packet's wire id is not fixed on the type; it is looked up per
// (Direction, State, Version) in the registry, so Packet only carries the
// encode/decode behaviour.
type Packet interface {
	// Read deserializes the packet body from buf. Implementations must
	// consume the body exactly; trailing bytes are the caller's concern
	// (RawPacket.Decode enforces the body-fully-consumed invariant).
	Read(buf *ns.PacketBuffer, version Version) error
	// Write serializes the packet body to buf.
	Write(buf *ns.PacketBuffer, version Version) error
}

// RawPacket is one frame's payload split into its packet id and the
// remaining body bytes (§3 Data model); rawFrame in the session package
// joins them back as id varint followed by body.
type RawPacket struct {
	ID   ns.VarInt
	Body []byte
}

// SetID replaces the packet id, leaving the body untouched.
func (r *RawPacket) SetID(id ns.VarInt) { r.ID = id }

// Decode parses r's body into p using version, then asserts the body was
// consumed exactly. Extra trailing bytes are a fatal schema error (§4.6,
// §7): they indicate the packet's shape doesn't match the negotiated
// version.
func (r *RawPacket) Decode(p Packet, version Version) error {
	buf := ns.NewReader(r.Body)
	if err := p.Read(buf, version); err != nil {
		return fmt.Errorf("decode packet 0x%02x: %w", r.ID, err)
	}
	if rest, err := buf.ReadRemaining(); err == nil && len(rest) > 0 {
		return fmt.Errorf("decode packet 0x%02x: %d trailing bytes not consumed", r.ID, len(rest))
	}
	return nil
}

// EncodeRaw serializes p into a RawPacket tagged with id.
func EncodeRaw(id ns.VarInt, p Packet, version Version) (RawPacket, error) {
	buf := ns.NewWriter()
	if err := p.Write(buf, version); err != nil {
		return RawPacket{}, fmt.Errorf("encode packet: %w", err)
	}
	return RawPacket{ID: id, Body: buf.Bytes()}, nil
}
