package packets

import (
	"fmt"

	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// StatusRequest has no fields.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Request
type StatusRequest struct{}

func (p *StatusRequest) Read(buf *ns.PacketBuffer, version protocol.Version) error  { return nil }
func (p *StatusRequest) Write(buf *ns.PacketBuffer, version protocol.Version) error { return nil }

// StatusResponse carries the server list ping JSON blob verbatim.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Response
type StatusResponse struct {
	JSON ns.String
}

func (p *StatusResponse) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	p.JSON, err = buf.ReadString(32767)
	return err
}

func (p *StatusResponse) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	return buf.WriteString(p.JSON)
}

// Ping carries an opaque payload the server must echo back unchanged.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_Request_(status)
type Ping struct {
	Payload ns.Int64
}

func (p *Ping) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	p.Payload, err = buf.ReadInt64()
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	return nil
}

func (p *Ping) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	return buf.WriteInt64(p.Payload)
}
