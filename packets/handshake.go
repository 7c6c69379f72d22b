// Package packets holds the fully parsed packet catalogue and the
// Declarations list that builds the protocol registry from it.
package packets

import (
	"fmt"

	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// Intent values carried by Handshake's NextState field.
const (
	IntentStatus ns.VarInt = iota + 1
	IntentLogin
)

// Handshake is the first packet on every connection: it picks the protocol
// version to speak and the state to switch into.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Handshake
type Handshake struct {
	ProtocolVersion ns.VarInt
	ServerAddress   ns.String
	ServerPort      ns.Uint16
	NextState       ns.VarInt
}

func (p *Handshake) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.ProtocolVersion, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("protocol_version: %w", err)
	}
	if p.ServerAddress, err = buf.ReadString(255); err != nil {
		return fmt.Errorf("server_address: %w", err)
	}
	if p.ServerPort, err = buf.ReadUint16(); err != nil {
		return fmt.Errorf("server_port: %w", err)
	}
	if p.NextState, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("next_state: %w", err)
	}
	return nil
}

func (p *Handshake) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteVarInt(p.ProtocolVersion); err != nil {
		return fmt.Errorf("protocol_version: %w", err)
	}
	if err := buf.WriteString(p.ServerAddress); err != nil {
		return fmt.Errorf("server_address: %w", err)
	}
	if err := buf.WriteUint16(p.ServerPort); err != nil {
		return fmt.Errorf("server_port: %w", err)
	}
	if err := buf.WriteVarInt(p.NextState); err != nil {
		return fmt.Errorf("next_state: %w", err)
	}
	return nil
}
