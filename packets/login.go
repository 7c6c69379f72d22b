package packets

import (
	"fmt"

	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// LoginStart is the client's request to begin authentication.
//
// The UUID field's presence depends on the negotiated version: absent
// before 1.19.2, optional from 1.19.2 through 1.20, mandatory from 1.20.2
// onward.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Start
type LoginStart struct {
	Username ns.String
	UUID     ns.PrefixedOptional[ns.UUID]
}

func (p *LoginStart) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.Username, err = buf.ReadString(16); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	switch {
	case version < protocol.V1_19_2:
		p.UUID = ns.NoneOf[ns.UUID]()
	case version < protocol.V1_20_2:
		if err := p.UUID.DecodeWith(buf, func(b *ns.PacketBuffer) (ns.UUID, error) { return b.ReadUUID() }); err != nil {
			return fmt.Errorf("player_uuid: %w", err)
		}
	default:
		u, err := buf.ReadUUID()
		if err != nil {
			return fmt.Errorf("player_uuid: %w", err)
		}
		p.UUID = ns.Some(u)
	}
	return nil
}

func (p *LoginStart) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteString(p.Username); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	switch {
	case version < protocol.V1_19_2:
		return nil
	case version < protocol.V1_20_2:
		return p.UUID.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.UUID) error { return b.WriteUUID(v) })
	default:
		uuid, _ := p.UUID.Get()
		return buf.WriteUUID(uuid)
	}
}

// Property is one signed profile property, as carried by LoginSuccess.
type Property struct {
	Name      ns.String
	Value     ns.String
	Signature ns.PrefixedOptional[ns.String]
}

func readProperty(buf *ns.PacketBuffer) (Property, error) {
	var p Property
	var err error
	if p.Name, err = buf.ReadString(32767); err != nil {
		return p, fmt.Errorf("name: %w", err)
	}
	if p.Value, err = buf.ReadString(32767); err != nil {
		return p, fmt.Errorf("value: %w", err)
	}
	if err := p.Signature.DecodeWith(buf, func(b *ns.PacketBuffer) (ns.String, error) { return b.ReadString(32767) }); err != nil {
		return p, fmt.Errorf("signature: %w", err)
	}
	return p, nil
}

func writeProperty(buf *ns.PacketBuffer, p Property) error {
	if err := buf.WriteString(p.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if err := buf.WriteString(p.Value); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	return p.Signature.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.String) error { return b.WriteString(v) })
}

// LoginSuccess completes authentication and moves the connection into
// Configuration/Play.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Success
type LoginSuccess struct {
	UUID       ns.UUID
	Username   ns.String
	Properties ns.PrefixedArray[Property]
}

func (p *LoginSuccess) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.UUID, err = buf.ReadUUID(); err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	if p.Username, err = buf.ReadString(16); err != nil {
		return fmt.Errorf("username: %w", err)
	}
	if err := p.Properties.DecodeWith(buf, readProperty); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	return nil
}

func (p *LoginSuccess) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	if err := buf.WriteString(p.Username); err != nil {
		return fmt.Errorf("username: %w", err)
	}
	return p.Properties.EncodeWith(buf, writeProperty)
}

// Disconnect carries a text component reason and ends the connection.
// Reused for both the Login and Play states; the wire id differs between
// them and across versions, so it is looked up in the registry rather than
// fixed on the type.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(login)
type Disconnect struct {
	Reason ns.Component
}

func (p *Disconnect) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	p.Reason, err = buf.ReadComponent(262144)
	if err != nil {
		return fmt.Errorf("reason: %w", err)
	}
	return nil
}

func (p *Disconnect) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	return buf.WriteComponent(p.Reason)
}

// SetCompression turns on zlib framing above Threshold bytes.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Compression
type SetCompression struct {
	Threshold ns.VarInt
}

func (p *SetCompression) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	p.Threshold, err = buf.ReadVarInt()
	return err
}

func (p *SetCompression) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	return buf.WriteVarInt(p.Threshold)
}

// EncryptionRequest asks the client to encrypt a shared secret with the
// server's RSA public key.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Request
type EncryptionRequest struct {
	ServerID    ns.String
	PublicKey   ns.ByteArray
	VerifyToken ns.ByteArray
}

func (p *EncryptionRequest) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.ServerID, err = buf.ReadString(20); err != nil {
		return fmt.Errorf("server_id: %w", err)
	}
	if p.PublicKey, err = buf.ReadByteArray(0); err != nil {
		return fmt.Errorf("public_key: %w", err)
	}
	if p.VerifyToken, err = buf.ReadByteArray(0); err != nil {
		return fmt.Errorf("verify_token: %w", err)
	}
	return nil
}

func (p *EncryptionRequest) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteString(p.ServerID); err != nil {
		return fmt.Errorf("server_id: %w", err)
	}
	if err := buf.WriteByteArray(p.PublicKey); err != nil {
		return fmt.Errorf("public_key: %w", err)
	}
	if err := buf.WriteByteArray(p.VerifyToken); err != nil {
		return fmt.Errorf("verify_token: %w", err)
	}
	return nil
}

// EncryptionResponse answers an EncryptionRequest with the encrypted shared
// secret and verify token.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Response
type EncryptionResponse struct {
	SharedSecret ns.ByteArray
	VerifyToken  ns.ByteArray
}

func (p *EncryptionResponse) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.SharedSecret, err = buf.ReadByteArray(0); err != nil {
		return fmt.Errorf("shared_secret: %w", err)
	}
	if p.VerifyToken, err = buf.ReadByteArray(0); err != nil {
		return fmt.Errorf("verify_token: %w", err)
	}
	return nil
}

func (p *EncryptionResponse) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteByteArray(p.SharedSecret); err != nil {
		return fmt.Errorf("shared_secret: %w", err)
	}
	if err := buf.WriteByteArray(p.VerifyToken); err != nil {
		return fmt.Errorf("verify_token: %w", err)
	}
	return nil
}

// LoginPluginRequest is a server-initiated custom query during Login. Data
// is opaque and spans the rest of the packet body.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Plugin_Request
type LoginPluginRequest struct {
	MessageID ns.VarInt
	Channel   ns.Identifier
	Data      ns.ByteArray
}

func (p *LoginPluginRequest) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.MessageID, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("message_id: %w", err)
	}
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	if p.Data, err = buf.ReadRemaining(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	return nil
}

func (p *LoginPluginRequest) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteVarInt(p.MessageID); err != nil {
		return fmt.Errorf("message_id: %w", err)
	}
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	return buf.WriteFixedByteArray(p.Data)
}

// LoginPluginResponse answers a LoginPluginRequest.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Plugin_Response
type LoginPluginResponse struct {
	MessageID ns.VarInt
	Data      ns.PrefixedOptional[ns.ByteArray]
}

func (p *LoginPluginResponse) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.MessageID, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("message_id: %w", err)
	}
	present, err := buf.ReadBool()
	if err != nil {
		return fmt.Errorf("successful: %w", err)
	}
	p.Data.Present = bool(present)
	if p.Data.Present {
		if p.Data.Value, err = buf.ReadRemaining(); err != nil {
			return fmt.Errorf("data: %w", err)
		}
	}
	return nil
}

func (p *LoginPluginResponse) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteVarInt(p.MessageID); err != nil {
		return fmt.Errorf("message_id: %w", err)
	}
	if err := buf.WriteBool(ns.Boolean(p.Data.Present)); err != nil {
		return fmt.Errorf("successful: %w", err)
	}
	if p.Data.Present {
		return buf.WriteFixedByteArray(p.Data.Value)
	}
	return nil
}
