package packets

import (
	"fmt"

	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// PluginMessage carries a custom payload identified by channel. The data
// span is opaque and runs to the end of the packet body; only the
// "minecraft:brand" channel is ever inspected, by the bridge (§4.9), not
// here.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Plugin_Message_(play)
type PluginMessage struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

func (p *PluginMessage) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	if p.Data, err = buf.ReadRemaining(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	return nil
}

func (p *PluginMessage) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	return buf.WriteFixedByteArray(p.Data)
}

// Death is JoinGame/Respawn's optional last-death location.
type Death struct {
	DimensionName ns.Identifier
	Position      ns.Position
}

func readDeath(buf *ns.PacketBuffer) (ns.PrefixedOptional[Death], error) {
	present, err := buf.ReadBool()
	if err != nil {
		return ns.PrefixedOptional[Death]{}, fmt.Errorf("has_death_location: %w", err)
	}
	if !bool(present) {
		return ns.NoneOf[Death](), nil
	}
	var d Death
	if d.DimensionName, err = buf.ReadIdentifier(); err != nil {
		return ns.PrefixedOptional[Death]{}, fmt.Errorf("death_dimension_name: %w", err)
	}
	if d.Position, err = buf.ReadPosition(); err != nil {
		return ns.PrefixedOptional[Death]{}, fmt.Errorf("death_location: %w", err)
	}
	return ns.Some(d), nil
}

func writeDeath(buf *ns.PacketBuffer, d ns.PrefixedOptional[Death]) error {
	if err := buf.WriteBool(ns.Boolean(d.Present)); err != nil {
		return fmt.Errorf("has_death_location: %w", err)
	}
	if !d.Present {
		return nil
	}
	if err := buf.WriteIdentifier(d.Value.DimensionName); err != nil {
		return fmt.Errorf("death_dimension_name: %w", err)
	}
	return buf.WritePosition(d.Value.Position)
}

// JoinGame starts the Play state, naming the world the client spawns into.
// The registry codec field is carried as an opaque NBT blob: nothing in the
// proxy needs to read it, only pass it through or synthesize a fresh one on
// backend switch (it never does the latter; the decoded NBT value is
// re-encoded as is).
//
// One field layout is read and written for every version; version does not
// change which fields are present.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_(play)
type JoinGame struct {
	EntityID            ns.Int32
	IsHardcore           ns.Boolean
	Gamemode             ns.Uint8
	PreviousGamemode     ns.Uint8
	DimensionNames       ns.PrefixedArray[ns.Identifier]
	RegistryCodec        ns.NBTBlob
	DimensionType        ns.Identifier
	DimensionName        ns.Identifier
	HashedSeed           ns.Int64
	MaxPlayers           ns.VarInt
	ViewDistance         ns.VarInt
	SimulationDistance   ns.VarInt
	ReducedDebugInfo     ns.Boolean
	RespawnScreen        ns.Boolean
	IsDebug              ns.Boolean
	IsFlat               ns.Boolean
	LastDeath            ns.PrefixedOptional[Death]
}

func readIdentifierElem(buf *ns.PacketBuffer) (ns.Identifier, error) { return buf.ReadIdentifier() }
func writeIdentifierElem(buf *ns.PacketBuffer, v ns.Identifier) error {
	return buf.WriteIdentifier(v)
}

func (p *JoinGame) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.EntityID, err = buf.ReadInt32(); err != nil {
		return fmt.Errorf("entity_id: %w", err)
	}
	if p.IsHardcore, err = buf.ReadBool(); err != nil {
		return fmt.Errorf("is_hardcore: %w", err)
	}
	if p.Gamemode, err = buf.ReadUint8(); err != nil {
		return fmt.Errorf("gamemode: %w", err)
	}
	if p.PreviousGamemode, err = buf.ReadUint8(); err != nil {
		return fmt.Errorf("previous_gamemode: %w", err)
	}
	if err = p.DimensionNames.DecodeWith(buf, readIdentifierElem); err != nil {
		return fmt.Errorf("dimension_names: %w", err)
	}
	if p.RegistryCodec, err = buf.ReadNBTBlob(); err != nil {
		return fmt.Errorf("registry_codec: %w", err)
	}
	if p.DimensionType, err = buf.ReadIdentifier(); err != nil {
		return fmt.Errorf("dimension_type: %w", err)
	}
	if p.DimensionName, err = buf.ReadIdentifier(); err != nil {
		return fmt.Errorf("dimension_name: %w", err)
	}
	if p.HashedSeed, err = buf.ReadInt64(); err != nil {
		return fmt.Errorf("hashed_seed: %w", err)
	}
	if p.MaxPlayers, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("max_players: %w", err)
	}
	if p.ViewDistance, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("view_distance: %w", err)
	}
	if p.SimulationDistance, err = buf.ReadVarInt(); err != nil {
		return fmt.Errorf("simulation_distance: %w", err)
	}
	if p.ReducedDebugInfo, err = buf.ReadBool(); err != nil {
		return fmt.Errorf("reduced_debug_info: %w", err)
	}
	if p.RespawnScreen, err = buf.ReadBool(); err != nil {
		return fmt.Errorf("respawn_screen: %w", err)
	}
	if p.IsDebug, err = buf.ReadBool(); err != nil {
		return fmt.Errorf("is_debug: %w", err)
	}
	if p.IsFlat, err = buf.ReadBool(); err != nil {
		return fmt.Errorf("is_flat: %w", err)
	}
	if p.LastDeath, err = readDeath(buf); err != nil {
		return err
	}
	return nil
}

func (p *JoinGame) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteInt32(p.EntityID); err != nil {
		return fmt.Errorf("entity_id: %w", err)
	}
	if err := buf.WriteBool(p.IsHardcore); err != nil {
		return fmt.Errorf("is_hardcore: %w", err)
	}
	if err := buf.WriteUint8(p.Gamemode); err != nil {
		return fmt.Errorf("gamemode: %w", err)
	}
	if err := buf.WriteUint8(p.PreviousGamemode); err != nil {
		return fmt.Errorf("previous_gamemode: %w", err)
	}
	if err := p.DimensionNames.EncodeWith(buf, writeIdentifierElem); err != nil {
		return fmt.Errorf("dimension_names: %w", err)
	}
	if err := p.RegistryCodec.Encode(buf.Writer()); err != nil {
		return fmt.Errorf("registry_codec: %w", err)
	}
	if err := buf.WriteIdentifier(p.DimensionType); err != nil {
		return fmt.Errorf("dimension_type: %w", err)
	}
	if err := buf.WriteIdentifier(p.DimensionName); err != nil {
		return fmt.Errorf("dimension_name: %w", err)
	}
	if err := buf.WriteInt64(p.HashedSeed); err != nil {
		return fmt.Errorf("hashed_seed: %w", err)
	}
	if err := buf.WriteVarInt(p.MaxPlayers); err != nil {
		return fmt.Errorf("max_players: %w", err)
	}
	if err := buf.WriteVarInt(p.ViewDistance); err != nil {
		return fmt.Errorf("view_distance: %w", err)
	}
	if err := buf.WriteVarInt(p.SimulationDistance); err != nil {
		return fmt.Errorf("simulation_distance: %w", err)
	}
	if err := buf.WriteBool(p.ReducedDebugInfo); err != nil {
		return fmt.Errorf("reduced_debug_info: %w", err)
	}
	if err := buf.WriteBool(p.RespawnScreen); err != nil {
		return fmt.Errorf("respawn_screen: %w", err)
	}
	if err := buf.WriteBool(p.IsDebug); err != nil {
		return fmt.Errorf("is_debug: %w", err)
	}
	if err := buf.WriteBool(p.IsFlat); err != nil {
		return fmt.Errorf("is_flat: %w", err)
	}
	return writeDeath(buf, p.LastDeath)
}

// Respawn is only ever constructed by the proxy itself, from a captured
// JoinGame, when switching the client to a fallback backend (§9). Its
// fields are never parsed from the wire: Read drains the body and leaves
// every field zero, so a backend's own Respawn is forwarded as raw bytes.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Respawn
type Respawn struct {
	DimensionType    ns.Identifier
	DimensionName    ns.Identifier
	HashedSeed       ns.Int64
	Gamemode         ns.Uint8
	PreviousGamemode ns.Uint8
	IsDebug          ns.Boolean
	IsFlat           ns.Boolean
	DataKept         ns.Uint8
	LastDeath        ns.PrefixedOptional[Death]
}

func (p *Respawn) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	if _, err := buf.ReadRemaining(); err != nil {
		return fmt.Errorf("respawn: %w", err)
	}
	return nil
}

func (p *Respawn) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteIdentifier(p.DimensionType); err != nil {
		return fmt.Errorf("dimension_type: %w", err)
	}
	if err := buf.WriteIdentifier(p.DimensionName); err != nil {
		return fmt.Errorf("dimension_name: %w", err)
	}
	if err := buf.WriteInt64(p.HashedSeed); err != nil {
		return fmt.Errorf("hashed_seed: %w", err)
	}
	if err := buf.WriteUint8(p.Gamemode); err != nil {
		return fmt.Errorf("gamemode: %w", err)
	}
	if err := buf.WriteUint8(p.PreviousGamemode); err != nil {
		return fmt.Errorf("previous_gamemode: %w", err)
	}
	if err := buf.WriteBool(p.IsDebug); err != nil {
		return fmt.Errorf("is_debug: %w", err)
	}
	if err := buf.WriteBool(p.IsFlat); err != nil {
		return fmt.Errorf("is_flat: %w", err)
	}
	if err := buf.WriteUint8(p.DataKept); err != nil {
		return fmt.Errorf("data_kept: %w", err)
	}
	return writeDeath(buf, p.LastDeath)
}

// RespawnFromJoinGame builds the Respawn the fallback policy sends right
// after a fallback backend's JoinGame, with DataKept cleared (§9).
func RespawnFromJoinGame(j JoinGame) Respawn {
	return Respawn{
		DimensionType:    j.DimensionType,
		DimensionName:    j.DimensionName,
		HashedSeed:       j.HashedSeed,
		Gamemode:         j.Gamemode,
		PreviousGamemode: j.PreviousGamemode,
		IsDebug:          j.IsDebug,
		IsFlat:           j.IsFlat,
		DataKept:         0,
		LastDeath:        j.LastDeath,
	}
}

// BossBarAction tags BossBar's payload shape.
type BossBarAction ns.VarInt

const (
	BossBarAdd BossBarAction = iota
	BossBarRemove
	BossBarUpdateHealth
	BossBarUpdateTitle
	BossBarUpdateStyle
	BossBarUpdateFlags
)

// BossBar is a tagged union keyed on Action; only the fields its action
// defines are read or written. The UUID is always present; it is what the
// bridge tracks for fallback cleanup (§4.9).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Boss_Bar
type BossBar struct {
	UUID      ns.UUID
	Action    BossBarAction
	Title     ns.Component
	Health    ns.Float32
	Color     ns.VarInt
	Division  ns.VarInt
	Flags     ns.Uint8
}

func (p *BossBar) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.UUID, err = buf.ReadUUID(); err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	action, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("action: %w", err)
	}
	p.Action = BossBarAction(action)

	switch p.Action {
	case BossBarAdd:
		if p.Title, err = buf.ReadComponent(262144); err != nil {
			return fmt.Errorf("title: %w", err)
		}
		if p.Health, err = buf.ReadFloat32(); err != nil {
			return fmt.Errorf("health: %w", err)
		}
		if p.Color, err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		if p.Division, err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("division: %w", err)
		}
		if p.Flags, err = buf.ReadUint8(); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
	case BossBarRemove:
		// no further fields
	case BossBarUpdateHealth:
		if p.Health, err = buf.ReadFloat32(); err != nil {
			return fmt.Errorf("health: %w", err)
		}
	case BossBarUpdateTitle:
		if p.Title, err = buf.ReadComponent(262144); err != nil {
			return fmt.Errorf("title: %w", err)
		}
	case BossBarUpdateStyle:
		if p.Color, err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		if p.Division, err = buf.ReadVarInt(); err != nil {
			return fmt.Errorf("division: %w", err)
		}
	case BossBarUpdateFlags:
		if p.Flags, err = buf.ReadUint8(); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
	default:
		return fmt.Errorf("boss_bar: invalid action tag %d", action)
	}
	return nil
}

func (p *BossBar) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	if err := buf.WriteVarInt(ns.VarInt(p.Action)); err != nil {
		return fmt.Errorf("action: %w", err)
	}

	switch p.Action {
	case BossBarAdd:
		if err := buf.WriteComponent(p.Title); err != nil {
			return fmt.Errorf("title: %w", err)
		}
		if err := buf.WriteFloat32(p.Health); err != nil {
			return fmt.Errorf("health: %w", err)
		}
		if err := buf.WriteVarInt(p.Color); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		if err := buf.WriteVarInt(p.Division); err != nil {
			return fmt.Errorf("division: %w", err)
		}
		return buf.WriteUint8(p.Flags)
	case BossBarRemove:
		return nil
	case BossBarUpdateHealth:
		return buf.WriteFloat32(p.Health)
	case BossBarUpdateTitle:
		return buf.WriteComponent(p.Title)
	case BossBarUpdateStyle:
		if err := buf.WriteVarInt(p.Color); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		return buf.WriteVarInt(p.Division)
	case BossBarUpdateFlags:
		return buf.WriteUint8(p.Flags)
	default:
		return fmt.Errorf("boss_bar: invalid action tag %d", p.Action)
	}
}

// ChatCommand is parsed far enough to log it; the signature array is kept
// as a placeholder of raw argument signatures, since nothing beyond logging
// consumes it and a "switch" sub-command hinted at in the source is never
// implemented (spec.md §9(c): do not guess semantics).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Chat_Command
type ChatCommand struct {
	Command   ns.String
	Timestamp ns.Int64
	Salt      ns.Int64
	Signature ns.ByteArray
}

func (p *ChatCommand) Read(buf *ns.PacketBuffer, version protocol.Version) error {
	var err error
	if p.Command, err = buf.ReadString(256); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	if p.Timestamp, err = buf.ReadInt64(); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if p.Salt, err = buf.ReadInt64(); err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	if p.Signature, err = buf.ReadRemaining(); err != nil {
		return fmt.Errorf("argument_signatures: %w", err)
	}
	return nil
}

func (p *ChatCommand) Write(buf *ns.PacketBuffer, version protocol.Version) error {
	if err := buf.WriteString(p.Command); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	if err := buf.WriteInt64(p.Timestamp); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if err := buf.WriteInt64(p.Salt); err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	return buf.WriteFixedByteArray(p.Signature)
}
