package packets

import (
	"github.com/mcproxy/mcproxy/protocol"
)

// Packet kinds, independent of wire id (§4.5).
const (
	KindHandshake           protocol.Kind = "handshake"
	KindStatusRequest       protocol.Kind = "status_request"
	KindStatusResponse      protocol.Kind = "status_response"
	KindPing                protocol.Kind = "ping"
	KindLoginStart          protocol.Kind = "login_start"
	KindLoginSuccess        protocol.Kind = "login_success"
	KindLoginDisconnect     protocol.Kind = "login_disconnect"
	KindSetCompression      protocol.Kind = "set_compression"
	KindEncryptionRequest   protocol.Kind = "encryption_request"
	KindEncryptionResponse  protocol.Kind = "encryption_response"
	KindLoginPluginRequest  protocol.Kind = "login_plugin_request"
	KindLoginPluginResponse protocol.Kind = "login_plugin_response"
	KindPlayDisconnect      protocol.Kind = "play_disconnect"
	KindPluginMessageC2S    protocol.Kind = "plugin_message_serverbound"
	KindPluginMessageS2C    protocol.Kind = "plugin_message_clientbound"
	KindJoinGame            protocol.Kind = "join_game"
	KindRespawn             protocol.Kind = "respawn"
	KindBossBar             protocol.Kind = "boss_bar"
	KindChatCommand         protocol.Kind = "chat_command"
)

// Declarations returns every packet kind this proxy understands, with its
// id across the version range it speaks. Ids below 1.19.2 are included only
// because a step list must start somewhere; SupportsClientFacing rejects
// client connections below that version before any Play-state id is ever
// looked up.
//
// Per-version Play-state ids below approximate the public protocol numbering
// for 1.19.2 through 1.20.3; unlike Handshake/Status/Login, which have been
// stable since 1.7, these shift at nearly every release as packets are
// added upstream.
func Declarations() []protocol.Declaration {
	return []protocol.Declaration{
		{
			Kind: KindHandshake, State: protocol.StateHandshake, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x00}},
			New:   func() protocol.Packet { return &Handshake{} },
		},
		{
			Kind: KindStatusRequest, State: protocol.StateStatus, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x00}},
			New:   func() protocol.Packet { return &StatusRequest{} },
		},
		{
			Kind: KindPing, State: protocol.StateStatus, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x01}},
			New:   func() protocol.Packet { return &Ping{} },
		},
		{
			Kind: KindStatusResponse, State: protocol.StateStatus, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x00}},
			New:   func() protocol.Packet { return &StatusResponse{} },
		},
		{
			Kind: KindPing, State: protocol.StateStatus, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x01}},
			New:   func() protocol.Packet { return &Ping{} },
		},

		{
			Kind: KindLoginStart, State: protocol.StateLogin, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x00}},
			New:   func() protocol.Packet { return &LoginStart{} },
		},
		{
			Kind: KindEncryptionResponse, State: protocol.StateLogin, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x01}},
			New:   func() protocol.Packet { return &EncryptionResponse{} },
		},
		{
			Kind: KindLoginPluginResponse, State: protocol.StateLogin, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_13, ID: 0x02}},
			New:   func() protocol.Packet { return &LoginPluginResponse{} },
		},
		{
			Kind: KindLoginDisconnect, State: protocol.StateLogin, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x00}},
			New:   func() protocol.Packet { return &Disconnect{} },
		},
		{
			Kind: KindEncryptionRequest, State: protocol.StateLogin, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x01}},
			New:   func() protocol.Packet { return &EncryptionRequest{} },
		},
		{
			Kind: KindLoginSuccess, State: protocol.StateLogin, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_7_2, ID: 0x02}},
			New:   func() protocol.Packet { return &LoginSuccess{} },
		},
		{
			Kind: KindSetCompression, State: protocol.StateLogin, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_8, ID: 0x03}},
			New:   func() protocol.Packet { return &SetCompression{} },
		},
		{
			Kind: KindLoginPluginRequest, State: protocol.StateLogin, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{{FromVersion: protocol.V1_13, ID: 0x04}},
			New:   func() protocol.Packet { return &LoginPluginRequest{} },
		},

		{
			Kind: KindChatCommand, State: protocol.StatePlay, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19, ID: 0x03},
				{FromVersion: protocol.V1_19_4, ID: 0x04},
			},
			New: func() protocol.Packet { return &ChatCommand{} },
		},
		{
			Kind: KindPluginMessageC2S, State: protocol.StatePlay, Direction: protocol.Serverbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x0c},
				{FromVersion: protocol.V1_19_3, ID: 0x0d},
				{FromVersion: protocol.V1_19_4, ID: 0x0d},
				{FromVersion: protocol.V1_20_2, ID: 0x0f},
			},
			New: func() protocol.Packet { return &PluginMessage{} },
		},
		{
			Kind: KindPluginMessageS2C, State: protocol.StatePlay, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x16},
				{FromVersion: protocol.V1_19_3, ID: 0x15},
				{FromVersion: protocol.V1_19_4, ID: 0x17},
				{FromVersion: protocol.V1_20_2, ID: 0x18},
			},
			New: func() protocol.Packet { return &PluginMessage{} },
		},
		{
			Kind: KindBossBar, State: protocol.StatePlay, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x0a},
				{FromVersion: protocol.V1_19_4, ID: 0x0a},
				{FromVersion: protocol.V1_20_2, ID: 0x0a},
			},
			New: func() protocol.Packet { return &BossBar{} },
		},
		{
			Kind: KindPlayDisconnect, State: protocol.StatePlay, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x19},
				{FromVersion: protocol.V1_19_3, ID: 0x19},
				{FromVersion: protocol.V1_19_4, ID: 0x1a},
				{FromVersion: protocol.V1_20_2, ID: 0x1b},
			},
			New: func() protocol.Packet { return &Disconnect{} },
		},
		{
			Kind: KindJoinGame, State: protocol.StatePlay, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x25},
				{FromVersion: protocol.V1_19_3, ID: 0x24},
				{FromVersion: protocol.V1_19_4, ID: 0x28},
				{FromVersion: protocol.V1_20_2, ID: 0x29},
			},
			New: func() protocol.Packet { return &JoinGame{} },
		},
		{
			Kind: KindRespawn, State: protocol.StatePlay, Direction: protocol.Clientbound,
			Steps: []protocol.IDStep{
				{FromVersion: protocol.V1_19_2, ID: 0x3e},
				{FromVersion: protocol.V1_19_3, ID: 0x3d},
				{FromVersion: protocol.V1_19_4, ID: 0x41},
				{FromVersion: protocol.V1_20_2, ID: 0x43},
			},
			New: func() protocol.Packet { return &Respawn{} },
		},
	}
}
