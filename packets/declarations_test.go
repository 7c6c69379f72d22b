package packets_test

import (
	"testing"

	"github.com/mcproxy/mcproxy/packets"
	"github.com/mcproxy/mcproxy/protocol"
)

func TestRegistryBuildsWithoutError(t *testing.T) {
	if _, err := protocol.Build(packets.Declarations()); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

// TestRegistryIDForAndLookupAgree checks that, for every declared kind and a
// handful of versions, encoding a kind's id and looking that id back up
// yields the same kind, decoder, state and direction it was declared with.
func TestRegistryIDForAndLookupAgree(t *testing.T) {
	registry, err := protocol.Build(packets.Declarations())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cases := []struct {
		state protocol.State
		dir   protocol.Direction
		kind  protocol.Kind
	}{
		{protocol.StateHandshake, protocol.Serverbound, packets.KindHandshake},
		{protocol.StateStatus, protocol.Serverbound, packets.KindStatusRequest},
		{protocol.StateStatus, protocol.Serverbound, packets.KindPing},
		{protocol.StateStatus, protocol.Clientbound, packets.KindStatusResponse},
		{protocol.StateLogin, protocol.Serverbound, packets.KindLoginStart},
		{protocol.StateLogin, protocol.Clientbound, packets.KindLoginSuccess},
		{protocol.StateLogin, protocol.Clientbound, packets.KindSetCompression},
		{protocol.StatePlay, protocol.Serverbound, packets.KindChatCommand},
		{protocol.StatePlay, protocol.Serverbound, packets.KindPluginMessageC2S},
		{protocol.StatePlay, protocol.Clientbound, packets.KindPluginMessageS2C},
		{protocol.StatePlay, protocol.Clientbound, packets.KindBossBar},
		{protocol.StatePlay, protocol.Clientbound, packets.KindPlayDisconnect},
		{protocol.StatePlay, protocol.Clientbound, packets.KindJoinGame},
		{protocol.StatePlay, protocol.Clientbound, packets.KindRespawn},
	}

	for _, v := range []protocol.Version{protocol.V1_19_2, protocol.V1_19_4, protocol.V1_20_2} {
		for _, c := range cases {
			id, err := registry.IDFor(c.state, v, c.dir, c.kind)
			if err != nil {
				t.Errorf("IDFor(%v, %v, %v, %s): %v", c.state, v, c.dir, c.kind, err)
				continue
			}
			kind, newPacket, ok := registry.Lookup(c.state, v, c.dir, id)
			if !ok {
				t.Errorf("Lookup(%v, %v, %v, id=%d) not found, but IDFor succeeded", c.state, v, c.dir, id)
				continue
			}
			if kind != c.kind {
				t.Errorf("Lookup(%v, %v, %v, id=%d) kind = %s; want %s", c.state, v, c.dir, id, kind, c.kind)
			}
			if newPacket() == nil {
				t.Errorf("Lookup(%v, %v, %v, id=%d) returned a nil-constructing factory", c.state, v, c.dir, id)
			}
		}
	}
}

// TestRegistryUnknownVersionUsesBaselineID checks that a connection whose
// version hasn't been negotiated yet (protocol.Unknown, e.g. before
// Handshake is parsed) can still resolve the wire-stable pre-Play ids.
func TestRegistryUnknownVersionUsesBaselineID(t *testing.T) {
	registry, err := protocol.Build(packets.Declarations())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cases := []struct {
		state protocol.State
		dir   protocol.Direction
		kind  protocol.Kind
	}{
		{protocol.StateHandshake, protocol.Serverbound, packets.KindHandshake},
		{protocol.StateStatus, protocol.Serverbound, packets.KindStatusRequest},
		{protocol.StateLogin, protocol.Serverbound, packets.KindLoginStart},
	}
	for _, c := range cases {
		unknownID, err := registry.IDFor(c.state, protocol.Unknown, c.dir, c.kind)
		if err != nil {
			t.Errorf("IDFor(%v, Unknown, %v, %s): %v", c.state, c.dir, c.kind, err)
			continue
		}
		stableID, err := registry.IDFor(c.state, protocol.V1_19_2, c.dir, c.kind)
		if err != nil {
			t.Fatalf("IDFor(%v, V1_19_2, %v, %s): %v", c.state, c.dir, c.kind, err)
		}
		if unknownID != stableID {
			t.Errorf("%s id at Unknown = %d, want %d (matching V1_19_2)", c.kind, unknownID, stableID)
		}
	}
}
