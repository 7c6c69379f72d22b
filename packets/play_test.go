package packets_test

import (
	"testing"

	"github.com/mcproxy/mcproxy/packets"
	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

func TestBossBarAddRoundTrip(t *testing.T) {
	uuid, parseErr := ns.UUIDFromHex("b50ad385829d3141a2167e7d7539ba7a")
	if parseErr != nil {
		t.Fatal(parseErr)
	}
	want := &packets.BossBar{
		UUID:     uuid,
		Action:   packets.BossBarAdd,
		Title:    ns.PlainText("Wave 3"),
		Health:   0.75,
		Color:    2,
		Division: 1,
		Flags:    1,
	}
	got := &packets.BossBar{}
	encodeDecode(t, protocol.V1_19_4, want, got)

	if got.UUID != want.UUID || got.Action != want.Action || got.Health != want.Health ||
		got.Color != want.Color || got.Division != want.Division || got.Flags != want.Flags {
		t.Errorf("round trip = %+v; want %+v", got, want)
	}
	if got.Title.Text != want.Title.Text {
		t.Errorf("title = %q; want %q", got.Title.Text, want.Title.Text)
	}
}

func TestBossBarRemoveRoundTrip(t *testing.T) {
	uuid, err := ns.UUIDFromHex("b50ad385829d3141a2167e7d7539ba7a")
	if err != nil {
		t.Fatal(err)
	}
	want := &packets.BossBar{UUID: uuid, Action: packets.BossBarRemove}
	got := &packets.BossBar{}
	encodeDecode(t, protocol.V1_19_4, want, got)
	if got.UUID != want.UUID || got.Action != want.Action {
		t.Errorf("round trip = %+v; want %+v", got, want)
	}
}

func TestBossBarInvalidActionRejected(t *testing.T) {
	out := ns.NewWriter()
	uuid, err := ns.UUIDFromHex("b50ad385829d3141a2167e7d7539ba7a")
	if err != nil {
		t.Fatal(err)
	}
	if err := out.WriteUUID(uuid); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteVarInt(99); err != nil {
		t.Fatal(err)
	}

	got := &packets.BossBar{}
	if err := got.Read(ns.NewReader(out.Bytes()), protocol.V1_19_4); err == nil {
		t.Fatal("expected an error decoding an unrecognized boss bar action")
	}
}

func TestPluginMessageRoundTrip(t *testing.T) {
	want := &packets.PluginMessage{
		Channel: "minecraft:brand",
		Data:    []byte("fabric"),
	}
	got := &packets.PluginMessage{}
	encodeDecode(t, protocol.V1_19_4, want, got)
	if got.Channel != want.Channel {
		t.Errorf("channel = %q; want %q", got.Channel, want.Channel)
	}
	if string(got.Data) != string(want.Data) {
		t.Errorf("data = %q; want %q", got.Data, want.Data)
	}
	if got.Channel.Namespace() != "minecraft" || got.Channel.Path() != "brand" {
		t.Errorf("namespace/path = %q/%q; want minecraft/brand", got.Channel.Namespace(), got.Channel.Path())
	}
}
