package auth_test

import (
	"testing"

	"github.com/mcproxy/mcproxy/auth"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

func TestOfflineUUID(t *testing.T) {
	want, err := ns.UUIDFromHex("b50ad385829d3141a2167e7d7539ba7a")
	if err != nil {
		t.Fatalf("parse expected uuid: %v", err)
	}
	got := auth.OfflineUUID("Notch")
	if got != want {
		t.Errorf("OfflineUUID(%q) = %s; want %s", "Notch", got, want)
	}
}

func TestOfflineUUIDDeterministic(t *testing.T) {
	a := auth.OfflineUUID("someplayer")
	b := auth.OfflineUUID("someplayer")
	if a != b {
		t.Errorf("OfflineUUID is not deterministic: %s != %s", a, b)
	}
	if auth.OfflineUUID("alice") == auth.OfflineUUID("bob") {
		t.Errorf("distinct usernames produced the same uuid")
	}
}

func TestOfflineUUIDVersionAndVariantBits(t *testing.T) {
	u := auth.OfflineUUID("anyone")
	if u[6]&0xf0 != 0x30 {
		t.Errorf("version nibble = %x; want 3", u[6]&0xf0)
	}
	if u[8]&0xc0 != 0x80 {
		t.Errorf("variant bits = %x; want 10xxxxxx", u[8]&0xc0)
	}
}
