package session_test

import (
	"testing"

	"github.com/mcproxy/mcproxy/session"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

func uuidFromByte(b byte) ns.UUID {
	var u ns.UUID
	u[15] = b
	return u
}

func TestBossBarsAddRemoveAddSequence(t *testing.T) {
	var bars session.BossBars
	a, b, c := uuidFromByte(1), uuidFromByte(2), uuidFromByte(3)

	bars.Add(a)
	bars.Add(b)
	bars.Remove(a)
	bars.Add(c)

	got := bars.All()
	want := map[ns.UUID]bool{b: true, c: true}
	if len(got) != len(want) {
		t.Fatalf("All() = %v; want the set %v", got, want)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected tracked id %s", id)
		}
		delete(want, id)
	}
	if len(want) != 0 {
		t.Errorf("missing tracked ids: %v", want)
	}
}

func TestBossBarsRemoveUnknownIsNoop(t *testing.T) {
	var bars session.BossBars
	a := uuidFromByte(1)
	bars.Add(a)
	bars.Remove(uuidFromByte(9))
	if len(bars.All()) != 1 || bars.All()[0] != a {
		t.Errorf("removing an untracked id mutated the set: %v", bars.All())
	}
}

func TestBossBarsClear(t *testing.T) {
	var bars session.BossBars
	bars.Add(uuidFromByte(1))
	bars.Add(uuidFromByte(2))
	bars.Clear()
	if len(bars.All()) != 0 {
		t.Errorf("Clear() left %d tracked ids", len(bars.All()))
	}
}
