// Package session implements the per-connection state machine and the
// clientbound/serverbound bridge that relays packets between a client and
// a backend once Play begins.
package session

import ns "github.com/mcproxy/mcproxy/protocol/net_structures"

// BossBars tracks the boss-bar UUIDs a client currently has displayed, in
// insertion order modulo swap-remove (§4.9's BossBar policy and §8's
// testable property).
type BossBars struct {
	ids []ns.UUID
}

// Add records a newly displayed boss bar.
func (b *BossBars) Add(id ns.UUID) {
	b.ids = append(b.ids, id)
}

// Remove drops id from the tracked set by swapping it with the last
// element and truncating, matching the source's swap-remove (§8).
func (b *BossBars) Remove(id ns.UUID) {
	for i, existing := range b.ids {
		if existing == id {
			last := len(b.ids) - 1
			b.ids[i] = b.ids[last]
			b.ids = b.ids[:last]
			return
		}
	}
}

// All returns the currently tracked boss-bar UUIDs.
func (b *BossBars) All() []ns.UUID {
	return b.ids
}

// Clear empties the tracked set, used when a fallback switch removes every
// boss bar before resuming the bridge (§9).
func (b *BossBars) Clear() {
	b.ids = nil
}

// State is the per-session data created at the Login->Play transition and
// destroyed with the session (§3 Lifecycle).
type State struct {
	Username ns.String
	UUID     ns.UUID
	BossBars BossBars
}
