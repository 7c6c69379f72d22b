package protocol

import (
	"fmt"
	"sort"

	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// Kind identifies a logical packet type independent of its on-wire id,
// which varies by (State, Version, Direction).
type Kind string

// IDStep declares the wire id used from FromVersion onward, until the next
// step's FromVersion. A Declaration with one step has a constant id across
// every version.
type IDStep struct {
	FromVersion Version
	ID          ns.VarInt
}

// Declaration is one entry in the registry's build list: a packet kind,
// which state and direction it lives in, its id-mapping across versions,
// and a constructor for its decoder.
type Declaration struct {
	Kind      Kind
	State     State
	Direction Direction
	Steps     []IDStep
	New       func() Packet
}

type registryEntry struct {
	Kind Kind
	New  func() Packet
}

// Registry is the three-level (State -> Version -> Direction) lookup table
// built once at startup from a Declaration list (§4.5). It is immutable
// after Build returns and safe for concurrent use by every session.
type Registry struct {
	byID   map[State]map[Version]map[Direction]map[ns.VarInt]registryEntry
	byKind map[State]map[Version]map[Direction]map[Kind]ns.VarInt
}

// Build constructs a Registry from decls, walking each declaration's steps
// in ascending from-version order to populate a per-version id for every
// version from the step's FromVersion up to V1_20_3.
func Build(decls []Declaration) (*Registry, error) {
	r := &Registry{
		byID:   map[State]map[Version]map[Direction]map[ns.VarInt]registryEntry{},
		byKind: map[State]map[Version]map[Direction]map[Kind]ns.VarInt{},
	}

	for _, d := range decls {
		if len(d.Steps) == 0 {
			return nil, fmt.Errorf("registry: declaration %q has no id steps", d.Kind)
		}
		steps := append([]IDStep(nil), d.Steps...)
		sort.Slice(steps, func(i, j int) bool { return steps[i].FromVersion < steps[j].FromVersion })

		for v := steps[0].FromVersion; v <= V1_20_3; v++ {
			id := steps[0].ID
			for _, s := range steps {
				if s.FromVersion > v {
					break
				}
				id = s.ID
			}
			r.put(d.State, v, d.Direction, id, registryEntry{Kind: d.Kind, New: d.New})
		}
		// Unknown (an unrecognized or not-yet-negotiated protocol number,
		// e.g. before Handshake is parsed) gets the earliest known id too:
		// Handshake/Status/Login ids have been wire-stable since 1.7.2, and
		// a client whose version this proxy can't place is rejected by
		// SupportsClientFacing before any Play-state lookup is ever made.
		r.put(d.State, Unknown, d.Direction, steps[0].ID, registryEntry{Kind: d.Kind, New: d.New})
	}

	return r, nil
}

func (r *Registry) put(state State, version Version, dir Direction, id ns.VarInt, e registryEntry) {
	if r.byID[state] == nil {
		r.byID[state] = map[Version]map[Direction]map[ns.VarInt]registryEntry{}
		r.byKind[state] = map[Version]map[Direction]map[Kind]ns.VarInt{}
	}
	if r.byID[state][version] == nil {
		r.byID[state][version] = map[Direction]map[ns.VarInt]registryEntry{}
		r.byKind[state][version] = map[Direction]map[Kind]ns.VarInt{}
	}
	if r.byID[state][version][dir] == nil {
		r.byID[state][version][dir] = map[ns.VarInt]registryEntry{}
		r.byKind[state][version][dir] = map[Kind]ns.VarInt{}
	}
	r.byID[state][version][dir][id] = e
	r.byKind[state][version][dir][e.Kind] = id
}

// Lookup returns the decoder factory registered for id in the given slice,
// or ok=false if the id is not defined there — callers forward it as an
// opaque raw frame.
func (r *Registry) Lookup(state State, version Version, dir Direction, id ns.VarInt) (Kind, func() Packet, bool) {
	e, ok := r.byID[state][version][dir][id]
	if !ok {
		return "", nil, false
	}
	return e.Kind, e.New, true
}

// IDFor returns the wire id to use for kind in the given slice. Returns an
// error if kind is not defined in that (state, version, direction) triple —
// a programmer error per §4.5, surfaced as such rather than silently
// guessed.
func (r *Registry) IDFor(state State, version Version, dir Direction, kind Kind) (ns.VarInt, error) {
	id, ok := r.byKind[state][version][dir][kind]
	if !ok {
		return 0, fmt.Errorf("registry: %s has no id in (%s, %v, %s)", kind, state, version, dir)
	}
	return id, nil
}
