package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mcproxy/mcproxy/packets"
	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

const brandSuffix = " inside a bike"

// backendSlot is the backend *Connection shared between bridgeClientbound
// and bridgeServerbound: the two run as independent goroutines (§4.6
// split/mix), but a fallback switch initiated by one must be visible to the
// other's send target, so the pointer itself lives behind a mutex instead
// of being captured by value in each goroutine's closure.
type backendSlot struct {
	mu   sync.Mutex
	conn *Connection
}

func newBackendSlot(conn *Connection) *backendSlot {
	return &backendSlot{conn: conn}
}

func (s *backendSlot) get() *Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *backendSlot) set(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = conn
}

// runBridge starts the two per-direction tasks once Login->Play completes,
// and blocks until both have exited (§4.7, §5).
func (h *Handler) runBridge(client, backend *Connection, username ns.String, playerUUID ns.UUID) error {
	client.ChangeState(protocol.StatePlay)

	state := &State{Username: username, UUID: playerUUID}
	slot := newBackendSlot(backend)

	done := make(chan error, 2)
	go func() { done <- bridgeClientbound(slot, client, state, h) }()
	go func() { done <- bridgeServerbound(client, slot, state, h) }()

	err1 := <-done
	slot.get().Close()
	client.Close()
	err2 := <-done

	if err1 != nil {
		return err1
	}
	return err2
}

// bridgeClientbound relays backend -> client, applying the plugin-message
// brand rewrite and boss-bar tracking, and handling Disconnect per §4.9. It
// owns the backend slot's writer: on a fallback switch it dials the new
// backend, publishes it to slot before closing the old one, so
// bridgeServerbound's next send lands on the connection that is actually
// still alive.
func bridgeClientbound(slot *backendSlot, to *Connection, state *State, h *Handler) error {
	from := slot.get()
	for {
		kind, typed, raw, ok, err := from.RecvDispatched()
		if err != nil {
			return fmt.Errorf("clientbound: %w", err)
		}
		if !ok {
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("clientbound forward raw: %w", err)
			}
			continue
		}

		switch kind {
		case packets.KindPluginMessageS2C:
			pm := typed.(*packets.PluginMessage)
			if pm.Channel.Namespace() == "minecraft" && pm.Channel.Path() == "brand" {
				if err := rewriteBrand(pm); err != nil {
					return fmt.Errorf("clientbound: rewrite brand: %w", err)
				}
			}
			if err := to.SendTyped(kind, pm); err != nil {
				return fmt.Errorf("clientbound send plugin message: %w", err)
			}
		case packets.KindBossBar:
			bb := typed.(*packets.BossBar)
			switch bb.Action {
			case packets.BossBarAdd:
				state.BossBars.Add(bb.UUID)
			case packets.BossBarRemove:
				state.BossBars.Remove(bb.UUID)
			}
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("clientbound send boss bar: %w", err)
			}
		case packets.KindPlayDisconnect:
			if h.Config.FallbackAddr == "" {
				if err := to.SendRaw(raw); err != nil {
					return fmt.Errorf("clientbound send disconnect: %w", err)
				}
				return nil
			}
			newBackend, err := h.switchToFallback(to, state)
			if err != nil {
				_ = to.SendRaw(raw)
				return fmt.Errorf("clientbound: fallback switch failed: %w", err)
			}
			old := from
			from = newBackend
			slot.set(newBackend)
			old.Close()
		default:
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("clientbound forward: %w", err)
			}
		}
	}
}

// bridgeServerbound relays client -> backend, logging ChatCommand per §4.9.
// It re-reads the backend slot before every send, so a fallback switch made
// by bridgeClientbound mid-flight is picked up on the very next packet
// instead of being written to the connection that switch just closed.
func bridgeServerbound(from *Connection, slot *backendSlot, state *State, h *Handler) error {
	for {
		kind, typed, raw, ok, err := from.RecvDispatched()
		if err != nil {
			return fmt.Errorf("serverbound: %w", err)
		}
		to := slot.get()
		if !ok {
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("serverbound forward raw: %w", err)
			}
			continue
		}

		switch kind {
		case packets.KindChatCommand:
			cc := typed.(*packets.ChatCommand)
			h.Logger.Printf("chat command: %s", cc.Command)
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("serverbound forward chat command: %w", err)
			}
		default:
			if err := to.SendRaw(raw); err != nil {
				return fmt.Errorf("serverbound forward: %w", err)
			}
		}
	}
}

// rewriteBrand decodes pm's body as a varint-prefixed string, appends
// brandSuffix, and re-encodes it in place (§8 scenario 4).
func rewriteBrand(pm *packets.PluginMessage) error {
	buf := ns.NewReader(pm.Data)
	brand, err := buf.ReadString(32767)
	if err != nil {
		return fmt.Errorf("decode brand string: %w", err)
	}

	var rewritten strings.Builder
	rewritten.WriteString(string(brand))
	rewritten.WriteString(brandSuffix)

	out := ns.NewWriter()
	if err := out.WriteString(ns.String(rewritten.String())); err != nil {
		return fmt.Errorf("encode brand string: %w", err)
	}
	pm.Data = out.Bytes()
	return nil
}
