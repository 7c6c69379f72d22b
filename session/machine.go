package session

import (
	"crypto/rand"
	"fmt"
	"log"
	"net"

	"github.com/mcproxy/mcproxy/auth"
	"github.com/mcproxy/mcproxy/config"
	"github.com/mcproxy/mcproxy/packets"
	"github.com/mcproxy/mcproxy/protocol"
	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
	"github.com/mcproxy/mcproxy/status"
)

// minClientVersion is the oldest version this proxy accepts on its
// client-facing side (§3, §8 scenario 6).
const minClientVersion = protocol.V1_19_2

// ErrVersionTooOld is returned (and sent to the client as a Disconnect)
// when a client handshakes below minClientVersion.
var ErrVersionTooOld = fmt.Errorf("protocol below %s is not supported", versionName(minClientVersion))

func versionName(v protocol.Version) string { return "1.19.2" }

// Handler drives one accepted client connection from Handshake through
// Play, grounded on original_source/src/main.rs's handle_handshake /
// handle_status / handle_login / handle_play / create_backend_connection
// chain, reimplemented with explicit Go error returns instead of `?`.
type Handler struct {
	Registry *protocol.Registry
	Config   *config.Config
	Logger   *log.Logger
}

// Serve runs the full session lifecycle for one accepted client socket.
func (h *Handler) Serve(netConn net.Conn) {
	defer netConn.Close()
	client := NewConnection(netConn, h.Registry, protocol.Serverbound)

	if err := h.handleHandshake(client); err != nil {
		h.Logger.Printf("session: %v", err)
	}
}

func (h *Handler) handleHandshake(client *Connection) error {
	var hs packets.Handshake
	if err := RecvTyped(client, packets.KindHandshake, &hs); err != nil {
		return fmt.Errorf("read handshake: %w", err)
	}
	client.SetVersion(protocol.FromNum(int32(hs.ProtocolVersion)))

	switch hs.NextState {
	case packets.IntentStatus:
		return h.handleStatus(client)
	case packets.IntentLogin:
		return h.handleLogin(client)
	default:
		return fmt.Errorf("handshake: unexpected next_state %d", hs.NextState)
	}
}

func (h *Handler) handleStatus(client *Connection) error {
	client.ChangeState(protocol.StateStatus)

	var req packets.StatusRequest
	if err := RecvTyped(client, packets.KindStatusRequest, &req); err != nil {
		return fmt.Errorf("read status request: %w", err)
	}

	body, err := status.JSON(status.Config{
		VersionName:    h.Config.MotdName,
		ProtocolNumber: client.Version().Num(),
		MaxPlayers:     h.Config.MaxSlots,
		MOTD:           h.Config.MotdText,
	})
	if err != nil {
		return fmt.Errorf("build status response: %w", err)
	}
	if err := client.SendTyped(packets.KindStatusResponse, &packets.StatusResponse{JSON: ns.String(body)}); err != nil {
		return fmt.Errorf("send status response: %w", err)
	}

	var ping packets.Ping
	if err := RecvTyped(client, packets.KindPing, &ping); err != nil {
		return fmt.Errorf("read ping: %w", err)
	}
	return client.SendTyped(packets.KindPing, &ping)
}

func (h *Handler) handleLogin(client *Connection) error {
	client.ChangeState(protocol.StateLogin)

	var start packets.LoginStart
	if err := RecvTyped(client, packets.KindLoginStart, &start); err != nil {
		return fmt.Errorf("read login start: %w", err)
	}

	if !client.Version().SupportsClientFacing() {
		_ = client.SendTyped(packets.KindLoginDisconnect, &packets.Disconnect{
			Reason: ns.PlainText("We support versions above 1.19.1"),
		})
		return ErrVersionTooOld
	}

	var playerUUID ns.UUID
	if h.Config.OnlineMode {
		profile, err := h.authenticate(client, string(start.Username))
		if err != nil {
			_ = client.SendTyped(packets.KindLoginDisconnect, &packets.Disconnect{
				Reason: ns.PlainText(fmt.Sprintf("Authentication failed: %v", err)),
			})
			return fmt.Errorf("authenticate %s: %w", start.Username, err)
		}
		playerUUID, err = ns.UUIDFromHex(profile.ID)
		if err != nil {
			return fmt.Errorf("parse profile uuid: %w", err)
		}
	} else {
		playerUUID = auth.OfflineUUID(string(start.Username))
	}

	if h.Config.CompressionThreshold >= 0 {
		if err := client.QueueTyped(packets.KindSetCompression, &packets.SetCompression{
			Threshold: ns.VarInt(h.Config.CompressionThreshold),
		}); err != nil {
			return fmt.Errorf("queue set compression: %w", err)
		}
		if err := client.Flush(); err != nil {
			return fmt.Errorf("flush set compression: %w", err)
		}
		client.EnableCompression(h.Config.CompressionThreshold, h.Config.CompressionLevel)
	}

	backend, err := h.dialBackend(h.Config.BackendAddr, client.Version(), start.Username)
	if err != nil {
		_ = client.SendTyped(packets.KindLoginDisconnect, &packets.Disconnect{
			Reason: ns.PlainText("Could not connect to backend server"),
		})
		return fmt.Errorf("dial backend: %w", err)
	}

	if err := client.SendTyped(packets.KindLoginSuccess, &packets.LoginSuccess{
		UUID:     playerUUID,
		Username: start.Username,
	}); err != nil {
		backend.Close()
		return fmt.Errorf("send login success: %w", err)
	}

	return h.runBridge(client, backend, start.Username, playerUUID)
}

// authProfile is the subset of a session-server response the handler uses.
type authProfile struct {
	ID string
}

func (h *Handler) authenticate(client *Connection, username string) (*authProfile, error) {
	keys, err := auth.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}

	verifyToken := make([]byte, 4)
	if _, err := rand.Read(verifyToken); err != nil {
		return nil, fmt.Errorf("generate verify token: %w", err)
	}

	if err := client.SendTyped(packets.KindEncryptionRequest, &packets.EncryptionRequest{
		ServerID:    "",
		PublicKey:   keys.PublicDER,
		VerifyToken: verifyToken,
	}); err != nil {
		return nil, fmt.Errorf("send encryption request: %w", err)
	}

	var resp packets.EncryptionResponse
	if err := RecvTyped(client, packets.KindEncryptionResponse, &resp); err != nil {
		return nil, fmt.Errorf("read encryption response: %w", err)
	}

	decryptedToken, err := keys.Decrypt(resp.VerifyToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt verify token: %w", err)
	}
	if !bytesEqual(decryptedToken, verifyToken) {
		return nil, fmt.Errorf("verify token mismatch")
	}

	sharedSecret, err := keys.Decrypt(resp.SharedSecret)
	if err != nil {
		return nil, fmt.Errorf("decrypt shared secret: %w", err)
	}
	if len(sharedSecret) != 16 {
		return nil, fmt.Errorf("shared secret must be 16 bytes, got %d", len(sharedSecret))
	}

	serverHash := auth.ComputeServerHash("", sharedSecret, keys.PublicDER)
	profile, err := auth.NewSessionServerClient().HasJoined(username, serverHash)
	if err != nil {
		return nil, fmt.Errorf("session server: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("session server did not confirm join")
	}

	if err := client.EnableEncryption(sharedSecret); err != nil {
		return nil, fmt.Errorf("enable encryption: %w", err)
	}

	return &authProfile{ID: profile.ID}, nil
}

// switchToFallback opens the configured fallback backend, replays it
// through Handshake/Login, captures its first JoinGame, and forwards the
// client a JoinGame + synthesized Respawn in its place, clearing every
// tracked boss bar (§9 "Fallback on backend Disconnect").
func (h *Handler) switchToFallback(client *Connection, state *State) (*Connection, error) {
	backend, err := h.dialBackend(h.Config.FallbackAddr, client.Version(), state.Username)
	if err != nil {
		return nil, fmt.Errorf("dial fallback: %w", err)
	}

	kind, typed, _, ok, err := backend.RecvDispatched()
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("read fallback join game: %w", err)
	}
	if !ok || kind != packets.KindJoinGame {
		backend.Close()
		return nil, fmt.Errorf("fallback's first play packet was %q, not join_game", kind)
	}
	join := typed.(*packets.JoinGame)

	if err := client.SendTyped(packets.KindJoinGame, join); err != nil {
		backend.Close()
		return nil, fmt.Errorf("forward fallback join game: %w", err)
	}
	respawn := packets.RespawnFromJoinGame(*join)
	if err := client.SendTyped(packets.KindRespawn, &respawn); err != nil {
		backend.Close()
		return nil, fmt.Errorf("send synthesized respawn: %w", err)
	}

	for _, id := range state.BossBars.All() {
		remove := &packets.BossBar{UUID: id, Action: packets.BossBarRemove}
		if err := client.SendTyped(packets.KindBossBar, remove); err != nil {
			backend.Close()
			return nil, fmt.Errorf("remove tracked boss bar: %w", err)
		}
	}
	state.BossBars.Clear()

	return backend, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dialBackend opens a fresh, always-offline connection to addr, carrying it
// through Handshake and Login on the client's behalf.
func (h *Handler) dialBackend(addr string, version protocol.Version, username ns.String) (*Connection, error) {
	netConn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	backend := NewConnection(netConn, h.Registry, protocol.Clientbound)
	backend.SetVersion(version)

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("split backend address: %w", err)
	}
	var port uint16
	fmt.Sscanf(portStr, "%d", &port)

	if err := backend.SendTyped(packets.KindHandshake, &packets.Handshake{
		ProtocolVersion: ns.VarInt(version.Num()),
		ServerAddress:   ns.String(host),
		ServerPort:      ns.Uint16(port),
		NextState:       packets.IntentLogin,
	}); err != nil {
		backend.Close()
		return nil, fmt.Errorf("send backend handshake: %w", err)
	}
	backend.ChangeState(protocol.StateLogin)
	if err := backend.SendTyped(packets.KindLoginStart, &packets.LoginStart{
		Username: username,
	}); err != nil {
		backend.Close()
		return nil, fmt.Errorf("send backend login start: %w", err)
	}

	for {
		kind, typed, _, ok, err := backend.RecvDispatched()
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("read backend login response: %w", err)
		}
		if !ok {
			backend.Close()
			return nil, fmt.Errorf("backend sent undeclared packet during login")
		}
		switch kind {
		case packets.KindSetCompression:
			backend.EnableCompression(int(typed.(*packets.SetCompression).Threshold), h.Config.CompressionLevel)
		case packets.KindLoginSuccess:
			backend.ChangeState(protocol.StatePlay)
			return backend, nil
		case packets.KindLoginDisconnect:
			backend.Close()
			reason := typed.(*packets.Disconnect).Reason
			return nil, fmt.Errorf("backend disconnected: %s", reason.ExtractPlainText())
		case packets.KindEncryptionRequest:
			backend.Close()
			return nil, fmt.Errorf("backend requires encryption, which a proxy's offline-mode backend leg never speaks")
		default:
			backend.Close()
			return nil, fmt.Errorf("unexpected backend login packet %q", kind)
		}
	}
}
