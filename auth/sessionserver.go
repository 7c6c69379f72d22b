package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mcproxy/mcproxy/crypto"
)

// SessionServerClient queries Mojang's session server to confirm a client
// completed the join handshake it claims to have (§4.8). Only hasJoined is
// needed; the access-token Join flow and Microsoft OAuth machinery the
// teacher's client carries belong to an authenticating client, not a proxy
// verifying one.
type SessionServerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSessionServerClient builds a client against the real Mojang endpoint.
func NewSessionServerClient() *SessionServerClient {
	return &SessionServerClient{
		baseURL:    "https://sessionserver.mojang.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// HasJoinedResponse is the profile Mojang returns for a successful check.
type HasJoinedResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// Property is one signed profile property (e.g. "textures").
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// HasJoined reports whether username recently completed a client-side join
// for serverID, returning the confirmed profile. A nil response with a nil
// error means the session server found no matching session.
func (c *SessionServerClient) HasJoined(username, serverID string) (*HasJoinedResponse, error) {
	u := fmt.Sprintf("%s/session/minecraft/hasJoined?username=%s&serverId=%s",
		c.baseURL, url.QueryEscape(username), url.QueryEscape(serverID))

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("auth: build hasJoined request: %w", err)
	}
	req.Header.Set("User-Agent", "mcproxy")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: session server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("auth: read hasJoined response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: hasJoined status %d: %s", resp.StatusCode, body)
	}

	var parsed HasJoinedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("auth: parse hasJoined response: %w", err)
	}
	return &parsed, nil
}

// ComputeServerHash builds the server-id hash sent as the serverId query
// parameter: SHA-1 over serverID, the shared secret, and the server's
// public key, reduced to Mojang's signed-bigint hex form.
func ComputeServerHash(serverID string, sharedSecret, publicKey []byte) string {
	h := crypto.NewMinecraftSHA1()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKey)
	return h.HexDigest()
}
