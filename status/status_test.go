package status_test

import (
	"encoding/json"
	"testing"

	"github.com/mcproxy/mcproxy/status"
)

func TestJSONShape(t *testing.T) {
	body, err := status.JSON(status.Config{
		VersionName:    "1.20.2",
		ProtocolNumber: 764,
		MaxPlayers:     20,
		OnlinePlayers:  0,
		MOTD:           "A Minecraft Server",
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	version, ok := decoded["version"].(map[string]any)
	if !ok {
		t.Fatal("missing version object")
	}
	if version["name"] != "1.20.2" {
		t.Errorf("version.name = %v; want 1.20.2", version["name"])
	}
	if version["protocol"] != float64(764) {
		t.Errorf("version.protocol = %v; want 764", version["protocol"])
	}

	players, ok := decoded["players"].(map[string]any)
	if !ok {
		t.Fatal("missing players object")
	}
	if players["max"] != float64(20) {
		t.Errorf("players.max = %v; want 20", players["max"])
	}

	description, ok := decoded["description"].(map[string]any)
	if !ok {
		t.Fatal("missing description object")
	}
	if description["text"] != "A Minecraft Server" {
		t.Errorf("description.text = %v", description["text"])
	}
}

// status.JSON caches its result for the life of the process (a vanilla
// server's MOTD doesn't change per-ping); a second call with different
// config must still return the first call's bytes.
func TestJSONCachesFirstResult(t *testing.T) {
	first, err := status.JSON(status.Config{VersionName: "whatever-ran-first"})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	second, err := status.JSON(status.Config{VersionName: "should-be-ignored"})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if first != second {
		t.Errorf("second call returned different bytes: %q vs %q", second, first)
	}
}
