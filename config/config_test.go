package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcproxy/mcproxy/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcproxy.yaml")
	contents := "listen_addr: \":25565\"\nbackend_addr: \"127.0.0.1:25566\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":25565" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.BackendAddr != "127.0.0.1:25566" {
		t.Errorf("BackendAddr = %q", cfg.BackendAddr)
	}
	if cfg.CompressionThreshold != -1 {
		t.Errorf("CompressionThreshold default = %d; want -1", cfg.CompressionThreshold)
	}
	if cfg.CompressionLevel != -1 {
		t.Errorf("CompressionLevel default = %d; want -1", cfg.CompressionLevel)
	}
	if cfg.MaxSlots != 20 {
		t.Errorf("MaxSlots default = %d; want 20", cfg.MaxSlots)
	}
	if cfg.MotdText != "A Minecraft Server" {
		t.Errorf("MotdText default = %q", cfg.MotdText)
	}
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcproxy.yaml")
	contents := "listen_addr: \":25565\"\nbackend_addr: \"127.0.0.1:25566\"\n" +
		"compression_threshold: 64\nmax_slots: 5\nmotd_text: \"Custom MOTD\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CompressionThreshold != 64 {
		t.Errorf("CompressionThreshold = %d; want 64", cfg.CompressionThreshold)
	}
	if cfg.MaxSlots != 5 {
		t.Errorf("MaxSlots = %d; want 5", cfg.MaxSlots)
	}
	if cfg.MotdText != "Custom MOTD" {
		t.Errorf("MotdText = %q; want %q", cfg.MotdText, "Custom MOTD")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error loading a nonexistent config file")
	}
}
