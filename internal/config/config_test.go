package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Binding.Encoder != "aac" {
		t.Errorf("default encoder = %q", cfg.Binding.Encoder)
	}
	// An empty separator keeps full file names as chapter titles; splitting
	// must be opt-in.
	if cfg.Binding.TitleSeparator != "" {
		t.Errorf("default title separator = %q, want empty", cfg.Binding.TitleSeparator)
	}
	if !cfg.ProbeCache.Enabled {
		t.Error("probe cache should default to enabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Errorf("exists = true for missing file %s", path)
	}
	if cfg.Binding.Encoder != "aac" {
		t.Errorf("encoder = %q, want default aac", cfg.Binding.Encoder)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[binding]
encoder = "FLAC"
bitrate_kbps = 192
title_separator = " - "
extensions = ["MP3", ".m4a"]

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for real file")
	}
	if cfg.Binding.Encoder != "flac" {
		t.Errorf("encoder = %q", cfg.Binding.Encoder)
	}
	if cfg.Binding.BitrateKbps != 192 {
		t.Errorf("bitrate = %d", cfg.Binding.BitrateKbps)
	}
	if cfg.Binding.Extensions[0] != ".mp3" || cfg.Binding.Extensions[1] != ".m4a" {
		t.Errorf("extensions = %v", cfg.Binding.Extensions)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.ProbeCache.Path) {
		t.Errorf("probe cache path not expanded: %q", cfg.ProbeCache.Path)
	}
}

func TestLoadRejectsInvalidEncoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[binding]\nencoder = \"opus\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid encoder") {
		t.Fatalf("expected encoder validation error, got %v", err)
	}
}

func TestLoadRejectsInvalidLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected log format validation error")
	}
}

func TestValidEncoder(t *testing.T) {
	for _, encoder := range Encoders {
		if !ValidEncoder(encoder) {
			t.Errorf("ValidEncoder(%q) = false", encoder)
		}
	}
	if ValidEncoder("opus") {
		t.Error("ValidEncoder(opus) = true")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
