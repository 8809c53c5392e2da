package main

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigUnmarshal(t *testing.T) {
	raw := `
checkpoint: /var/lib/kenlit/model.json
temperature: 0.8
words: 20
sampler_seed: 7
epochs: 500
min_window: 4
log_level: debug
log_format: json
server_address: 0.0.0.0:9090
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Checkpoint != "/var/lib/kenlit/model.json" {
		t.Fatalf("checkpoint: %q", cfg.Checkpoint)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.8 {
		t.Fatalf("temperature: %v", cfg.Temperature)
	}
	if cfg.Words == nil || *cfg.Words != 20 {
		t.Fatalf("words: %v", cfg.Words)
	}
	if cfg.SamplerSeed == nil || *cfg.SamplerSeed != 7 {
		t.Fatalf("sampler_seed: %v", cfg.SamplerSeed)
	}
	if cfg.Epochs == nil || *cfg.Epochs != 500 {
		t.Fatalf("epochs: %v", cfg.Epochs)
	}
	if cfg.MinWindow == nil || *cfg.MinWindow != 4 {
		t.Fatalf("min_window: %v", cfg.MinWindow)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("logging: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ServerAddress != "0.0.0.0:9090" {
		t.Fatalf("server_address: %q", cfg.ServerAddress)
	}
}

func TestConfigPartialLeavesUnsetNil(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte("checkpoint: m.json\n"), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Temperature != nil || cfg.Words != nil || cfg.Epochs != nil {
		t.Fatalf("optional fields should stay nil: %+v", cfg)
	}
}
