package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the kenlit configuration file
// (~/.config/kenlit/config.yaml). Optional values are pointers so "not set"
// is distinguishable from zero.
type Config struct {
	Checkpoint string `yaml:"checkpoint"`
	Corpus     string `yaml:"corpus"`

	// Generation defaults
	Temperature *float64 `yaml:"temperature"`
	Words       *int64   `yaml:"words"`
	SamplerSeed *int64   `yaml:"sampler_seed"`

	// Training defaults
	Epochs    *int64 `yaml:"epochs"`
	MinWindow *int64 `yaml:"min_window"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kenlit", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyCommonConfig applies config file defaults shared by every command
// when the corresponding CLI flag was not explicitly set.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.Checkpoint != "" && !c.IsSet("checkpoint") {
		checkpointPath = cfg.Checkpoint
	}
	if cfg.Corpus != "" && !c.IsSet("corpus") {
		corpusPath = cfg.Corpus
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyGenerateConfig applies generation defaults from the config file.
func applyGenerateConfig(c *cli.Command, cfg Config, words *int64, temp *float64, samplerSeed *int64) {
	if cfg.Words != nil && !c.IsSet("words") {
		*words = *cfg.Words
	}
	if cfg.Temperature != nil && !c.IsSet("temp") && !c.IsSet("temperature") {
		*temp = *cfg.Temperature
	}
	if cfg.SamplerSeed != nil && !c.IsSet("sampler-seed") {
		*samplerSeed = *cfg.SamplerSeed
	}
}

// applyTrainConfig applies training defaults from the config file.
func applyTrainConfig(c *cli.Command, cfg Config, epochs, minWindow *int64) {
	if cfg.Epochs != nil && !c.IsSet("epochs") {
		*epochs = *cfg.Epochs
	}
	if cfg.MinWindow != nil && !c.IsSet("min-window") {
		*minWindow = *cfg.MinWindow
	}
}

// applyServeConfig applies server defaults from the config file.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
