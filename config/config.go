package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-smf/smf"
)

// DecoderConfig mirrors smf.Options
type DecoderConfig struct {
	RunningStatus     bool   `json:"runningStatus,omitempty"`
	SysEx             string `json:"sysex,omitempty"` // "scan" or "legacy"
	VerifyTrackLength bool   `json:"verifyTrackLength,omitempty"`
	SplitChannelMode  bool   `json:"splitChannelMode,omitempty"`
}

// TextConfig controls how meta text payloads are shown
type TextConfig struct {
	Encoding string `json:"encoding,omitempty"` // utf-8, shift-jis, latin1
}

// UIConfig stores browser preferences
type UIConfig struct {
	Palette  string `json:"palette,omitempty"` // GIMP .gpl file, built-in palette when empty
	LastFile string `json:"lastFile,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Decoder DecoderConfig `json:"decoder"`
	Text    TextConfig    `json:"text"`
	UI      UIConfig      `json:"ui"`
	Debug   bool          `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Decoder: DecoderConfig{SysEx: smf.SysExScan.String()},
		Text:    TextConfig{Encoding: "utf-8"},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-smf"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DecoderOptions converts the decoder section to smf.Options.
func (c *Config) DecoderOptions() (smf.Options, error) {
	mode, err := smf.ParseSysExMode(c.Decoder.SysEx)
	if err != nil {
		return smf.Options{}, err
	}
	return smf.Options{
		RunningStatus:     c.Decoder.RunningStatus,
		SysEx:             mode,
		VerifyTrackLength: c.Decoder.VerifyTrackLength,
		SplitChannelMode:  c.Decoder.SplitChannelMode,
	}, nil
}
